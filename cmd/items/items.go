// Package items handles the item catalog commands
package items

import (
	"context"
	"errors"
	"fmt"
	"os"

	"fjacquet/grocelist/cmd/root"
	"fjacquet/grocelist/internal/catalogerror"
	"fjacquet/grocelist/internal/common"
	"fjacquet/grocelist/internal/container"
	"fjacquet/grocelist/internal/logging"
	"fjacquet/grocelist/internal/models"
	"fjacquet/grocelist/internal/source"

	"github.com/spf13/cobra"
)

// ViewFlags select and filter the items shown by list and export.
type ViewFlags struct {
	Category string
	Search   string
	Source   string
	SeedFile string
}

// AddFlags describe a new item for the add command.
type AddFlags struct {
	Name      string
	Category  string
	ImageFile string
}

var (
	viewFlags  = ViewFlags{}
	addFlags   = AddFlags{}
	outputFile string
)

// Cmd represents the items command
var Cmd = &cobra.Command{
	Use:   "items",
	Short: "Browse, export and add grocery items",
	Long: `Browse the grocery item catalog filtered by category and by name,
export the filtered view to CSV, or submit a new item to the remote backend.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List items",
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered items to a CSV file",
	Args:  cobra.NoArgs,
	RunE:  exportFunc,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories items can be filtered by",
	Args:  cobra.NoArgs,
	RunE:  categoriesFunc,
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Submit a new item to the remote backend",
	Args:  cobra.NoArgs,
	RunE:  addFunc,
}

func init() {
	for _, c := range []*cobra.Command{listCmd, exportCmd} {
		c.Flags().StringVar(&viewFlags.Category, "category", "All", "Only show items of this category")
		c.Flags().StringVarP(&viewFlags.Search, "search", "s", "", "Only show items whose name contains this text")
		c.Flags().StringVar(&viewFlags.Source, "source", string(container.Seed), "Item source: seed or remote")
		c.Flags().StringVar(&viewFlags.SeedFile, "seed-file", "", "YAML or CSV seed file replacing the built-in items")
	}
	exportCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file")
	_ = exportCmd.MarkFlagRequired("output")

	addCmd.Flags().StringVarP(&addFlags.Name, "name", "n", "", "Item name")
	addCmd.Flags().StringVar(&addFlags.Category, "category", "", "Item category")
	addCmd.Flags().StringVarP(&addFlags.ImageFile, "image", "i", "", "Image file to upload")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("category")
	_ = addCmd.MarkFlagRequired("image")

	Cmd.AddCommand(listCmd, exportCmd, categoriesCmd, addCmd)
}

func listFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	view, err := filteredView(cmd.Context(), c, viewFlags)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, item := range view {
		fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", item.ID, item.Name, item.Category, item.Image)
	}
	return nil
}

func categoriesFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	cats, err := c.GetCatalog().Categories(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, cat := range cats {
		fmt.Fprintf(out, "%d\t%s\n", cat.ID, cat.Name)
	}
	return nil
}

func exportFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	view, err := filteredView(cmd.Context(), c, viewFlags)
	if err != nil {
		return err
	}

	if err := common.WriteItemsToCSV(view, outputFile, c.GetLogger()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items to %s\n", len(view), outputFile)
	return nil
}

// filteredView loads the seed items as the baseline, replaces them from the
// remote source when asked to, and applies the category and text filters. A
// failed remote load keeps the seed baseline.
func filteredView(ctx context.Context, c *container.Container, flags ViewFlags) ([]models.GroceryItem, error) {
	cat := c.GetCatalog()
	log := c.GetLogger()

	var seed source.Source
	if flags.SeedFile != "" {
		seed = source.NewSeedSource(flags.SeedFile)
	} else {
		var err error
		if seed, err = c.GetSource(container.Seed); err != nil {
			return nil, err
		}
	}
	if _, err := cat.LoadFrom(ctx, seed); err != nil {
		return nil, err
	}

	switch container.SourceType(flags.Source) {
	case container.Seed, "":
	case container.Remote:
		remote, err := c.GetSource(container.Remote)
		if err != nil {
			return nil, err
		}
		if _, err := cat.LoadFrom(ctx, remote); err != nil {
			var failure *catalogerror.LoadFailure
			if !errors.As(err, &failure) {
				return nil, err
			}
			log.Warn("Showing seed items instead", logging.F(logging.FieldError, failure.Error()))
		}
	default:
		return nil, fmt.Errorf("unknown item source: %s", flags.Source)
	}

	if flags.Category != "" {
		if err := warnUnknownCategory(ctx, c, flags.Category); err != nil {
			return nil, err
		}
		cat.FilterByCategory(flags.Category)
	}
	return cat.FilterByText(flags.Search), nil
}

// warnUnknownCategory logs when name is not one of the catalog's filter
// options. Filtering by it still yields an empty view.
func warnUnknownCategory(ctx context.Context, c *container.Container, name string) error {
	cats, err := c.GetCatalog().Categories(ctx)
	if err != nil {
		return err
	}
	for _, cat := range cats {
		if cat.Name == name {
			return nil
		}
	}
	c.GetLogger().Warn("Category not found", logging.F(logging.FieldCategory, name))
	return nil
}

func addFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if addFlags.Category == models.AllCategory {
		return fmt.Errorf("an item cannot be assigned to the %q category: %w", models.AllCategory, catalogerror.ErrReservedCategory)
	}
	exists, err := c.GetStore().Exists(ctx, addFlags.Category)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("unknown category: %s", addFlags.Category)
	}

	image, err := os.ReadFile(addFlags.ImageFile)
	if err != nil {
		return fmt.Errorf("error reading image: %w", err)
	}

	result, err := c.GetSubmitClient().Submit(ctx, models.ItemSubmission{
		Name:     addFlags.Name,
		Category: addFlags.Category,
		Image:    image,
	})
	if err != nil {
		return err
	}

	msg := result.Message
	if msg == "" {
		msg = "Item saved successfully"
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

// Package categories handles the category management commands
package categories

import (
	"fmt"
	"strconv"
	"strings"

	"fjacquet/grocelist/cmd/root"
	"fjacquet/grocelist/internal/logging"
	"fjacquet/grocelist/internal/models"

	"github.com/spf13/cobra"
)

var selectableOnly bool

// Cmd represents the categories command
var Cmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"category", "cat"},
	Short:   "Manage grocery categories",
	Long: `Manage the persisted grocery categories. The "All" category is
created on first use and cannot be removed or renamed.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE:  addFunc,
}

var removeCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Remove a category by id",
	Args:  cobra.ExactArgs(1),
	RunE:  removeFunc,
}

var renameCmd = &cobra.Command{
	Use:   "rename ID NEW_NAME",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	RunE:  renameFunc,
}

func init() {
	listCmd.Flags().BoolVarP(&selectableOnly, "selectable", "s", false, "Only list categories an item can be assigned to")

	Cmd.AddCommand(listCmd, addCmd, removeCmd, renameCmd)
}

func listFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	var cats []models.Category
	if selectableOnly {
		cats, err = c.GetStore().Selectable(cmd.Context())
	} else {
		cats, err = c.GetStore().List(cmd.Context())
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, cat := range cats {
		fmt.Fprintf(out, "%d\t%s\n", cat.ID, cat.Name)
	}
	return nil
}

func addFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	cat, err := c.GetStore().Add(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Category added successfully: %d\t%s\n", cat.ID, cat.Name)
	return nil
}

func removeFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := c.GetStore().Remove(cmd.Context(), id); err != nil {
		return err
	}

	root.Log.Debug("Remove command finished", logging.F(logging.FieldCategoryID, id))
	fmt.Fprintf(cmd.OutOrStdout(), "Category %d removed\n", id)
	return nil
}

func renameFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := c.GetStore().Update(cmd.Context(), models.Category{ID: id, Name: args[1]}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Category %d renamed to %s\n", id, strings.TrimSpace(args[1]))
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid category id %q: %w", arg, err)
	}
	return id, nil
}

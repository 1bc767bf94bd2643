// Package catalog holds the loaded grocery items and produces category and
// text filtered views of them.
//
// A Catalog is driven from one goroutine, the way a UI event loop would drive
// it, and is not safe for concurrent use.
package catalog

import (
	"context"
	"fmt"

	"fjacquet/grocelist/internal/catalogerror"
	"fjacquet/grocelist/internal/logging"
	"fjacquet/grocelist/internal/models"
	"fjacquet/grocelist/internal/source"
	"fjacquet/grocelist/internal/textutils"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSearchCacheSize is the number of text-search results memoised
// between loads.
const DefaultSearchCacheSize = 64

// CategoryLister provides the category filter options.
type CategoryLister interface {
	List(ctx context.Context) ([]models.Category, error)
}

// Catalog is the in-memory item catalog.
//
// State: all is the baseline of the last load; category and query describe the
// active filters; view is what the last operation produced.
type Catalog struct {
	categories CategoryLister
	log        logging.Logger

	all      []models.GroceryItem
	byCat    []models.GroceryItem
	view     []models.GroceryItem
	category string
	query    string
	loaded   bool

	searches *lru.Cache[searchKey, []models.GroceryItem]
}

type searchKey struct {
	category string
	query    string
}

// New returns an unloaded catalog. categories may be nil when filter options
// are not needed. A cacheSize below 1 selects DefaultSearchCacheSize.
func New(categories CategoryLister, cacheSize int, logger logging.Logger) *Catalog {
	if cacheSize < 1 {
		cacheSize = DefaultSearchCacheSize
	}
	// only fails for a non-positive size
	searches, _ := lru.New[searchKey, []models.GroceryItem](cacheSize)

	return &Catalog{
		categories: categories,
		log:        logging.OrDiscard(logger),
		category:   models.AllCategory,
		searches:   searches,
	}
}

// Load replaces the item baseline and resets every filter. It returns the new
// current view, which is the full baseline.
func (c *Catalog) Load(items []models.GroceryItem) []models.GroceryItem {
	c.all = clone(items)
	c.byCat = c.all
	c.view = c.all
	c.category = models.AllCategory
	c.query = ""
	c.loaded = true
	c.searches.Purge()

	c.log.Debug("Catalog loaded", logging.F(logging.FieldCount, len(c.all)))
	return clone(c.view)
}

// LoadFrom fetches items from src and loads them. When the fetch fails the
// previous baseline and view are kept and a *catalogerror.LoadFailure is
// returned.
func (c *Catalog) LoadFrom(ctx context.Context, src source.Source) ([]models.GroceryItem, error) {
	items, err := src.Fetch(ctx)
	if err != nil {
		c.log.WithError(err).Warn("Keeping previous items after failed load",
			logging.F(logging.FieldSource, src.Name()),
			logging.F(logging.FieldCount, len(c.all)))
		return clone(c.view), &catalogerror.LoadFailure{Source: src.Name(), Err: err}
	}

	c.log.Info("Loaded items",
		logging.F(logging.FieldSource, src.Name()),
		logging.F(logging.FieldCount, len(items)))
	return c.Load(items), nil
}

// Loaded reports whether any load has happened.
func (c *Catalog) Loaded() bool {
	return c.loaded
}

// FilterByCategory selects a category and clears the text filter. "All"
// selects the whole baseline; any other name keeps the items whose category
// equals it exactly, in their original order.
func (c *Catalog) FilterByCategory(name string) []models.GroceryItem {
	c.category = name
	c.query = ""

	if name == models.AllCategory {
		c.byCat = c.all
	} else {
		filtered := make([]models.GroceryItem, 0, len(c.all))
		for _, item := range c.all {
			if item.Category == name {
				filtered = append(filtered, item)
			}
		}
		c.byCat = filtered
	}
	c.view = c.byCat

	c.log.Debug("Category filter applied",
		logging.F(logging.FieldCategory, name),
		logging.F(logging.FieldCount, len(c.view)))
	return clone(c.view)
}

// FilterByText narrows the current category view to items whose name contains
// query, ignoring case. An empty query restores the category view.
func (c *Catalog) FilterByText(query string) []models.GroceryItem {
	c.query = query
	if query == "" {
		c.view = c.byCat
		return clone(c.view)
	}

	key := searchKey{category: c.category, query: textutils.Fold(query)}
	if cached, ok := c.searches.Get(key); ok {
		c.view = cached
		return clone(c.view)
	}

	filtered := make([]models.GroceryItem, 0, len(c.byCat))
	for _, item := range c.byCat {
		if textutils.ContainsFold(item.Name, query) {
			filtered = append(filtered, item)
		}
	}
	c.searches.Add(key, filtered)
	c.view = filtered

	c.log.Debug("Text filter applied",
		logging.F(logging.FieldQuery, query),
		logging.F(logging.FieldCount, len(c.view)))
	return clone(c.view)
}

// CurrentView returns the result of the last operation, or the baseline when
// no filter has been applied.
func (c *Catalog) CurrentView() []models.GroceryItem {
	return clone(c.view)
}

// All returns the baseline of the last load.
func (c *Catalog) All() []models.GroceryItem {
	return clone(c.all)
}

// SelectedCategory returns the active category filter, "All" when none.
func (c *Catalog) SelectedCategory() string {
	return c.category
}

// Query returns the active text filter.
func (c *Catalog) Query() string {
	return c.query
}

// Categories returns the category filter options from the category store.
func (c *Catalog) Categories(ctx context.Context) ([]models.Category, error) {
	if c.categories == nil {
		return []models.Category{{ID: 1, Name: models.AllCategory}}, nil
	}
	cats, err := c.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func clone(items []models.GroceryItem) []models.GroceryItem {
	out := make([]models.GroceryItem, len(items))
	copy(out, items)
	return out
}

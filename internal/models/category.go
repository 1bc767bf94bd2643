package models

// AllCategory is the reserved category name that means "no filter".
const AllCategory = "All"

// Category is a named grocery category. IDs are unique within a store.
type Category struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// IsAll reports whether c is the reserved "All" category.
func (c Category) IsAll() bool {
	return c.Name == AllCategory
}

// DefaultCategories returns the seed categories written on first access to an
// empty store.
func DefaultCategories() []Category {
	return []Category{
		{ID: 1, Name: AllCategory},
		{ID: 2, Name: "Vegetables"},
		{ID: 3, Name: "Fruits"},
		{ID: 4, Name: "Meat"},
		{ID: 5, Name: "Beverages"},
	}
}

// Package store provides the persisted category store. All categories are
// kept as one JSON array under one key of a kvstore.Store.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"fjacquet/grocelist/internal/catalogerror"
	"fjacquet/grocelist/internal/kvstore"
	"fjacquet/grocelist/internal/logging"
	"fjacquet/grocelist/internal/models"
	"fjacquet/grocelist/internal/textutils"
)

// DefaultKey is the blob key categories are stored under.
const DefaultKey = "categories"

// CategoryStore manages loading and saving of categories.
//
// Every operation reads the full list, changes it and writes it back. The
// cycle is serialized inside one CategoryStore; separate processes sharing a
// blob store still race and the last writer wins.
type CategoryStore struct {
	blobs kvstore.Store
	key   string
	log   logging.Logger
	now   func() time.Time

	mu sync.Mutex
}

// NewCategoryStore creates a store persisting under key in blobs. An empty
// key selects DefaultKey.
func NewCategoryStore(blobs kvstore.Store, key string, logger logging.Logger) *CategoryStore {
	if key == "" {
		key = DefaultKey
	}
	return &CategoryStore{
		blobs: blobs,
		key:   key,
		log:   logging.OrDiscard(logger).WithField(logging.FieldKey, key),
		now:   time.Now,
	}
}

// SetClock replaces the clock new category IDs are derived from.
func (s *CategoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// List returns all categories in stored order. The first call against an
// empty blob store persists and returns the default categories.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Selectable returns the categories an item can be assigned to: every
// category except "All".
func (s *CategoryStore) Selectable(ctx context.Context) ([]models.Category, error) {
	cats, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Category, 0, len(cats))
	for _, c := range cats {
		if !c.IsAll() {
			out = append(out, c)
		}
	}
	return out, nil
}

// Exists reports whether a category with exactly this name is stored.
func (s *CategoryStore) Exists(ctx context.Context, name string) (bool, error) {
	cats, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	for _, c := range cats {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// Add stores a new category named name (trimmed) and returns it.
//
// It fails with *catalogerror.EmptyNameError for a blank name and with
// *catalogerror.DuplicateNameError when the name already exists in any case.
func (s *CategoryStore) Add(ctx context.Context, name string) (models.Category, error) {
	name = textutils.NormalizeName(name)
	if name == "" {
		return models.Category{}, &catalogerror.EmptyNameError{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cats, err := s.load(ctx)
	if err != nil {
		return models.Category{}, err
	}
	if existing, ok := findByName(cats, name, -1); ok {
		return models.Category{}, &catalogerror.DuplicateNameError{Name: name, Existing: existing.Name}
	}

	category := models.Category{ID: s.nextID(cats), Name: name}
	if err := s.save(ctx, append(cats, category)); err != nil {
		return models.Category{}, err
	}

	s.log.Info("Category added",
		logging.F(logging.FieldCategory, category.Name),
		logging.F(logging.FieldCategoryID, category.ID))
	return category, nil
}

// Remove deletes the category with the given id. An unknown id is a no-op.
// The "All" category cannot be removed.
func (s *CategoryStore) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats, err := s.load(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(cats, id)
	if idx < 0 {
		s.log.Debug("Category to remove not found", logging.F(logging.FieldCategoryID, id))
		return nil
	}
	if cats[idx].IsAll() {
		return fmt.Errorf("remove category %d: %w", id, catalogerror.ErrReservedCategory)
	}

	removed := cats[idx]
	cats = append(cats[:idx], cats[idx+1:]...)
	if err := s.save(ctx, cats); err != nil {
		return err
	}

	s.log.Info("Category removed",
		logging.F(logging.FieldCategory, removed.Name),
		logging.F(logging.FieldCategoryID, removed.ID))
	return nil
}

// Update replaces the stored category with the same ID. An unknown ID is a
// no-op. The new name is validated like Add, and "All" cannot be renamed.
func (s *CategoryStore) Update(ctx context.Context, category models.Category) error {
	category.Name = textutils.NormalizeName(category.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	cats, err := s.load(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(cats, category.ID)
	if idx < 0 {
		s.log.Debug("Category to update not found", logging.F(logging.FieldCategoryID, category.ID))
		return nil
	}
	if cats[idx].IsAll() && category.Name != models.AllCategory {
		return fmt.Errorf("rename category %d: %w", category.ID, catalogerror.ErrReservedCategory)
	}
	if category.Name == "" {
		return &catalogerror.EmptyNameError{}
	}
	if existing, ok := findByName(cats, category.Name, idx); ok {
		return &catalogerror.DuplicateNameError{Name: category.Name, Existing: existing.Name}
	}

	cats[idx] = category
	if err := s.save(ctx, cats); err != nil {
		return err
	}

	s.log.Info("Category updated",
		logging.F(logging.FieldCategory, category.Name),
		logging.F(logging.FieldCategoryID, category.ID))
	return nil
}

// load reads the stored list, seeding defaults on first access and restoring
// "All" if an older writer dropped it. Callers hold s.mu.
func (s *CategoryStore) load(ctx context.Context) ([]models.Category, error) {
	blob, ok, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("error reading categories: %w", err)
	}

	if !ok || strings.TrimSpace(blob) == "" {
		defaults := models.DefaultCategories()
		if err := s.save(ctx, defaults); err != nil {
			return nil, err
		}
		s.log.Info("Initialized default categories", logging.F(logging.FieldCount, len(defaults)))
		return defaults, nil
	}

	var cats []models.Category
	if err := json.Unmarshal([]byte(blob), &cats); err != nil {
		return nil, fmt.Errorf("error parsing categories: %w", err)
	}

	if _, found := findExact(cats, models.AllCategory); found {
		s.log.Debug("Loaded categories", logging.F(logging.FieldCount, len(cats)))
		return cats, nil
	}

	if _, idx, found := findFold(cats, models.AllCategory); found {
		cats[idx].Name = models.AllCategory
		if err := s.save(ctx, cats); err != nil {
			return nil, err
		}
		s.log.Warn("Normalized All category name", logging.F(logging.FieldCategoryID, cats[idx].ID))
	} else {
		all := models.Category{ID: 1, Name: models.AllCategory}
		if indexOf(cats, all.ID) >= 0 {
			all.ID = maxID(cats) + 1
		}
		cats = append([]models.Category{all}, cats...)
		if err := s.save(ctx, cats); err != nil {
			return nil, err
		}
		s.log.Warn("Restored missing All category", logging.F(logging.FieldCategoryID, all.ID))
	}

	s.log.Debug("Loaded categories", logging.F(logging.FieldCount, len(cats)))
	return cats, nil
}

func (s *CategoryStore) save(ctx context.Context, cats []models.Category) error {
	if cats == nil {
		cats = []models.Category{}
	}
	data, err := json.Marshal(cats)
	if err != nil {
		return fmt.Errorf("error marshaling categories: %w", err)
	}
	if err := s.blobs.Put(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("error writing categories: %w", err)
	}
	return nil
}

// nextID derives an ID from the clock, bumped past every stored ID so two
// adds within one clock tick still get distinct IDs.
func (s *CategoryStore) nextID(cats []models.Category) int64 {
	id := s.now().UnixMilli()
	if highest := maxID(cats); id <= highest {
		id = highest + 1
	}
	return id
}

func indexOf(cats []models.Category, id int64) int {
	for i, c := range cats {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// findByName finds a category whose name matches caselessly, skipping index skip.
func findByName(cats []models.Category, name string, skip int) (models.Category, bool) {
	for i, c := range cats {
		if i != skip && textutils.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return models.Category{}, false
}

func findFold(cats []models.Category, name string) (models.Category, int, bool) {
	for i, c := range cats {
		if textutils.EqualFold(c.Name, name) {
			return c, i, true
		}
	}
	return models.Category{}, -1, false
}

func findExact(cats []models.Category, name string) (models.Category, bool) {
	for _, c := range cats {
		if c.Name == name {
			return c, true
		}
	}
	return models.Category{}, false
}

func maxID(cats []models.Category) int64 {
	var highest int64
	for _, c := range cats {
		if c.ID > highest {
			highest = c.ID
		}
	}
	return highest
}

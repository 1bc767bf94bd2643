// Package container provides dependency injection for the grocelist
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"fjacquet/grocelist/internal/catalog"
	"fjacquet/grocelist/internal/common"
	"fjacquet/grocelist/internal/config"
	"fjacquet/grocelist/internal/kvstore"
	"fjacquet/grocelist/internal/logging"
	"fjacquet/grocelist/internal/source"
	"fjacquet/grocelist/internal/store"
	"fjacquet/grocelist/internal/submit"
)

// SourceType names an item source.
type SourceType string

const (
	Seed   SourceType = "seed"
	Remote SourceType = "remote"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: fields are private and only
// reachable through getters.
type Container struct {
	logger  logging.Logger
	config  *config.Config
	blobs   kvstore.Store
	store   *store.CategoryStore
	catalog *catalog.Catalog
	submit  *submit.Client

	sources map[SourceType]source.Source
}

// NewContainer creates and wires all application dependencies with a logger
// built from the log section of cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.NewLogger(cfg))
}

// NewContainerWithLogger is NewContainer with an explicit logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger = logging.OrDiscard(logger)

	storagePath := cfg.StoragePath()
	blobs, err := kvstore.Open(cfg.Storage.Backend, storagePath)
	if err != nil {
		return nil, fmt.Errorf("error opening storage: %w", err)
	}

	categoryStore := store.NewCategoryStore(blobs, cfg.Storage.Key, logger)
	cat := catalog.New(categoryStore, cfg.Catalog.SearchCacheSize, logger)

	timeout := time.Duration(cfg.Remote.TimeoutSeconds) * time.Second
	httpClient := &http.Client{Timeout: timeout}

	sources := map[SourceType]source.Source{
		Seed: source.NewSeedSource(cfg.Catalog.SeedFile),
	}
	if itemsURL, err := url.JoinPath(cfg.Remote.BaseURL, cfg.Remote.ItemsPath); err == nil && cfg.Remote.BaseURL != "" {
		sources[Remote] = source.NewRemoteSource(itemsURL, timeout, httpClient, logger)
	} else {
		logger.Warn("Remote item source disabled", logging.F(logging.FieldURL, cfg.Remote.BaseURL))
	}

	submitClient := submit.NewClient(cfg.Remote.BaseURL, cfg.Remote.SubmitPath, timeout, httpClient, logger)

	common.SetDelimiter(cfg.ExportDelimiter())

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldBackend, cfg.Storage.Backend),
		logging.F(logging.FieldFile, storagePath),
		logging.F("sources_count", len(sources)))

	return &Container{
		logger:  logger,
		config:  cfg,
		blobs:   blobs,
		store:   categoryStore,
		catalog: cat,
		submit:  submitClient,
		sources: sources,
	}, nil
}

// GetSource returns the item source of the given type.
func (c *Container) GetSource(st SourceType) (source.Source, error) {
	s, ok := c.sources[st]
	if !ok {
		return nil, fmt.Errorf("unknown item source: %s", st)
	}
	return s, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's category store instance.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetCatalog returns the container's item catalog.
func (c *Container) GetCatalog() *catalog.Catalog {
	return c.catalog
}

// GetSubmitClient returns the client posting new items to the backend.
func (c *Container) GetSubmitClient() *submit.Client {
	return c.submit
}

// Close releases the blob store.
func (c *Container) Close() error {
	if err := c.blobs.Close(); err != nil {
		return fmt.Errorf("error closing storage: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}

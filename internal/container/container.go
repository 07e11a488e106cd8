// Package container provides dependency injection for the planned-spending application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"

	"fjacquet/planned-spending/internal/common"
	"fjacquet/planned-spending/internal/config"
	"fjacquet/planned-spending/internal/logging"
	"fjacquet/planned-spending/internal/planning"
	"fjacquet/planned-spending/internal/report"
	"fjacquet/planned-spending/internal/source"
	"fjacquet/planned-spending/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// The reminder source is opened on first use, so commands that never read it
// (import into an empty store, for example) do not require it to exist.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	projector *planning.Projector
	generator *report.ReportGenerator

	source source.Source
	stores []*store.BookStore
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])

	asOf, err := cfg.AsOfDate()
	if err != nil {
		return nil, err
	}
	projector := planning.NewProjector(asOf)
	start, end := projector.Window()

	logger.Debug("Container initialized",
		logging.F(logging.FieldAsOf, start.Format("2006-01-02")),
		logging.F("until", end.Format("2006-01-02")),
		logging.F(logging.FieldSource, cfg.Source.Path))

	return &Container{
		logger:    logger,
		config:    cfg,
		projector: projector,
		generator: report.NewReportGenerator(logger, cfg.Report.Width),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetProjector returns the projector fixed at the configured as-of date.
func (c *Container) GetProjector() *planning.Projector {
	return c.projector
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.generator
}

// GetSource opens the configured reminder source on first call.
func (c *Container) GetSource(ctx context.Context) (source.Source, error) {
	if c.source != nil {
		return c.source, nil
	}
	src, err := source.Open(ctx, c.config.Source.Type, c.config.Source.Path, c.logger)
	if err != nil {
		return nil, err
	}
	c.source = src
	return src, nil
}

// GetPlanner returns a planner reading from the configured source.
func (c *Container) GetPlanner(ctx context.Context) (*planning.Planner, error) {
	src, err := c.GetSource(ctx)
	if err != nil {
		return nil, err
	}
	return planning.NewPlanner(src, c.projector, c.logger), nil
}

// OpenStore opens the SQLite book store at path, or at store.path when path is empty.
// The store is closed with the container.
func (c *Container) OpenStore(ctx context.Context, path string) (*store.BookStore, error) {
	if path == "" {
		path = c.config.Store.Path
	}
	s, err := store.Open(ctx, path, c.logger)
	if err != nil {
		return nil, err
	}
	c.stores = append(c.stores, s)
	return s, nil
}

// Close releases the source and any opened store.
func (c *Container) Close() error {
	var firstErr error
	if c.source != nil {
		if err := c.source.Close(); err != nil {
			firstErr = err
		}
		c.source = nil
	}
	for _, s := range c.stores {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.stores = nil
	c.logger.Debug("Container closed")
	return firstErr
}

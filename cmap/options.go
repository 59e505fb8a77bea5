package cmap

import (
	"log/slog"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/attributes"
)

type config struct {
	logger *slog.Logger
	attrs  *attributes.Manager
}

// Option customizes map construction.
type Option func(*config)

// WithLogger sets the logger used by the map and its attribute storages.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithAttributeManager attaches a pre-built attribute registry, letting
// builders register custom attribute types before topology is populated.
// Registered storages should start empty; the map sizes them in lock-step
// with its dart table.
func WithAttributeManager(m *attributes.Manager) Option {
	return func(c *config) {
		c.attrs = m
	}
}

func newConfig(opts []Option) config {
	c := config{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.attrs == nil {
		c.attrs = attributes.NewManager().WithLogger(c.logger)
	}
	return c
}

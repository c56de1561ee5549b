package cmd

import (
	"log/slog"

	"github.com/dukex/agentflow/pkg/catalog"
)

// NewCatalog loads the fixture at path, or the built-in catalog when path is empty.
func NewCatalog(path string, logger *slog.Logger) (*catalog.Catalog, error) {
	if path == "" {
		logger.Info("Using built-in catalog")

		return catalog.Default(), nil
	}

	c, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}

	logger.Info("Loaded catalog", "path", path, "agents", len(c.Agents()), "templates", len(c.Templates()))

	return c, nil
}

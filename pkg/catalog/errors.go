package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAgentNotFound indicates no agent exists with the requested id.
	ErrAgentNotFound = errors.New("agent not found")

	// ErrTemplateNotFound indicates no template exists with the requested id.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrPresetNotFound indicates no prompt preset exists with the requested name.
	ErrPresetNotFound = errors.New("prompt preset not found")

	// ErrInvalidCatalog indicates a catalog fixture could not be loaded.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrUnsupportedFormat indicates a fixture extension other than .json, .yaml or .yml.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
)

// SchemaError lists the schema violations found in a catalog fixture.
type SchemaError struct {
	Path    string
	Details []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("catalog %s does not match schema: %s", e.Path, strings.Join(e.Details, "; "))
}

func (e *SchemaError) Unwrap() error {
	return ErrInvalidCatalog
}

// IsNotFound reports whether err means a catalog record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAgentNotFound) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, ErrPresetNotFound)
}

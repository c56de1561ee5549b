package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Format is a catalog fixture encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the fixture encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads a catalog fixture from disk. The fixture is validated against the
// catalog schema before it is decoded.
func Load(path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	return Parse(path, data, format)
}

// Parse decodes and validates fixture bytes. name is only used in error messages.
func Parse(name string, data []byte, format Format) (*Catalog, error) {
	payload, err := normalize(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidCatalog, name, err)
	}

	if err := validateSchema(name, payload); err != nil {
		return nil, err
	}

	var doc Document

	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidCatalog, name, err)
	}

	return New(doc)
}

// Export writes the catalog as a fixture in the given format.
func (c *Catalog) Export(w io.Writer, format Format) error {
	payload, err := json.MarshalIndent(c.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	switch format {
	case FormatJSON:
		_, err = w.Write(append(payload, '\n'))

		return err
	case FormatYAML:
		var generic any
		if err := json.Unmarshal(payload, &generic); err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}

		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(generic); err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}

		return encoder.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// normalize turns a fixture into canonical JSON so schema validation and decoding
// see the same document regardless of the source encoding.
func normalize(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		if !json.Valid(data) {
			return nil, fmt.Errorf("malformed JSON")
		}

		return bytes.TrimSpace(data), nil
	case FormatYAML:
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, err
		}

		return json.Marshal(generic)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func validateSchema(name string, payload []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(documentSchema),
		gojsonschema.NewBytesLoader(payload),
	)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidCatalog, name, err)
	}

	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}

	return &SchemaError{Path: name, Details: details}
}

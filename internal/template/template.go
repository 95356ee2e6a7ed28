// Package template moves a checklist template in and out of files.
// Imports accept JSON (comments and trailing commas allowed) or YAML and
// are validated against an embedded JSON Schema before use.
package template

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/cabina/internal/model"
)

// Format is a template file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("cabina-template.schema.json", schemaJSON)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q (want json or yaml)", s)
}

// FormatFromPath guesses the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Export writes items to w.
func Export(w io.Writer, items []model.Item, f Format) error {
	if items == nil {
		items = []model.Item{}
	}
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("json encode: %w", err)
		}
		return nil
	}
}

// Parse decodes and validates a template document.
func Parse(data []byte, f Format) ([]model.Item, error) {
	var doc any
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		// Round-trip through JSON so the validator sees JSON types.
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		data = b
	default:
		// Strip comments and trailing commas before parsing as standard JSON.
		data = jsonc.ToJSON(data)
	}
	doc = nil
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("invalid template: %w", flatten(err))
	}
	var items []model.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}
	return items, nil
}

// flatten reduces a validation error tree to its first leaf so the message
// points at the offending entry.
func flatten(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Errorf("%s: %s", loc, ve.Message)
}

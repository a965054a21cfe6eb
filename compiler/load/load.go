// Package load reads entity descriptions: from JSON or YAML documents, or
// by inspecting the information_schema of a live MySQL or PostgreSQL
// database.
package load

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/laragen/schema"
)

// Format of a description document.
type Format string

// Supported document formats.
const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// Document is the top-level shape of a description file.
type Document struct {
	Entities []*schema.Entity `json:"entities" yaml:"entities"`
}

// FormatOf returns the document format implied by the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("load: unknown format of %q; use .json, .yaml or .yml", path)
	}
}

// File reads the entities of a JSON or YAML description file.
func File(path string) ([]*schema.Entity, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load: read %s: %w", path, err)
	}
	entities, err := Decode(bytes.NewReader(buf), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entities, nil
}

// Files reads all files and concatenates their entities in argument order.
func Files(paths ...string) ([]*schema.Entity, error) {
	var all []*schema.Entity
	for _, path := range paths {
		entities, err := File(path)
		if err != nil {
			return nil, err
		}
		all = append(all, entities...)
	}
	return all, nil
}

// Decode reads a document from r. Unknown keys are rejected so that typos
// in descriptions surface; entity-level validation is left to the generator.
func Decode(r io.Reader, format Format) ([]*schema.Entity, error) {
	var doc Document
	switch format {
	case JSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("load: decode json: %w", err)
		}
	case YAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		// An empty document decodes to no entities.
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("load: decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("load: unsupported format %q", format)
	}
	return doc.Entities, nil
}

// Encode writes entities to w as a document.
func Encode(w io.Writer, format Format, entities []*schema.Entity) error {
	doc := Document{Entities: entities}
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("load: unsupported format %q", format)
	}
}

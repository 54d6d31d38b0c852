package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/tintplay/colorfx"
)

// Schema returns the JSON Schema (draft 2020-12) for the YAML settings file.
func Schema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[Settings](nil)
	if err != nil {
		return nil, fmt.Errorf("inferring schema: %w", err)
	}

	s.Title = "tintplay settings"

	one := 1.0
	zero := 0.0

	for _, name := range []string{"canvas_width", "canvas_height"} {
		if p, ok := s.Properties[name]; ok {
			p.Minimum = &one
		}
	}

	if p, ok := s.Properties["dial_min"]; ok {
		p.Minimum = &zero
	}

	if p, ok := s.Properties["pixel_format"]; ok {
		for _, o := range colorfx.Orders() {
			p.Enum = append(p.Enum, string(o))
		}
	}

	return s, nil
}

// validateDocument checks a YAML document against [Schema].
func validateDocument(data []byte) error {
	schema, err := Schema()
	if err != nil {
		return err
	}

	resolved, err := schema.Resolve(nil)
	if err != nil {
		return fmt.Errorf("resolving schema: %w", err)
	}

	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	var instance any

	err = json.Unmarshal(js, &instance)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	err = resolved.Validate(instance)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// isBlank reports whether data holds no YAML content besides comments.
func isBlank(data []byte) bool {
	for line := range bytes.Lines(data) {
		line = bytes.TrimSpace(line)
		if len(line) > 0 && line[0] != '#' && !bytes.Equal(line, []byte("---")) {
			return false
		}
	}

	return true
}

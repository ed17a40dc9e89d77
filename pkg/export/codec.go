package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects an encoding for Encode.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat matches raw against the supported formats; "yml" is accepted.
func ParseFormat(raw string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// ContentType returns the media type for the format.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Encode serialises doc in the requested format.
func Encode(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return EncodeJSON(doc)
	case FormatYAML:
		return EncodeYAML(doc)
	default:
		return nil, fmt.Errorf("export: unsupported format %q", format)
	}
}

// EncodeJSON renders doc as indented JSON. Collections are normalised first
// so an empty form encodes as [] and {} rather than null.
func EncodeJSON(doc Document) ([]byte, error) {
	payload, err := json.MarshalIndent(doc.Clone(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encode json: %w", err)
	}
	return append(payload, '\n'), nil
}

// EncodeYAML renders doc as YAML.
func EncodeYAML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc.Clone()); err != nil {
		return nil, fmt.Errorf("export: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("export: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses JSON or YAML (JSON is tried first), normalises language codes
// and validates the result against base.
func Decode(data []byte, base string) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, fmt.Errorf("export: decode: empty document")
	}

	var raw Document
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = Document{}
		if yerr := yaml.Unmarshal(data, &raw); yerr != nil {
			return Document{}, fmt.Errorf("export: decode: invalid JSON or YAML: %w", yerr)
		}
	}

	doc, err := raw.Normalize()
	if err != nil {
		return Document{}, err
	}
	if err := doc.Validate(base); err != nil {
		return Document{}, err
	}
	return doc, nil
}

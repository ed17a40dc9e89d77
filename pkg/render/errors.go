package render

import (
	"strings"

	"github.com/goliatone/go-formi18n/pkg/preview"
)

// ErrorMapping splits a validation payload into field-level messages keyed by
// field id and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// For returns the messages mapped to field id.
func (m ErrorMapping) For(id string) []string {
	return m.Fields[id]
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping blanks and duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrors routes payload keys to the fields of form. A key may be the
// field id, its control id ("preview-<id>"), or a path ending in the id
// ("fields.<id>", "/fields/<id>/label"). Keys naming no field become
// form-level messages so nothing is lost.
func MapErrors(form preview.Form, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{}
	if len(payload) == 0 {
		return mapping
	}

	ids := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		ids[field.ID] = struct{}{}
	}

	for raw, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		id, ok := matchFieldKey(raw, ids)
		if !ok {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[id] = append(mapping.Fields[id], normalized...)
	}

	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func matchFieldKey(raw string, ids map[string]struct{}) (string, bool) {
	key := strings.TrimSpace(raw)
	if isFormLevelKey(key) {
		return "", false
	}
	if _, ok := ids[key]; ok {
		return key, true
	}
	if trimmed := strings.TrimPrefix(key, preview.ControlID("")); trimmed != key {
		if _, ok := ids[trimmed]; ok {
			return trimmed, true
		}
	}

	segments := strings.FieldsFunc(key, func(r rune) bool {
		return r == '.' || r == '/' || r == '[' || r == ']'
	})
	for i, segment := range segments {
		if !strings.EqualFold(segment, "fields") && !strings.EqualFold(segment, "formFields") {
			continue
		}
		if i+1 < len(segments) {
			if _, ok := ids[segments[i+1]]; ok {
				return segments[i+1], true
			}
		}
	}
	return "", false
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(key) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

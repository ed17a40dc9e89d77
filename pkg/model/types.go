package model

import "strings"

// FieldType is the closed set of input controls a form field can render as.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeNumber   FieldType = "number"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeRadio    FieldType = "radio"
)

const (
	// DefaultLabel is assigned to freshly added fields.
	DefaultLabel = "New Field"
	// DefaultPlaceholder is assigned to freshly added fields.
	DefaultPlaceholder = "Enter value"
)

var fieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeEmail,
	FieldTypeNumber,
	FieldTypeTextarea,
	FieldTypeSelect,
	FieldTypeCheckbox,
	FieldTypeRadio,
}

// FieldTypes returns the supported field types in display order.
func FieldTypes() []FieldType {
	out := make([]FieldType, len(fieldTypes))
	copy(out, fieldTypes)
	return out
}

// Valid reports whether t is one of the supported field types.
func (t FieldType) Valid() bool {
	for _, candidate := range fieldTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// HasPlaceholder reports whether the control rendered for t shows placeholder
// text. Placeholders are still stored for the other types.
func (t FieldType) HasPlaceholder() bool {
	switch t {
	case FieldTypeCheckbox, FieldTypeRadio:
		return false
	default:
		return true
	}
}

// Title returns a human label for the type, e.g. "Textarea".
func (t FieldType) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// ParseFieldType normalises raw input into a FieldType. The boolean is false
// when the value is not part of the supported set.
func ParseFieldType(raw string) (FieldType, bool) {
	t := FieldType(strings.ToLower(strings.TrimSpace(raw)))
	return t, t.Valid()
}

// FormField is a single input definition. Label and Placeholder hold the
// default text used when a language lacks a translation entry for the field.
type FormField struct {
	ID          string    `json:"id" yaml:"id"`
	Type        FieldType `json:"type" yaml:"type"`
	Label       string    `json:"label" yaml:"label"`
	Placeholder string    `json:"placeholder" yaml:"placeholder"`
	Required    bool      `json:"required" yaml:"required"`
}

// FieldPatch carries a partial update for a FormField. Nil members are left
// untouched by Apply.
type FieldPatch struct {
	Type        *FieldType `json:"type,omitempty"`
	Label       *string    `json:"label,omitempty"`
	Placeholder *string    `json:"placeholder,omitempty"`
	Required    *bool      `json:"required,omitempty"`
}

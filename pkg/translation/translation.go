package translation

import "strings"

// DefaultBaseLanguage is the canonical base language code.
const DefaultBaseLanguage = "en"

// FieldText is the localized label/placeholder pair for one field.
type FieldText struct {
	Label       string `json:"label" yaml:"label"`
	Placeholder string `json:"placeholder" yaml:"placeholder"`
}

// Translation is the localized text bundle for a single language.
type Translation struct {
	FormTitle    string               `json:"formTitle" yaml:"formTitle"`
	SubmitButton string               `json:"submitButton" yaml:"submitButton"`
	Fields       map[string]FieldText `json:"fields" yaml:"fields"`
}

// Clone returns a deep copy. The Fields map of the copy is never nil.
func (t Translation) Clone() Translation {
	out := Translation{
		FormTitle:    t.FormTitle,
		SubmitButton: t.SubmitButton,
		Fields:       make(map[string]FieldText, len(t.Fields)),
	}
	for id, text := range t.Fields {
		out.Fields[id] = text
	}
	return out
}

// Field returns the entry for id, if any.
func (t Translation) Field(id string) (FieldText, bool) {
	if t.Fields == nil {
		return FieldText{}, false
	}
	text, ok := t.Fields[id]
	return text, ok
}

// Target selects the text a translation edit writes to.
type Target string

const (
	TargetFormTitle        Target = "formTitle"
	TargetSubmitButton     Target = "submitButton"
	TargetFieldLabel       Target = "fieldLabel"
	TargetFieldPlaceholder Target = "fieldPlaceholder"
)

// Valid reports whether t is a known target.
func (t Target) Valid() bool {
	switch t {
	case TargetFormTitle, TargetSubmitButton, TargetFieldLabel, TargetFieldPlaceholder:
		return true
	default:
		return false
	}
}

// FieldLevel reports whether the target addresses a per-field entry.
func (t Target) FieldLevel() bool {
	return t == TargetFieldLabel || t == TargetFieldPlaceholder
}

// ParseTarget matches raw input against the known targets, ignoring case.
func ParseTarget(raw string) (Target, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, candidate := range []Target{TargetFormTitle, TargetSubmitButton, TargetFieldLabel, TargetFieldPlaceholder} {
		if strings.EqualFold(trimmed, string(candidate)) {
			return candidate, true
		}
	}
	return "", false
}

// NormalizeCode trims and lowercases a language code.
func NormalizeCode(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// CloneAll deep copies a code -> translation map. The result is never nil.
func CloneAll(records map[string]Translation) map[string]Translation {
	out := make(map[string]Translation, len(records))
	for code, record := range records {
		out[code] = record.Clone()
	}
	return out
}

// Package export defines the persisted shape of an editing session and the
// JSON/YAML codecs for it. The document layout is the contract for import:
//
//	{
//	  "formFields": [{"id": "1", "type": "text", ...}],
//	  "translations": {"en": {"formTitle": "...", "submitButton": "...", "fields": {...}}}
//	}
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formi18n/pkg/model"
	"github.com/goliatone/go-formi18n/pkg/translation"
)

var (
	// ErrMissingBaseLanguage reports a document without the base language.
	ErrMissingBaseLanguage = errors.New("export: base language missing")
	// ErrDuplicateLanguage reports two language codes that normalise to the
	// same key.
	ErrDuplicateLanguage = errors.New("export: duplicate language code")
	// ErrInvalidField reports a malformed entry in formFields.
	ErrInvalidField = errors.New("export: invalid field")
)

// Document is the structural snapshot of fields and translations.
type Document struct {
	FormFields   []model.FormField                  `json:"formFields" yaml:"formFields"`
	Translations map[string]translation.Translation `json:"translations" yaml:"translations"`
}

// Clone returns a deep copy with non-nil collections.
func (d Document) Clone() Document {
	return Document{
		FormFields:   model.CloneFields(d.FormFields),
		Translations: translation.CloneAll(d.Translations),
	}
}

// Normalize lowercases language codes and replaces nil collections with
// empty ones, returning the normalised copy.
func (d Document) Normalize() (Document, error) {
	out := Document{
		FormFields:   model.CloneFields(d.FormFields),
		Translations: make(map[string]translation.Translation, len(d.Translations)),
	}
	for raw, record := range d.Translations {
		code := translation.NormalizeCode(raw)
		if code == "" {
			return Document{}, fmt.Errorf("export: normalize: empty language code")
		}
		if _, exists := out.Translations[code]; exists {
			return Document{}, fmt.Errorf("%w: %q", ErrDuplicateLanguage, code)
		}
		out.Translations[code] = record.Clone()
	}
	return out, nil
}

// Validate checks the invariants an importer relies on: field ids are present
// and unique, field types are supported, and base exists in translations.
func (d Document) Validate(base string) error {
	seen := make(map[string]struct{}, len(d.FormFields))
	for i, field := range d.FormFields {
		id := strings.TrimSpace(field.ID)
		if id == "" {
			return fmt.Errorf("%w: formFields[%d] has an empty id", ErrInvalidField, i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %q", ErrInvalidField, id)
		}
		seen[id] = struct{}{}
		if !field.Type.Valid() {
			return fmt.Errorf("%w: field %q has unsupported type %q", ErrInvalidField, id, field.Type)
		}
	}

	base = translation.NormalizeCode(base)
	if base == "" {
		base = translation.DefaultBaseLanguage
	}
	for code := range d.Translations {
		if translation.NormalizeCode(code) == base {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrMissingBaseLanguage, base)
}

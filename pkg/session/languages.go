package session

import (
	"github.com/goliatone/go-formi18n/pkg/translation"
)

// BaseLanguage returns the non-removable base language code.
func (s *Session) BaseLanguage() string {
	return s.store.Base()
}

// ActiveLanguage returns the language being edited and previewed.
func (s *Session) ActiveLanguage() string {
	return s.active
}

// Languages returns the language codes, base first.
func (s *Session) Languages() []string {
	return s.store.Codes()
}

// LanguageOptions returns labelled language options with the active flag.
func (s *Session) LanguageOptions() []translation.LanguageOption {
	return translation.BuildLanguageOptions(s.store.Codes(), s.active)
}

// Translation returns a copy of the record for code.
func (s *Session) Translation(code string) (translation.Translation, bool) {
	return s.store.Get(code)
}

// Translations returns a deep copy of every record keyed by code.
func (s *Session) Translations() map[string]translation.Translation {
	return s.store.Snapshot()
}

// AddLanguage creates a translation for code seeded from the base language
// and makes it active. Empty or existing codes are rejected.
func (s *Session) AddLanguage(code string) bool {
	code = translation.NormalizeCode(code)
	if code == "" {
		return s.reject("addLanguage", "empty code")
	}
	if s.store.Has(code) {
		return s.reject("addLanguage", "language exists", "language", code)
	}

	s.store.Add(code, s.store.Derive(s.fields))
	s.active = code
	return true
}

// RemoveLanguage deletes the translation for code. The base language cannot
// be removed. Removing the active language re-activates the base language.
func (s *Session) RemoveLanguage(code string) bool {
	code = translation.NormalizeCode(code)
	if code == s.store.Base() {
		return s.reject("removeLanguage", "base language", "language", code)
	}
	if !s.store.Remove(code) {
		return s.reject("removeLanguage", "unknown language", "language", code)
	}
	if s.active == code {
		s.active = s.store.Base()
	}
	return true
}

// SetActiveLanguage switches the active language to an existing code.
func (s *Session) SetActiveLanguage(code string) bool {
	code = translation.NormalizeCode(code)
	if !s.store.Has(code) {
		return s.reject("setActiveLanguage", "unknown language", "language", code)
	}
	s.active = code
	return true
}

// UpdateTranslationText sets the text selected by target in the translation
// for code. fieldID is only read for field-level targets and must name a
// current field; a missing entry is created with an empty sibling value.
func (s *Session) UpdateTranslationText(code string, target translation.Target, fieldID, value string) bool {
	code = translation.NormalizeCode(code)
	if !s.store.Has(code) {
		return s.reject("updateTranslationText", "unknown language", "language", code)
	}
	if !target.Valid() {
		return s.reject("updateTranslationText", "unknown target", "target", string(target))
	}
	if target.FieldLevel() && s.indexOf(fieldID) < 0 {
		return s.reject("updateTranslationText", "unknown field", "field_id", fieldID)
	}
	if !target.FieldLevel() {
		fieldID = ""
	}
	return s.store.SetText(code, target, fieldID, value)
}

package translation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formi18n/pkg/model"
)

var (
	// ErrBaseLanguageMissing is returned when restoring records that lack the
	// base language.
	ErrBaseLanguageMissing = errors.New("translation: base language missing")
	// ErrDuplicateLanguage is returned when two codes normalise to the same key.
	ErrDuplicateLanguage = errors.New("translation: duplicate language code")
)

// Store maps language codes to translations. The base language is always
// present and cannot be removed. A Store is not safe for concurrent use.
type Store struct {
	base    string
	records map[string]Translation
}

// NewStore creates a store holding only the base language. An empty base
// code selects DefaultBaseLanguage.
func NewStore(base string, baseRecord Translation) *Store {
	base = NormalizeCode(base)
	if base == "" {
		base = DefaultBaseLanguage
	}
	return &Store{
		base:    base,
		records: map[string]Translation{base: baseRecord.Clone()},
	}
}

// Restore rebuilds a store from a code -> translation map, normalising codes.
// It fails when the base language is absent or two codes collide.
func Restore(base string, records map[string]Translation) (*Store, error) {
	base = NormalizeCode(base)
	if base == "" {
		base = DefaultBaseLanguage
	}

	normalized := make(map[string]Translation, len(records))
	for raw, record := range records {
		code := NormalizeCode(raw)
		if code == "" {
			return nil, fmt.Errorf("translation: restore: empty language code")
		}
		if _, exists := normalized[code]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLanguage, code)
		}
		normalized[code] = record.Clone()
	}
	if _, ok := normalized[base]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrBaseLanguageMissing, base)
	}
	return &Store{base: base, records: normalized}, nil
}

// Base returns the base language code.
func (s *Store) Base() string {
	return s.base
}

// Len returns the number of languages in the store.
func (s *Store) Len() int {
	return len(s.records)
}

// Codes returns the language codes with the base language first and the rest
// sorted.
func (s *Store) Codes() []string {
	codes := make([]string, 0, len(s.records))
	for code := range s.records {
		if code == s.base {
			continue
		}
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return append([]string{s.base}, codes...)
}

// Has reports whether code (normalised) is present.
func (s *Store) Has(code string) bool {
	_, ok := s.records[NormalizeCode(code)]
	return ok
}

// Get returns a copy of the translation for code.
func (s *Store) Get(code string) (Translation, bool) {
	record, ok := s.records[NormalizeCode(code)]
	if !ok {
		return Translation{}, false
	}
	return record.Clone(), true
}

// Add inserts record under code. Empty or existing codes are rejected.
func (s *Store) Add(code string, record Translation) bool {
	code = NormalizeCode(code)
	if code == "" {
		return false
	}
	if _, exists := s.records[code]; exists {
		return false
	}
	s.records[code] = record.Clone()
	return true
}

// Remove deletes code. The base language and unknown codes are rejected.
func (s *Store) Remove(code string) bool {
	code = NormalizeCode(code)
	if code == s.base {
		return false
	}
	if _, exists := s.records[code]; !exists {
		return false
	}
	delete(s.records, code)
	return true
}

// SetText writes value into the translation for code. Field-level targets
// create the entry for fieldID when missing, leaving the sibling empty.
func (s *Store) SetText(code string, target Target, fieldID, value string) bool {
	code = NormalizeCode(code)
	record, ok := s.records[code]
	if !ok {
		return false
	}

	switch target {
	case TargetFormTitle:
		record.FormTitle = value
	case TargetSubmitButton:
		record.SubmitButton = value
	case TargetFieldLabel, TargetFieldPlaceholder:
		if strings.TrimSpace(fieldID) == "" {
			return false
		}
		if record.Fields == nil {
			record.Fields = make(map[string]FieldText)
		}
		text := record.Fields[fieldID]
		if target == TargetFieldLabel {
			text.Label = value
		} else {
			text.Placeholder = value
		}
		record.Fields[fieldID] = text
	default:
		return false
	}

	s.records[code] = record
	return true
}

// Derive builds the starting translation for a new language: form-level text
// comes from the base language, and every field gets the base entry text,
// falling back per attribute to the field's own defaults.
func (s *Store) Derive(fields []model.FormField) Translation {
	base := s.records[s.base]
	out := Translation{
		FormTitle:    base.FormTitle,
		SubmitButton: base.SubmitButton,
		Fields:       make(map[string]FieldText, len(fields)),
	}
	for _, field := range fields {
		out.Fields[field.ID] = s.seedEntry(field)
	}
	return out
}

func (s *Store) seedEntry(field model.FormField) FieldText {
	text := FieldText{Label: field.Label, Placeholder: field.Placeholder}
	if entry, ok := s.records[s.base].Field(field.ID); ok {
		if entry.Label != "" {
			text.Label = entry.Label
		}
		if entry.Placeholder != "" {
			text.Placeholder = entry.Placeholder
		}
	}
	return text
}

// Purge drops entries whose field id is not in fields, in every language. It
// returns the number of entries removed.
func (s *Store) Purge(fields []model.FormField) int {
	keep := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		keep[field.ID] = struct{}{}
	}

	removed := 0
	for _, record := range s.records {
		for id := range record.Fields {
			if _, ok := keep[id]; ok {
				continue
			}
			delete(record.Fields, id)
			removed++
		}
	}
	return removed
}

// Backfill adds an entry for every field missing from a language. The base
// language is filled first so other languages can copy from it. It returns
// the number of entries created.
func (s *Store) Backfill(fields []model.FormField) int {
	created := 0
	for _, code := range s.Codes() {
		record := s.records[code]
		if record.Fields == nil {
			record.Fields = make(map[string]FieldText, len(fields))
		}
		for _, field := range fields {
			if _, ok := record.Fields[field.ID]; ok {
				continue
			}
			record.Fields[field.ID] = s.seedEntry(field)
			created++
		}
		s.records[code] = record
	}
	return created
}

// Missing returns, per language, the ids of fields without a usable label
// entry, in field order. Languages with full coverage are omitted.
func (s *Store) Missing(fields []model.FormField) map[string][]string {
	out := make(map[string][]string)
	for code, record := range s.records {
		for _, field := range fields {
			entry, ok := record.Field(field.ID)
			if ok && strings.TrimSpace(entry.Label) != "" {
				continue
			}
			out[code] = append(out[code], field.ID)
		}
	}
	return out
}

// Snapshot returns a deep copy of every translation keyed by code.
func (s *Store) Snapshot() map[string]Translation {
	return CloneAll(s.records)
}

// Clone returns an independent copy of the store.
func (s *Store) Clone() *Store {
	return &Store{base: s.base, records: CloneAll(s.records)}
}

// Resolver returns a resolver reading the live records for language. The
// resolver must not outlive the next mutation of the store.
func (s *Store) Resolver(language string) Resolver {
	return NewResolver(s.records, language)
}

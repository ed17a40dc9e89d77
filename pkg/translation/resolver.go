package translation

import (
	"strings"

	"github.com/goliatone/go-formi18n/pkg/model"
)

// Literals used when neither a translation nor a field default has text.
const (
	FallbackFormTitle    = "Form Preview"
	FallbackSubmitButton = "Submit"
	FallbackFieldLabel   = "Untitled field"
)

// Source records where a resolved string came from.
type Source string

const (
	SourceTranslation  Source = "translation"
	SourceFieldDefault Source = "field"
	SourceLiteral      Source = "literal"
)

// Resolved is a displayable string plus its provenance.
type Resolved struct {
	Value  string `json:"value"`
	Source Source `json:"source"`
}

// Translated reports whether the value came from the language's own record.
func (r Resolved) Translated() bool {
	return r.Source == SourceTranslation
}

// FieldResolution holds the resolved label and placeholder for a field.
type FieldResolution struct {
	Label       Resolved `json:"label"`
	Placeholder Resolved `json:"placeholder"`
}

// Resolver applies the fallback order for one language:
//
//	translation entry -> field default -> literal
//
// Blank strings are treated as missing at every step.
type Resolver struct {
	language string
	record   Translation
	found    bool
}

// NewResolver returns a resolver for language over records. Unknown
// languages resolve everything from field defaults and literals.
func NewResolver(records map[string]Translation, language string) Resolver {
	code := NormalizeCode(language)
	record, ok := records[code]
	return Resolver{language: code, record: record, found: ok}
}

// Language returns the normalised language code the resolver reads.
func (r Resolver) Language() string {
	return r.language
}

// HasLanguage reports whether the language exists in the records.
func (r Resolver) HasLanguage() bool {
	return r.found
}

// FormTitle resolves the form heading.
func (r Resolver) FormTitle() Resolved {
	if r.found && notBlank(r.record.FormTitle) {
		return Resolved{Value: r.record.FormTitle, Source: SourceTranslation}
	}
	return Resolved{Value: FallbackFormTitle, Source: SourceLiteral}
}

// SubmitButton resolves the submit button caption.
func (r Resolver) SubmitButton() Resolved {
	if r.found && notBlank(r.record.SubmitButton) {
		return Resolved{Value: r.record.SubmitButton, Source: SourceTranslation}
	}
	return Resolved{Value: FallbackSubmitButton, Source: SourceLiteral}
}

// Field resolves label and placeholder for field independently, so an entry
// holding only a label still falls back to the default placeholder.
func (r Resolver) Field(field model.FormField) FieldResolution {
	var entry FieldText
	var ok bool
	if r.found {
		entry, ok = r.record.Field(field.ID)
	}

	out := FieldResolution{
		Label:       resolveText(ok, entry.Label, field.Label, FallbackFieldLabel),
		Placeholder: resolveText(ok, entry.Placeholder, field.Placeholder, ""),
	}
	return out
}

func resolveText(hasEntry bool, translated, fieldDefault, literal string) Resolved {
	if hasEntry && notBlank(translated) {
		return Resolved{Value: translated, Source: SourceTranslation}
	}
	if notBlank(fieldDefault) {
		return Resolved{Value: fieldDefault, Source: SourceFieldDefault}
	}
	return Resolved{Value: literal, Source: SourceLiteral}
}

func notBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

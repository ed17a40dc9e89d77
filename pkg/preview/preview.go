// Package preview projects fields and translations into a localized,
// renderer-ready form description. Projection is a pure function: it never
// mutates its inputs, has no error paths, and always yields displayable text.
package preview

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-formi18n/pkg/model"
	"github.com/goliatone/go-formi18n/pkg/translation"
)

// Control names the widget a field renders as.
type Control string

const (
	ControlInput    Control = "input"
	ControlTextarea Control = "textarea"
	ControlSelect   Control = "select"
	ControlCheckbox Control = "checkbox"
	ControlRadio    Control = "radio"
)

// OptionCount is the number of illustrative options select and radio
// controls carry.
const OptionCount = 3

// Option is one choice of a select or radio control.
type Option struct {
	ID    string `json:"id"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field is one localized control.
type Field struct {
	ID                string             `json:"id"`
	ControlID         string             `json:"controlId"`
	Type              model.FieldType    `json:"type"`
	Control           Control            `json:"control"`
	InputType         string             `json:"inputType,omitempty"`
	Label             string             `json:"label"`
	Placeholder       string             `json:"placeholder"`
	ShowPlaceholder   bool               `json:"showPlaceholder"`
	Required          bool               `json:"required"`
	Options           []Option           `json:"options,omitempty"`
	LabelSource       translation.Source `json:"labelSource"`
	PlaceholderSource translation.Source `json:"placeholderSource"`
}

// Translated reports whether the label came from the language's own record.
func (f Field) Translated() bool {
	return f.LabelSource == translation.SourceTranslation
}

// Form is the localized projection of a session.
type Form struct {
	Language     string                       `json:"language"`
	LanguageName string                       `json:"languageName"`
	Title        string                       `json:"title"`
	SubmitLabel  string                       `json:"submitLabel"`
	Fields       []Field                      `json:"fields"`
	Languages    []translation.LanguageOption `json:"languages"`
}

// Untranslated returns the ids of fields whose label is not from the
// projected language's record.
func (f Form) Untranslated() []string {
	var out []string
	for _, field := range f.Fields {
		if !field.Translated() {
			out = append(out, field.ID)
		}
	}
	return out
}

// Project builds the preview for active from a plain translation map. The
// language selector lists codes alphabetically.
func Project(fields []model.FormField, translations map[string]translation.Translation, active string) Form {
	records := normalizeRecords(translations)
	codes := make([]string, 0, len(records))
	for code := range records {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return project(fields, translation.NewResolver(records, active), codes)
}

// normalizeRecords keys translations by normalised code. When several keys
// normalise to the same code, the already-normalised key wins, then the
// lexically smallest one.
func normalizeRecords(translations map[string]translation.Translation) map[string]translation.Translation {
	records := make(map[string]translation.Translation, len(translations))
	chosen := make(map[string]string, len(translations))
	for key, record := range translations {
		code := translation.NormalizeCode(key)
		if code == "" {
			continue
		}
		if prev, ok := chosen[code]; ok && (prev == code || (key != code && prev < key)) {
			continue
		}
		chosen[code] = key
		records[code] = record
	}
	return records
}

// ProjectStore builds the preview for active from a store. The language
// selector lists the base language first.
func ProjectStore(fields []model.FormField, store *translation.Store, active string) Form {
	if store == nil {
		return Project(fields, nil, active)
	}
	return project(fields, store.Resolver(active), store.Codes())
}

func project(fields []model.FormField, resolver translation.Resolver, codes []string) Form {
	form := Form{
		Language:     resolver.Language(),
		LanguageName: translation.DisplayName(resolver.Language()),
		Title:        resolver.FormTitle().Value,
		SubmitLabel:  resolver.SubmitButton().Value,
		Fields:       make([]Field, 0, len(fields)),
		Languages:    translation.BuildLanguageOptions(codes, resolver.Language()),
	}
	for _, field := range fields {
		form.Fields = append(form.Fields, projectField(field, resolver.Field(field)))
	}
	return form
}

func projectField(field model.FormField, text translation.FieldResolution) Field {
	out := Field{
		ID:                field.ID,
		ControlID:         ControlID(field.ID),
		Type:              field.Type,
		Label:             text.Label.Value,
		Placeholder:       text.Placeholder.Value,
		Required:          field.Required,
		LabelSource:       text.Label.Source,
		PlaceholderSource: text.Placeholder.Source,
	}

	switch field.Type {
	case model.FieldTypeTextarea:
		out.Control = ControlTextarea
	case model.FieldTypeSelect:
		out.Control = ControlSelect
		out.Options = options(field.ID)
	case model.FieldTypeCheckbox:
		out.Control = ControlCheckbox
	case model.FieldTypeRadio:
		out.Control = ControlRadio
		out.Options = options(field.ID)
	case model.FieldTypeEmail, model.FieldTypeNumber:
		out.Control = ControlInput
		out.InputType = string(field.Type)
	default:
		out.Control = ControlInput
		out.InputType = string(model.FieldTypeText)
	}
	out.ShowPlaceholder = out.Control != ControlCheckbox && out.Control != ControlRadio
	return out
}

// ControlID returns the DOM id used for a field's control.
func ControlID(fieldID string) string {
	return "preview-" + fieldID
}

func options(fieldID string) []Option {
	out := make([]Option, 0, OptionCount)
	for i := 1; i <= OptionCount; i++ {
		out = append(out, Option{
			ID:    fmt.Sprintf("%s-%d", ControlID(fieldID), i),
			Value: fmt.Sprintf("option%d", i),
			Label: fmt.Sprintf("Option %d", i),
		})
	}
	return out
}

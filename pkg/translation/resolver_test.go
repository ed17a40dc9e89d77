package translation

import (
	"testing"

	"github.com/goliatone/go-formi18n/pkg/model"
)

func TestResolverFieldFallbackOrder(t *testing.T) {
	records := map[string]Translation{
		"en": englishRecord(),
		"es": {
			FormTitle: "Formulario de Contacto",
			Fields: map[string]FieldText{
				"1": {Label: "Nombre"},
			},
		},
	}
	resolver := NewResolver(records, "ES")

	name := resolver.Field(model.FormField{ID: "1", Label: "Name", Placeholder: "Enter your name"})
	if name.Label.Value != "Nombre" || name.Label.Source != SourceTranslation {
		t.Fatalf("label: %+v", name.Label)
	}
	if name.Placeholder.Value != "Enter your name" || name.Placeholder.Source != SourceFieldDefault {
		t.Fatalf("placeholder should fall back per attribute: %+v", name.Placeholder)
	}

	message := resolver.Field(model.FormField{ID: "3", Label: "Message"})
	if message.Label.Value != "Message" || message.Label.Translated() {
		t.Fatalf("missing entry should use field default: %+v", message.Label)
	}

	blank := resolver.Field(model.FormField{ID: "9"})
	if blank.Label.Value != FallbackFieldLabel || blank.Label.Source != SourceLiteral {
		t.Fatalf("blank field should resolve to literal: %+v", blank.Label)
	}
	if blank.Placeholder.Value != "" || blank.Placeholder.Source != SourceLiteral {
		t.Fatalf("blank placeholder: %+v", blank.Placeholder)
	}
}

func TestResolverFormLevelText(t *testing.T) {
	records := map[string]Translation{"es": {FormTitle: "Formulario"}}

	es := NewResolver(records, "es")
	if got := es.FormTitle(); got.Value != "Formulario" || !got.Translated() {
		t.Fatalf("title: %+v", got)
	}
	if got := es.SubmitButton(); got.Value != FallbackSubmitButton || got.Source != SourceLiteral {
		t.Fatalf("blank submit should use literal: %+v", got)
	}

	missing := NewResolver(records, "de")
	if missing.HasLanguage() {
		t.Fatalf("de should not exist")
	}
	if got := missing.FormTitle(); got.Value != FallbackFormTitle {
		t.Fatalf("title literal: %+v", got)
	}
}

func TestResolverNilRecords(t *testing.T) {
	resolver := NewResolver(nil, "en")
	field := resolver.Field(model.FormField{ID: "1", Label: "Name", Placeholder: "p"})
	if field.Label.Value != "Name" || field.Placeholder.Value != "p" {
		t.Fatalf("nil records should resolve defaults: %+v", field)
	}
}

package export

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formi18n/pkg/model"
	"github.com/goliatone/go-formi18n/pkg/translation"
)

func TestJSONRoundTrip(t *testing.T) {
	doc := ContactForm()

	payload, err := EncodeJSON(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(payload), `"formFields": [`) || !strings.Contains(string(payload), `"translations": {`) {
		t.Fatalf("unexpected top-level layout:\n%s", payload)
	}

	got, err := Decode(payload, "en")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	doc := ContactForm()

	payload, err := Encode(doc, FormatYAML)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(payload, "en")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeEmptyDocument(t *testing.T) {
	doc := Document{Translations: map[string]translation.Translation{"en": {}}}
	payload, err := EncodeJSON(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(payload), `"formFields": []`) {
		t.Fatalf("empty fields should encode as []:\n%s", payload)
	}
	if !strings.Contains(string(payload), `"fields": {}`) {
		t.Fatalf("empty field map should encode as {}:\n%s", payload)
	}

	got, err := Decode(payload, "en")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(doc.Clone(), got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeNormalizesCodes(t *testing.T) {
	payload := []byte(`{"formFields": [], "translations": {"EN": {"formTitle": "T", "submitButton": "S", "fields": {}}}}`)
	doc, err := Decode(payload, "en")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := doc.Translations["en"]; !ok {
		t.Fatalf("expected lowercased code, got %v", doc.Translations)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    error
	}{
		{
			name:    "missing base",
			payload: `{"formFields": [], "translations": {"es": {}}}`,
			want:    ErrMissingBaseLanguage,
		},
		{
			name:    "duplicate code",
			payload: `{"formFields": [], "translations": {"en": {}, "EN": {}}}`,
			want:    ErrDuplicateLanguage,
		},
		{
			name:    "duplicate field id",
			payload: `{"formFields": [{"id": "1", "type": "text"}, {"id": "1", "type": "email"}], "translations": {"en": {}}}`,
			want:    ErrInvalidField,
		},
		{
			name:    "unsupported type",
			payload: `{"formFields": [{"id": "1", "type": "date"}], "translations": {"en": {}}}`,
			want:    ErrInvalidField,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.payload), "en")
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}

	if _, err := Decode([]byte("   "), "en"); err == nil {
		t.Fatalf("expected error for empty payload")
	}
	if _, err := Decode([]byte("{not: [valid"), "en"); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestDecodeYAMLInput(t *testing.T) {
	payload := []byte(`
formFields:
  - id: "1"
    type: checkbox
    label: Accept terms
    placeholder: ""
    required: true
translations:
  en:
    formTitle: Terms
    submitButton: Continue
    fields:
      "1":
        label: Accept terms
        placeholder: ""
`)
	doc, err := Decode(payload, "en")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []model.FormField{{ID: "1", Type: model.FieldTypeCheckbox, Label: "Accept terms", Required: true}}
	if diff := cmp.Diff(want, doc.FormFields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFormat(t *testing.T) {
	if f, ok := ParseFormat("YML"); !ok || f != FormatYAML {
		t.Fatalf("yml should map to yaml")
	}
	if _, ok := ParseFormat("xml"); ok {
		t.Fatalf("xml is unsupported")
	}
	if FormatYAML.ContentType() != "application/yaml" || FormatJSON.ContentType() != "application/json" {
		t.Fatalf("content types wrong")
	}
}

package model

import "testing"

func TestNewFieldDefaults(t *testing.T) {
	field := NewField("f1", FieldTypeEmail)
	if field.ID != "f1" || field.Type != FieldTypeEmail {
		t.Fatalf("unexpected identity: %+v", field)
	}
	if field.Label != DefaultLabel {
		t.Fatalf("label: want %q, got %q", DefaultLabel, field.Label)
	}
	if field.Placeholder != DefaultPlaceholder {
		t.Fatalf("placeholder: want %q, got %q", DefaultPlaceholder, field.Placeholder)
	}
	if field.Required {
		t.Fatalf("new fields must not be required")
	}
}

func TestNewFieldCoercesUnknownType(t *testing.T) {
	field := NewField("f1", FieldType("color"))
	if field.Type != FieldTypeText {
		t.Fatalf("want text fallback, got %q", field.Type)
	}
}

func TestParseFieldType(t *testing.T) {
	cases := []struct {
		raw   string
		want  FieldType
		valid bool
	}{
		{"text", FieldTypeText, true},
		{" Radio ", FieldTypeRadio, true},
		{"TEXTAREA", FieldTypeTextarea, true},
		{"date", FieldType("date"), false},
		{"", FieldType(""), false},
	}
	for _, tc := range cases {
		got, ok := ParseFieldType(tc.raw)
		if got != tc.want || ok != tc.valid {
			t.Fatalf("ParseFieldType(%q) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.valid)
		}
	}
}

func TestFieldPatchApply(t *testing.T) {
	field := NewField("f1", FieldTypeText)

	if changed := (FieldPatch{}).Apply(&field); changed {
		t.Fatalf("empty patch reported a change")
	}

	label := "Full Name"
	required := true
	patch := FieldPatch{Label: &label, Required: &required}
	if !patch.Apply(&field) {
		t.Fatalf("expected change")
	}
	if field.Label != "Full Name" || !field.Required {
		t.Fatalf("patch not applied: %+v", field)
	}
	if field.Placeholder != DefaultPlaceholder {
		t.Fatalf("untouched attribute changed: %q", field.Placeholder)
	}

	if PatchType(FieldType("date")).Apply(&field) {
		t.Fatalf("unsupported type must be ignored")
	}
	if field.Type != FieldTypeText {
		t.Fatalf("type changed to %q", field.Type)
	}
}

func TestFieldTypeHelpers(t *testing.T) {
	if FieldTypeCheckbox.HasPlaceholder() || FieldTypeRadio.HasPlaceholder() {
		t.Fatalf("checkbox and radio have no placeholder")
	}
	if !FieldTypeSelect.HasPlaceholder() {
		t.Fatalf("select shows a placeholder")
	}
	if got := FieldTypeTextarea.Title(); got != "Textarea" {
		t.Fatalf("title: %q", got)
	}
	if len(FieldTypes()) != 7 {
		t.Fatalf("expected 7 field types")
	}
}

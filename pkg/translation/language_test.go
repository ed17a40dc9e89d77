package translation

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"en": "English",
		"ES": "Spanish",
		"fr": "French",
		"zz": "ZZ",
		"":   "",
	}
	for code, want := range cases {
		if got := DisplayName(code); got != want {
			t.Fatalf("DisplayName(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestBuildLanguageOptions(t *testing.T) {
	got := BuildLanguageOptions([]string{"en", "es"}, "ES")
	want := []LanguageOption{
		{Code: "en", Label: "English"},
		{Code: "es", Label: "Spanish", Active: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchAcceptLanguage(t *testing.T) {
	codes := []string{"en", "es", "fr"}

	if got, ok := MatchAcceptLanguage(codes, "es-MX,es;q=0.9,en;q=0.5"); !ok || got != "es" {
		t.Fatalf("want es, got %q (%v)", got, ok)
	}
	if got, ok := MatchAcceptLanguage(codes, "fr-CA"); !ok || got != "fr" {
		t.Fatalf("want fr, got %q (%v)", got, ok)
	}
	if _, ok := MatchAcceptLanguage(codes, ""); ok {
		t.Fatalf("empty header should not match")
	}
}

package orchestrator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"
)

const acmeManifestYAML = `
name: acme
version: 1.2.0
tokens:
  brand: "#123456"
templates:
  forms.form: themes/acme/form.tmpl
assets:
  prefix: /assets/acme/
  files:
    html.stylesheet: acme.css
variants:
  dark:
    tokens:
      brand: "#000000"
    assets:
      prefix: https://cdn.example.com/acme-dark
`

func TestParseManifest_YAML(t *testing.T) {
	manifest, err := ParseManifest([]byte(acmeManifestYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if manifest.Name != "acme" || manifest.Version != "1.2.0" {
		t.Fatalf("unexpected manifest header: %+v", manifest)
	}
	if manifest.Assets.Files["html.stylesheet"] != "acme.css" {
		t.Fatalf("assets not decoded: %+v", manifest.Assets)
	}
	if manifest.Variants["dark"].Tokens["brand"] != "#000000" {
		t.Fatalf("variant not decoded: %+v", manifest.Variants)
	}

	cfg := rendererConfigFromSelection(&theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest}, nil)
	if got := cfg.AssetURL("html.stylesheet"); got != "https://cdn.example.com/acme-dark/acme.css" {
		t.Fatalf("variant prefix should win, got %q", got)
	}

	base := rendererConfigFromSelection(&theme.Selection{Theme: "acme", Manifest: manifest}, nil)
	if got := base.AssetURL("html.stylesheet"); got != "/assets/acme/acme.css" {
		t.Fatalf("base prefix: %q", got)
	}
}

func TestParseManifest_JSONAndErrors(t *testing.T) {
	manifest, err := ParseManifest([]byte(`{"name":"plain","tokens":{"ink":"#111"}}`))
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"ink": "#111"}, manifest.Tokens); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}

	for _, input := range []string{"", "   ", "tokens: {}", "name: [unclosed"} {
		if _, err := ParseManifest([]byte(input)); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte(acmeManifestYAML), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if manifest.Name != "acme" {
		t.Fatalf("unexpected name %q", manifest.Name)
	}

	if _, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestManifestSelector(t *testing.T) {
	acme, err := ParseManifest([]byte(acmeManifestYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	plain := &theme.Manifest{Name: "plain"}
	selector := NewManifestSelector(acme, plain, nil)

	if diff := cmp.Diff([]string{"acme", "plain"}, selector.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	selection, err := selector.Select("", "")
	if err != nil || selection.Theme != "acme" || selection.Variant != "" {
		t.Fatalf("blank selection should use first manifest: %+v, %v", selection, err)
	}

	selection, err = selector.Select("acme", "neon")
	if err != nil || selection.Variant != "" {
		t.Fatalf("unknown variant should fall back to base: %+v, %v", selection, err)
	}

	selector.SetDefault("acme", "dark")
	selection, err = selector.Select("", "")
	if err != nil || selection.Variant != "dark" {
		t.Fatalf("default variant not applied: %+v, %v", selection, err)
	}

	selection, err = selector.Select("plain", "dark")
	if err != nil || selection.Theme != "plain" || selection.Variant != "" {
		t.Fatalf("plain has no variants: %+v, %v", selection, err)
	}

	if _, err := selector.Select("ghost", ""); !errors.Is(err, ErrThemeNotFound) {
		t.Fatalf("want ErrThemeNotFound, got %v", err)
	}
}

func TestRendererConfigWithoutManifest(t *testing.T) {
	if rendererConfigFromSelection(nil, nil) != nil {
		t.Fatalf("nil selection should produce nil config")
	}
	cfg := rendererConfigFromSelection(&theme.Selection{Theme: "bare"}, map[string]string{"forms.form": "x.tmpl"})
	if cfg.Theme != "bare" || cfg.Partials["forms.form"] != "x.tmpl" || cfg.AssetURL("any") != "" {
		t.Fatalf("unexpected bare config: %+v", cfg)
	}
}

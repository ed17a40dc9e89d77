package formi18n

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-formi18n/pkg/export"
	"github.com/goliatone/go-formi18n/pkg/renderers/html"
)

func TestAssetsFSContainsStylesheet(t *testing.T) {
	data, err := fs.ReadFile(AssetsFS(), html.StylesheetName)
	if err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
	if !strings.Contains(string(data), "--formi18n-") {
		t.Fatalf("expected stylesheet to declare formi18n custom properties")
	}
}

func TestEmbeddedTemplatesContainsForm(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
}

func TestLoadSessionAndRenderPreview(t *testing.T) {
	raw, err := export.EncodeYAML(export.ContactForm())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	sess, err := LoadSession(raw, "")
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if sess.SetActiveLanguage("es") != true {
		t.Fatalf("expected es to be selectable")
	}

	out, err := RenderPreview(context.Background(), sess, "", "json")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `"title": "Formulario de Contacto"`) {
		t.Fatalf("expected spanish title in json preview: %s", out)
	}

	if _, err := LoadSession([]byte(`{"formFields":[],"translations":{"es":{}}}`), ""); err == nil {
		t.Fatalf("expected missing base language error")
	}
}

func TestRenderDocumentAndContract(t *testing.T) {
	out, err := RenderDocument(context.Background(), export.ContactForm(), "es", "")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `lang="es"`) {
		t.Fatalf("expected html lang attribute")
	}

	spec, err := BuildContract(context.Background(), export.ContactForm(), "en")
	if err != nil {
		t.Fatalf("contract: %v", err)
	}
	if spec.Info.Title != "Contact Form" {
		t.Fatalf("unexpected contract title %q", spec.Info.Title)
	}
}

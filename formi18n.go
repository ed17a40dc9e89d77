// Package formi18n is the entry point for building multilingual form schemas.
// It re-exports the common types and wires the session, preview and renderer
// packages so simple callers need a single import.
package formi18n

import (
	"context"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formi18n/pkg/export"
	"github.com/goliatone/go-formi18n/pkg/orchestrator"
	"github.com/goliatone/go-formi18n/pkg/render"
	"github.com/goliatone/go-formi18n/pkg/session"
	"github.com/goliatone/go-formi18n/pkg/translation"
)

// Session is the editing state of one form.
type Session = session.Session

// Document is the exported {formFields, translations} snapshot.
type Document = export.Document

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface validation errors.
type RenderOptions = render.RenderOptions

// NewSession returns an empty session holding only the base language.
func NewSession(options ...session.Option) *Session {
	return session.New(options...)
}

// LoadSession decodes a JSON or YAML export and restores a session from it.
// The base language is taken from the options, defaulting to "en".
func LoadSession(data []byte, base string, options ...session.Option) (*Session, error) {
	if base == "" {
		base = translation.DefaultBaseLanguage
	}
	doc, err := export.Decode(data, base)
	if err != nil {
		return nil, err
	}
	options = append([]session.Option{session.WithBaseLanguage(base)}, options...)
	sess, err := session.FromDocument(doc, options...)
	if err != nil {
		return nil, fmt.Errorf("formi18n: load session: %w", err)
	}
	return sess, nil
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// RenderPreview renders sess in language with the named renderer. Blank
// values select the active language and the html renderer.
func RenderPreview(ctx context.Context, sess *Session, language, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Session:  sess,
		Language: language,
		Renderer: rendererName,
	})
}

// RenderDocument renders an exported document without keeping a session.
func RenderDocument(ctx context.Context, doc Document, language, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Language: language,
		Renderer: rendererName,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices can be resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// Package html renders localized form previews as standalone HTML pages
// using pongo2 templates. Translation text is autoescaped as plain text unless
// inline markup is enabled, and go-theme tokens become CSS custom properties.
package html

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formi18n/pkg/preview"
	"github.com/goliatone/go-formi18n/pkg/render"
	rendertemplate "github.com/goliatone/go-formi18n/pkg/render/template"
	gotemplate "github.com/goliatone/go-formi18n/pkg/render/template/gotemplate"
)

// Name is the registry key of the HTML renderer.
const Name = "html"

const formTemplate = "templates/form.tmpl"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	inlineMarkup     bool
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// templates/form.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Templates found
// there take precedence over the bundled ones, so a directory holding only
// templates/form.tmpl is enough.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = path
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithInlineMarkup lets titles, labels and the submit text keep inline
// emphasis tags (b, strong, em, i, u, small, sub, sup, br). Any other markup
// is stripped with bluemonday. When disabled, all text renders escaped.
func WithInlineMarkup(enabled bool) Option {
	return func(cfg *config) {
		cfg.inlineMarkup = enabled
	}
}

type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	stylesheet   string
	inlineMarkup bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templateDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		stylesheet:   defaultStylesheet(),
		inlineMarkup: cfg.inlineMarkup,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, form preview.Form, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"form":       buildFormView(form, opts, r.inlineMarkup),
		"theme":      buildThemeView(opts.Theme),
		"stylesheet": r.stylesheet,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

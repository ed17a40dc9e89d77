package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formi18n/pkg/export"
	"github.com/goliatone/go-formi18n/pkg/preview"
	"github.com/goliatone/go-formi18n/pkg/render"
	"github.com/goliatone/go-formi18n/pkg/renderers/html"
	"github.com/goliatone/go-formi18n/pkg/renderers/jsonview"
	"github.com/goliatone/go-formi18n/pkg/renderers/tui"
	"github.com/goliatone/go-formi18n/pkg/session"
	"github.com/goliatone/go-formi18n/pkg/translation"
)

const defaultRendererName = html.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformers appends transformers that run, in order, against the
// projected form before rendering.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		for _, t := range transformers {
			if t != nil {
				o.transformers = append(o.transformers, t)
			}
		}
	}
}

// WithSessionOptions configures sessions restored from request documents.
func WithSessionOptions(options ...session.Option) Option {
	return func(o *Orchestrator) {
		o.sessionOptions = append(o.sessionOptions, options...)
	}
}

// WithLogger sets the structured logger. Nil keeps the discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithThemeSelector enables theme resolution for every request.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeDefaults sets the theme and variant used when a request leaves
// them blank.
func WithThemeDefaults(name, variant string) Option {
	return func(o *Orchestrator) {
		o.defaultTheme = name
		o.defaultVariant = variant
	}
}

// Orchestrator drives session -> preview -> renderer. It starts with the
// html, json and tui renderers registered and html as the default.
type Orchestrator struct {
	registry        *render.Registry
	defaultRenderer string
	initialiseErr   error
	defaultsApplied bool
	transformers    []Transformer
	sessionOptions  []session.Option
	logger          *slog.Logger

	themeSelector  theme.ThemeSelector
	defaultTheme   string
	defaultVariant string
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one preview render.
type Request struct {
	// Session is rendered as-is and never mutated. Takes precedence over
	// Document.
	Session *session.Session

	// Document is restored into a throwaway session when Session is nil.
	Document *export.Document

	// Language forces the preview language. Unknown codes are ignored.
	Language string

	// AcceptLanguage is an HTTP Accept-Language header consulted when
	// Language is blank or unknown.
	AcceptLanguage string

	// Renderer names the renderer to use. Blank selects the default.
	Renderer string

	// ThemeName and ThemeVariant select a theme when a selector is configured.
	ThemeName    string
	ThemeVariant string

	RenderOptions render.RenderOptions
}

// Result is the rendered output and what produced it.
type Result struct {
	Body        []byte
	ContentType string
	Language    string
	Renderer    string
}

// Generate renders the request and returns only the body.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	result, err := o.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	return result.Body, nil
}

// Render projects the session in the resolved language, applies the
// transformers, resolves the theme and hands the form to the renderer.
func (o *Orchestrator) Render(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	sess, err := o.resolveSession(req)
	if err != nil {
		return Result{}, err
	}

	language := o.resolveLanguage(sess, req)
	form := sess.PreviewIn(language)

	if err := o.applyTransformers(ctx, &form); err != nil {
		return Result{}, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req)
		if err != nil {
			return Result{}, err
		}
		opts.Theme = cfg
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return Result{}, err
	}

	o.logger.Debug("rendering preview",
		"renderer", renderer.Name(),
		"language", form.Language,
		"fields", len(form.Fields),
	)

	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	return Result{
		Body:        output,
		ContentType: renderer.ContentType(),
		Language:    form.Language,
		Renderer:    renderer.Name(),
	}, nil
}

func (o *Orchestrator) resolveSession(req Request) (*session.Session, error) {
	if req.Session != nil {
		return req.Session, nil
	}
	if req.Document == nil {
		return nil, errors.New("orchestrator: session or document is required")
	}
	sess, err := session.FromDocument(*req.Document, o.sessionOptions...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return sess, nil
}

// resolveLanguage picks, in order: the explicit language when the session
// has it, the best Accept-Language match, then the session's active language.
func (o *Orchestrator) resolveLanguage(sess *session.Session, req Request) string {
	codes := sess.Languages()

	if explicit := translation.NormalizeCode(req.Language); explicit != "" {
		if _, ok := sess.Translation(explicit); ok {
			return explicit
		}
		o.logger.Debug("ignoring unknown preview language", "language", explicit)
	}
	if match, ok := translation.MatchAcceptLanguage(codes, req.AcceptLanguage); ok {
		return match
	}
	return sess.ActiveLanguage()
}

func (o *Orchestrator) applyTransformers(ctx context.Context, form *preview.Form) error {
	for _, t := range o.transformers {
		if err := t.Transform(ctx, form); err != nil {
			return fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}

	name := firstNonEmpty(req.ThemeName, o.defaultTheme)
	variant := firstNonEmpty(req.ThemeVariant, o.defaultVariant)
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return rendererConfigFromSelection(selection, defaultThemeFallbacks()), nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
		o.registry.MustRegister(jsonview.New())
		o.registry.MustRegister(tui.New())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

// Registry exposes the renderer registry so callers can add renderers.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

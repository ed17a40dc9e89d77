package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formi18n/pkg/export"
	"github.com/goliatone/go-formi18n/pkg/openapi"
	"github.com/goliatone/go-formi18n/pkg/orchestrator"
	"github.com/goliatone/go-formi18n/pkg/render"
	"github.com/goliatone/go-formi18n/pkg/renderers/html"
	"github.com/goliatone/go-formi18n/pkg/renderers/jsonview"
	"github.com/goliatone/go-formi18n/pkg/renderers/tui"
	"github.com/goliatone/go-formi18n/pkg/session"
)

// errIncomplete is returned by status -strict when translations are missing.
var errIncomplete = errors.New("translations incomplete")

func runInit(ctx context.Context, a *app, args []string) error {
	fs, df := a.newFlagSet("init")
	empty := fs.Bool("empty", false, "write an empty form instead of the contact form sample")
	fromContract := fs.String("from-openapi", "", "seed fields from an OpenAPI submission contract")
	operationID := fs.String("operation", "", "operation id to read with -from-openapi")
	force := fs.Bool("force", false, "overwrite an existing document")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if _, err := os.Stat(df.path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", df.path)
	}

	options, err := a.sessionOptions(df)
	if err != nil {
		return err
	}

	var doc export.Document
	switch {
	case *fromContract != "":
		raw, err := os.ReadFile(*fromContract)
		if err != nil {
			return fmt.Errorf("read contract: %w", err)
		}
		contract, err := openapi.Parse(ctx, raw, *operationID)
		if err != nil {
			return err
		}
		sess, err := session.FromDocument(contract.Document(), append(options, session.WithBaseLanguage(contract.Language))...)
		if err != nil {
			return err
		}
		doc = sess.Serialize()
	case *empty:
		doc = session.New(options...).Serialize()
	default:
		doc = export.ContactForm()
	}

	if err := writeDocument(df.path, doc); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "initialised %s with %d fields\n", df.path, len(doc.FormFields))
	return nil
}

func runStatus(_ context.Context, a *app, args []string) error {
	fs, df := a.newFlagSet("status")
	strict := fs.Bool("strict", false, "exit non-zero when any language is missing labels")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	sess, err := a.loadSession(df)
	if err != nil {
		return err
	}

	labels := make(map[string]string)
	for _, field := range sess.Fields() {
		labels[field.ID] = field.Label
	}

	missing := sess.Coverage()
	for _, code := range sess.Languages() {
		ids := missing[code]
		marker := " "
		if code == sess.BaseLanguage() {
			marker = "*"
		}
		if len(ids) == 0 {
			fmt.Fprintf(a.stdout, "%s %-6s complete\n", marker, code)
			continue
		}
		fmt.Fprintf(a.stdout, "%s %-6s missing %d of %d\n", marker, code, len(ids), len(labels))
		for _, id := range ids {
			fmt.Fprintf(a.stdout, "    %s > %s\n", id, labels[id])
		}
	}

	if *strict && len(missing) > 0 {
		return errIncomplete
	}
	return nil
}

func runPreview(ctx context.Context, a *app, args []string) error {
	fs, df := a.newFlagSet("preview")
	lang := fs.String("lang", "", "preview language (default: base language)")
	rendererName := fs.String("renderer", a.cfg.Renderer, "renderer: html, json or tui")
	outputFormat := fs.String("tui-output", string(tui.OutputFormatJSON), "tui answers format: json, form or pretty")
	output := fs.String("o", "", "output file (stdout if empty)")
	themeName := fs.String("theme", a.cfg.ThemeName, "theme name")
	themeVariant := fs.String("variant", a.cfg.ThemeVariant, "theme variant")
	themeFile := fs.String("theme-manifest", a.cfg.ThemeFile, "theme manifest (JSON or YAML)")
	hf := a.htmlFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	format, ok := tui.ParseOutputFormat(*outputFormat)
	if !ok {
		return fmt.Errorf("%w: unknown tui output format %q", errUsage, *outputFormat)
	}

	sess, err := a.loadSession(df)
	if err != nil {
		return err
	}

	orch, err := a.newOrchestrator(*themeFile, hf.options(), tui.WithPromptDriver(a.driver), tui.WithOutputFormat(format))
	if err != nil {
		return err
	}

	req := orchestrator.Request{
		Session:      sess,
		Language:     *lang,
		Renderer:     *rendererName,
		ThemeName:    *themeName,
		ThemeVariant: *themeVariant,
	}
	if *themeFile == "" {
		req.RenderOptions = a.tokenTheme()
	}

	result, err := orch.Render(ctx, req)
	if err != nil {
		return err
	}
	a.logger.Debug("preview rendered", "renderer", result.Renderer, "language", result.Language, "bytes", len(result.Body))
	return a.emit(*output, result.Body)
}

// htmlFlags carries the HTML renderer settings shared by preview and serve.
type htmlFlags struct {
	templatesDir *string
	inlineMarkup *bool
}

func (a *app) htmlFlags(fs *flag.FlagSet) htmlFlags {
	return htmlFlags{
		templatesDir: fs.String("templates", a.cfg.TemplatesDir, "directory overriding templates/form.tmpl"),
		inlineMarkup: fs.Bool("inline-markup", a.cfg.InlineMarkup, "keep inline emphasis tags in titles and labels"),
	}
}

func (hf htmlFlags) options() []html.Option {
	return []html.Option{
		html.WithTemplatesDir(*hf.templatesDir),
		html.WithInlineMarkup(*hf.inlineMarkup),
	}
}

// newOrchestrator builds the renderer registry with a tui renderer bound to
// the app's prompt driver and, when manifestPath is set, a theme selector.
func (a *app) newOrchestrator(manifestPath string, htmlOptions []html.Option, tuiOptions ...tui.Option) (*orchestrator.Orchestrator, error) {
	htmlRenderer, err := html.New(htmlOptions...)
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry(htmlRenderer, jsonview.New(), tui.New(tuiOptions...))

	options := []orchestrator.Option{
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer(a.cfg.Renderer),
		orchestrator.WithLogger(a.logger),
	}
	if manifestPath != "" {
		manifest, err := orchestrator.LoadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithThemeSelector(orchestrator.NewManifestSelector(manifest)))
	}
	return orchestrator.New(options...), nil
}

// tokenTheme turns FORMI18N_THEME_TOKENS into inline CSS variables when no
// manifest is configured.
func (a *app) tokenTheme() render.RenderOptions {
	vars := a.cfg.CSSVars()
	if len(vars) == 0 {
		return render.RenderOptions{}
	}
	return render.RenderOptions{Theme: &theme.RendererConfig{
		Theme:   a.cfg.ThemeName,
		Variant: a.cfg.ThemeVariant,
		CSSVars: vars,
	}}
}

func runExport(_ context.Context, a *app, args []string) error {
	fs, df := a.newFlagSet("export")
	rawFormat := fs.String("format", "json", "output format: json or yaml")
	reconcile := fs.Bool("reconcile", false, "purge orphaned entries and backfill missing ones first")
	output := fs.String("o", "", "output file (stdout if empty)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	format, ok := export.ParseFormat(*rawFormat)
	if !ok {
		return fmt.Errorf("%w: unknown format %q", errUsage, *rawFormat)
	}

	sess, err := a.loadSession(df)
	if err != nil {
		return err
	}
	if *reconcile {
		purged, created := sess.Reconcile()
		a.logger.Info("reconciled translations", "purged", purged, "created", created)
	}

	data, err := export.Encode(sess.Serialize(), format)
	if err != nil {
		return err
	}
	return a.emit(*output, data)
}

func runOpenAPI(ctx context.Context, a *app, args []string) error {
	fs, df := a.newFlagSet("openapi")
	lang := fs.String("lang", "", "contract language (default: base language)")
	path := fs.String("path", "/submit", "submission path")
	operationID := fs.String("operation", "submitForm", "operation id")
	server := fs.String("server", "", "server URL")
	version := fs.String("version", "", "contract info.version")
	description := fs.String("description", "", "contract info.description")
	output := fs.String("o", "", "output file (stdout if empty)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	doc, err := a.readDocument(df)
	if err != nil {
		return err
	}
	language := strings.TrimSpace(*lang)
	if language == "" {
		language = df.base
	}

	spec, err := openapi.Build(ctx, doc, language,
		openapi.WithPath(*path),
		openapi.WithOperationID(*operationID),
		openapi.WithServerURL(*server),
		openapi.WithVersion(*version),
		openapi.WithDescription(*description),
	)
	if err != nil {
		return err
	}
	data, err := openapi.Marshal(spec)
	if err != nil {
		return err
	}
	return a.emit(*output, data)
}

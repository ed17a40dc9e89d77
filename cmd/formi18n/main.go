package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/goliatone/go-formi18n/pkg/config"
	"github.com/goliatone/go-formi18n/pkg/export"
	"github.com/goliatone/go-formi18n/pkg/renderers/tui"
	"github.com/goliatone/go-formi18n/pkg/session"
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{name: "init", summary: "write a starter document", run: runInit},
	{name: "status", summary: "report missing translations per language", run: runStatus},
	{name: "preview", summary: "render the localized preview", run: runPreview},
	{name: "export", summary: "re-encode a document as JSON or YAML", run: runExport},
	{name: "openapi", summary: "emit the OpenAPI submission contract", run: runOpenAPI},
	{name: "edit", summary: "edit fields and translations interactively", run: runEdit},
	{name: "serve", summary: "serve previews and exports over HTTP", run: runServe},
}

// errUsage marks flag and argument problems; run exits with status 2.
var errUsage = errors.New("usage error")

type app struct {
	cfg    config.Config
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	driver tui.PromptDriver
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, nil))
}

// run executes one command and returns the process exit status. A nil driver
// selects the survey terminal driver.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, driver tui.PromptDriver) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "formi18n: %v\n", err)
		return 1
	}

	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		usage(stderr)
		if len(args) == 0 {
			return 2
		}
		return 0
	}

	a := &app{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		logger: cfg.Logger(stderr),
		driver: driver,
	}
	if a.driver == nil {
		a.driver = tui.NewSurveyDriver(stderr)
	}

	for _, cmd := range commands {
		if cmd.name != args[0] {
			continue
		}
		err := cmd.run(ctx, a, args[1:])
		switch {
		case err == nil:
			return 0
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.Is(err, errUsage):
			fmt.Fprintf(stderr, "formi18n %s: %v\n", cmd.name, err)
			return 2
		case errors.Is(err, errIncomplete):
			return 1
		default:
			a.logger.Error("command failed", "command", cmd.name, "error", err)
			fmt.Fprintf(stderr, "formi18n %s: %v\n", cmd.name, err)
			return 1
		}
	}

	fmt.Fprintf(stderr, "formi18n: unknown command %q\n\n", args[0])
	usage(stderr)
	return 2
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s <command> [flags]\n\nCommands:\n", filepath.Base(os.Args[0]))
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintf(w, "\nSettings are read from FORMI18N_* environment variables; flags override them.\n")
}

// documentFlags are shared by every command that reads a document.
type documentFlags struct {
	path   string
	base   string
	policy string
}

func (a *app) newFlagSet(name string) (*flag.FlagSet, *documentFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	df := &documentFlags{}
	fs.StringVar(&df.path, "doc", a.cfg.Document, "document path (JSON or YAML)")
	fs.StringVar(&df.base, "base", a.cfg.BaseLanguage, "base language code")
	fs.StringVar(&df.policy, "policy", a.cfg.OrphanPolicy, "orphan policy: preserve or reconcile")
	return fs, df
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %s", errUsage, strings.Join(fs.Args(), " "))
	}
	return nil
}

func (a *app) sessionOptions(df *documentFlags) ([]session.Option, error) {
	policy, ok := session.ParseOrphanPolicy(df.policy)
	if !ok {
		return nil, fmt.Errorf("%w: unknown orphan policy %q", errUsage, df.policy)
	}
	cfg := a.cfg
	cfg.BaseLanguage = df.base
	cfg.OrphanPolicy = string(policy)
	return cfg.SessionOptions(a.logger), nil
}

func (a *app) readDocument(df *documentFlags) (export.Document, error) {
	data, err := os.ReadFile(df.path)
	if err != nil {
		return export.Document{}, fmt.Errorf("read document: %w", err)
	}
	doc, err := export.Decode(data, df.base)
	if err != nil {
		return export.Document{}, fmt.Errorf("%s: %w", df.path, err)
	}
	return doc, nil
}

func (a *app) loadSession(df *documentFlags) (*session.Session, error) {
	options, err := a.sessionOptions(df)
	if err != nil {
		return nil, err
	}
	doc, err := a.readDocument(df)
	if err != nil {
		return nil, err
	}
	return session.FromDocument(doc, options...)
}

// writeDocument encodes doc in the format implied by path's extension.
func writeDocument(path string, doc export.Document) error {
	data, err := export.Encode(doc, formatForPath(path))
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func formatForPath(path string) export.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return export.FormatYAML
	default:
		return export.FormatJSON
	}
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// emit writes data to path, or to stdout when path is blank.
func (a *app) emit(path string, data []byte) error {
	if path == "" {
		_, err := a.stdout.Write(data)
		return err
	}
	if err := writeFile(path, data); err != nil {
		return err
	}
	fmt.Fprintf(a.stderr, "written to %s\n", path)
	return nil
}

// Package config loads process settings for the formi18n command from
// FORMI18N_* environment variables. Command-line flags override them.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/goliatone/go-formi18n/pkg/session"
	"github.com/goliatone/go-formi18n/pkg/translation"
)

// Config holds the process settings.
type Config struct {
	Document     string            `env:"FORMI18N_DOCUMENT"       envDefault:"form.json"`
	BaseLanguage string            `env:"FORMI18N_BASE_LANGUAGE"  envDefault:"en"`
	OrphanPolicy string            `env:"FORMI18N_ORPHAN_POLICY"  envDefault:"preserve"`
	Renderer     string            `env:"FORMI18N_RENDERER"       envDefault:"html"`
	Addr         string            `env:"FORMI18N_ADDR"           envDefault:":8080"`
	LogLevel     slog.Level        `env:"FORMI18N_LOG_LEVEL"      envDefault:"info"`
	ReadTimeout  time.Duration     `env:"FORMI18N_READ_TIMEOUT"   envDefault:"10s"`
	ThemeName    string            `env:"FORMI18N_THEME_NAME"`
	ThemeVariant string            `env:"FORMI18N_THEME_VARIANT"`
	ThemeFile    string            `env:"FORMI18N_THEME_MANIFEST"`
	ThemeTokens  map[string]string `env:"FORMI18N_THEME_TOKENS"`
	TemplatesDir string            `env:"FORMI18N_TEMPLATES_DIR"`
	InlineMarkup bool              `env:"FORMI18N_INLINE_MARKUP"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the FORMI18N_* settings.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot.
func (c Config) Validate() error {
	if translation.NormalizeCode(c.BaseLanguage) == "" {
		return fmt.Errorf("config: base language is required")
	}
	if _, ok := session.ParseOrphanPolicy(c.OrphanPolicy); !ok {
		return fmt.Errorf("config: unknown orphan policy %q", c.OrphanPolicy)
	}
	if strings.TrimSpace(c.Renderer) == "" {
		return fmt.Errorf("config: renderer is required")
	}
	return nil
}

// Policy returns the parsed orphan policy, defaulting to preserve.
func (c Config) Policy() session.OrphanPolicy {
	policy, ok := session.ParseOrphanPolicy(c.OrphanPolicy)
	if !ok {
		return session.OrphanPolicyPreserve
	}
	return policy
}

// SessionOptions translates the settings into session options.
func (c Config) SessionOptions(logger *slog.Logger) []session.Option {
	return []session.Option{
		session.WithBaseLanguage(c.BaseLanguage),
		session.WithOrphanPolicy(c.Policy()),
		session.WithLogger(logger),
	}
}

// Logger builds a text slog logger at the configured level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}

// CSSVars maps FORMI18N_THEME_TOKENS onto custom properties, prefixing
// bare names with "--".
func (c Config) CSSVars() map[string]string {
	if len(c.ThemeTokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(c.ThemeTokens))
	for key, value := range c.ThemeTokens {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if !strings.HasPrefix(key, "--") {
			key = "--" + key
		}
		vars[key] = strings.TrimSpace(value)
	}
	return vars
}

package orchestrator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// defaultThemeFallbacks maps partial keys to the built-in HTML template so a
// theme only needs to override what it changes.
func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		"forms.form": "templates/form.tmpl",
	}
}

// rendererConfigFromSelection flattens a selection into the configuration
// renderers consume. Variant tokens, templates and asset files override the
// manifest's base values.
func rendererConfigFromSelection(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil {
		return nil
	}

	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: mergeStrings(fallbacks),
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}

	manifest := selection.Manifest
	if manifest == nil {
		cfg.AssetURL = func(string) string { return "" }
		return cfg
	}
	if cfg.Theme == "" {
		cfg.Theme = manifest.Name
	}

	prefix := manifest.Assets.Prefix
	files := mergeStrings(manifest.Assets.Files)
	cfg.Tokens = mergeStrings(manifest.Tokens)
	cfg.Partials = mergeStrings(cfg.Partials, manifest.Templates)

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		cfg.Tokens = mergeStrings(cfg.Tokens, variant.Tokens)
		cfg.Partials = mergeStrings(cfg.Partials, variant.Templates)
		files = mergeStrings(files, variant.Assets.Files)
		if strings.TrimSpace(variant.Assets.Prefix) != "" {
			prefix = variant.Assets.Prefix
		}
	}

	for token, value := range cfg.Tokens {
		cfg.CSSVars["--"+token] = value
	}
	cfg.AssetURL = assetResolver(prefix, files)
	return cfg
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok || strings.TrimSpace(file) == "" {
			return ""
		}
		if strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		if prefix == "" {
			return file
		}
		return prefix + "/" + file
	}
}

func mergeStrings(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for key, value := range m {
			out[key] = value
		}
	}
	return out
}

// ErrThemeNotFound is returned by ManifestSelector for unknown themes.
var ErrThemeNotFound = errors.New("orchestrator: theme not found")

// ManifestSelector is a theme.ThemeSelector over an in-memory set of
// manifests. Blank names select the default theme and variant.
type ManifestSelector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector builds a selector. The first manifest becomes the
// default theme unless SetDefault is called.
func NewManifestSelector(manifests ...*theme.Manifest) *ManifestSelector {
	s := &ManifestSelector{manifests: make(map[string]*theme.Manifest)}
	for _, manifest := range manifests {
		s.Add(manifest)
	}
	return s
}

// Add registers or replaces a manifest by name.
func (s *ManifestSelector) Add(manifest *theme.Manifest) {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifests[manifest.Name] = manifest
	if s.defaultTheme == "" {
		s.defaultTheme = manifest.Name
	}
}

// SetDefault sets the theme and variant used for blank selections.
func (s *ManifestSelector) SetDefault(name, variant string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultTheme = strings.TrimSpace(name)
	s.defaultVariant = strings.TrimSpace(variant)
}

// Names lists the registered theme names.
func (s *ManifestSelector) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select resolves name and variant. An unknown variant falls back to the
// default variant, then to the manifest's base values.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	variant = strings.TrimSpace(variant)
	if name == "" {
		name = s.defaultTheme
		if variant == "" {
			variant = s.defaultVariant
		}
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if _, known := manifest.Variants[variant]; !known {
		variant = ""
		if _, known := manifest.Variants[s.defaultVariant]; known && name == s.defaultTheme {
			variant = s.defaultVariant
		}
	}
	return &theme.Selection{Theme: manifest.Name, Variant: variant, Manifest: manifest}, nil
}

type manifestFile struct {
	Name      string                 `json:"name" yaml:"name"`
	Version   string                 `json:"version" yaml:"version"`
	Tokens    map[string]string      `json:"tokens" yaml:"tokens"`
	Templates map[string]string      `json:"templates" yaml:"templates"`
	Assets    assetsFile             `json:"assets" yaml:"assets"`
	Variants  map[string]variantFile `json:"variants" yaml:"variants"`
}

type assetsFile struct {
	Prefix string            `json:"prefix" yaml:"prefix"`
	Files  map[string]string `json:"files" yaml:"files"`
}

type variantFile struct {
	Tokens    map[string]string `json:"tokens" yaml:"tokens"`
	Templates map[string]string `json:"templates" yaml:"templates"`
	Assets    assetsFile        `json:"assets" yaml:"assets"`
}

// ParseManifest decodes a theme manifest from JSON or YAML.
func ParseManifest(data []byte) (*theme.Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("orchestrator: theme manifest is empty")
	}

	var file manifestFile
	if err := json.Unmarshal(data, &file); err != nil {
		file = manifestFile{}
		if yerr := yaml.Unmarshal(data, &file); yerr != nil {
			return nil, fmt.Errorf("orchestrator: parse theme manifest: %w", yerr)
		}
	}
	if strings.TrimSpace(file.Name) == "" {
		return nil, errors.New("orchestrator: theme manifest name is required")
	}

	manifest := &theme.Manifest{
		Name:      file.Name,
		Version:   file.Version,
		Tokens:    file.Tokens,
		Templates: file.Templates,
		Assets:    theme.Assets{Prefix: file.Assets.Prefix, Files: file.Assets.Files},
	}
	if len(file.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(file.Variants))
		for name, variant := range file.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    variant.Tokens,
				Templates: variant.Templates,
				Assets:    theme.Assets{Prefix: variant.Assets.Prefix, Files: variant.Assets.Files},
			}
		}
	}
	return manifest, nil
}

// LoadManifest reads a theme manifest file.
func LoadManifest(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: read theme manifest: %w", err)
	}
	return ParseManifest(data)
}

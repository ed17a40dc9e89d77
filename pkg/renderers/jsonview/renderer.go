// Package jsonview renders the localized preview projection as JSON for API
// clients and non-HTML front ends.
package jsonview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formi18n/pkg/preview"
	"github.com/goliatone/go-formi18n/pkg/render"
)

// Name is the registry key of the JSON renderer.
const Name = "json"

type Option func(*Renderer)

// WithIndent sets the indentation used for output. An empty indent produces
// compact JSON.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the JSON renderer. Output is indented with two spaces by
// default.
func New(options ...Option) *Renderer {
	r := &Renderer{indent: "  "}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

type payload struct {
	preview.Form
	Untranslated []string            `json:"untranslated"`
	Values       map[string]string   `json:"values,omitempty"`
	Errors       map[string][]string `json:"errors,omitempty"`
	FormErrors   []string            `json:"formErrors,omitempty"`
	Theme        *themePayload       `json:"theme,omitempty"`
}

type themePayload struct {
	Name    string            `json:"name"`
	Variant string            `json:"variant,omitempty"`
	Tokens  map[string]string `json:"tokens,omitempty"`
	CSSVars map[string]string `json:"cssVars,omitempty"`
}

func (r *Renderer) Render(ctx context.Context, form preview.Form, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mapped := render.MapErrors(form, opts.Errors)
	body := payload{
		Form:         form,
		Untranslated: form.Untranslated(),
		Values:       opts.Values,
		Errors:       mapped.Fields,
		FormErrors:   mapped.Form,
	}
	if body.Fields == nil {
		body.Fields = []preview.Field{}
	}
	if body.Untranslated == nil {
		body.Untranslated = []string{}
	}
	if cfg := opts.Theme; cfg != nil {
		body.Theme = &themePayload{
			Name:    cfg.Theme,
			Variant: cfg.Variant,
			Tokens:  cfg.Tokens,
			CSSVars: cfg.CSSVars,
		}
	}

	var (
		out []byte
		err error
	)
	if r.indent == "" {
		out, err = json.Marshal(body)
	} else {
		out, err = json.MarshalIndent(body, "", r.indent)
	}
	if err != nil {
		return nil, fmt.Errorf("json renderer: encode: %w", err)
	}
	return append(out, '\n'), nil
}

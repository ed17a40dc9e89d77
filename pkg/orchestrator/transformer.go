package orchestrator

import (
	"context"
	"strings"

	"github.com/goliatone/go-formi18n/pkg/preview"
)

// Transformer mutates a projected form before it is rendered.
type Transformer interface {
	Transform(ctx context.Context, form *preview.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *preview.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *preview.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// UntranslatedMarker prefixes the labels of fields whose text fell back to
// field defaults or literals, so reviewers can spot missing translations in
// a rendered preview.
func UntranslatedMarker(marker string) Transformer {
	marker = strings.TrimSpace(marker)
	return TransformerFunc(func(_ context.Context, form *preview.Form) error {
		if marker == "" || form == nil {
			return nil
		}
		for i := range form.Fields {
			if form.Fields[i].Translated() {
				continue
			}
			form.Fields[i].Label = marker + " " + form.Fields[i].Label
		}
		return nil
	})
}

// HideLanguageSelector drops the language list from the projection, for
// embedding a single-language preview.
func HideLanguageSelector() Transformer {
	return TransformerFunc(func(_ context.Context, form *preview.Form) error {
		if form != nil {
			form.Languages = nil
		}
		return nil
	})
}

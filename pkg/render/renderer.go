package render

import (
	"context"

	"github.com/goliatone/go-formi18n/pkg/preview"
)

// Renderer turns a localized preview projection into bytes (HTML, JSON,
// terminal transcripts).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form preview.Form, options RenderOptions) ([]byte, error)
}

package formi18n

import (
	"context"
	"io/fs"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formi18n/pkg/openapi"
	"github.com/goliatone/go-formi18n/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in HTML preview templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// AssetsFS exposes the preview stylesheet so applications can serve it next
// to rendered previews.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formi18n.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}

// BuildContract returns the OpenAPI submission contract of doc in language.
func BuildContract(ctx context.Context, doc Document, language string, options ...openapi.Option) (*openapi3.T, error) {
	return openapi.Build(ctx, doc, language, options...)
}

package render

import (
	theme "github.com/goliatone/go-theme"
)

// RenderOptions carry per-request data renderers can use without touching the
// editing session.
type RenderOptions struct {
	// Values pre-populates controls keyed by field id. Checkbox values use
	// "true"/"false"; select and radio values use the option value
	// ("option1"...).
	Values map[string]string
	// Errors surfaces validation feedback keyed by field id. Keys that do not
	// match a field are rendered as form-level messages. See MapErrors.
	Errors map[string][]string
	// Hidden adds hidden inputs to HTML output.
	Hidden map[string]string
	// Theme carries the resolved go-theme configuration (tokens, CSS vars,
	// partials and asset URLs). Nil renders without theme chrome.
	Theme *theme.RendererConfig
}

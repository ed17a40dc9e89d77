package tui

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits {"language": ..., "values": {...}}.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded
	// pairs keyed by field id plus the language.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits "Label: value" lines in field order.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat matches raw against the known formats.
func ParseOutputFormat(raw string) (OutputFormat, bool) {
	switch format := OutputFormat(raw); format {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return format, true
	default:
		return "", false
	}
}

// Theme captures message prefixes the renderer applies to info and error
// lines.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Messages holds the renderer's own prompt chrome. Labels and the submit
// text come from the form.
type Messages struct {
	RequiredError string
	EmailError    string
	NumberError   string
	NoneOption    string
}

// DefaultMessages returns the English chrome.
func DefaultMessages() Messages {
	return Messages{
		RequiredError: "a value is required",
		EmailError:    "enter a valid email address",
		NumberError:   "enter a number",
		NoneOption:    "(none)",
	}
}

// SubmitTransformer mutates collected values before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the survey prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer lets callers mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithMessages overrides validation and chrome messages, for example with a
// translated set. Blank entries keep the default.
func WithMessages(messages Messages) Option {
	return func(r *Renderer) {
		defaults := DefaultMessages()
		r.messages = Messages{
			RequiredError: firstNonBlank(messages.RequiredError, defaults.RequiredError),
			EmailError:    firstNonBlank(messages.EmailError, defaults.EmailError),
			NumberError:   firstNonBlank(messages.NumberError, defaults.NumberError),
			NoneOption:    firstNonBlank(messages.NoneOption, defaults.NoneOption),
		}
	}
}

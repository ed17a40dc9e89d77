package openapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formi18n/pkg/export"
	"github.com/goliatone/go-formi18n/pkg/model"
	"github.com/goliatone/go-formi18n/pkg/preview"
	"github.com/goliatone/go-formi18n/pkg/translation"
)

const (
	extensionType         = "x-formi18n-type"
	extensionPlaceholder  = "x-formi18n-placeholder"
	extensionOrder        = "x-formi18n-order"
	extensionLanguage     = "x-formi18n-language"
	extensionLanguages    = "x-formi18n-languages"
	extensionSubmit       = "x-formi18n-submit"
	extensionOptionLabels = "x-formi18n-option-labels"
)

const (
	defaultPath        = "/submit"
	defaultOperationID = "submitForm"
	defaultVersion     = "1.0.0"
	openAPIVersion     = "3.0.3"
)

// Option customises Build.
type Option func(*config)

type config struct {
	path        string
	operationID string
	version     string
	servers     []string
	description string
}

// WithPath sets the submission path. Defaults to /submit.
func WithPath(path string) Option {
	return func(cfg *config) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		cfg.path = path
	}
}

// WithOperationID sets the operationId of the submission operation.
func WithOperationID(id string) Option {
	return func(cfg *config) {
		if id = strings.TrimSpace(id); id != "" {
			cfg.operationID = id
		}
	}
}

// WithVersion sets info.version.
func WithVersion(version string) Option {
	return func(cfg *config) {
		if version = strings.TrimSpace(version); version != "" {
			cfg.version = version
		}
	}
}

// WithServerURL appends a server entry.
func WithServerURL(url string) Option {
	return func(cfg *config) {
		if url = strings.TrimSpace(url); url != "" {
			cfg.servers = append(cfg.servers, url)
		}
	}
}

// WithDescription sets info.description.
func WithDescription(description string) Option {
	return func(cfg *config) {
		cfg.description = description
	}
}

// Build returns the validated submission contract for doc rendered in lang.
// A blank lang selects the default base language. Languages without a record
// fall back exactly like the preview does.
func Build(ctx context.Context, doc export.Document, lang string, options ...Option) (*openapi3.T, error) {
	if ctx == nil {
		return nil, errors.New("openapi: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config{path: defaultPath, operationID: defaultOperationID, version: defaultVersion}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	lang = translation.NormalizeCode(lang)
	if lang == "" {
		lang = translation.DefaultBaseLanguage
	}
	normalized, err := doc.Normalize()
	if err != nil {
		return nil, fmt.Errorf("openapi: build: %w", err)
	}
	form := preview.Project(normalized.FormFields, normalized.Translations, lang)

	body := openapi3.NewObjectSchema()
	order := make([]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		body.WithProperty(field.ID, fieldSchema(field))
		order = append(order, field.ID)
		if field.Required {
			body.Required = append(body.Required, field.ID)
		}
	}
	body.Extensions = map[string]any{extensionOrder: order}

	operation := openapi3.NewOperation()
	operation.OperationID = cfg.operationID
	operation.Summary = form.Title
	operation.Extensions = map[string]any{
		extensionLanguage: form.Language,
		extensionSubmit:   form.SubmitLabel,
	}
	operation.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(body),
	}
	operation.Responses = openapi3.NewResponses(
		openapi3.WithStatus(204, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Submission accepted"),
		}),
		openapi3.WithStatus(422, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Submission rejected"),
		}),
	)

	languages := make([]any, 0, len(form.Languages))
	for _, option := range form.Languages {
		languages = append(languages, option.Code)
	}

	spec := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:       form.Title,
			Version:     cfg.version,
			Description: cfg.description,
			Extensions:  map[string]any{extensionLanguages: languages},
		},
		Paths: openapi3.NewPaths(openapi3.WithPath(cfg.path, &openapi3.PathItem{Post: operation})),
	}
	for _, url := range cfg.servers {
		spec.Servers = append(spec.Servers, &openapi3.Server{URL: url})
	}

	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return spec, nil
}

// Marshal renders a contract as indented JSON.
func Marshal(spec *openapi3.T) ([]byte, error) {
	if spec == nil {
		return nil, errors.New("openapi: spec is nil")
	}
	raw, err := spec.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal: %w", err)
	}
	return indentJSON(raw)
}

func fieldSchema(field preview.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	switch field.Type {
	case model.FieldTypeEmail:
		schema = openapi3.NewStringSchema().WithFormat("email")
	case model.FieldTypeNumber:
		schema = openapi3.NewFloat64Schema()
	case model.FieldTypeCheckbox:
		schema = openapi3.NewBoolSchema()
	case model.FieldTypeSelect, model.FieldTypeRadio:
		values := make([]any, 0, len(field.Options))
		labels := make([]any, 0, len(field.Options))
		for _, option := range field.Options {
			values = append(values, option.Value)
			labels = append(labels, option.Label)
		}
		schema = openapi3.NewStringSchema().WithEnum(values...)
		schema.Extensions = map[string]any{extensionOptionLabels: labels}
	default:
		schema = openapi3.NewStringSchema()
	}

	schema.Title = field.Label
	if schema.Extensions == nil {
		schema.Extensions = map[string]any{}
	}
	schema.Extensions[extensionType] = string(field.Type)
	if field.ShowPlaceholder && field.Placeholder != "" {
		schema.Extensions[extensionPlaceholder] = field.Placeholder
	}
	return schema
}

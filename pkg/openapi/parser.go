package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formi18n/pkg/export"
	"github.com/goliatone/go-formi18n/pkg/model"
	"github.com/goliatone/go-formi18n/pkg/translation"
)

// ErrOperationNotFound is returned when Parse cannot locate a submission
// operation.
var ErrOperationNotFound = errors.New("openapi: operation not found")

// Contract is a form recovered from a submission contract.
type Contract struct {
	Language    string
	OperationID string
	Fields      []model.FormField
	Translation translation.Translation
}

// Document keys the recovered translation under the contract language.
func (c Contract) Document() export.Document {
	return export.Document{
		FormFields:   model.CloneFields(c.Fields),
		Translations: map[string]translation.Translation{c.Language: c.Translation.Clone()},
	}
}

// Parse loads a JSON or YAML OpenAPI document and reads the request body of
// operationID back into fields. A blank operationID selects the first POST
// operation by path. Contracts not produced by Build are accepted: field
// types are then inferred from the schema.
func Parse(ctx context.Context, data []byte, operationID string) (Contract, error) {
	if ctx == nil {
		return Contract{}, errors.New("openapi: context is required")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Contract{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return Contract{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return Contract{}, fmt.Errorf("openapi: validate: %w", err)
	}

	operation, err := findOperation(spec, operationID)
	if err != nil {
		return Contract{}, err
	}
	body := requestSchema(operation.RequestBody)
	if body == nil {
		return Contract{}, fmt.Errorf("openapi: operation %q has no request body schema", operation.OperationID)
	}

	contract := Contract{
		Language:    translation.NormalizeCode(stringExtension(operation.Extensions, extensionLanguage)),
		OperationID: operation.OperationID,
		Translation: translation.Translation{
			FormTitle:    firstNonBlank(operation.Summary, infoTitle(spec)),
			SubmitButton: stringExtension(operation.Extensions, extensionSubmit),
			Fields:       map[string]translation.FieldText{},
		},
	}
	if contract.Language == "" {
		contract.Language = translation.DefaultBaseLanguage
	}

	required := make(map[string]bool, len(body.Required))
	for _, id := range body.Required {
		required[id] = true
	}

	for _, id := range propertyOrder(body) {
		ref := body.Properties[id]
		if ref == nil || ref.Value == nil {
			continue
		}
		schema := ref.Value
		field := model.FormField{
			ID:          id,
			Type:        fieldType(schema),
			Label:       firstNonBlank(schema.Title, id),
			Placeholder: stringExtension(schema.Extensions, extensionPlaceholder),
			Required:    required[id],
		}
		contract.Fields = append(contract.Fields, field)
		contract.Translation.Fields[id] = translation.FieldText{
			Label:       field.Label,
			Placeholder: field.Placeholder,
		}
	}
	return contract, nil
}

func findOperation(spec *openapi3.T, operationID string) (*openapi3.Operation, error) {
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, fmt.Errorf("%w: document does not contain any paths", ErrOperationNotFound)
	}

	paths := make([]string, 0, spec.Paths.Len())
	for path := range spec.Paths.Map() {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		item := spec.Paths.Value(path)
		if item == nil {
			continue
		}
		if operationID == "" {
			if item.Post != nil {
				return item.Post, nil
			}
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op, nil
			}
		}
	}
	if operationID == "" {
		return nil, fmt.Errorf("%w: no POST operation", ErrOperationNotFound)
	}
	return nil, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt := body.Value.Content.Get(mediaType); mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// propertyOrder honours x-formi18n-order and appends any remaining
// properties alphabetically.
func propertyOrder(schema *openapi3.Schema) []string {
	seen := make(map[string]bool, len(schema.Properties))
	var order []string
	if raw, ok := schema.Extensions[extensionOrder].([]any); ok {
		for _, item := range raw {
			id, ok := item.(string)
			if !ok || seen[id] {
				continue
			}
			if _, exists := schema.Properties[id]; !exists {
				continue
			}
			seen[id] = true
			order = append(order, id)
		}
	}

	rest := make([]string, 0, len(schema.Properties))
	for id := range schema.Properties {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func fieldType(schema *openapi3.Schema) model.FieldType {
	if declared := model.FieldType(stringExtension(schema.Extensions, extensionType)); declared.Valid() {
		return declared
	}
	switch firstSchemaType(schema.Type) {
	case openapi3.TypeBoolean:
		return model.FieldTypeCheckbox
	case openapi3.TypeNumber, openapi3.TypeInteger:
		return model.FieldTypeNumber
	case openapi3.TypeString:
		if len(schema.Enum) > 0 {
			return model.FieldTypeSelect
		}
		if schema.Format == "email" {
			return model.FieldTypeEmail
		}
		if schema.MaxLength != nil && *schema.MaxLength > 255 {
			return model.FieldTypeTextarea
		}
	}
	return model.FieldTypeText
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func stringExtension(extensions map[string]any, key string) string {
	value, _ := extensions[key].(string)
	return strings.TrimSpace(value)
}

func infoTitle(spec *openapi3.T) string {
	if spec.Info == nil {
		return ""
	}
	return spec.Info.Title
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func indentJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("openapi: indent: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

package openapi

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formi18n/pkg/export"
	"github.com/goliatone/go-formi18n/pkg/model"
	"github.com/goliatone/go-formi18n/pkg/testsupport"
	"github.com/goliatone/go-formi18n/pkg/translation"
)

func TestBuild_LocalizedContract(t *testing.T) {
	spec, err := Build(testsupport.Context(), export.ContactForm(), "ES", WithPath("contact"), WithServerURL("https://forms.example.com"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if spec.Info.Title != "Formulario de Contacto" {
		t.Fatalf("title: %q", spec.Info.Title)
	}
	item := spec.Paths.Value("/contact")
	if item == nil || item.Post == nil {
		t.Fatalf("expected POST /contact")
	}
	if item.Post.OperationID != "submitForm" || item.Post.Extensions[extensionLanguage] != "es" {
		t.Fatalf("unexpected operation: %+v", item.Post)
	}
	if len(spec.Servers) != 1 || spec.Servers[0].URL != "https://forms.example.com" {
		t.Fatalf("servers: %+v", spec.Servers)
	}

	body := item.Post.RequestBody.Value.Content.Get("application/json").Schema.Value
	if diff := cmp.Diff([]string{"1", "2"}, body.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	name := body.Properties["1"].Value
	if name.Title != "Nombre" || name.Extensions[extensionPlaceholder] != "Ingrese su nombre" {
		t.Fatalf("unexpected name schema: %+v", name)
	}
	email := body.Properties["2"].Value
	if !email.Type.Is(openapi3.TypeString) || email.Format != "email" {
		t.Fatalf("email schema: %+v", email)
	}
}

func TestBuild_FieldTypeMapping(t *testing.T) {
	doc := export.Document{
		FormFields: []model.FormField{
			{ID: "n", Type: model.FieldTypeNumber, Label: "Age"},
			{ID: "c", Type: model.FieldTypeCheckbox, Label: "Terms", Required: true},
			{ID: "s", Type: model.FieldTypeSelect, Label: "Country"},
			{ID: "r", Type: model.FieldTypeRadio, Label: "Plan"},
			{ID: "t", Type: model.FieldTypeTextarea, Label: "Notes"},
		},
		Translations: map[string]translation.Translation{"en": {}},
	}

	spec, err := Build(testsupport.Context(), doc, "")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	body := spec.Paths.Value("/submit").Post.RequestBody.Value.Content.Get("application/json").Schema.Value

	cases := map[string]string{
		"n": openapi3.TypeNumber,
		"c": openapi3.TypeBoolean,
		"s": openapi3.TypeString,
		"r": openapi3.TypeString,
		"t": openapi3.TypeString,
	}
	for id, want := range cases {
		if !body.Properties[id].Value.Type.Is(want) {
			t.Fatalf("%s: want type %s, got %v", id, want, body.Properties[id].Value.Type)
		}
	}

	if diff := cmp.Diff([]any{"option1", "option2", "option3"}, body.Properties["s"].Value.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	if _, ok := body.Properties["c"].Value.Extensions[extensionPlaceholder]; ok {
		t.Fatalf("checkbox should not carry a placeholder")
	}
	if spec.Info.Title != "Form Preview" {
		t.Fatalf("expected literal title fallback, got %q", spec.Info.Title)
	}
}

func TestBuild_Errors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Build(ctx, export.ContactForm(), "en"); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}

	dup := export.Document{Translations: map[string]translation.Translation{"en": {}, "EN": {}}}
	if _, err := Build(context.Background(), dup, "en"); !errors.Is(err, export.ErrDuplicateLanguage) {
		t.Fatalf("want ErrDuplicateLanguage, got %v", err)
	}
}

func TestParse_RoundTripsBuild(t *testing.T) {
	doc := export.ContactForm()
	doc.FormFields = append(doc.FormFields, model.FormField{ID: "0", Type: model.FieldTypeRadio, Label: "Plan"})

	spec, err := Build(context.Background(), doc, "es", WithOperationID("contactUs"))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	raw, err := Marshal(spec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"x-formi18n-placeholder": "Ingrese su nombre"`) {
		t.Fatalf("expected placeholder extension in output")
	}

	contract, err := Parse(context.Background(), raw, "contactUs")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if contract.Language != "es" || contract.Translation.SubmitButton != "Enviar" {
		t.Fatalf("unexpected contract header: %+v", contract)
	}

	want := []model.FormField{
		{ID: "1", Type: model.FieldTypeText, Label: "Nombre", Placeholder: "Ingrese su nombre", Required: true},
		{ID: "2", Type: model.FieldTypeEmail, Label: "Correo electrónico", Placeholder: "Ingrese su correo electrónico", Required: true},
		{ID: "3", Type: model.FieldTypeTextarea, Label: "Mensaje", Placeholder: "Ingrese su mensaje"},
		{ID: "0", Type: model.FieldTypeRadio, Label: "Plan"},
	}
	if diff := cmp.Diff(want, contract.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	restored := contract.Document()
	if err := restored.Validate("es"); err != nil {
		t.Fatalf("recovered document invalid: %v", err)
	}
}

func TestParse_ForeignContract(t *testing.T) {
	const foreign = `
openapi: 3.0.3
info:
  title: Signup
  version: "1"
paths:
  /b:
    get:
      responses:
        "200":
          description: ok
  /a:
    post:
      operationId: signup
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [email]
              properties:
                subscribe:
                  type: boolean
                email:
                  type: string
                  format: email
                age:
                  type: integer
                tier:
                  type: string
                  enum: [free, pro]
      responses:
        "201":
          description: created
`
	contract, err := Parse(context.Background(), []byte(foreign), "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if contract.Language != translation.DefaultBaseLanguage || contract.Translation.FormTitle != "Signup" {
		t.Fatalf("unexpected contract header: %+v", contract)
	}

	got := make(map[string]model.FieldType, len(contract.Fields))
	ids := make([]string, 0, len(contract.Fields))
	for _, field := range contract.Fields {
		got[field.ID] = field.Type
		ids = append(ids, field.ID)
	}
	if diff := cmp.Diff([]string{"age", "email", "subscribe", "tier"}, ids); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	want := map[string]model.FieldType{
		"age":       model.FieldTypeNumber,
		"email":     model.FieldTypeEmail,
		"subscribe": model.FieldTypeCheckbox,
		"tier":      model.FieldTypeSelect,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
	if !contract.Fields[1].Required || contract.Fields[1].Label != "email" {
		t.Fatalf("unexpected email field: %+v", contract.Fields[1])
	}

	if _, err := Parse(context.Background(), []byte(foreign), "missing"); !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("want ErrOperationNotFound, got %v", err)
	}
	if _, err := Parse(context.Background(), nil, ""); err == nil {
		t.Fatalf("expected empty payload error")
	}
}

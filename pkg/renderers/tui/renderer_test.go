package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formi18n/pkg/export"
	"github.com/goliatone/go-formi18n/pkg/model"
	"github.com/goliatone/go-formi18n/pkg/preview"
	"github.com/goliatone/go-formi18n/pkg/render"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	confirmPos   int
	textPos      int

	inputConfigs  []InputConfig
	selectConfigs []SelectConfig
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectConfigs = append(s.selectConfigs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func spanishContactForm() preview.Form {
	doc := export.ContactForm()
	return preview.Project(doc.FormFields, doc.Translations, "es")
}

func TestRender_LocalizedPrompts(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada", "ada@example.com"},
		textAreas: []string{"Hola"},
		confirm:   []bool{true},
	}
	r := New(WithPromptDriver(driver))

	out, err := r.Render(context.Background(), spanishContactForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if driver.infoMessages[0] != "Formulario de Contacto" {
		t.Fatalf("expected localized title first, got %v", driver.infoMessages)
	}
	if driver.inputConfigs[0].Message != "Nombre" || driver.inputConfigs[0].Help != "Ingrese su nombre" {
		t.Fatalf("unexpected prompt config: %+v", driver.inputConfigs[0])
	}

	var got struct {
		Language string         `json:"language"`
		Values   map[string]any `json:"values"`
	}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := map[string]any{"1": "Ada", "2": "ada@example.com", "3": "Hola"}
	if got.Language != "es" {
		t.Fatalf("language: %q", got.Language)
	}
	if diff := cmp.Diff(want, got.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_ValidationRetries(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "Ada", "not-an-email", "ada@example.com"},
		textAreas: []string{""},
		confirm:   []bool{true},
	}
	r := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))

	if _, err := r.Render(context.Background(), spanishContactForm(), render.RenderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}

	want := []string{
		"Formulario de Contacto",
		"! Nombre: a value is required",
		"! Correo electrónico: enter a valid email address",
	}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_ChoicesCheckboxAndNumbers(t *testing.T) {
	fields := []model.FormField{
		{ID: "a", Type: model.FieldTypeSelect, Label: "Country", Placeholder: "Pick one"},
		{ID: "b", Type: model.FieldTypeRadio, Label: "Plan"},
		{ID: "c", Type: model.FieldTypeCheckbox, Label: "Terms", Required: true},
		{ID: "d", Type: model.FieldTypeNumber, Label: "Age"},
	}
	form := preview.Project(fields, nil, "en")

	driver := &stubDriver{
		selectIdx: []int{2, 0},
		confirm:   []bool{false, true, true},
		inputs:    []string{"abc", "42"},
	}
	r := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))

	out, err := r.Render(context.Background(), form, render.RenderOptions{Values: map[string]string{"b": "option3"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if diff := cmp.Diff([]string{"(none)", "Option 1", "Option 2", "Option 3"}, driver.selectConfigs[0].Options); diff != "" {
		t.Fatalf("select options mismatch (-want +got):\n%s", diff)
	}
	if driver.selectConfigs[1].DefaultIndex != 2 {
		t.Fatalf("radio default index: %d", driver.selectConfigs[1].DefaultIndex)
	}

	want := "Country: Option 2\nPlan: Option 1\nTerms: true\nAge: 42\n"
	if string(out) != want {
		t.Fatalf("unexpected output\nwant: %q\n got: %q", want, string(out))
	}
	if len(driver.infoMessages) != 3 {
		t.Fatalf("expected required checkbox and number retries, got %v", driver.infoMessages)
	}
}

func TestRender_FormURLEncoded(t *testing.T) {
	fields := []model.FormField{{ID: "1", Type: model.FieldTypeText, Label: "Name"}}
	driver := &stubDriver{inputs: []string{"Ada Lovelace"}, confirm: []bool{true}}
	r := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatFormURLEncoded))

	out, err := r.Render(context.Background(), preview.Project(fields, nil, "en"), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "1=Ada+Lovelace&lang=en" {
		t.Fatalf("unexpected output %q", out)
	}
	if r.ContentType() != "application/x-www-form-urlencoded" {
		t.Fatalf("content type: %s", r.ContentType())
	}
}

func TestRender_PrefillErrorsAndTransformer(t *testing.T) {
	fields := []model.FormField{{ID: "1", Type: model.FieldTypeText, Label: "Name"}}
	driver := &stubDriver{inputs: []string{"Grace"}, confirm: []bool{true}}
	r := New(
		WithPromptDriver(driver),
		WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
			values["1"] = strings.ToUpper(values["1"].(string))
			return values, nil
		}),
	)

	out, err := r.Render(context.Background(), preview.Project(fields, nil, "en"), render.RenderOptions{
		Values: map[string]string{"1": "Ada"},
		Errors: map[string][]string{"1": {"taken"}, "form": {"try again"}},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if driver.inputConfigs[0].Default != "Ada" {
		t.Fatalf("expected prefill default, got %q", driver.inputConfigs[0].Default)
	}
	if diff := cmp.Diff([]string{"Form Preview", "try again", "Name: taken"}, driver.infoMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(string(out), `"1": "GRACE"`) {
		t.Fatalf("transformer not applied: %s", out)
	}
}

func TestRender_DeclinedSubmit(t *testing.T) {
	driver := &stubDriver{confirm: []bool{false}}
	r := New(WithPromptDriver(driver))

	_, err := r.Render(context.Background(), preview.Project(nil, nil, "en"), render.RenderOptions{})
	if !errors.Is(err, ErrNotSubmitted) {
		t.Fatalf("want ErrNotSubmitted, got %v", err)
	}
}

func TestRender_DriverErrorStops(t *testing.T) {
	driver := &stubDriver{}
	r := New(WithPromptDriver(driver))

	if _, err := r.Render(context.Background(), spanishContactForm(), render.RenderOptions{}); err == nil {
		t.Fatalf("expected driver error")
	}
}

func TestWithMessagesKeepsDefaultsForBlanks(t *testing.T) {
	r := New(WithPromptDriver(&stubDriver{}), WithMessages(Messages{RequiredError: "obligatorio"}))
	if r.messages.RequiredError != "obligatorio" || r.messages.NoneOption != "(none)" {
		t.Fatalf("unexpected messages: %+v", r.messages)
	}
}

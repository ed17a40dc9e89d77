// Package tui renders a localized preview as an interactive terminal form.
// Every field is prompted with its translated label and placeholder and the
// collected answers are serialized as the render output.
package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-formi18n/pkg/preview"
	"github.com/goliatone/go-formi18n/pkg/render"
)

// Name is the registry key of the TUI renderer.
const Name = "tui"

// Renderer implements render.Renderer for terminal sessions.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	messages          Messages
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with the survey driver and JSON output.
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		messages:     DefaultMessages(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every field in order, then asks for confirmation using
// the localized submit label. Declining returns ErrNotSubmitted.
func (r *Renderer) Render(ctx context.Context, form preview.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mapped := render.MapErrors(form, opts.Errors)
	state := NewState(opts.Values, mapped.Fields)

	if err := r.driver.Info(ctx, r.theme.InfoPrefix+form.Title); err != nil {
		return nil, err
	}
	for _, message := range mapped.Form {
		_ = r.driver.Info(ctx, r.theme.ErrorPrefix+message)
	}

	for _, field := range form.Fields {
		for _, message := range state.ErrorsFor(field.ID) {
			_ = r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, field.Label, message))
		}
		if err := r.promptField(ctx, field, state); err != nil {
			return nil, err
		}
	}

	submit, err := r.driver.Confirm(ctx, ConfirmConfig{Message: form.SubmitLabel, Default: true})
	if err != nil {
		return nil, err
	}
	if !submit {
		return nil, ErrNotSubmitted
	}

	values := state.Values()
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(form, values)
}

func (r *Renderer) promptField(ctx context.Context, field preview.Field, state *State) error {
	switch field.Control {
	case preview.ControlCheckbox:
		return r.promptCheckbox(ctx, field, state)
	case preview.ControlSelect, preview.ControlRadio:
		return r.promptChoice(ctx, field, state)
	case preview.ControlTextarea:
		answer, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message:   field.Label,
			Default:   state.String(field.ID),
			Help:      helpText(field),
			Validator: r.textValidator(field),
		})
		if err != nil {
			return err
		}
		state.Set(field.ID, answer)
		return nil
	default:
		return r.promptInput(ctx, field, state)
	}
}

func (r *Renderer) promptInput(ctx context.Context, field preview.Field, state *State) error {
	validate := r.textValidator(field)
	for {
		answer, err := r.driver.Input(ctx, InputConfig{
			Message:   field.Label,
			Default:   state.String(field.ID),
			Help:      helpText(field),
			Validator: validate,
		})
		if err != nil {
			return err
		}
		answer = strings.TrimSpace(answer)
		if err := validate(answer); err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("%s%s: %v", r.theme.ErrorPrefix, field.Label, err))
			continue
		}

		if field.InputType == "number" && answer != "" {
			number, _ := strconv.ParseFloat(answer, 64)
			state.Set(field.ID, number)
			return nil
		}
		state.Set(field.ID, answer)
		return nil
	}
}

func (r *Renderer) promptCheckbox(ctx context.Context, field preview.Field, state *State) error {
	for {
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: field.Label,
			Default: state.Bool(field.ID),
		})
		if err != nil {
			return err
		}
		if field.Required && !answer {
			_ = r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, field.Label, r.messages.RequiredError))
			continue
		}
		state.Set(field.ID, answer)
		return nil
	}
}

// promptChoice offers the field's options. Optional selects get a leading
// "none" entry; radios always carry a value and default to the first option.
func (r *Renderer) promptChoice(ctx context.Context, field preview.Field, state *State) error {
	offset := 0
	labels := make([]string, 0, len(field.Options)+1)
	if field.Control == preview.ControlSelect && !field.Required {
		labels = append(labels, r.messages.NoneOption)
		offset = 1
	}
	defaultIndex := 0
	current := state.String(field.ID)
	for i, option := range field.Options {
		labels = append(labels, option.Label)
		if option.Value == current {
			defaultIndex = i + offset
		}
	}

	index, err := r.driver.Select(ctx, SelectConfig{
		Message:      field.Label,
		Options:      labels,
		DefaultIndex: defaultIndex,
		Help:         helpText(field),
	})
	if err != nil {
		return err
	}
	if index < offset || index-offset >= len(field.Options) {
		state.Set(field.ID, "")
		return nil
	}
	state.Set(field.ID, field.Options[index-offset].Value)
	return nil
}

func (r *Renderer) textValidator(field preview.Field) func(string) error {
	return func(answer string) error {
		answer = strings.TrimSpace(answer)
		if answer == "" {
			if field.Required {
				return errors.New(r.messages.RequiredError)
			}
			return nil
		}
		switch field.InputType {
		case "email":
			if _, err := mail.ParseAddress(answer); err != nil {
				return errors.New(r.messages.EmailError)
			}
		case "number":
			if _, err := strconv.ParseFloat(answer, 64); err != nil {
				return errors.New(r.messages.NumberError)
			}
		}
		return nil
	}
}

func (r *Renderer) serialize(form preview.Form, values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		encoded.Set(render.LanguageInputName, form.Language)
		for id, value := range values {
			encoded.Set(id, formatValue(value))
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		var buf bytes.Buffer
		for _, field := range form.Fields {
			value, ok := values[field.ID]
			if !ok {
				continue
			}
			fmt.Fprintf(&buf, "%s: %s\n", field.Label, displayValue(field, value))
		}
		return buf.Bytes(), nil
	default:
		payload, err := json.MarshalIndent(map[string]any{
			"language": form.Language,
			"values":   values,
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return append(payload, '\n'), nil
	}
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// displayValue shows option labels instead of option values.
func displayValue(field preview.Field, value any) string {
	raw := formatValue(value)
	for _, option := range field.Options {
		if option.Value == raw {
			return option.Label
		}
	}
	return raw
}

func helpText(field preview.Field) string {
	if !field.ShowPlaceholder {
		return ""
	}
	return field.Placeholder
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

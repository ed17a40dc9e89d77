package html

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formi18n/pkg/preview"
	"github.com/goliatone/go-formi18n/pkg/render"
)

type formView struct {
	Lang         string         `json:"lang"`
	LanguageName string         `json:"languageName"`
	Title        string         `json:"title"`
	TitleHTML    string         `json:"titleHTML"`
	Submit       string         `json:"submit"`
	SubmitHTML   string         `json:"submitHTML"`
	Languages    []languageView `json:"languages"`
	Fields       []fieldView    `json:"fields"`
	Errors       []string       `json:"errors"`
	HiddenInputs []hiddenView   `json:"hidden"`
	Untranslated []string       `json:"untranslated"`
}

type languageView struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type fieldView struct {
	ID          string       `json:"id"`
	ControlID   string       `json:"controlId"`
	Type        string       `json:"type"`
	Control     string       `json:"control"`
	InputType   string       `json:"inputType"`
	Label       string       `json:"label"`
	LabelHTML   string       `json:"labelHTML"`
	Placeholder string       `json:"placeholder"`
	Required    bool         `json:"required"`
	Translated  bool         `json:"translated"`
	Value       string       `json:"value"`
	Checked     bool         `json:"checked"`
	Options     []optionView `json:"options"`
	Errors      []string     `json:"errors"`
}

type optionView struct {
	ID       string `json:"id"`
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type themeView struct {
	Name       string `json:"name"`
	Variant    string `json:"variant"`
	CSSVars    string `json:"cssVars"`
	Stylesheet string `json:"stylesheet"`
}

func buildFormView(form preview.Form, opts render.RenderOptions, markup bool) formView {
	errs := render.MapErrors(form, opts.Errors)

	view := formView{
		Lang:         form.Language,
		LanguageName: form.LanguageName,
		Title:        form.Title,
		Submit:       form.SubmitLabel,
		Languages:    make([]languageView, 0, len(form.Languages)),
		Fields:       make([]fieldView, 0, len(form.Fields)),
		Errors:       errs.Form,
		Untranslated: form.Untranslated(),
	}
	if markup {
		view.TitleHTML = inlineHTML(form.Title)
		view.SubmitHTML = inlineHTML(form.SubmitLabel)
	}
	for _, language := range form.Languages {
		view.Languages = append(view.Languages, languageView{
			Code:   language.Code,
			Label:  language.Label,
			Active: language.Active,
		})
	}

	hidden := render.MergeHiddenFields(opts.Hidden, render.LanguageField(form.Language))
	for _, field := range render.SortedHiddenFields(hidden) {
		view.HiddenInputs = append(view.HiddenInputs, hiddenView{Name: field.Name, Value: field.Value})
	}

	for _, field := range form.Fields {
		view.Fields = append(view.Fields, buildFieldView(field, opts.Values[field.ID], errs.For(field.ID), markup))
	}
	return view
}

func buildFieldView(field preview.Field, value string, errs []string, markup bool) fieldView {
	out := fieldView{
		ID:         field.ID,
		ControlID:  field.ControlID,
		Type:       string(field.Type),
		Control:    string(field.Control),
		InputType:  field.InputType,
		Label:      field.Label,
		Required:   field.Required,
		Translated: field.Translated(),
		Errors:     errs,
	}
	if markup {
		out.LabelHTML = inlineHTML(field.Label)
	}
	if field.ShowPlaceholder {
		out.Placeholder = field.Placeholder
	}

	switch field.Control {
	case preview.ControlCheckbox:
		out.Checked = isTruthy(value)
	case preview.ControlSelect, preview.ControlRadio:
		selected := value
		if selected == "" && field.Control == preview.ControlRadio && len(field.Options) > 0 {
			selected = field.Options[0].Value
		}
		for _, option := range field.Options {
			out.Options = append(out.Options, optionView{
				ID:       option.ID,
				Value:    option.Value,
				Label:    option.Label,
				Selected: option.Value == selected,
			})
		}
	default:
		out.Value = value
	}
	return out
}

func buildThemeView(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	view := themeView{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		CSSVars: cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		view.Stylesheet = cfg.AssetURL(StylesheetAssetKey)
	}
	return view
}

// cssVarsStyle renders custom properties as sorted declarations. Names or
// values that could break out of the style block are dropped.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if !strings.HasPrefix(key, "--") || !safeCSS(key) || !safeCSS(vars[key]) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(strings.TrimSpace(vars[key]))
		b.WriteByte(';')
	}
	return b.String()
}

func safeCSS(s string) bool {
	return strings.TrimSpace(s) != "" && !strings.ContainsAny(s, "<>{};\\")
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "on", "1", "yes":
		return true
	default:
		return false
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-formi18n/pkg/model"
	"github.com/goliatone/go-formi18n/pkg/renderers/tui"
	"github.com/goliatone/go-formi18n/pkg/session"
	"github.com/goliatone/go-formi18n/pkg/translation"
)

func runEdit(ctx context.Context, a *app, args []string) error {
	fs, df := a.newFlagSet("edit")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	sess, err := a.loadSession(df)
	if errors.Is(err, os.ErrNotExist) {
		options, optErr := a.sessionOptions(df)
		if optErr != nil {
			return optErr
		}
		sess, err = session.New(options...), nil
	}
	if err != nil {
		return err
	}

	ed := &editor{sess: sess, driver: a.driver}
	save, err := ed.Run(ctx)
	if err != nil {
		return err
	}
	if !save {
		fmt.Fprintln(a.stdout, "discarded changes")
		return nil
	}
	if err := writeDocument(df.path, sess.Serialize()); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "saved %s\n", df.path)
	return nil
}

type menuAction int

const (
	actionAddField menuAction = iota
	actionEditField
	actionRemoveField
	actionMoveField
	actionAddLanguage
	actionRemoveLanguage
	actionSwitchLanguage
	actionTranslate
	actionReconcile
	actionSave
	actionQuit
)

var menuLabels = []string{
	actionAddField:       "Add field",
	actionEditField:      "Edit field",
	actionRemoveField:    "Remove field",
	actionMoveField:      "Move field",
	actionAddLanguage:    "Add language",
	actionRemoveLanguage: "Remove language",
	actionSwitchLanguage: "Switch language",
	actionTranslate:      "Translate text",
	actionReconcile:      "Reconcile translations",
	actionSave:           "Save and quit",
	actionQuit:           "Quit without saving",
}

// editor drives a session through a PromptDriver. Rejected operations are
// reported and the menu is shown again.
type editor struct {
	sess   *session.Session
	driver tui.PromptDriver
}

// Run loops over the main menu until the user saves or quits. The boolean
// reports whether the session should be written.
func (e *editor) Run(ctx context.Context) (bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if err := e.driver.Info(ctx, e.summary()); err != nil {
			return false, err
		}

		choice, err := e.driver.Select(ctx, tui.SelectConfig{Message: "Action", Options: menuLabels, PageSize: len(menuLabels)})
		if err != nil {
			return false, err
		}

		var ok bool
		switch menuAction(choice) {
		case actionAddField:
			ok, err = e.addField(ctx)
		case actionEditField:
			ok, err = e.editField(ctx)
		case actionRemoveField:
			ok, err = e.removeField(ctx)
		case actionMoveField:
			ok, err = e.moveField(ctx)
		case actionAddLanguage:
			ok, err = e.addLanguage(ctx)
		case actionRemoveLanguage:
			ok, err = e.removeLanguage(ctx)
		case actionSwitchLanguage:
			ok, err = e.switchLanguage(ctx)
		case actionTranslate:
			ok, err = e.translate(ctx)
		case actionReconcile:
			purged, created := e.sess.Reconcile()
			ok, err = true, e.driver.Info(ctx, fmt.Sprintf("purged %d, created %d entries", purged, created))
		case actionSave:
			return true, nil
		case actionQuit:
			return false, nil
		default:
			continue
		}
		if err != nil {
			return false, err
		}
		if !ok {
			if err := e.driver.Info(ctx, "no change"); err != nil {
				return false, err
			}
		}
	}
}

func (e *editor) summary() string {
	preview := e.sess.Preview()
	return fmt.Sprintf("%s [%s] %d fields, languages: %s",
		preview.Title, e.sess.ActiveLanguage(), len(preview.Fields), strings.Join(e.sess.Languages(), ", "))
}

func (e *editor) addField(ctx context.Context) (bool, error) {
	types := model.FieldTypes()
	labels := make([]string, len(types))
	for i, t := range types {
		labels[i] = t.Title()
	}
	index, err := e.driver.Select(ctx, tui.SelectConfig{Message: "Field type", Options: labels})
	if err != nil {
		return false, err
	}
	if index < 0 || index >= len(types) {
		return false, nil
	}
	field := e.sess.AddField(types[index])
	return true, e.driver.Info(ctx, fmt.Sprintf("added %s field %s", field.Type, field.ID))
}

// pickField returns the chosen field id, or "" when the form has no fields.
func (e *editor) pickField(ctx context.Context, message string) (string, error) {
	fields := e.sess.Fields()
	if len(fields) == 0 {
		return "", nil
	}
	labels := make([]string, len(fields))
	for i, field := range fields {
		labels[i] = fmt.Sprintf("%d. %s (%s)", i+1, field.Label, field.Type)
	}
	index, err := e.driver.Select(ctx, tui.SelectConfig{Message: message, Options: labels})
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(fields) {
		return "", nil
	}
	return fields[index].ID, nil
}

func (e *editor) editField(ctx context.Context) (bool, error) {
	id, err := e.pickField(ctx, "Field to edit")
	if err != nil || id == "" {
		return false, err
	}
	field, _ := e.sess.Field(id)

	label, err := e.driver.Input(ctx, tui.InputConfig{Message: "Default label", Default: field.Label})
	if err != nil {
		return false, err
	}
	placeholder, err := e.driver.Input(ctx, tui.InputConfig{Message: "Default placeholder", Default: field.Placeholder})
	if err != nil {
		return false, err
	}
	required, err := e.driver.Confirm(ctx, tui.ConfirmConfig{Message: "Required?", Default: field.Required})
	if err != nil {
		return false, err
	}

	var patches []model.FieldPatch
	if label != field.Label {
		patches = append(patches, model.PatchLabel(label))
	}
	if placeholder != field.Placeholder {
		patches = append(patches, model.PatchPlaceholder(placeholder))
	}
	if required != field.Required {
		patches = append(patches, model.PatchRequired(required))
	}
	changed := false
	for _, patch := range patches {
		changed = e.sess.UpdateField(id, patch) || changed
	}
	return changed, nil
}

func (e *editor) removeField(ctx context.Context) (bool, error) {
	id, err := e.pickField(ctx, "Field to remove")
	if err != nil || id == "" {
		return false, err
	}
	confirmed, err := e.driver.Confirm(ctx, tui.ConfirmConfig{Message: "Remove this field?"})
	if err != nil || !confirmed {
		return false, err
	}
	return e.sess.RemoveField(id), nil
}

func (e *editor) moveField(ctx context.Context) (bool, error) {
	id, err := e.pickField(ctx, "Field to move")
	if err != nil || id == "" {
		return false, err
	}
	count := len(e.sess.Fields())
	answer, err := e.driver.Input(ctx, tui.InputConfig{
		Message: fmt.Sprintf("New position (1-%d)", count),
		Validator: func(raw string) error {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil || n < 1 || n > count {
				return fmt.Errorf("enter a number between 1 and %d", count)
			}
			return nil
		},
	})
	if err != nil {
		return false, err
	}
	position, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return false, nil
	}
	return e.sess.MoveField(id, position-1), nil
}

func (e *editor) addLanguage(ctx context.Context) (bool, error) {
	code, err := e.driver.Input(ctx, tui.InputConfig{Message: "Language code", Help: "for example es, fr, pt-br"})
	if err != nil {
		return false, err
	}
	if !e.sess.AddLanguage(code) {
		return false, nil
	}
	code = translation.NormalizeCode(code)
	return true, e.driver.Info(ctx, fmt.Sprintf("added %s (%s)", code, translation.DisplayName(code)))
}

// pickLanguage offers the session languages, optionally without the base.
func (e *editor) pickLanguage(ctx context.Context, message string, includeBase bool) (string, error) {
	var codes, labels []string
	for _, option := range e.sess.LanguageOptions() {
		if option.Code == e.sess.BaseLanguage() && !includeBase {
			continue
		}
		label := fmt.Sprintf("%s (%s)", option.Label, option.Code)
		if option.Active {
			label += " [active]"
		}
		codes = append(codes, option.Code)
		labels = append(labels, label)
	}
	if len(codes) == 0 {
		return "", nil
	}
	index, err := e.driver.Select(ctx, tui.SelectConfig{Message: message, Options: labels})
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(codes) {
		return "", nil
	}
	return codes[index], nil
}

func (e *editor) removeLanguage(ctx context.Context) (bool, error) {
	code, err := e.pickLanguage(ctx, "Language to remove", false)
	if err != nil || code == "" {
		return false, err
	}
	return e.sess.RemoveLanguage(code), nil
}

func (e *editor) switchLanguage(ctx context.Context) (bool, error) {
	code, err := e.pickLanguage(ctx, "Active language", true)
	if err != nil || code == "" {
		return false, err
	}
	return e.sess.SetActiveLanguage(code), nil
}

// translate edits text of the active language: the form title, the submit
// button, or a field's label and placeholder.
func (e *editor) translate(ctx context.Context) (bool, error) {
	active := e.sess.ActiveLanguage()
	record, _ := e.sess.Translation(active)
	fields := e.sess.Fields()

	options := []string{"Form title", "Submit button"}
	for _, field := range fields {
		options = append(options, "Field: "+field.Label)
	}
	index, err := e.driver.Select(ctx, tui.SelectConfig{Message: fmt.Sprintf("Text to translate (%s)", active), Options: options})
	if err != nil {
		return false, err
	}

	switch {
	case index == 0:
		return e.translateText(ctx, "Form title", record.FormTitle, translation.TargetFormTitle, "")
	case index == 1:
		return e.translateText(ctx, "Submit button", record.SubmitButton, translation.TargetSubmitButton, "")
	case index >= 2 && index-2 < len(fields):
		field := fields[index-2]
		entry, _ := record.Field(field.ID)
		ok, err := e.translateText(ctx, "Label", entry.Label, translation.TargetFieldLabel, field.ID)
		if err != nil || !field.Type.HasPlaceholder() {
			return ok, err
		}
		placeholderOK, err := e.translateText(ctx, "Placeholder", entry.Placeholder, translation.TargetFieldPlaceholder, field.ID)
		return ok || placeholderOK, err
	default:
		return false, nil
	}
}

func (e *editor) translateText(ctx context.Context, message, current string, target translation.Target, fieldID string) (bool, error) {
	value, err := e.driver.Input(ctx, tui.InputConfig{Message: message, Default: current})
	if err != nil {
		return false, err
	}
	return e.sess.UpdateTranslationText(e.sess.ActiveLanguage(), target, fieldID, value), nil
}


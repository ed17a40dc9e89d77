package model

// NewField returns a field with the editor defaults for the supplied id and
// type. Unsupported types fall back to FieldTypeText.
func NewField(id string, fieldType FieldType) FormField {
	if !fieldType.Valid() {
		fieldType = FieldTypeText
	}
	return FormField{
		ID:          id,
		Type:        fieldType,
		Label:       DefaultLabel,
		Placeholder: DefaultPlaceholder,
	}
}

// Apply merges the patch into field and reports whether anything changed. A
// patch carrying an unsupported type leaves the type as is.
func (p FieldPatch) Apply(field *FormField) bool {
	if field == nil {
		return false
	}
	changed := false
	if p.Type != nil && p.Type.Valid() && *p.Type != field.Type {
		field.Type = *p.Type
		changed = true
	}
	if p.Label != nil && *p.Label != field.Label {
		field.Label = *p.Label
		changed = true
	}
	if p.Placeholder != nil && *p.Placeholder != field.Placeholder {
		field.Placeholder = *p.Placeholder
		changed = true
	}
	if p.Required != nil && *p.Required != field.Required {
		field.Required = *p.Required
		changed = true
	}
	return changed
}

// Empty reports whether the patch would not touch any attribute.
func (p FieldPatch) Empty() bool {
	return p.Type == nil && p.Label == nil && p.Placeholder == nil && p.Required == nil
}

// PatchLabel is shorthand for a patch that only sets the label.
func PatchLabel(label string) FieldPatch {
	return FieldPatch{Label: &label}
}

// PatchPlaceholder is shorthand for a patch that only sets the placeholder.
func PatchPlaceholder(placeholder string) FieldPatch {
	return FieldPatch{Placeholder: &placeholder}
}

// PatchRequired is shorthand for a patch that only toggles required.
func PatchRequired(required bool) FieldPatch {
	return FieldPatch{Required: &required}
}

// PatchType is shorthand for a patch that only changes the type.
func PatchType(fieldType FieldType) FieldPatch {
	return FieldPatch{Type: &fieldType}
}

// CloneFields returns a copy of the slice. FormField holds no references so a
// shallow copy is enough. The result is never nil.
func CloneFields(fields []FormField) []FormField {
	out := make([]FormField, len(fields))
	copy(out, fields)
	return out
}

// IDs returns the ids of fields in order.
func IDs(fields []FormField) []string {
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, field.ID)
	}
	return out
}

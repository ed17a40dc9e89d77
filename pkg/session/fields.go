package session

import (
	"github.com/goliatone/go-formi18n/pkg/model"
)

// Fields returns a copy of the ordered field list.
func (s *Session) Fields() []model.FormField {
	return model.CloneFields(s.fields)
}

// Field returns the field with id.
func (s *Session) Field(id string) (model.FormField, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.fields[i], true
	}
	return model.FormField{}, false
}

// AddField appends a field of fieldType with a fresh id and the editor
// defaults. Unsupported types become text fields.
func (s *Session) AddField(fieldType model.FieldType) model.FormField {
	field := model.NewField(s.issueID(), fieldType)
	s.fields = append(s.fields, field)
	if s.policy == OrphanPolicyReconcile {
		s.store.Backfill(s.fields)
	}
	return field
}

// RemoveField deletes the field with id. Under OrphanPolicyPreserve its
// translation entries stay in every language.
func (s *Session) RemoveField(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return s.reject("removeField", "unknown field", "field_id", id)
	}
	s.fields = append(s.fields[:i], s.fields[i+1:]...)
	if s.policy == OrphanPolicyReconcile {
		s.store.Purge(s.fields)
	}
	return true
}

// UpdateField merges patch into the field with id. Translation entries are
// independent of field defaults and are not touched.
func (s *Session) UpdateField(id string, patch model.FieldPatch) bool {
	i := s.indexOf(id)
	if i < 0 {
		return s.reject("updateField", "unknown field", "field_id", id)
	}
	if patch.Empty() {
		return s.reject("updateField", "empty patch", "field_id", id)
	}
	patch.Apply(&s.fields[i])
	return true
}

// ReorderFields replaces the field order with ids, which must be a
// permutation of the current ids. Any other sequence is rejected.
func (s *Session) ReorderFields(ids []string) bool {
	if len(ids) != len(s.fields) {
		return s.reject("reorderFields", "id count mismatch", "want", len(s.fields), "got", len(ids))
	}

	byID := make(map[string]model.FormField, len(s.fields))
	for _, field := range s.fields {
		byID[field.ID] = field
	}

	reordered := make([]model.FormField, 0, len(ids))
	for _, id := range ids {
		field, ok := byID[id]
		if !ok {
			return s.reject("reorderFields", "unknown or repeated id", "field_id", id)
		}
		delete(byID, id)
		reordered = append(reordered, field)
	}

	s.fields = reordered
	return true
}

// MoveField moves the field with id to index, clamped to the list bounds.
func (s *Session) MoveField(id string, index int) bool {
	from := s.indexOf(id)
	if from < 0 {
		return s.reject("moveField", "unknown field", "field_id", id)
	}
	index = max(0, min(index, len(s.fields)-1))

	ids := model.IDs(s.fields)
	ids = append(ids[:from], ids[from+1:]...)
	ids = append(ids[:index], append([]string{id}, ids[index:]...)...)
	return s.ReorderFields(ids)
}

func (s *Session) indexOf(id string) int {
	for i, field := range s.fields {
		if field.ID == id {
			return i
		}
	}
	return -1
}

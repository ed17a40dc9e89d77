package tui

import (
	"strconv"
	"strings"
)

// State tracks collected values and server-provided errors keyed by field
// id.
type State struct {
	values map[string]any
	errors map[string][]string
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string]string, errs map[string][]string) *State {
	s := &State{
		values: make(map[string]any, len(prefill)),
		errors: make(map[string][]string, len(errs)),
	}
	for id, value := range prefill {
		s.values[id] = value
	}
	for id, messages := range errs {
		s.errors[id] = append([]string(nil), messages...)
	}
	return s
}

// Values returns the collected values.
func (s *State) Values() map[string]any {
	return s.values
}

// ErrorsFor returns the errors attached to field id.
func (s *State) ErrorsFor(id string) []string {
	return s.errors[id]
}

// Set records the value for field id and clears its errors.
func (s *State) Set(id string, value any) {
	s.values[id] = value
	delete(s.errors, id)
}

// String returns the value for id formatted as a prompt default.
func (s *State) String(id string) string {
	switch v := s.values[id].(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// Bool returns the value for id as a checkbox default.
func (s *State) Bool(id string) bool {
	switch v := s.values[id].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "yes":
			return true
		}
	}
	return false
}

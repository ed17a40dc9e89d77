// Package model defines the form field schema edited by a session. A form is
// an ordered slice of FormField values; the order of the slice is the order
// fields render in. Field ids are opaque, assigned once by the session, and
// never reused. Every field carries its own default label and placeholder,
// which double as the fallback text when a language has no translation entry
// for the field. Types are a closed set (see FieldType) and renderers switch
// on them to pick a control.
package model

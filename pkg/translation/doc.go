// Package translation holds the per-language text attached to a form: a
// Store keyed by lowercase language code, the Translation record for each
// language, and the Resolver that turns (translations, language, field) into
// displayable text.
//
// The store reacts to the field set but never owns it. Entries for removed
// fields may linger and entries for new fields may be missing; every reader
// goes through the Resolver, which falls back from the translation entry to
// the field default and finally to a fixed literal, so lookups never fail.
package translation

// Package session owns the editing state of a multilingual form: the ordered
// field list, the translation store and the active language. Field edits and
// translation edits are methods on Session; there is no ambient state.
//
// Every editing operation is synchronous and reports whether it changed
// anything. Invalid input (unknown ids, duplicate or empty language codes,
// removing the base language) is rejected silently: the method returns false,
// logs at debug level, and leaves the session untouched.
package session

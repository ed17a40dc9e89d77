// Package orchestrator wires the session -> preview -> renderer pipeline
// behind a single entry point. It picks the preview language, applies
// transformers, resolves go-theme selections into renderer configuration and
// dispatches to a named renderer.
package orchestrator

package session

import (
	"fmt"
	"log/slog"

	"github.com/goliatone/go-formi18n/pkg/export"
	"github.com/goliatone/go-formi18n/pkg/model"
	"github.com/goliatone/go-formi18n/pkg/preview"
	"github.com/goliatone/go-formi18n/pkg/translation"
)

// Session is the editing state of one form. It is not safe for concurrent
// use; callers sharing a session across goroutines must serialise access.
type Session struct {
	fields []model.FormField
	store  *translation.Store
	active string

	newID  IDGenerator
	issued map[string]struct{}
	policy OrphanPolicy
	logger *slog.Logger
}

// New returns an empty session holding only the base language.
func New(options ...Option) *Session {
	cfg := applyOptions(options)
	store := translation.NewStore(cfg.base, cfg.baseRecord)
	return newSession(cfg, nil, store)
}

// FromDocument restores a session from an exported document. The active
// language starts at the base language.
func FromDocument(doc export.Document, options ...Option) (*Session, error) {
	cfg := applyOptions(options)

	normalized, err := doc.Normalize()
	if err != nil {
		return nil, fmt.Errorf("session: restore: %w", err)
	}
	if err := normalized.Validate(cfg.base); err != nil {
		return nil, fmt.Errorf("session: restore: %w", err)
	}
	store, err := translation.Restore(cfg.base, normalized.Translations)
	if err != nil {
		return nil, fmt.Errorf("session: restore: %w", err)
	}

	s := newSession(cfg, normalized.FormFields, store)
	for _, record := range normalized.Translations {
		for id := range record.Fields {
			s.issued[id] = struct{}{}
		}
	}
	if s.policy == OrphanPolicyReconcile {
		s.Reconcile()
	}
	return s, nil
}

func applyOptions(options []Option) config {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}

func newSession(cfg config, fields []model.FormField, store *translation.Store) *Session {
	s := &Session{
		fields: model.CloneFields(fields),
		store:  store,
		active: store.Base(),
		newID:  cfg.newID,
		issued: make(map[string]struct{}, len(fields)),
		policy: cfg.policy,
		logger: cfg.logger,
	}
	for _, field := range s.fields {
		s.issued[field.ID] = struct{}{}
	}
	return s
}

// Policy returns the orphan policy in effect.
func (s *Session) Policy() OrphanPolicy {
	return s.policy
}

// Serialize returns the {formFields, translations} snapshot of the session.
func (s *Session) Serialize() export.Document {
	return export.Document{
		FormFields:   model.CloneFields(s.fields),
		Translations: s.store.Snapshot(),
	}
}

// Preview projects the session in the active language.
func (s *Session) Preview() preview.Form {
	return s.PreviewIn(s.active)
}

// PreviewIn projects the session in language without changing the active
// language. Unknown languages resolve to field defaults and literals.
func (s *Session) PreviewIn(language string) preview.Form {
	return preview.ProjectStore(s.fields, s.store, language)
}

// Coverage reports, per language, the ids of fields lacking a translated
// label. Fully covered languages are omitted.
func (s *Session) Coverage() map[string][]string {
	return s.store.Missing(s.fields)
}

// Reconcile purges entries of removed fields and backfills entries for every
// current field in every language, regardless of policy. It returns how many
// entries were purged and created.
func (s *Session) Reconcile() (purged, created int) {
	purged = s.store.Purge(s.fields)
	created = s.store.Backfill(s.fields)
	return purged, created
}

func (s *Session) reject(operation, reason string, attrs ...any) bool {
	args := append([]any{"operation", operation, "reason", reason}, attrs...)
	s.logger.Debug("operation rejected", args...)
	return false
}

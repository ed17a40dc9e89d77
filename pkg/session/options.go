package session

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-formi18n/pkg/translation"
)

// DefaultFormTitle seeds the base translation of an empty session.
const DefaultFormTitle = "Untitled Form"

// OrphanPolicy controls how translation entries follow field additions and
// removals.
type OrphanPolicy string

const (
	// OrphanPolicyPreserve leaves entries of removed fields in place and does
	// not backfill entries for new fields. Readers fall back to field
	// defaults through the resolver.
	OrphanPolicyPreserve OrphanPolicy = "preserve"
	// OrphanPolicyReconcile purges entries of removed fields and backfills
	// entries for new fields in every language after each add/remove.
	OrphanPolicyReconcile OrphanPolicy = "reconcile"
)

// ParseOrphanPolicy matches raw against the known policies.
func ParseOrphanPolicy(raw string) (OrphanPolicy, bool) {
	switch OrphanPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case OrphanPolicyPreserve:
		return OrphanPolicyPreserve, true
	case OrphanPolicyReconcile:
		return OrphanPolicyReconcile, true
	default:
		return "", false
	}
}

// IDGenerator returns a fresh field id on every call.
type IDGenerator func() string

// UUIDs generates random UUIDv4 field ids.
func UUIDs() IDGenerator {
	return uuid.NewString
}

// Option configures a Session.
type Option func(*config)

type config struct {
	base       string
	baseRecord translation.Translation
	newID      IDGenerator
	policy     OrphanPolicy
	logger     *slog.Logger
}

func defaultConfig() config {
	return config{
		base: translation.DefaultBaseLanguage,
		baseRecord: translation.Translation{
			FormTitle:    DefaultFormTitle,
			SubmitButton: translation.FallbackSubmitButton,
			Fields:       map[string]translation.FieldText{},
		},
		newID:  UUIDs(),
		policy: OrphanPolicyPreserve,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithBaseLanguage overrides the non-removable base language code.
func WithBaseLanguage(code string) Option {
	return func(cfg *config) {
		if code = translation.NormalizeCode(code); code != "" {
			cfg.base = code
		}
	}
}

// WithBaseTranslation seeds the base language record of a new session. It is
// ignored when a session is restored from a document.
func WithBaseTranslation(record translation.Translation) Option {
	return func(cfg *config) {
		cfg.baseRecord = record.Clone()
	}
}

// WithIDGenerator replaces the UUID field id generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(cfg *config) {
		if gen != nil {
			cfg.newID = gen
		}
	}
}

// WithOrphanPolicy selects how translations track field changes.
func WithOrphanPolicy(policy OrphanPolicy) Option {
	return func(cfg *config) {
		if policy == OrphanPolicyPreserve || policy == OrphanPolicyReconcile {
			cfg.policy = policy
		}
	}
}

// WithLogger routes rejected-operation diagnostics to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmoraes/inscrito/internal/journal"
	"github.com/dmoraes/inscrito/internal/model"
	"github.com/dmoraes/inscrito/internal/store"
)

// Engine executes all catalog, enrollment, and profile operations against
// the store, keeping the three facets of every enrollment consistent.
type Engine struct {
	store   *store.Store
	journal *journal.Journal
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures the engine.
type Option func(*Engine)

// WithJournal attaches an audit journal. Journal appends are best-effort:
// a failure is logged and never fails the mutation it describes.
func WithJournal(j *journal.Journal) Option {
	return func(e *Engine) { e.journal = j }
}

// WithNow overrides the clock used for status derivation. For tests.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger overrides the engine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates an engine over the given store.
func New(st *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:  st,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// record appends an audit entry if a journal is attached. The mutation and
// its document saves have already happened by the time record runs, so a
// journal failure is reported once and swallowed.
func (e *Engine) record(ctx context.Context, op journal.Op, entity, key string, details map[string]string) {
	if e.journal == nil {
		return
	}
	err := e.journal.Append(ctx, journal.Entry{
		Op:        op,
		Entity:    entity,
		EntityKey: key,
		Details:   details,
	})
	if err != nil {
		e.logger.Warn("journal append failed", "op", op, "entity", entity, "key", key, "error", err)
	}
}

// loadProfiles loads both profile collections.
func (e *Engine) loadProfiles() (students, coordinators model.ProfileMap, err error) {
	students, err = e.store.LoadStudents()
	if err != nil {
		return nil, nil, err
	}
	coordinators, err = e.store.LoadCoordinators()
	if err != nil {
		return nil, nil, err
	}
	return students, coordinators, nil
}

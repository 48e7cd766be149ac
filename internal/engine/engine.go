package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"ruleguard/internal/identity"
	"ruleguard/internal/storage"
)

// Engine owns the in-memory Settings, Progress and Rules and exposes
// every mutation as an explicit operation. All mutations are synchronous:
// input is validated first, state is mutated in memory, then persisted
// best-effort. The in-memory value stays authoritative when a write
// fails; failures are logged, never returned to the caller.
//
// The engine is notification-agnostic: a caller reacting to a store
// change event re-reads the affected entity via Reload (last-write-wins
// at whole-entity granularity).
type Engine struct {
	store storage.Store
	id    identity.Identity
	log   *logrus.Logger

	settings storage.Settings
	progress storage.Progress
	rules    []storage.Rule

	now func() time.Time
}

// New loads Settings, Progress and Rules from the store, falling back to
// defaults for missing or malformed blobs.
func New(ctx context.Context, store storage.Store, provider identity.Provider, log *logrus.Logger) (*Engine, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	e := &Engine{
		store: store,
		id:    provider.Whoami(),
		log:   log,
		now:   time.Now,
	}
	e.loadSettings(ctx)
	e.loadProgress(ctx)
	e.loadRules(ctx)
	return e, nil
}

func (e *Engine) Identity() identity.Identity { return e.id }

func (e *Engine) Settings() storage.Settings { return e.settings }

func (e *Engine) Progress() storage.Progress { return e.progress }

func (e *Engine) Rules() []storage.Rule {
	out := make([]storage.Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// Reload re-reads one entity from the store. It is the reconciliation
// hook for store change notifications: the event names a key, the engine
// re-derives state by reading, never by trusting an event payload.
func (e *Engine) Reload(ctx context.Context, key string) {
	switch key {
	case storage.KeySettings:
		e.loadSettings(ctx)
	case storage.KeyProgress:
		e.loadProgress(ctx)
	case storage.KeyRules:
		e.loadRules(ctx)
	}
}

func (e *Engine) loadSettings(ctx context.Context) {
	data, ok, err := e.store.Get(ctx, storage.KeySettings)
	if err != nil || !ok {
		if err != nil {
			e.log.WithError(err).Warn("read settings failed, using defaults")
		}
		e.settings = storage.DefaultSettings()
		return
	}
	s, err := storage.DecodeSettings(data)
	if err != nil {
		e.log.WithError(err).Warn("stored settings malformed, using defaults")
		e.settings = storage.DefaultSettings()
		return
	}
	e.settings = s
}

func (e *Engine) loadProgress(ctx context.Context) {
	data, ok, err := e.store.Get(ctx, storage.KeyProgress)
	if err != nil || !ok {
		if err != nil {
			e.log.WithError(err).Warn("read progress failed, using defaults")
		}
		e.progress = storage.DefaultProgress(e.settings)
		return
	}
	p, err := storage.DecodeProgress(data)
	if err != nil {
		e.log.WithError(err).Warn("stored progress malformed, using defaults")
		e.progress = storage.DefaultProgress(e.settings)
		return
	}
	e.progress = p
}

func (e *Engine) loadRules(ctx context.Context) {
	data, ok, err := e.store.Get(ctx, storage.KeyRules)
	if err != nil || !ok {
		if err != nil {
			e.log.WithError(err).Warn("read rules failed, starting empty")
		}
		e.rules = nil
		return
	}
	rules, err := storage.DecodeRules(data)
	if err != nil {
		e.log.WithError(err).Warn("stored rules malformed, starting empty")
		e.rules = nil
		return
	}
	e.rules = rules
}

// persist writes one entity best-effort. Write failures (quota, broken
// store) must not corrupt in-memory state, so they are only logged.
func (e *Engine) persist(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		e.log.WithError(err).WithField("key", key).Warn("marshal failed, skipping persist")
		return
	}
	if err := e.store.Set(ctx, key, data); err != nil {
		e.log.WithError(err).WithField("key", key).Warn("persist failed, in-memory state kept")
	}
}

func (e *Engine) persistSettings(ctx context.Context) { e.persist(ctx, storage.KeySettings, e.settings) }
func (e *Engine) persistProgress(ctx context.Context) { e.persist(ctx, storage.KeyProgress, e.progress) }
func (e *Engine) persistRules(ctx context.Context) {
	rules := e.rules
	if rules == nil {
		rules = []storage.Rule{}
	}
	e.persist(ctx, storage.KeyRules, rules)
}

// Achievements returns the persisted badge ids, oldest first.
func (e *Engine) Achievements(ctx context.Context) []string {
	data, ok, err := e.store.Get(ctx, storage.KeyAchievements)
	if err != nil || !ok {
		if err != nil {
			e.log.WithError(err).Warn("read achievements failed")
		}
		return nil
	}
	var badges []string
	if err := json.Unmarshal(data, &badges); err != nil {
		e.log.WithError(err).Warn("stored achievements malformed")
		return nil
	}
	return badges
}

// awardBadge appends id to the persisted badge list if absent. Badges are
// additive, never revoked.
func (e *Engine) awardBadge(ctx context.Context, id string) bool {
	badges := e.Achievements(ctx)
	for _, b := range badges {
		if b == id {
			return false
		}
	}
	badges = append(badges, id)
	e.persist(ctx, storage.KeyAchievements, badges)
	return true
}

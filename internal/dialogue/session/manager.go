package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/leadgate-ai/dialogue-core/internal/dialogue/metrics"
	"github.com/leadgate-ai/dialogue-core/internal/dialogue/model"
	logx "github.com/leadgate-ai/dialogue-core/pkg/logger"
)

// Manager wraps the durable repository with the availability-over-durability
// policy: when the backing store is unreachable, a turn proceeds on an
// in-memory state instead of failing. In-flight sessions silently restart at
// WELCOME if both the store and the fallback have lost them; this continuity
// loss is accepted and logged, not retried.
type Manager struct {
	repo     model.SessionRepository
	ttl      time.Duration
	fallback *gocache.Cache
	agg      *metrics.Aggregator
	now      func() time.Time
}

// NewManager creates a session manager with the given sliding TTL.
func NewManager(repo model.SessionRepository, ttl time.Duration, agg *metrics.Aggregator) *Manager {
	return &Manager{
		repo:     repo,
		ttl:      ttl,
		fallback: gocache.New(ttl, 2*ttl),
		agg:      agg,
		now:      time.Now,
	}
}

// GetOrInit loads the session state, defaulting to a fresh WELCOME state on
// miss or corruption. The second return value reports degraded mode (the
// backing store failed and the state came from memory); the third reports
// that a corrupt record was discarded, so per-session side data such as the
// transcript should be discarded with it.
func (m *Manager) GetOrInit(ctx context.Context, sessionID string) (*model.SessionState, bool, bool) {
	state, err := m.repo.Get(ctx, sessionID)
	if err != nil {
		logx.Warn().Err(err).Str("sessionID", sessionID).
			Msg("session store unavailable, degrading to in-memory state")
		m.agg.Inc(metrics.CounterStoreDegradations)
		return m.fromFallback(sessionID), true, false
	}

	if state == nil {
		return model.NewSessionState(m.now()), false, false
	}

	if !state.Current.Known() {
		logx.Warn().Str("sessionID", sessionID).Str("state", state.Current.String()).
			Msg("unknown session state, reinitializing")
		m.agg.Inc(metrics.CounterCorruptSessions)
		return model.NewSessionState(m.now()), false, true
	}

	// Sliding expiry: every successful read resets the full TTL window.
	if err := m.repo.RefreshTTL(ctx, sessionID, m.ttl); err != nil {
		logx.Warn().Err(err).Str("sessionID", sessionID).Msg("failed to refresh session TTL")
	}

	return state, false, false
}

// Save persists the updated state. In degraded mode, or when the write
// fails, the state is parked in the in-memory fallback so the session can
// survive a short store outage.
func (m *Manager) Save(ctx context.Context, sessionID string, state *model.SessionState, degraded bool) error {
	if !degraded {
		if err := m.repo.Set(ctx, sessionID, state, m.ttl); err == nil {
			return nil
		} else {
			logx.Warn().Err(err).Str("sessionID", sessionID).
				Msg("session store write failed, parking state in memory")
			m.agg.Inc(metrics.CounterStoreDegradations)
		}
	}
	m.fallback.Set(sessionID, state, gocache.DefaultExpiration)
	return nil
}

// TTL exposes the configured sliding window.
func (m *Manager) TTL() time.Duration { return m.ttl }

func (m *Manager) fromFallback(sessionID string) *model.SessionState {
	if v, ok := m.fallback.Get(sessionID); ok {
		if state, ok := v.(*model.SessionState); ok && state.Current.Known() {
			return state
		}
	}
	return model.NewSessionState(m.now())
}

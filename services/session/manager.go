package session

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"voicedesk/models"

	"go.uber.org/zap"
)

// DefaultManager reads through the primary store with the in-process
// fallback behind it. A nil primary store means permanent degraded mode.
type DefaultManager struct {
	Primary         Store
	Fallback        *MemoryStore
	TTL             time.Duration
	DefaultLanguage string
	Logger          *zap.Logger
}

// NewManager assembles a session manager with its own fallback store.
func NewManager(primary Store, ttl time.Duration, defaultLanguage string, logger *zap.Logger) *DefaultManager {
	return &DefaultManager{
		Primary:         primary,
		Fallback:        NewMemoryStore(),
		TTL:             ttl,
		DefaultLanguage: defaultLanguage,
		Logger:          logger,
	}
}

// Load returns the session for a call, creating and persisting a default one
// on first contact. Store errors are logged and swallowed.
func (m *DefaultManager) Load(ctx context.Context, callSid string) *models.Session {
	key := KeyPrefix + callSid

	if m.Primary != nil {
		data, err := m.Primary.Get(ctx, key)
		switch {
		case err == nil:
			if s := m.decode(data, key); s != nil {
				return s
			}
		case err != ErrNotFound:
			m.Logger.Warn("primary session store unavailable, using memory fallback",
				zap.String("callSid", callSid), zap.Error(err))
		}
	}

	if data, err := m.Fallback.Get(ctx, key); err == nil {
		if s := m.decode(data, key); s != nil {
			return s
		}
	}

	s := models.NewSession(callSid, m.DefaultLanguage)
	m.Save(ctx, callSid, s)
	return s
}

// Save refreshes UpdatedAt and writes through to the primary store; on
// primary failure the session lands in the fallback instead. Last writer wins.
func (m *DefaultManager) Save(ctx context.Context, callSid string, s *models.Session) {
	s.UpdatedAt = time.Now()
	key := KeyPrefix + callSid

	data, err := json.Marshal(s)
	if err != nil {
		m.Logger.Error("failed to marshal session", zap.String("callSid", callSid), zap.Error(err))
		return
	}

	if m.Primary != nil {
		err := m.Primary.Set(ctx, key, data, m.TTL)
		if err == nil {
			return
		}
		m.Logger.Warn("primary session store write failed, using memory fallback",
			zap.String("callSid", callSid), zap.Error(err))
	}

	if err := m.Fallback.Set(ctx, key, data, 0); err != nil {
		m.Logger.Error("fallback session store write failed", zap.String("callSid", callSid), zap.Error(err))
	}
}

// Update loads the session, applies the patch and saves the result.
func (m *DefaultManager) Update(ctx context.Context, callSid string, patch models.SessionPatch) *models.Session {
	s := m.Load(ctx, callSid)
	patch.Apply(s)
	m.Save(ctx, callSid, s)
	return s
}

// Delete removes the session from both stores, best-effort.
func (m *DefaultManager) Delete(ctx context.Context, callSid string) {
	key := KeyPrefix + callSid

	if m.Primary != nil {
		if err := m.Primary.Del(ctx, key); err != nil {
			m.Logger.Warn("primary session store delete failed",
				zap.String("callSid", callSid), zap.Error(err))
		}
	}
	_ = m.Fallback.Del(ctx, key)
}

// Extend refreshes the primary-store TTL without rewriting the value.
// Fallback entries have no TTL to extend.
func (m *DefaultManager) Extend(ctx context.Context, callSid string, ttl time.Duration) {
	if m.Primary == nil {
		return
	}
	if ttl <= 0 {
		ttl = m.TTL
	}
	if err := m.Primary.Expire(ctx, KeyPrefix+callSid, ttl); err != nil {
		m.Logger.Warn("failed to extend session TTL", zap.String("callSid", callSid), zap.Error(err))
	}
}

// ActiveSessionCount reports the number of live sessions, primary-derived
// when the store is reachable.
func (m *DefaultManager) ActiveSessionCount(ctx context.Context) int {
	return len(m.ListActiveSessionIDs(ctx))
}

// ListActiveSessionIDs returns the call SIDs with a live session.
func (m *DefaultManager) ListActiveSessionIDs(ctx context.Context) []string {
	var keys []string
	var err error

	if m.Primary != nil {
		keys, err = m.Primary.Keys(ctx, KeyPrefix)
	}
	if m.Primary == nil || err != nil {
		if err != nil {
			m.Logger.Warn("primary session store keys scan failed, using memory fallback", zap.Error(err))
		}
		keys, _ = m.Fallback.Keys(ctx, KeyPrefix)
	}

	ids := make([]string, 0, len(keys))
	for _, key := range keys {
		ids = append(ids, strings.TrimPrefix(key, KeyPrefix))
	}
	return ids
}

// SweepExpiredFallback drops fallback entries older than maxAge. This is the
// only reclamation path for the fallback store.
func (m *DefaultManager) SweepExpiredFallback(maxAge time.Duration) int {
	removed := m.Fallback.Sweep(maxAge)
	if removed > 0 {
		m.Logger.Info("swept expired fallback sessions", zap.Int("removed", removed))
	}
	return removed
}

// Healthy reports whether the primary store answers a ping.
func (m *DefaultManager) Healthy(ctx context.Context) bool {
	return m.Primary != nil && m.Primary.Ping(ctx) == nil
}

// decode unmarshals a stored session. Corrupt values are logged and treated
// as a miss.
func (m *DefaultManager) decode(data []byte, key string) *models.Session {
	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		m.Logger.Warn("corrupt session data, treating as miss", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &s
}

package session

import (
	"context"
	"errors"
	"time"

	"voicedesk/models"
)

// KeyPrefix namespaces session keys in the backing stores.
const KeyPrefix = "session:"

// ErrNotFound is returned by stores when a key has no value.
var ErrNotFound = errors.New("session not found")

// Store is a thin keyed-expiry store. The Redis-backed primary and the
// in-process fallback both implement it.
type Store interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Ping(ctx context.Context) error
}

// Manager unifies the primary store and the in-process fallback behind one
// interface. No operation surfaces a store error to the caller: primary
// unavailability is a degraded mode, and a usable session is always returned.
type Manager interface {
	Load(ctx context.Context, callSid string) *models.Session
	Save(ctx context.Context, callSid string, s *models.Session)
	Update(ctx context.Context, callSid string, patch models.SessionPatch) *models.Session
	Delete(ctx context.Context, callSid string)
	Extend(ctx context.Context, callSid string, ttl time.Duration)
	ActiveSessionCount(ctx context.Context) int
	ListActiveSessionIDs(ctx context.Context) []string
	SweepExpiredFallback(maxAge time.Duration) int
	Healthy(ctx context.Context) bool
}

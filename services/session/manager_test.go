package session

import (
	"context"
	"testing"
	"time"

	"voicedesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T) (*DefaultManager, func()) {
	t.Helper()
	mr, store := setupMiniRedis(t)
	mgr := NewManager(store, time.Hour, "english", zap.NewNop())
	return mgr, mr.Close
}

func TestManagerLoadCreatesDefaultSession(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	s := mgr.Load(ctx, "CA-new")

	assert.Equal(t, "CA-new", s.CallSid)
	assert.Equal(t, models.StateGreeting, s.State)
	assert.Equal(t, 0, s.RetryCount)
	assert.Equal(t, models.BookingDraft{}, s.Booking)
	assert.Equal(t, "english", s.Language)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestManagerSaveLoadRoundTrip(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	s := mgr.Load(ctx, "CA1")
	s.State = models.StateBookingTime
	s.RetryCount = 1
	s.Booking = models.BookingDraft{Date: "March 5, 2026"}
	mgr.Save(ctx, "CA1", s)

	loaded := mgr.Load(ctx, "CA1")
	assert.Equal(t, models.StateBookingTime, loaded.State)
	assert.Equal(t, 1, loaded.RetryCount)
	assert.Equal(t, "March 5, 2026", loaded.Booking.Date)
	assert.Equal(t, s.Language, loaded.Language)
	assert.WithinDuration(t, s.UpdatedAt, loaded.UpdatedAt, time.Second)
}

func TestManagerUpdateAppliesPatch(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	mgr.Load(ctx, "CA1")
	state := models.StateMainMenu
	updated := mgr.Update(ctx, "CA1", models.SessionPatch{State: &state})

	assert.Equal(t, models.StateMainMenu, updated.State)
	// Fields outside the patch are unchanged.
	assert.Equal(t, 0, updated.RetryCount)
	assert.Equal(t, "english", updated.Language)

	loaded := mgr.Load(ctx, "CA1")
	assert.Equal(t, models.StateMainMenu, loaded.State)
}

func TestManagerDegradedMode(t *testing.T) {
	mgr, closeRedis := newTestManager(t)
	ctx := context.Background()

	// Kill the primary store: every operation must still succeed.
	closeRedis()

	s := mgr.Load(ctx, "CA-degraded")
	assert.Equal(t, models.StateGreeting, s.State)

	s.State = models.StateMainMenu
	mgr.Save(ctx, "CA-degraded", s)

	loaded := mgr.Load(ctx, "CA-degraded")
	assert.Equal(t, models.StateMainMenu, loaded.State)

	assert.Equal(t, 1, mgr.ActiveSessionCount(ctx))
	assert.Equal(t, []string{"CA-degraded"}, mgr.ListActiveSessionIDs(ctx))
	assert.False(t, mgr.Healthy(ctx))

	mgr.Delete(ctx, "CA-degraded")
	assert.Equal(t, 0, mgr.ActiveSessionCount(ctx))
}

func TestManagerNilPrimaryIsPermanentDegradedMode(t *testing.T) {
	mgr := NewManager(nil, time.Hour, "english", zap.NewNop())
	ctx := context.Background()

	s := mgr.Load(ctx, "CA1")
	assert.Equal(t, models.StateGreeting, s.State)
	assert.Equal(t, 1, mgr.ActiveSessionCount(ctx))
	assert.False(t, mgr.Healthy(ctx))
}

func TestManagerCorruptValueTreatedAsMiss(t *testing.T) {
	mr, store := setupMiniRedis(t)
	mgr := NewManager(store, time.Hour, "english", zap.NewNop())
	ctx := context.Background()

	require.NoError(t, mr.Set("session:CA1", "{not json"))

	s := mgr.Load(ctx, "CA1")
	assert.Equal(t, models.StateGreeting, s.State)
	assert.Equal(t, 0, s.RetryCount)
}

func TestManagerExtendRefreshesTTL(t *testing.T) {
	mr, store := setupMiniRedis(t)
	mgr := NewManager(store, time.Minute, "english", zap.NewNop())
	ctx := context.Background()

	mgr.Load(ctx, "CA1")

	mr.FastForward(45 * time.Second)
	mgr.Extend(ctx, "CA1", 0)

	// Still alive past the original deadline after the extension.
	mr.FastForward(45 * time.Second)
	_, err := store.Get(ctx, "session:CA1")
	assert.NoError(t, err)

	mr.FastForward(30 * time.Second)
	_, err = store.Get(ctx, "session:CA1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManagerListActiveSessionIDs(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	mgr.Load(ctx, "CA1")
	mgr.Load(ctx, "CA2")

	assert.ElementsMatch(t, []string{"CA1", "CA2"}, mgr.ListActiveSessionIDs(ctx))
	assert.Equal(t, 2, mgr.ActiveSessionCount(ctx))
}

func TestManagerDelete(t *testing.T) {
	mgr, _ := newTestManager(t)
	ctx := context.Background()

	mgr.Load(ctx, "CA1")
	mgr.Delete(ctx, "CA1")

	assert.Equal(t, 0, mgr.ActiveSessionCount(ctx))

	// A fresh session appears on the next load.
	s := mgr.Load(ctx, "CA1")
	assert.Equal(t, models.StateGreeting, s.State)
}

func TestManagerSweepExpiredFallback(t *testing.T) {
	mgr := NewManager(nil, time.Hour, "english", zap.NewNop())
	ctx := context.Background()

	mgr.Load(ctx, "CA-old")
	mgr.Fallback.mu.Lock()
	entry := mgr.Fallback.entries["session:CA-old"]
	entry.updatedAt = time.Now().Add(-2 * time.Hour)
	mgr.Fallback.entries["session:CA-old"] = entry
	mgr.Fallback.mu.Unlock()
	mgr.Load(ctx, "CA-fresh")

	removed := mgr.SweepExpiredFallback(time.Hour)
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"CA-fresh"}, mgr.ListActiveSessionIDs(ctx))
}

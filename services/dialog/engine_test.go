package dialog

import (
	"context"
	"errors"
	"testing"
	"time"

	"voicedesk/models"
	"voicedesk/services/intent"
	"voicedesk/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingRenderer echoes the message back as the document and records the
// gather and redirect so tests can inspect the prompt directive.
type recordingRenderer struct {
	lastMessage  string
	lastGather   *models.Gather
	lastRedirect string
}

func (r *recordingRenderer) Render(message string, gather *models.Gather, redirectPath string) (string, error) {
	r.lastMessage = message
	r.lastGather = gather
	r.lastRedirect = redirectPath
	return message, nil
}

// memoryBookingRepo is an in-memory stand-in for the Mongo repository.
type memoryBookingRepo struct {
	created []models.Booking
	fail    bool
}

func (r *memoryBookingRepo) Create(ctx context.Context, draft models.BookingDraft, callSid string) (*models.Booking, error) {
	if r.fail {
		return nil, errors.New("store down")
	}
	booking := models.Booking{
		ID:        draft.ID,
		Date:      draft.Date,
		Time:      draft.Time,
		CallSid:   callSid,
		Status:    models.BookingStatusConfirmed,
		CreatedAt: time.Now(),
	}
	r.created = append(r.created, booking)
	return &booking, nil
}

func (r *memoryBookingRepo) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	if r.fail {
		return nil, errors.New("store down")
	}
	for _, b := range r.created {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *memoryBookingRepo) FindByPhone(ctx context.Context, phone string) ([]models.Booking, error) {
	return nil, nil
}

func (r *memoryBookingRepo) FindByName(ctx context.Context, name string) ([]models.Booking, error) {
	return nil, nil
}

func (r *memoryBookingRepo) All(ctx context.Context) ([]models.Booking, error) {
	return r.created, nil
}

func (r *memoryBookingRepo) UpdateStatus(ctx context.Context, id, status string) error { return nil }
func (r *memoryBookingRepo) Delete(ctx context.Context, id string) error               { return nil }

func newTestEngine(t *testing.T) (*DefaultEngine, *recordingRenderer, *memoryBookingRepo, session.Manager) {
	t.Helper()
	renderer := &recordingRenderer{}
	repo := &memoryBookingRepo{}
	sessions := session.NewManager(nil, time.Hour, "english", zap.NewNop())
	engine := &DefaultEngine{
		Sessions:       sessions,
		Bookings:       repo,
		Interpreter:    intent.NewInterpreter(nil, zap.NewNop()),
		Renderer:       renderer,
		Logger:         zap.NewNop(),
		CompanyName:    "Acme Dental",
		RetryThreshold: 2,
	}
	return engine, renderer, repo, sessions
}

func TestGreetingMovesToMainMenu(t *testing.T) {
	engine, renderer, _, sessions := newTestEngine(t)
	ctx := context.Background()

	doc, err := engine.HandleGreeting(ctx, "CA1")
	require.NoError(t, err)

	assert.Contains(t, doc, "Acme Dental")
	require.NotNil(t, renderer.lastGather)
	assert.Equal(t, PathMenuChoice, renderer.lastGather.Action)
	assert.Equal(t, models.StateMainMenu, sessions.Load(ctx, "CA1").State)
}

func TestMenuChoiceBookAppointment(t *testing.T) {
	engine, renderer, _, sessions := newTestEngine(t)
	ctx := context.Background()

	engine.HandleGreeting(ctx, "CA1")
	_, err := engine.HandleMenuChoice(ctx, "CA1", "1")
	require.NoError(t, err)

	assert.Equal(t, models.StateBookingDate, sessions.Load(ctx, "CA1").State)
	assert.Equal(t, PathBookingDate, renderer.lastGather.Action)
}

func TestBookingDateCapturesDate(t *testing.T) {
	engine, renderer, _, sessions := newTestEngine(t)
	ctx := context.Background()

	engine.HandleGreeting(ctx, "CA1")
	engine.HandleMenuChoice(ctx, "CA1", "1")
	doc, err := engine.HandleBookingDate(ctx, "CA1", "tomorrow")
	require.NoError(t, err)

	s := sessions.Load(ctx, "CA1")
	assert.Equal(t, models.StateBookingTime, s.State)
	expected := time.Now().AddDate(0, 0, 1).Format("January 2, 2006")
	assert.Equal(t, expected, s.Booking.Date)
	assert.Contains(t, doc, expected)
	assert.Equal(t, PathBookingTime, renderer.lastGather.Action)
}

func TestBookingDateEmptyInputReprompts(t *testing.T) {
	engine, renderer, _, sessions := newTestEngine(t)
	ctx := context.Background()

	engine.HandleGreeting(ctx, "CA1")
	engine.HandleMenuChoice(ctx, "CA1", "1")
	_, err := engine.HandleBookingDate(ctx, "CA1", "")
	require.NoError(t, err)

	assert.Equal(t, models.StateBookingDate, sessions.Load(ctx, "CA1").State)
	assert.Equal(t, PathBookingDate, renderer.lastGather.Action)
}

func TestBookingTimePersistsBooking(t *testing.T) {
	engine, renderer, repo, sessions := newTestEngine(t)
	ctx := context.Background()

	engine.HandleGreeting(ctx, "CA1")
	engine.HandleMenuChoice(ctx, "CA1", "1")
	engine.HandleBookingDate(ctx, "CA1", "tomorrow")
	doc, err := engine.HandleBookingTime(ctx, "CA1", "2 PM")
	require.NoError(t, err)

	s := sessions.Load(ctx, "CA1")
	assert.Equal(t, models.StateBookingConfirmation, s.State)
	assert.Equal(t, "2:00 PM", s.Booking.Time)
	assert.Len(t, s.Booking.ID, 8)

	require.Len(t, repo.created, 1)
	assert.Equal(t, s.Booking.ID, repo.created[0].ID)
	assert.Equal(t, "CA1", repo.created[0].CallSid)

	assert.Contains(t, doc, "2:00 PM")
	assert.Contains(t, doc, s.Booking.ID)
	assert.Equal(t, PathBookingConfirmation, renderer.lastGather.Action)
}

func TestBookingTimeSurvivesStoreFailure(t *testing.T) {
	engine, _, repo, sessions := newTestEngine(t)
	repo.fail = true
	ctx := context.Background()

	engine.HandleGreeting(ctx, "CA1")
	engine.HandleMenuChoice(ctx, "CA1", "1")
	engine.HandleBookingDate(ctx, "CA1", "tomorrow")
	_, err := engine.HandleBookingTime(ctx, "CA1", "2 PM")
	require.NoError(t, err)

	// The dialog advanced even though the booking was not persisted.
	assert.Equal(t, models.StateBookingConfirmation, sessions.Load(ctx, "CA1").State)
}

func TestBookingConfirmationYes(t *testing.T) {
	engine, renderer, _, sessions := newTestEngine(t)
	ctx := context.Background()

	engine.HandleGreeting(ctx, "CA1")
	engine.HandleMenuChoice(ctx, "CA1", "1")
	engine.HandleBookingDate(ctx, "CA1", "tomorrow")
	engine.HandleBookingTime(ctx, "CA1", "2 PM")
	bookingID := sessions.Load(ctx, "CA1").Booking.ID

	doc, err := engine.HandleBookingConfirmation(ctx, "CA1", "yes")
	require.NoError(t, err)

	assert.Contains(t, doc, bookingID)
	assert.Equal(t, PathPostBooking, renderer.lastGather.Action)
	assert.Equal(t, models.StateCompleted, sessions.Load(ctx, "CA1").State)
}

func TestBookingConfirmationNoRestartsAndDiscardsDraft(t *testing.T) {
	engine, renderer, _, sessions := newTestEngine(t)
	ctx := context.Background()

	engine.HandleGreeting(ctx, "CA1")
	engine.HandleMenuChoice(ctx, "CA1", "1")
	engine.HandleBookingDate(ctx, "CA1", "tomorrow")
	engine.HandleBookingTime(ctx, "CA1", "2 PM")

	_, err := engine.HandleBookingConfirmation(ctx, "CA1", "no, change it")
	require.NoError(t, err)

	s := sessions.Load(ctx, "CA1")
	assert.Equal(t, models.StateBookingDate, s.State)
	assert.Empty(t, s.Booking.Date)
	assert.Empty(t, s.Booking.Time)
	assert.Equal(t, PathBookingDate, renderer.lastGather.Action)
}

func TestUnknownMenuInputEscalatesAtThreshold(t *testing.T) {
	engine, renderer, _, sessions := newTestEngine(t)
	ctx := context.Background()

	engine.HandleGreeting(ctx, "CA1")

	// First miss: retry counter moves to 1 and the menu is re-prompted.
	_, err := engine.HandleMenuChoice(ctx, "CA1", "gibberish")
	require.NoError(t, err)
	assert.Equal(t, 1, sessions.Load(ctx, "CA1").RetryCount)
	require.NotNil(t, renderer.lastGather)
	assert.Equal(t, PathMenuChoice, renderer.lastGather.Action)

	// Second miss reaches the threshold and routes to customer support.
	doc, err := engine.HandleMenuChoice(ctx, "CA1", "more gibberish")
	require.NoError(t, err)
	assert.Equal(t, 2, sessions.Load(ctx, "CA1").RetryCount)
	assert.Equal(t, models.StateCustomerSupport, sessions.Load(ctx, "CA1").State)
	assert.Contains(t, doc, "support")
	assert.Nil(t, renderer.lastGather)
}

func TestBookingLookupFound(t *testing.T) {
	engine, renderer, repo, _ := newTestEngine(t)
	ctx := context.Background()

	repo.created = append(repo.created, models.Booking{
		ID: "abc12345", Date: "March 9, 2026", Time: "2:00 PM", CallSid: "CA0",
	})

	engine.HandleGreeting(ctx, "CA1")
	engine.HandleMenuChoice(ctx, "CA1", "2")
	doc, err := engine.HandleBookingLookup(ctx, "CA1", "abc12345")
	require.NoError(t, err)

	assert.Contains(t, doc, "March 9, 2026")
	assert.Contains(t, doc, "2:00 PM")
	assert.Equal(t, PathPostAction, renderer.lastGather.Action)
}

func TestBookingLookupMissOffersSupportTransfer(t *testing.T) {
	engine, renderer, _, _ := newTestEngine(t)
	ctx := context.Background()

	engine.HandleGreeting(ctx, "CA1")
	engine.HandleMenuChoice(ctx, "CA1", "2")
	doc, err := engine.HandleBookingLookup(ctx, "CA1", "nope-404")
	require.NoError(t, err)

	assert.Contains(t, doc, "couldn't find a booking")
	assert.Equal(t, PathSupportTransfer, renderer.lastGather.Action)
}

func TestBookingLookupStoreFailureBehavesAsMiss(t *testing.T) {
	engine, renderer, repo, _ := newTestEngine(t)
	repo.fail = true
	ctx := context.Background()

	engine.HandleGreeting(ctx, "CA1")
	engine.HandleMenuChoice(ctx, "CA1", "2")
	_, err := engine.HandleBookingLookup(ctx, "CA1", "abc12345")
	require.NoError(t, err)

	assert.Equal(t, PathSupportTransfer, renderer.lastGather.Action)
}

func TestWorkingHoursBranch(t *testing.T) {
	engine, renderer, _, sessions := newTestEngine(t)
	ctx := context.Background()

	engine.HandleGreeting(ctx, "CA1")
	doc, err := engine.HandleMenuChoice(ctx, "CA1", "4")
	require.NoError(t, err)

	assert.Contains(t, doc, "Monday: 09:00 to 17:00")
	assert.Contains(t, doc, "Sunday: Closed")
	assert.Equal(t, models.StateWorkingHours, sessions.Load(ctx, "CA1").State)
	assert.Equal(t, PathPostAction, renderer.lastGather.Action)
}

func TestPaymentBranchIsTerminalWithRedirect(t *testing.T) {
	engine, renderer, _, sessions := newTestEngine(t)
	ctx := context.Background()

	engine.HandleGreeting(ctx, "CA1")
	doc, err := engine.HandleMenuChoice(ctx, "CA1", "5")
	require.NoError(t, err)

	assert.Contains(t, doc, "currently unavailable")
	assert.Nil(t, renderer.lastGather)
	assert.Equal(t, PathMainMenu, renderer.lastRedirect)
	assert.Equal(t, models.StatePayment, sessions.Load(ctx, "CA1").State)
}

func TestReminderBranchIsUnavailable(t *testing.T) {
	engine, renderer, _, sessions := newTestEngine(t)
	ctx := context.Background()

	engine.HandleGreeting(ctx, "CA1")
	doc, err := engine.HandleMenuChoice(ctx, "CA1", "6")
	require.NoError(t, err)

	assert.Contains(t, doc, "currently being set up")
	assert.Equal(t, models.StateReminder, sessions.Load(ctx, "CA1").State)
	assert.Equal(t, PathPostAction, renderer.lastGather.Action)
}

func TestLanguageChoiceStoresLanguageAndReplaysMenu(t *testing.T) {
	engine, renderer, _, sessions := newTestEngine(t)
	ctx := context.Background()

	engine.HandleGreeting(ctx, "CA1")
	_, err := engine.HandleMenuChoice(ctx, "CA1", "0")
	require.NoError(t, err)

	s := sessions.Load(ctx, "CA1")
	assert.Equal(t, "spanish", s.Language)
	assert.Equal(t, models.StateMainMenu, s.State)
	assert.Equal(t, PathMenuChoice, renderer.lastGather.Action)
}

func TestPostBookingRouting(t *testing.T) {
	engine, renderer, _, sessions := newTestEngine(t)
	ctx := context.Background()

	doc, err := engine.HandlePostBooking(ctx, "CA1", "main menu")
	require.NoError(t, err)
	assert.Contains(t, doc, "Acme Dental")

	doc, err = engine.HandlePostBooking(ctx, "CA1", "goodbye")
	require.NoError(t, err)
	assert.Contains(t, doc, "Thank you for calling")
	assert.Nil(t, renderer.lastGather)
	assert.Equal(t, models.StateCompleted, sessions.Load(ctx, "CA1").State)
}

func TestPostActionRouting(t *testing.T) {
	engine, _, _, _ := newTestEngine(t)
	ctx := context.Background()

	doc, err := engine.HandlePostAction(ctx, "CA1", "yes please")
	require.NoError(t, err)
	assert.Contains(t, doc, "Acme Dental")

	doc, err = engine.HandlePostAction(ctx, "CA1", "that's all")
	require.NoError(t, err)
	assert.Contains(t, doc, "Thank you for calling")
}

func TestSupportTransferRouting(t *testing.T) {
	engine, _, _, sessions := newTestEngine(t)
	ctx := context.Background()

	doc, err := engine.HandleSupportTransfer(ctx, "CA1", "yes")
	require.NoError(t, err)
	assert.Contains(t, doc, "support representatives")
	assert.Equal(t, models.StateCustomerSupport, sessions.Load(ctx, "CA1").State)

	doc, err = engine.HandleSupportTransfer(ctx, "CA2", "no thanks")
	require.NoError(t, err)
	assert.Contains(t, doc, "Acme Dental")
}

func TestRetryCountPersistsAcrossStates(t *testing.T) {
	engine, _, _, sessions := newTestEngine(t)
	ctx := context.Background()

	engine.HandleGreeting(ctx, "CA1")
	engine.HandleMenuChoice(ctx, "CA1", "gibberish")
	require.Equal(t, 1, sessions.Load(ctx, "CA1").RetryCount)

	// A successful booking turn does not reset the counter.
	engine.HandleMenuChoice(ctx, "CA1", "1")
	engine.HandleBookingDate(ctx, "CA1", "tomorrow")
	assert.Equal(t, 1, sessions.Load(ctx, "CA1").RetryCount)
}

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/evently/event-actions-service/internal/domain"
)

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tt, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return tt.UTC()
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func newEngine(t *testing.T, now time.Time) *Engine {
	t.Helper()
	return New(fakeClock{t: now})
}

func publishedEvent(start time.Time) domain.EventSnapshot {
	return domain.EventSnapshot{
		ID:        "evt-1",
		OwnerID:   "org-1",
		Status:    domain.StatusPublished,
		StartTime: start,
	}
}

func TestIsEventFull(t *testing.T) {
	now := time.Now().UTC()
	e := newEngine(t, now)

	tests := []struct {
		name string
		ev   domain.EventSnapshot
		want bool
	}{
		{"no_capacity_never_full", domain.EventSnapshot{MaxParticipants: 0, BookedSeats: intPtr(999)}, false},
		{"under_capacity", domain.EventSnapshot{MaxParticipants: 10, BookedSeats: intPtr(9)}, false},
		{"at_capacity", domain.EventSnapshot{MaxParticipants: 10, BookedSeats: intPtr(10)}, true},
		{"over_capacity", domain.EventSnapshot{MaxParticipants: 10, BookedSeats: intPtr(11)}, true},
		{"registration_count_fallback", domain.EventSnapshot{MaxParticipants: 5, RegistrationCount: intPtr(5)}, true},
		{"booked_seats_wins_over_registrations", domain.EventSnapshot{MaxParticipants: 5, BookedSeats: intPtr(1), RegistrationCount: intPtr(9)}, false},
		{"no_occupancy_signals", domain.EventSnapshot{MaxParticipants: 5}, false},
		{"explicit_true_overrides_computed", domain.EventSnapshot{MaxParticipants: 10, BookedSeats: intPtr(0), Full: boolPtr(true)}, true},
		{"explicit_false_overrides_computed", domain.EventSnapshot{MaxParticipants: 10, BookedSeats: intPtr(10), Full: boolPtr(false)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.IsEventFull(tt.ev))
		})
	}
}

func TestHasEventStarted(t *testing.T) {
	now := mustTime(t, "2026-06-01T12:00:00Z")
	e := newEngine(t, now)

	assert.True(t, e.HasEventStarted(domain.EventSnapshot{StartTime: now}), "start == now counts as started")
	assert.True(t, e.HasEventStarted(domain.EventSnapshot{StartTime: now.Add(-time.Second)}))
	assert.False(t, e.HasEventStarted(domain.EventSnapshot{StartTime: now.Add(time.Second)}))
}

func TestCancellationDeadlineBoundary(t *testing.T) {
	now := mustTime(t, "2026-06-01T12:00:00Z")
	e := newEngine(t, now)

	booking := &domain.Booking{PublicID: "b-1", Status: domain.BookingConfirmed}
	uc := domain.UserContext{UserID: "u-1"}

	t.Run("exactly_three_hours_is_cancellable", func(t *testing.T) {
		ev := publishedEvent(now.Add(3 * time.Hour))
		ev.MyBooking = booking
		cancel := findAction(t, e.GetAvailableActions(ev, uc), ActionUserCancelBooking)
		assert.True(t, cancel.Enabled)
		assert.Equal(t, ReasonNone, cancel.DisabledReason)
	})

	t.Run("one_minute_inside_is_not", func(t *testing.T) {
		ev := publishedEvent(now.Add(2*time.Hour + 59*time.Minute))
		ev.MyBooking = booking
		cancel := findAction(t, e.GetAvailableActions(ev, uc), ActionUserCancelBooking)
		assert.False(t, cancel.Enabled)
		assert.Equal(t, ReasonCancellationDeadlinePassed, cancel.DisabledReason)
	})
}

func TestBookingCutoffBoundary(t *testing.T) {
	now := mustTime(t, "2026-06-01T12:00:00Z")
	e := newEngine(t, now)
	uc := domain.UserContext{UserID: "u-1"}

	t.Run("exactly_fifteen_minutes_is_bookable", func(t *testing.T) {
		ev := publishedEvent(now.Add(15 * time.Minute))
		book := findAction(t, e.GetAvailableActions(ev, uc), ActionUserBook)
		assert.True(t, book.Enabled)
		assert.Equal(t, LabelBook, book.LabelKey)
	})

	t.Run("fourteen_minutes_is_closed", func(t *testing.T) {
		ev := publishedEvent(now.Add(14 * time.Minute))
		book := findAction(t, e.GetAvailableActions(ev, uc), ActionUserBook)
		assert.False(t, book.Enabled)
		assert.Equal(t, ReasonBookingCutoffPassed, book.DisabledReason)
		assert.Equal(t, LabelBookingClosed, book.LabelKey)
	})
}

func TestCustomThresholds(t *testing.T) {
	now := mustTime(t, "2026-06-01T12:00:00Z")
	e := NewWithThresholds(fakeClock{t: now}, 1*time.Hour, 5*time.Minute)

	ev := publishedEvent(now.Add(90 * time.Minute))
	ev.MyBooking = &domain.Booking{Status: domain.BookingConfirmed}
	cancel := findAction(t, e.GetAvailableActions(ev, domain.UserContext{UserID: "u-1"}), ActionUserCancelBooking)
	assert.True(t, cancel.Enabled, "90m out with a 1h deadline is cancellable")

	book := findAction(t, e.GetAvailableActions(publishedEvent(now.Add(10*time.Minute)), domain.UserContext{UserID: "u-1"}), ActionUserBook)
	assert.True(t, book.Enabled, "10m out with a 5m cutoff is bookable")
}

func TestDeterminism(t *testing.T) {
	now := mustTime(t, "2026-06-01T12:00:00Z")
	e := newEngine(t, now)

	ev := publishedEvent(now.Add(2 * time.Hour))
	ev.GameType = "quiz"
	ev.MyBooking = &domain.Booking{Status: domain.BookingConfirmed}
	uc := domain.UserContext{UserID: "u-1"}

	first := e.GetAvailableActions(ev, uc)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, e.GetAvailableActions(ev, uc))
	}
}

func TestDisabledImpliesReason(t *testing.T) {
	now := mustTime(t, "2026-06-01T12:00:00Z")
	e := newEngine(t, now)

	// A grab-bag of snapshots covering every branch that can disable.
	snapshots := []domain.EventSnapshot{
		publishedEvent(now.Add(10 * time.Minute)), // cutoff
		func() domain.EventSnapshot {
			ev := publishedEvent(now.Add(2 * time.Hour))
			ev.MaxParticipants = 1
			ev.BookedSeats = intPtr(1)
			return ev
		}(), // full
		func() domain.EventSnapshot {
			ev := publishedEvent(now.Add(1 * time.Hour))
			ev.MyBooking = &domain.Booking{Status: domain.BookingConfirmed}
			return ev
		}(), // inside deadline
		func() domain.EventSnapshot {
			ev := publishedEvent(now.Add(-1 * time.Hour))
			ev.GameType = "quiz"
			ev.MyBooking = &domain.Booking{Status: domain.BookingConfirmed}
			return ev
		}(), // game not started
		{Status: domain.StatusFinished},
		{Status: domain.StatusPendingConfirmation},
	}
	contexts := []domain.UserContext{
		{},
		{UserID: "u-1"},
		{UserID: "org-1", IsOrganizer: true},
	}

	for _, ev := range snapshots {
		for _, uc := range contexts {
			for _, s := range e.GetAvailableActions(ev, uc) {
				if !s.Enabled {
					assert.NotEqual(t, ReasonNone, s.DisabledReason,
						"disabled %s must carry a reason (status=%s organizer=%v)", s.Action, ev.Status, uc.IsOrganizer)
				}
			}
		}
	}
}

func TestPrimaryActionSkipsDisabled(t *testing.T) {
	now := mustTime(t, "2026-06-01T12:00:00Z")
	e := newEngine(t, now)

	// Confirmed booking inside the deadline: cancel (priority 1) is
	// disabled, the informational placeholder (priority 0) is disabled,
	// so nothing qualifies even though both sort before any fallback.
	ev := publishedEvent(now.Add(1 * time.Hour))
	ev.MyBooking = &domain.Booking{Status: domain.BookingConfirmed}

	p := e.GetPrimaryAction(ev, domain.UserContext{UserID: "u-1"})
	assert.Nil(t, p)
}

func TestPrimaryActionPicksLowestEnabled(t *testing.T) {
	now := mustTime(t, "2026-06-01T12:00:00Z")
	e := newEngine(t, now)

	ev := domain.EventSnapshot{Status: domain.StatusDraft, Links: domain.Links{RequestPublication: true, DeleteDraft: true}}
	p := e.GetPrimaryAction(ev, domain.UserContext{UserID: "org-1", IsOrganizer: true})
	if assert.NotNil(t, p) {
		assert.Equal(t, ActionOrganizerPayAndPublish, p.Action)
	}
}

func TestFallbackAppendedAndSorted(t *testing.T) {
	now := mustTime(t, "2026-06-01T12:00:00Z")
	e := newEngine(t, now)

	ev := domain.EventSnapshot{Status: domain.StatusDraft, Links: domain.Links{RequestPublication: true}}
	states := e.GetAvailableActions(ev, domain.UserContext{UserID: "org-1", IsOrganizer: true})

	if assert.Len(t, states, 2) {
		assert.Equal(t, ActionOrganizerPayAndPublish, states[0].Action)
		assert.True(t, states[0].Enabled)
		assert.Equal(t, ActionViewDetails, states[1].Action)
		assert.Equal(t, fallbackPriority, states[1].Priority)
		assert.Equal(t, VariantOutline, states[1].Variant)
	}
}

func TestUnknownStatusFallsThrough(t *testing.T) {
	now := mustTime(t, "2026-06-01T12:00:00Z")
	e := newEngine(t, now)

	ev := domain.EventSnapshot{Status: domain.EventStatus("mystery")}

	org := e.GetAvailableActions(ev, domain.UserContext{UserID: "org-1", IsOrganizer: true})
	if assert.Len(t, org, 1) {
		assert.Equal(t, ActionViewDetails, org[0].Action)
	}

	user := e.GetAvailableActions(ev, domain.UserContext{UserID: "u-1"})
	if assert.Len(t, user, 1) {
		assert.Equal(t, ActionViewDetails, user[0].Action)
	}
}

func findAction(t *testing.T, states []ActionState, a Action) ActionState {
	t.Helper()
	for _, s := range states {
		if s.Action == a {
			return s
		}
	}
	t.Fatalf("action %s not in %v", a, states)
	return ActionState{}
}

// Package engine derives the actions available to a user on an event:
// which are enabled or disabled (and why), which badge to show, and
// which action is primary. It is a pure function of the snapshot, the
// user context and the clock; it holds no state and performs no I/O.
package engine

import (
	"sort"
	"time"

	"github.com/evently/event-actions-service/internal/domain"
)

type Clock interface{ Now() time.Time }

// Default policy thresholds.
const (
	CancellationDeadline = 3 * time.Hour
	BookingCutoff        = 15 * time.Minute
)

type Engine struct {
	clock Clock

	cancellationDeadline time.Duration
	bookingCutoff        time.Duration
}

// New builds an engine with the default thresholds.
func New(clock Clock) *Engine {
	return NewWithThresholds(clock, CancellationDeadline, BookingCutoff)
}

// NewWithThresholds allows ops/tests to tune the deadline policy
// without waiting on real clocks.
func NewWithThresholds(clock Clock, cancellationDeadline, bookingCutoff time.Duration) *Engine {
	if cancellationDeadline <= 0 {
		cancellationDeadline = CancellationDeadline
	}
	if bookingCutoff <= 0 {
		bookingCutoff = BookingCutoff
	}
	return &Engine{
		clock:                clock,
		cancellationDeadline: cancellationDeadline,
		bookingCutoff:        bookingCutoff,
	}
}

// GetAvailableActions returns the full candidate list, sorted ascending
// by priority (stable for equal priorities). The clock is read exactly
// once so all time predicates within one evaluation agree.
func (e *Engine) GetAvailableActions(ev domain.EventSnapshot, uc domain.UserContext) []ActionState {
	now := e.clock.Now().UTC()

	var states []ActionState
	var final bool
	if uc.IsOrganizer {
		states, final = e.organizerActions(ev, uc, now)
	} else {
		states, final = e.participantActions(ev, uc, now)
	}

	if !final && !containsViewDetails(states) {
		states = append(states, viewDetails(fallbackPriority))
	}

	sort.SliceStable(states, func(i, j int) bool {
		return states[i].Priority < states[j].Priority
	})
	return states
}

// GetPrimaryAction returns the first enabled-and-visible action of the
// sorted list, or nil when nothing is actionable.
func (e *Engine) GetPrimaryAction(ev domain.EventSnapshot, uc domain.UserContext) *ActionState {
	for _, s := range e.GetAvailableActions(ev, uc) {
		if s.Enabled && s.Visible {
			out := s
			return &out
		}
	}
	return nil
}

// GetEventBadge derives the single state badge for list/card display.
// First match wins; the order is deliberate UX policy.
func (e *Engine) GetEventBadge(ev domain.EventSnapshot) Badge {
	now := e.clock.Now().UTC()

	switch {
	case ev.Status == domain.StatusCancelled:
		return BadgeCancelled
	case ev.Status == domain.StatusFinished:
		return BadgeFinished
	case e.IsEventFull(ev):
		return BadgeFull
	case ev.GameStarted:
		return BadgeGameLive
	}

	if ev.Status == domain.StatusPublished {
		until := ev.StartTime.Sub(now)
		if until > 0 && until < time.Hour {
			return BadgeStartingSoon
		}
		return BadgePublished
	}
	switch ev.Status {
	case domain.StatusPendingConfirmation:
		return BadgePendingConfirmation
	case domain.StatusDraft:
		return BadgeDraft
	}
	return BadgeNone
}

// IsEventFull reports whether the event is at capacity. An explicit
// Full flag is authoritative; otherwise zero MaxParticipants means
// never full, and occupancy falls back booked seats -> registration
// count -> 0.
func (e *Engine) IsEventFull(ev domain.EventSnapshot) bool {
	if ev.Full != nil {
		return *ev.Full
	}
	if ev.MaxParticipants <= 0 {
		return false
	}
	occupancy := 0
	switch {
	case ev.BookedSeats != nil:
		occupancy = *ev.BookedSeats
	case ev.RegistrationCount != nil:
		occupancy = *ev.RegistrationCount
	}
	return occupancy >= ev.MaxParticipants
}

// HasEventStarted reports whether the event start time has passed.
func (e *Engine) HasEventStarted(ev domain.EventSnapshot) bool {
	return e.hasStarted(ev, e.clock.Now().UTC())
}

func (e *Engine) hasStarted(ev domain.EventSnapshot, now time.Time) bool {
	return !now.Before(ev.StartTime)
}

// canCancel: cancellation (of a booking by its holder, or of the event
// by its organizer) is allowed while start time is >= deadline away.
// Boundary is inclusive.
func (e *Engine) canCancel(ev domain.EventSnapshot, now time.Time) bool {
	return ev.StartTime.Sub(now) >= e.cancellationDeadline
}

// canBook: a new booking is allowed while start time is >= cutoff away.
func (e *Engine) canBook(ev domain.EventSnapshot, now time.Time) bool {
	return ev.StartTime.Sub(now) >= e.bookingCutoff
}

func isCancelled(ev domain.EventSnapshot) bool {
	return ev.Status == domain.StatusCancelled || ev.Cancelled
}

func hasGame(ev domain.EventSnapshot) bool { return ev.GameType != "" }

func containsViewDetails(states []ActionState) bool {
	for _, s := range states {
		if s.Action == ActionViewDetails {
			return true
		}
	}
	return false
}

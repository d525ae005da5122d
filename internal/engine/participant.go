package engine

import (
	"time"

	"github.com/evently/event-actions-service/internal/domain"
)

// participantActions evaluates the non-organizer branch. Draft and
// pending events are not actionable (nor visible) at this stage, so the
// list is empty and final.
func (e *Engine) participantActions(ev domain.EventSnapshot, uc domain.UserContext, now time.Time) ([]ActionState, bool) {
	if ev.MyBooking != nil && ev.MyBooking.Status == domain.BookingCancelled {
		return []ActionState{viewDetails(0)}, true
	}
	if isCancelled(ev) {
		return []ActionState{viewDetails(0)}, true
	}

	switch ev.Status {
	case domain.StatusDraft, domain.StatusPendingConfirmation:
		return nil, true
	case domain.StatusPublished:
		return e.participantPublished(ev, uc, now), false
	case domain.StatusFinished:
		info := viewDetails(0)
		info.Enabled = false
		info.DisabledReason = ReasonEventFinished
		info.Badge = BadgeFinished
		return []ActionState{info}, false
	}
	return nil, false
}

func (e *Engine) participantPublished(ev domain.EventSnapshot, uc domain.UserContext, now time.Time) []ActionState {
	started := e.hasStarted(ev, now)
	game := hasGame(ev)
	confirmed := ev.MyBooking != nil && ev.MyBooking.Status == domain.BookingConfirmed

	if ev.GameStarted && game && confirmed {
		// Game-live exclusivity: joining is the only thing on offer.
		return []ActionState{{
			Action:   ActionUserJoinGame,
			Enabled:  true,
			Badge:    BadgeGameLive,
			Variant:  VariantAccent,
			LabelKey: LabelJoinGame,
			Priority: 0,
			Visible:  true,
		}}
	}

	var states []ActionState

	if started && game && confirmed && !ev.GameStarted {
		states = append(states, ActionState{
			Action:         ActionUserJoinGame,
			Enabled:        false,
			DisabledReason: ReasonGameNotStarted,
			Variant:        VariantAccent,
			LabelKey:       LabelJoinGame,
			Priority:       0,
			Visible:        true,
		})
	}

	if ev.MyBooking != nil && ev.MyBooking.Status == domain.BookingPending {
		states = append(states, ActionState{
			Action:   ActionUserPayBooking,
			Enabled:  true,
			Badge:    BadgePublished,
			Variant:  VariantPrimary,
			LabelKey: LabelPayBooking,
			Priority: 0,
			Visible:  true,
		})
	}

	if confirmed && !ev.GameStarted {
		cancellable := e.canCancel(ev, now)
		priority := 1
		if started && game {
			priority = 2
		}
		cancel := ActionState{
			Action:   ActionUserCancelBooking,
			Enabled:  cancellable,
			Variant:  VariantDanger,
			LabelKey: LabelCancelBooking,
			Priority: priority,
			Visible:  true,
		}
		if !cancellable {
			cancel.DisabledReason = ReasonCancellationDeadlinePassed
		}
		states = append(states, cancel)

		if !(started && game) {
			// Informational placeholder: the holder already has a seat.
			info := viewDetails(0)
			info.Enabled = false
			info.DisabledReason = ReasonBookingConfirmed
			if cancellable {
				info.Badge = BadgePublished
			} else {
				info.Badge = BadgeStartingSoon
			}
			states = append(states, info)
		}
	}

	if ev.MyBooking == nil {
		states = append(states, e.bookAction(ev, uc, now))
	}

	return states
}

// bookAction builds the user-book entry for viewers with no booking.
// Label, reason and badge are chosen by priority: cutoff beats full
// beats the default.
func (e *Engine) bookAction(ev domain.EventSnapshot, uc domain.UserContext, now time.Time) ActionState {
	full := e.IsEventFull(ev)
	withinCutoff := !e.canBook(ev, now)

	hasPermission := !uc.Anonymous() && ev.Status == domain.StatusPublished
	if ev.Permissions != nil && ev.Permissions.CanBook != nil {
		hasPermission = *ev.Permissions.CanBook
	}

	book := ActionState{
		Action:   ActionUserBook,
		Enabled:  hasPermission && !full && !withinCutoff,
		Variant:  VariantPrimary,
		LabelKey: LabelBook,
		Priority: 0,
		Visible:  true,
	}
	switch {
	case withinCutoff:
		book.LabelKey = LabelBookingClosed
		book.DisabledReason = ReasonBookingCutoffPassed
	case full:
		book.LabelKey = LabelEventFull
		book.DisabledReason = ReasonEventFull
		book.Badge = BadgeFull
	case !hasPermission:
		book.DisabledReason = ReasonInsufficientPermissions
	}
	return book
}

package engine

import (
	"time"

	"github.com/evently/event-actions-service/internal/domain"
)

// organizerActions evaluates the owner's branch. final=true means the
// result is complete as-is and the view-details fallback must not be
// appended (terminal states and the game-live exclusive state).
func (e *Engine) organizerActions(ev domain.EventSnapshot, uc domain.UserContext, now time.Time) ([]ActionState, bool) {
	if isCancelled(ev) {
		return []ActionState{viewDetails(0)}, true
	}

	var states []ActionState

	switch ev.Status {
	case domain.StatusDraft:
		if ev.Links.RequestPublication || ev.Links.PayAndPublish {
			states = append(states, ActionState{
				Action:   ActionOrganizerPayAndPublish,
				Enabled:  true,
				Variant:  VariantPrimary,
				LabelKey: LabelPayAndPublish,
				Priority: 0,
				Visible:  true,
			})
		}
		if ev.Links.DeleteDraft {
			states = append(states, ActionState{
				Action:   ActionOrganizerDeleteDraft,
				Enabled:  true,
				Variant:  VariantDanger,
				LabelKey: LabelDeleteDraft,
				Priority: 1,
				Visible:  true,
			})
		}

	case domain.StatusPendingConfirmation:
		// Informational only: the event is awaiting confirmation and
		// the organizer can do nothing but wait.
		info := viewDetails(0)
		info.Enabled = false
		info.DisabledReason = ReasonInsufficientPermissions
		info.Badge = BadgePendingConfirmation
		states = append(states, info)

	case domain.StatusPublished:
		started := e.hasStarted(ev, now)
		game := hasGame(ev)
		canShowGame := started || uc.SkipTimeValidation

		if ev.GameStarted && game {
			// While a game is live nothing else is offered.
			return []ActionState{{
				Action:   ActionOrganizerJoinGame,
				Enabled:  true,
				Badge:    BadgeGameLive,
				Variant:  VariantAccent,
				LabelKey: LabelJoinGame,
				Priority: 0,
				Visible:  true,
			}}, true
		}
		if game && canShowGame {
			states = append(states, ActionState{
				Action:   ActionOrganizerStartGame,
				Enabled:  true,
				Variant:  VariantAccent,
				LabelKey: LabelStartGame,
				Priority: 0,
				Visible:  true,
			})
		}

		canCancelEvent := ev.Links.Cancel
		if ev.Permissions != nil && ev.Permissions.CanCancelEvent != nil && *ev.Permissions.CanCancelEvent {
			canCancelEvent = true
		}
		if canCancelEvent {
			priority := 1
			if started && game {
				priority = 2
			}
			cancel := ActionState{
				Action:   ActionOrganizerCancelEvent,
				Enabled:  e.canCancel(ev, now),
				Variant:  VariantDanger,
				LabelKey: LabelCancelEvent,
				Priority: priority,
				Visible:  true,
			}
			if !cancel.Enabled {
				cancel.DisabledReason = ReasonCancellationDeadlinePassed
			}
			states = append(states, cancel)
		}
	}

	return states, false
}

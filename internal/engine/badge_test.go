package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/evently/event-actions-service/internal/domain"
)

func TestGetEventBadge_PriorityOrder(t *testing.T) {
	now := mustTime(t, "2026-06-01T12:00:00Z")
	e := newEngine(t, now)

	tests := []struct {
		name string
		ev   domain.EventSnapshot
		want Badge
	}{
		{
			"cancelled_beats_everything",
			domain.EventSnapshot{Status: domain.StatusCancelled, GameStarted: true, Full: boolPtr(true)},
			BadgeCancelled,
		},
		{
			"finished_beats_full",
			domain.EventSnapshot{Status: domain.StatusFinished, Full: boolPtr(true)},
			BadgeFinished,
		},
		{
			"full_beats_game_live",
			domain.EventSnapshot{Status: domain.StatusPublished, Full: boolPtr(true), GameStarted: true},
			BadgeFull,
		},
		{
			"game_live_beats_starting_soon",
			domain.EventSnapshot{Status: domain.StatusPublished, GameStarted: true, StartTime: now.Add(30 * time.Minute)},
			BadgeGameLive,
		},
		{
			"starting_soon_under_an_hour",
			domain.EventSnapshot{Status: domain.StatusPublished, StartTime: now.Add(59 * time.Minute)},
			BadgeStartingSoon,
		},
		{
			"exactly_one_hour_is_just_published",
			domain.EventSnapshot{Status: domain.StatusPublished, StartTime: now.Add(time.Hour)},
			BadgePublished,
		},
		{
			"already_started_is_just_published",
			domain.EventSnapshot{Status: domain.StatusPublished, StartTime: now.Add(-time.Minute)},
			BadgePublished,
		},
		{
			"pending_confirmation",
			domain.EventSnapshot{Status: domain.StatusPendingConfirmation, StartTime: now.Add(30 * time.Minute)},
			BadgePendingConfirmation,
		},
		{
			"draft",
			domain.EventSnapshot{Status: domain.StatusDraft},
			BadgeDraft,
		},
		{
			"unknown_status_has_no_badge",
			domain.EventSnapshot{Status: domain.EventStatus("mystery")},
			BadgeNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.GetEventBadge(tt.ev))
		})
	}
}

func TestGetEventBadge_CancelledFlagAlone(t *testing.T) {
	// The redundant boolean does not drive the badge; only Status does.
	// Badge derivation is viewer-independent list display, and the
	// literal order from the source is preserved.
	now := mustTime(t, "2026-06-01T12:00:00Z")
	e := newEngine(t, now)

	ev := domain.EventSnapshot{Status: domain.StatusPublished, Cancelled: true, StartTime: now.Add(2 * time.Hour)}
	assert.Equal(t, BadgePublished, e.GetEventBadge(ev))
}

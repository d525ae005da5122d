package dto

import (
	"time"

	"github.com/evently/event-actions-service/internal/engine"
)

// ActionStateResp is the stable API model of one derived action.
type ActionStateResp struct {
	Action         string `json:"action"`
	Enabled        bool   `json:"enabled"`
	DisabledReason string `json:"disabled_reason,omitempty"`
	Badge          string `json:"badge,omitempty"`
	Variant        string `json:"variant"`
	LabelKey       string `json:"label_key"`
	Priority       int    `json:"priority"`
	Visible        bool   `json:"visible"`
}

type ActionsResp struct {
	EventID string            `json:"event_id"`
	Actions []ActionStateResp `json:"actions"`
}

type PrimaryResp struct {
	EventID string           `json:"event_id"`
	Primary *ActionStateResp `json:"primary"`
}

type BadgeResp struct {
	EventID string `json:"event_id"`
	Badge   string `json:"badge"`
}

// EvaluateReq carries a caller-supplied snapshot for preview
// evaluation. The event core is required; relation blocks are optional
// and absent blocks fall back to computed heuristics.
type EvaluateReq struct {
	Event              EventPayload `json:"event" validate:"required"`
	SkipTimeValidation bool         `json:"skip_time_validation"`
}

type EventPayload struct {
	ID      string `json:"id" validate:"required,uuid"`
	OwnerID string `json:"owner_id" validate:"required"`
	Title   string `json:"title"`

	Status    string    `json:"status" validate:"omitempty,oneof=draft pending_confirmation published cancelled finished"`
	Cancelled bool      `json:"cancelled"`
	StartTime time.Time `json:"start_time" validate:"required"`

	GameType    string `json:"game_type"`
	GameStarted bool   `json:"game_started"`

	MaxParticipants   int   `json:"max_participants" validate:"gte=0"`
	BookedSeats       *int  `json:"booked_seats" validate:"omitempty,gte=0"`
	RegistrationCount *int  `json:"registration_count" validate:"omitempty,gte=0"`
	Full              *bool `json:"full"`

	MyBooking   *BookingPayload     `json:"my_booking"`
	Permissions *PermissionsPayload `json:"permissions"`
	Links       *LinksPayload       `json:"links"`
}

type BookingPayload struct {
	PublicID string `json:"public_id"`
	Status   string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
}

type PermissionsPayload struct {
	CanBook        *bool `json:"can_book"`
	CanCancelEvent *bool `json:"can_cancel_event"`
}

type LinksPayload struct {
	RequestPublication bool `json:"request_publication"`
	PayAndPublish      bool `json:"pay_and_publish"`
	DeleteDraft        bool `json:"delete_draft"`
	Cancel             bool `json:"cancel"`
}

func ToActionStateResp(s engine.ActionState) ActionStateResp {
	return ActionStateResp{
		Action:         string(s.Action),
		Enabled:        s.Enabled,
		DisabledReason: string(s.DisabledReason),
		Badge:          string(s.Badge),
		Variant:        string(s.Variant),
		LabelKey:       s.LabelKey,
		Priority:       s.Priority,
		Visible:        s.Visible,
	}
}

func ToActionsResp(eventID string, states []engine.ActionState) ActionsResp {
	out := make([]ActionStateResp, 0, len(states))
	for _, s := range states {
		out = append(out, ToActionStateResp(s))
	}
	return ActionsResp{EventID: eventID, Actions: out}
}

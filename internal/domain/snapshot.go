package domain

import "time"

// EventSnapshot is the read-only view of an event that action derivation
// runs against. It is assembled fresh per evaluation (from the repo, the
// cache or a preview request body) and never mutated by the engine.
type EventSnapshot struct {
	ID      string
	OwnerID string
	Title   string

	Status EventStatus
	// Cancelled is a redundant server flag; it may disagree with Status
	// and either signal alone marks the event cancelled.
	Cancelled bool

	StartTime time.Time

	// GameType is empty when no game is configured for the event.
	GameType    string
	GameStarted bool

	// MaxParticipants 0 = unlimited.
	MaxParticipants   int
	BookedSeats       *int
	RegistrationCount *int
	// Full, when present, overrides the computed capacity check.
	Full *bool

	// MyBooking is the evaluating user's own booking, if any.
	MyBooking *Booking

	// Permissions are server-asserted capability hints. Absent fields
	// fall back to computed heuristics; present fields win verbatim.
	Permissions *Permissions

	// Links are server-advertised operations, used as a secondary signal
	// when Permissions is absent.
	Links Links
}

type Booking struct {
	PublicID string
	Status   BookingStatus
}

type Permissions struct {
	CanBook        *bool
	CanCancelEvent *bool
}

type Links struct {
	RequestPublication bool
	PayAndPublish      bool
	DeleteDraft        bool
	Cancel             bool
}

// UserContext identifies the acting user for one evaluation.
type UserContext struct {
	// UserID is empty for anonymous viewers.
	UserID      string
	IsOrganizer bool
	IsAdmin     bool
	// SkipTimeValidation treats the event as started regardless of the
	// clock, so organizers can exercise game flows before start time.
	SkipTimeValidation bool
}

func (uc UserContext) Anonymous() bool { return uc.UserID == "" }

package engine

// Action is the closed set of things an actor can do with an event.
// The tags map 1:1 to the domain operations the caller invokes after a
// click; the engine itself never invokes anything.
type Action string

const (
	ActionOrganizerPayAndPublish Action = "organizer-pay-and-publish"
	ActionOrganizerDeleteDraft   Action = "organizer-delete-draft"
	ActionOrganizerCancelEvent   Action = "organizer-cancel-event"
	ActionOrganizerStartGame     Action = "organizer-start-game"
	ActionOrganizerJoinGame      Action = "organizer-join-game"
	ActionUserBook               Action = "user-book"
	ActionUserPayBooking         Action = "user-pay-booking"
	ActionUserCancelBooking      Action = "user-cancel-booking"
	ActionUserJoinGame           Action = "user-join-game"
	ActionViewDetails            Action = "view-details"
)

// DisabledReason explains a disabled action. Several members are
// reserved vocabulary that no current rule produces; they stay in the
// set for forward compatibility (see reason_vocabulary_test.go).
type DisabledReason string

const (
	ReasonNone DisabledReason = ""

	ReasonEventFull                  DisabledReason = "event-full"
	ReasonEventCancelled             DisabledReason = "event-cancelled"
	ReasonEventFinished              DisabledReason = "event-finished"
	ReasonBookingPending             DisabledReason = "booking-pending"
	ReasonBookingConfirmed           DisabledReason = "booking-confirmed"
	ReasonAlreadyBooked              DisabledReason = "already-booked"
	ReasonCancellationDeadlinePassed DisabledReason = "cancellation-deadline-passed"
	ReasonBookingCutoffPassed        DisabledReason = "booking-cutoff-passed"
	ReasonEventNotStarted            DisabledReason = "event-not-started"
	ReasonGameNotConfigured          DisabledReason = "game-not-configured"
	ReasonGameNotStarted             DisabledReason = "game-not-started"
	ReasonNoConfirmedBooking         DisabledReason = "no-confirmed-booking"
	ReasonInsufficientPermissions    DisabledReason = "insufficient-permissions"
)

// Badge is a short state tag for an event, independent of the viewer.
type Badge string

const (
	BadgeNone                Badge = ""
	BadgeCancelled           Badge = "cancelled"
	BadgeFinished            Badge = "finished"
	BadgeFull                Badge = "full"
	BadgeGameLive            Badge = "game-live"
	BadgeStartingSoon        Badge = "starting-soon"
	BadgePublished           Badge = "published"
	BadgePendingConfirmation Badge = "pending-confirmation"
	BadgeDraft               Badge = "draft"
)

// Variant is a rendering hint; danger-vs-primary is itself a business
// signal, so it is decided here and not in the UI.
type Variant string

const (
	VariantPrimary Variant = "primary"
	VariantAccent  Variant = "accent"
	VariantDanger  Variant = "danger"
	VariantOutline Variant = "outline"
	VariantLink    Variant = "link"
)

// Label keys are opaque i18n identifiers; content is resolved by the
// caller's translation layer.
const (
	LabelPayAndPublish = "pay_and_publish"
	LabelDeleteDraft   = "delete_draft"
	LabelCancelEvent   = "cancel_event"
	LabelStartGame     = "start_game"
	LabelJoinGame      = "join_game"
	LabelBook          = "book"
	LabelEventFull     = "event_full"
	LabelBookingClosed = "booking_closed"
	LabelPayBooking    = "pay_booking"
	LabelCancelBooking = "cancel_booking"
	LabelViewDetails   = "view_details"
)

// ActionState is one candidate action for one (event, user) evaluation.
type ActionState struct {
	Action         Action         `json:"action"`
	Enabled        bool           `json:"enabled"`
	DisabledReason DisabledReason `json:"disabled_reason,omitempty"`
	Badge          Badge          `json:"badge,omitempty"`
	Variant        Variant        `json:"variant"`
	LabelKey       string         `json:"label_key"`
	Priority       int            `json:"priority"`
	Visible        bool           `json:"visible"`
}

// fallbackPriority sorts the generic view-details entry after every
// rule-produced action.
const fallbackPriority = 100

func viewDetails(priority int) ActionState {
	return ActionState{
		Action:   ActionViewDetails,
		Enabled:  true,
		Variant:  VariantOutline,
		LabelKey: LabelViewDetails,
		Priority: priority,
		Visible:  true,
	}
}

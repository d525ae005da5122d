package dto

import (
	"github.com/evently/event-actions-service/internal/domain"
)

// ToSnapshot converts a preview payload into the internal snapshot
// model, preserving pointer semantics (absent vs explicit).
func ToSnapshot(p EventPayload) domain.EventSnapshot {
	ev := domain.EventSnapshot{
		ID:                p.ID,
		OwnerID:           p.OwnerID,
		Title:             p.Title,
		Status:            domain.EventStatus(p.Status),
		Cancelled:         p.Cancelled,
		StartTime:         p.StartTime.UTC(),
		GameType:          p.GameType,
		GameStarted:       p.GameStarted,
		MaxParticipants:   p.MaxParticipants,
		BookedSeats:       p.BookedSeats,
		RegistrationCount: p.RegistrationCount,
		Full:              p.Full,
	}

	if p.MyBooking != nil {
		ev.MyBooking = &domain.Booking{
			PublicID: p.MyBooking.PublicID,
			Status:   domain.BookingStatus(p.MyBooking.Status),
		}
	}
	if p.Permissions != nil {
		ev.Permissions = &domain.Permissions{
			CanBook:        p.Permissions.CanBook,
			CanCancelEvent: p.Permissions.CanCancelEvent,
		}
	}
	if p.Links != nil {
		ev.Links = domain.Links{
			RequestPublication: p.Links.RequestPublication,
			PayAndPublish:      p.Links.PayAndPublish,
			DeleteDraft:        p.Links.DeleteDraft,
			Cancel:             p.Links.Cancel,
		}
	}
	return ev
}

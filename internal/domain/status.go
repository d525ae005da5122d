package domain

type EventStatus string

const (
	StatusDraft               EventStatus = "draft"
	StatusPendingConfirmation EventStatus = "pending_confirmation"
	StatusPublished           EventStatus = "published"
	StatusCancelled           EventStatus = "cancelled"
	StatusFinished            EventStatus = "finished"
)

func (s EventStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingConfirmation, StatusPublished, StatusCancelled, StatusFinished:
		return true
	}
	return false
}

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

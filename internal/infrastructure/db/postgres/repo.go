package postgres

import (
	"context"
	"database/sql"

	"github.com/evently/event-actions-service/internal/domain"
)

type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// GetEvent loads the event core. Occupancy and the viewer relation are
// separate reads; the snapshot is assembled by the application layer.
func (r *Repo) GetEvent(ctx context.Context, id string) (*domain.EventSnapshot, error) {
	row := r.db.QueryRowContext(ctx, getEventSQL, id)

	var ev domain.EventSnapshot
	var status string
	var gameType sql.NullString
	err := row.Scan(
		&ev.ID, &ev.OwnerID, &ev.Title, &status, &ev.Cancelled,
		&ev.StartTime, &gameType, &ev.GameStarted, &ev.MaxParticipants,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("event not found")
	}
	if err != nil {
		return nil, err
	}
	ev.Status = domain.EventStatus(status)
	if gameType.Valid {
		ev.GameType = gameType.String
	}
	ev.StartTime = ev.StartTime.UTC()
	return &ev, nil
}

// GetViewerBooking returns the viewer's latest booking on the event, or
// nil when the viewer has none (anonymous viewers short-circuit to nil).
func (r *Repo) GetViewerBooking(ctx context.Context, eventID, userID string) (*domain.Booking, error) {
	if userID == "" {
		return nil, nil
	}
	row := r.db.QueryRowContext(ctx, getViewerBookingSQL, eventID, userID)

	var b domain.Booking
	var status string
	err := row.Scan(&b.PublicID, &status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatus(status)
	return &b, nil
}

// CountSeats returns confirmed seats and total live registrations.
func (r *Repo) CountSeats(ctx context.Context, eventID string) (booked, registrations int, err error) {
	row := r.db.QueryRowContext(ctx, countSeatsSQL, eventID)
	if err := row.Scan(&booked, &registrations); err != nil {
		return 0, 0, err
	}
	return booked, registrations, nil
}

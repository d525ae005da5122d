package actions

import (
	"context"
	"time"

	"github.com/evently/event-actions-service/internal/domain"
)

// SnapshotRepo supplies the raw pieces of an event snapshot.
type SnapshotRepo interface {
	GetEvent(ctx context.Context, id string) (*domain.EventSnapshot, error)
	GetViewerBooking(ctx context.Context, eventID, userID string) (*domain.Booking, error)
	CountSeats(ctx context.Context, eventID string) (booked, registrations int, err error)
}

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

package actions

import (
	"context"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/evently/event-actions-service/internal/domain"
	"github.com/evently/event-actions-service/internal/engine"
	"github.com/evently/event-actions-service/internal/metrics"
)

// Viewer is the authenticated (or anonymous) caller of an evaluation.
type Viewer struct {
	UserID string // "" = anonymous
	Role   string
	// SkipTimeValidation is honored only when the viewer turns out to
	// be the event's organizer.
	SkipTimeValidation bool
}

func (v Viewer) isAdmin() bool { return v.Role == "admin" }

type Service struct {
	repo   SnapshotRepo
	cache  Cache
	engine *engine.Engine

	ttlEvent time.Duration
}

func New(repo SnapshotRepo, cache Cache, eng *engine.Engine, ttlEvent time.Duration) *Service {
	if ttlEvent == 0 {
		ttlEvent = 5 * time.Minute
	}
	return &Service{
		repo:     repo,
		cache:    cache,
		engine:   eng,
		ttlEvent: ttlEvent,
	}
}

// GetActions assembles the snapshot for one event and viewer and runs
// the engine over it.
func (s *Service) GetActions(ctx context.Context, eventID string, v Viewer) ([]engine.ActionState, error) {
	ev, uc, err := s.loadSnapshot(ctx, eventID, v)
	if err != nil {
		return nil, err
	}
	metrics.RecordEvaluation(actorLabel(uc))
	return s.engine.GetAvailableActions(*ev, uc), nil
}

// GetPrimary returns the viewer's primary action, or nil.
func (s *Service) GetPrimary(ctx context.Context, eventID string, v Viewer) (*engine.ActionState, error) {
	ev, uc, err := s.loadSnapshot(ctx, eventID, v)
	if err != nil {
		return nil, err
	}
	metrics.RecordEvaluation(actorLabel(uc))
	return s.engine.GetPrimaryAction(*ev, uc), nil
}

// GetBadge derives the viewer-independent state badge. Only the event
// core and occupancy are loaded; no viewer relation is needed.
func (s *Service) GetBadge(ctx context.Context, eventID string) (engine.Badge, error) {
	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return engine.BadgeNone, err
	}
	if err := s.attachOccupancy(ctx, ev); err != nil {
		return engine.BadgeNone, err
	}
	return s.engine.GetEventBadge(*ev), nil
}

// Preview evaluates a caller-supplied snapshot verbatim (organizer test
// mode). SkipTimeValidation is stripped unless the caller owns the
// snapshot's event or is an admin.
func (s *Service) Preview(ctx context.Context, ev domain.EventSnapshot, v Viewer) ([]engine.ActionState, error) {
	if ev.Status != "" && !ev.Status.Valid() {
		return nil, domain.ErrValidationMeta("unknown event status", map[string]string{
			"status": string(ev.Status),
		})
	}
	uc := s.userContext(&ev, v)
	metrics.RecordEvaluation(actorLabel(uc))
	return s.engine.GetAvailableActions(ev, uc), nil
}

func (s *Service) loadSnapshot(ctx context.Context, eventID string, v Viewer) (*domain.EventSnapshot, domain.UserContext, error) {
	ev, err := s.loadEvent(ctx, eventID)
	if err != nil {
		return nil, domain.UserContext{}, err
	}

	if err := s.attachOccupancy(ctx, ev); err != nil {
		return nil, domain.UserContext{}, err
	}

	booking, err := s.repo.GetViewerBooking(ctx, eventID, v.UserID)
	if err != nil {
		return nil, domain.UserContext{}, err
	}
	ev.MyBooking = booking

	uc := s.userContext(ev, v)
	ev.Links = deriveLinks(ev, uc)
	return ev, uc, nil
}

// loadEvent reads the event core through the cache; cache failures are
// logged and degrade to DB reads.
func (s *Service) loadEvent(ctx context.Context, eventID string) (*domain.EventSnapshot, error) {
	key := cacheKeyEvent(eventID)

	if s.cache != nil {
		var cached domain.EventSnapshot
		found, err := s.cache.Get(ctx, key, &cached)
		switch {
		case err != nil:
			metrics.RecordCache(metrics.CacheError)
			zlog.Warn().Err(err).Str("key", key).Msg("cache get failed")
		case found:
			metrics.RecordCache(metrics.CacheHit)
			return &cached, nil
		default:
			metrics.RecordCache(metrics.CacheMiss)
		}
	}

	ev, err := s.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, ev, s.ttlEvent); err != nil {
			zlog.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return ev, nil
}

// InvalidateEvent drops the cached event core; called when a lifecycle
// message reports the event (or its bookings) changed.
func (s *Service) InvalidateEvent(ctx context.Context, eventID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Delete(ctx, cacheKeyEvent(eventID))
}

func (s *Service) attachOccupancy(ctx context.Context, ev *domain.EventSnapshot) error {
	booked, registrations, err := s.repo.CountSeats(ctx, ev.ID)
	if err != nil {
		return err
	}
	ev.BookedSeats = &booked
	ev.RegistrationCount = &registrations
	return nil
}

func (s *Service) userContext(ev *domain.EventSnapshot, v Viewer) domain.UserContext {
	organizer := v.UserID != "" && v.UserID == ev.OwnerID
	return domain.UserContext{
		UserID:             v.UserID,
		IsOrganizer:        organizer,
		IsAdmin:            v.isAdmin(),
		SkipTimeValidation: v.SkipTimeValidation && (organizer || v.isAdmin()),
	}
}

// deriveLinks advertises the operations this server exposes for the
// snapshot, mirroring what the REST API would offer the same viewer.
func deriveLinks(ev *domain.EventSnapshot, uc domain.UserContext) domain.Links {
	if !uc.IsOrganizer {
		return domain.Links{}
	}
	switch ev.Status {
	case domain.StatusDraft:
		return domain.Links{RequestPublication: true, DeleteDraft: true}
	case domain.StatusPublished:
		return domain.Links{Cancel: true}
	}
	return domain.Links{}
}

func actorLabel(uc domain.UserContext) string {
	switch {
	case uc.IsOrganizer:
		return metrics.ActorOrganizer
	case uc.Anonymous():
		return metrics.ActorAnonymous
	default:
		return metrics.ActorUser
	}
}

package availability

import (
	"context"
	"errors"

	"rendezvous/backend/internal/domain"
	"rendezvous/backend/internal/store"
)

type Service struct {
	repo store.AvailabilityRepository
}

func NewService(repo store.AvailabilityRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByAdmin(ctx context.Context, adminID int64) (domain.Availability, error) {
	return s.repo.GetByAdmin(ctx, adminID)
}

// Apply merges one inbound event into the admin's stored record, creating
// the record lazily on the first event. Reapplying the same event is safe:
// the day set is idempotent and the window is last-write-wins anyway.
func (s *Service) Apply(ctx context.Context, adminID int64, day, startTime, endTime string) (domain.Availability, error) {
	var existing *domain.Availability
	current, err := s.repo.GetByAdmin(ctx, adminID)
	switch {
	case err == nil:
		existing = &current
	case errors.Is(err, store.ErrNotFound):
		// first event for this admin
	default:
		return domain.Availability{}, err
	}

	merged, err := Merge(existing, adminID, day, startTime, endTime)
	if err != nil {
		return domain.Availability{}, err
	}

	return s.repo.Upsert(ctx, merged)
}

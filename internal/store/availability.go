package store

import (
	"context"

	"rendezvous/backend/internal/domain"
)

// At most one Availability row exists per admin; the merge path enforces
// that by lookup-or-create rather than a database constraint.
type AvailabilityRepository interface {
	GetByAdmin(ctx context.Context, adminID int64) (domain.Availability, error)
	Upsert(ctx context.Context, av domain.Availability) (domain.Availability, error)
}

package store

import (
	"context"

	"github.com/google/uuid"

	"rendezvous/backend/internal/domain"
)

// DateCount is one row of the count-by-date aggregate.
type DateCount struct {
	Date  string `bun:"date" json:"date"`
	Count int64  `bun:"count" json:"count"`
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Appointment, error)
	List(ctx context.Context) ([]domain.Appointment, error)
	ListByClientName(ctx context.Context, clientName string) ([]domain.Appointment, error)
	ListByAdmin(ctx context.Context, adminID int64) ([]domain.Appointment, error)
	Update(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByDate(ctx context.Context) ([]DateCount, error)
}

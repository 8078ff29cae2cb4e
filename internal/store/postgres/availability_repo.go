package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"rendezvous/backend/internal/domain"
	"rendezvous/backend/internal/store"
)

type AvailabilityRepo struct {
	db *bun.DB
}

func NewAvailabilityRepo(db *bun.DB) *AvailabilityRepo {
	return &AvailabilityRepo{db: db}
}

func (r *AvailabilityRepo) GetByAdmin(ctx context.Context, adminID int64) (domain.Availability, error) {
	var m domain.Availability
	err := r.db.NewSelect().
		Model(&m).
		Where("admin_id = ?", adminID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Availability{}, store.ErrNotFound
		}
		return domain.Availability{}, err
	}
	return m, nil
}

// Upsert inserts a fresh record (no id yet) or updates the existing row in
// place. The merge path always goes through GetByAdmin first, so a given
// admin keeps a single row.
func (r *AvailabilityRepo) Upsert(ctx context.Context, av domain.Availability) (domain.Availability, error) {
	m := av
	if m.ID == uuid.Nil {
		if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
			return domain.Availability{}, err
		}
		return m, nil
	}

	res, err := r.db.NewUpdate().
		Model(&m).
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Availability{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Availability{}, err
	}
	if affected == 0 {
		return domain.Availability{}, store.ErrNotFound
	}
	return m, nil
}

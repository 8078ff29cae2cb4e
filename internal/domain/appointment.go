package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Status is the lifecycle state of an appointment. It is persisted as its
// string form; unknown tokens are rejected at the boundaries.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCanceled  Status = "CANCELED"
)

// NormalizeStatus maps the empty string to the PENDING default and
// validates everything else against the three known states.
func NormalizeStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case "":
		return StatusPending, nil
	case StatusPending:
		return StatusPending, nil
	case StatusConfirmed:
		return StatusConfirmed, nil
	case StatusCanceled:
		return StatusCanceled, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseDate validates a calendar date in 2006-01-02 form. Dates carry no
// time zone anywhere in this service.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.Format(DateLayout), nil
}

// ParseTimeOfDay validates a time of day in HH:MM form. Seconds are
// accepted on input and truncated.
func ParseTimeOfDay(s string) (string, error) {
	for _, layout := range []string{TimeLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(TimeLayout), nil
		}
	}
	return "", fmt.Errorf("invalid time %q", s)
}

type Appointment struct {
	bun.BaseModel `bun:"table:appointments" json:"-"`

	ID         uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	UserID     int64     `bun:"user_id,notnull" json:"userId"`
	ClientName string    `bun:"client_name" json:"clientName"`
	AdminID    int64     `bun:"admin_id" json:"adminId"`
	Name       string    `bun:"name" json:"name"`
	Date       string    `bun:"date,notnull" json:"date"`
	Time       string    `bun:"time,notnull" json:"time"`
	Details    string    `bun:"details" json:"details"`
	Status     Status    `bun:"status,notnull,default:'PENDING'" json:"status"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt  time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

func (a *Appointment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			a.ID = id
		}
		if a.Status == "" {
			a.Status = StatusPending
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}

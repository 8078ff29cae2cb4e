package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrInvalidWeekday is returned when an inbound day token is not one of the
// seven canonical weekday names.
var ErrInvalidWeekday = errors.New("invalid weekday")

// Weekday is one of the seven canonical upper-case day tokens.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

var weekdays = map[Weekday]struct{}{
	Monday: {}, Tuesday: {}, Wednesday: {}, Thursday: {},
	Friday: {}, Saturday: {}, Sunday: {},
}

// ParseWeekday normalizes a day token to its canonical upper-case form.
// Matching is case-insensitive; anything else is ErrInvalidWeekday.
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := weekdays[d]; !ok {
		return "", ErrInvalidWeekday
	}
	return d, nil
}

// SplitDays parses the stored comma-joined day list, preserving order.
func SplitDays(joined string) []Weekday {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make([]Weekday, 0, len(parts))
	for _, p := range parts {
		out = append(out, Weekday(p))
	}
	return out
}

// JoinDays serializes a day list back to the stored comma-joined form.
func JoinDays(days []Weekday) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, string(d))
	}
	return strings.Join(parts, ",")
}

// Availability is the weekly opening record of one administrator: the set
// of days they accept appointments plus a single start/end window shared by
// all of those days. The day list is stored comma-joined for compatibility
// with rows written by the previous system.
type Availability struct {
	bun.BaseModel `bun:"table:availabilities" json:"-"`

	ID            uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	AdminID       int64     `bun:"admin_id,notnull" json:"adminId"`
	AvailableDays string    `bun:"available_days" json:"availableDays"`
	StartTime     string    `bun:"start_time" json:"startTime"`
	EndTime       string    `bun:"end_time" json:"endTime"`
	CreatedAt     time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt     time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

func (a *Availability) BeforeAppendModel(ctx context.Context, query bun.Query) error {
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

// Package availability holds the per-administrator weekly opening logic:
// a pure merge of incoming day/window events into the stored record, plus
// the thin service that reads and applies those records.
package availability

import (
	"rendezvous/backend/internal/domain"
)

// Merge folds one inbound day/window event into an administrator's
// availability. Days accumulate as a set in insertion order; the start/end
// window is administrator-global and simply replaced on every event,
// whether or not the day was new. A nil existing record means this is the
// admin's first event and a fresh record is started.
//
// Merge never mutates its input. An unrecognized day token fails with
// domain.ErrInvalidWeekday before anything else is touched.
func Merge(existing *domain.Availability, adminID int64, day, startTime, endTime string) (domain.Availability, error) {
	wd, err := domain.ParseWeekday(day)
	if err != nil {
		return domain.Availability{}, err
	}

	var merged domain.Availability
	if existing != nil {
		merged = *existing
	}
	merged.AdminID = adminID

	if merged.AvailableDays == "" {
		merged.AvailableDays = string(wd)
	} else {
		days := domain.SplitDays(merged.AvailableDays)
		seen := false
		for _, d := range days {
			if d == wd {
				seen = true
				break
			}
		}
		if !seen {
			merged.AvailableDays = domain.JoinDays(append(days, wd))
		}
	}

	merged.StartTime = startTime
	merged.EndTime = endTime
	return merged, nil
}

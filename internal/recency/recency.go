// Package recency selects "new or updated" events over a rolling day
// window. Thresholds are anchored to UTC midnights, deliberately
// distinct from the Eastern civil-date anchor used for calendar
// bucketing.
package recency

import (
	"sort"
	"time"

	"github.com/openshelf/branch-events/internal/domain"
	"github.com/openshelf/branch-events/internal/normalize"
)

// Windows enumerates the selectable day windows.
var Windows = []int{1, 4, 7, 14, 21, 28}

func validWindow(days int) bool {
	for _, w := range Windows {
		if w == days {
			return true
		}
	}
	return false
}

// SelectRecent returns the events whose last-modified value, truncated
// to UTC midnight, falls on or after the UTC midnight `days` days before
// now's UTC date. Events lacking a last-modified value are excluded —
// unless the entire collection lacks modification metadata, in which
// case an event counts as "new" when its start date is in the future or
// within the window. Output is sorted descending by the same
// last-modified value, events lacking one last.
func SelectRecent(events []domain.Event, days int, now time.Time) ([]domain.Event, error) {
	if !validWindow(days) {
		return nil, domain.ErrValidationMeta("invalid recency window", map[string]string{
			"days": "must be one of: 1, 4, 7, 14, 21, 28",
		})
	}
	threshold := utcMidnight(now).AddDate(0, 0, -days)

	type scored struct {
		ev  domain.Event
		mod time.Time
	}

	anyModified := false
	all := make([]scored, 0, len(events))
	for _, ev := range events {
		mod := lastModified(ev)
		if !mod.IsZero() {
			anyModified = true
		}
		all = append(all, scored{ev: ev, mod: mod})
	}

	var selected []scored
	for _, s := range all {
		var include bool
		if anyModified {
			include = !s.mod.IsZero() && !utcMidnight(s.mod).Before(threshold)
		} else {
			// Degraded fallback: no modification metadata anywhere, so
			// treat upcoming and in-window events as new.
			include = s.ev.StartDate != nil && !s.ev.StartDate.Time(time.UTC).Before(threshold)
		}
		if include {
			selected = append(selected, s)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		a, b := selected[i].mod, selected[j].mod
		switch {
		case a.IsZero():
			return false // absent sorts as least-recent
		case b.IsZero():
			return true
		default:
			return a.After(b)
		}
	})

	out := make([]domain.Event, len(selected))
	for i, s := range selected {
		out[i] = s.ev
	}
	return out, nil
}

// lastModified prefers the source-native raw value over the normalized
// field.
func lastModified(ev domain.Event) time.Time {
	if t, ok := normalize.SourceLastModified(ev.Raw); ok {
		return t
	}
	return ev.LastUpdated
}

func utcMidnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

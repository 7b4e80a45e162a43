package events

import (
	"fmt"
	"time"

	"github.com/openshelf/branch-events/internal/domain"
)

// Result-cache keys are composite filter-state strings. The snapshot
// generation is part of every key so a refresh invalidates all cached
// projections at once without explicit deletes.

// The current civil date is part of the calendar key: the grid marks
// today's cell, so a grid cached before midnight must not survive the
// day boundary.
func calendarKey(gen uint64, year int, month time.Month, cap int, today domain.CivilDate) string {
	return fmt.Sprintf("calendar:g%d:y%d:m%d:cap%d:t%s", gen, year, int(month), cap, today)
}

func recentKey(gen uint64, days int) string {
	return fmt.Sprintf("recent:g%d:d%d", gen, days)
}

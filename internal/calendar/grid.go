// Package calendar projects canonical events onto a month grid for the
// calendar UI. The grid is a pure projection: recomputed per request,
// owned by the caller, never mutated after return.
package calendar

import (
	"time"

	"github.com/openshelf/branch-events/internal/domain"
)

// Display caps used by the UI; the aggregator itself never truncates,
// the cap is a presentation parameter supplied by the caller.
const (
	DisplayCapWide   = 3
	DisplayCapNarrow = 2
)

type Cell struct {
	Date          domain.CivilDate
	InTargetMonth bool
	IsToday       bool

	// Events holds every event starting on this civil date, in source
	// order. OverflowCount reports how many exceed the display cap.
	Events        []domain.Event
	OverflowCount int
}

type Grid struct {
	Year  int
	Month time.Month
	Cells []Cell
}

// Weeks slices the cells into rows of seven, Sunday through Saturday.
func (g Grid) Weeks() [][]Cell {
	out := make([][]Cell, 0, len(g.Cells)/7)
	for i := 0; i+7 <= len(g.Cells); i += 7 {
		out = append(out, g.Cells[i:i+7])
	}
	return out
}

// BuildGrid buckets events into a day-by-day grid spanning full weeks
// around the target month. Bucketing uses civil-date equality on the
// event's start date; events without one never appear. Exactly one cell
// is marked today when the target span contains it.
func BuildGrid(events []domain.Event, year int, month time.Month, today domain.CivilDate, displayCap int) Grid {
	first := domain.NewCivilDate(year, month, 1)
	last := first.AddDays(daysInMonth(year, month) - 1)

	// Extend to the preceding Sunday and the following Saturday.
	start := first.AddDays(-int(first.Weekday()))
	end := last.AddDays(int(time.Saturday - last.Weekday()))

	buckets := make(map[domain.CivilDate][]domain.Event)
	for _, ev := range events {
		if ev.StartDate == nil {
			continue
		}
		buckets[*ev.StartDate] = append(buckets[*ev.StartDate], ev)
	}

	grid := Grid{Year: year, Month: month}
	for d := start; !d.After(end); d = d.AddDays(1) {
		cell := Cell{
			Date:          d,
			InTargetMonth: d.Year == year && d.Month == month,
			IsToday:       d.Equal(today),
			Events:        buckets[d],
		}
		if displayCap > 0 && len(cell.Events) > displayCap {
			cell.OverflowCount = len(cell.Events) - displayCap
		}
		grid.Cells = append(grid.Cells, cell)
	}
	return grid
}

func daysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/branch-events/internal/domain"
)

func eventOn(id string, d domain.CivilDate) domain.Event {
	dd := d
	return domain.Event{ID: id, Title: "Event " + id, StartDate: &dd}
}

func TestBuildGrid_LeapFebruary(t *testing.T) {
	today := domain.NewCivilDate(2024, time.February, 14)
	grid := BuildGrid(nil, 2024, time.February, today, DisplayCapWide)

	assert.Zero(t, len(grid.Cells)%7, "grid spans full weeks")

	inMonth := 0
	todays := 0
	for _, c := range grid.Cells {
		if c.InTargetMonth {
			inMonth++
		}
		if c.IsToday {
			todays++
		}
	}
	assert.Equal(t, 29, inMonth, "leap February has 29 in-month cells")
	assert.Equal(t, 1, todays)

	// Feb 1 2024 is a Thursday: the grid starts on the preceding Sunday.
	assert.Equal(t, domain.NewCivilDate(2024, time.January, 28), grid.Cells[0].Date)
	assert.Equal(t, time.Sunday, grid.Cells[0].Date.Weekday())
	lastCell := grid.Cells[len(grid.Cells)-1]
	assert.Equal(t, time.Saturday, lastCell.Date.Weekday())
}

func TestBuildGrid_BucketsByCivilDateEquality(t *testing.T) {
	d := domain.NewCivilDate(2024, time.March, 10)
	other := domain.NewCivilDate(2024, time.March, 11)
	events := []domain.Event{
		eventOn("a", d),
		eventOn("b", other),
		eventOn("c", d),
		{ID: "no-date", Title: "dateless"},
	}

	grid := BuildGrid(events, 2024, time.March, domain.CivilDate{}, DisplayCapWide)

	var cell Cell
	found := false
	for _, c := range grid.Cells {
		if c.Date.Equal(d) {
			cell = c
			found = true
		}
	}
	require.True(t, found)
	require.Len(t, cell.Events, 2)
	assert.Equal(t, "a", cell.Events[0].ID, "source order preserved")
	assert.Equal(t, "c", cell.Events[1].ID)
}

func TestBuildGrid_OverflowDoesNotTruncate(t *testing.T) {
	d := domain.NewCivilDate(2024, time.March, 10)
	events := []domain.Event{
		eventOn("1", d), eventOn("2", d), eventOn("3", d), eventOn("4", d), eventOn("5", d),
	}

	grid := BuildGrid(events, 2024, time.March, domain.CivilDate{}, DisplayCapNarrow)
	for _, c := range grid.Cells {
		if !c.Date.Equal(d) {
			continue
		}
		assert.Len(t, c.Events, 5, "underlying list untouched")
		assert.Equal(t, 3, c.OverflowCount)
	}

	grid = BuildGrid(events, 2024, time.March, domain.CivilDate{}, DisplayCapWide)
	for _, c := range grid.Cells {
		if c.Date.Equal(d) {
			assert.Equal(t, 2, c.OverflowCount)
		}
	}
}

func TestBuildGrid_TodayOutsideMonthSpan(t *testing.T) {
	// Today in a different month: no cell flagged.
	grid := BuildGrid(nil, 2024, time.June, domain.NewCivilDate(2024, time.January, 1), DisplayCapWide)
	for _, c := range grid.Cells {
		assert.False(t, c.IsToday)
	}
}

func TestGrid_Weeks(t *testing.T) {
	grid := BuildGrid(nil, 2024, time.February, domain.CivilDate{}, DisplayCapWide)
	weeks := grid.Weeks()
	require.NotEmpty(t, weeks)
	assert.Equal(t, len(grid.Cells)/7, len(weeks))
	for _, w := range weeks {
		assert.Len(t, w, 7)
	}
}

package recency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/branch-events/internal/domain"
)

func modifiedEvent(id string, lastUpdated string) domain.Event {
	return domain.Event{
		ID:  id,
		Raw: domain.RawRecord{"lastupdated": lastUpdated},
	}
}

func TestSelectRecent_WindowBoundaries(t *testing.T) {
	now := time.Date(2024, time.May, 20, 15, 45, 0, 0, time.UTC)
	events := []domain.Event{
		modifiedEvent("six-days", "2024-05-14T23:59:00"),
		modifiedEvent("eight-days", "2024-05-12T00:01:00"),
		modifiedEvent("exactly-seven", "2024-05-13T08:00:00"),
	}

	got, err := SelectRecent(events, 7, now)
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, ev := range got {
		ids = append(ids, ev.ID)
	}
	assert.Contains(t, ids, "six-days")
	assert.Contains(t, ids, "exactly-seven", "threshold is inclusive after midnight truncation")
	assert.NotContains(t, ids, "eight-days")
}

func TestSelectRecent_SortsDescending(t *testing.T) {
	now := time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)
	events := []domain.Event{
		modifiedEvent("older", "2024-05-18T09:00:00"),
		modifiedEvent("newest", "2024-05-20T09:00:00"),
		modifiedEvent("middle", "2024-05-19T09:00:00"),
	}

	got, err := SelectRecent(events, 7, now)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "newest", got[0].ID)
	assert.Equal(t, "middle", got[1].ID)
	assert.Equal(t, "older", got[2].ID)
}

func TestSelectRecent_PrefersSourceNativeField(t *testing.T) {
	now := time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)
	ev := domain.Event{
		ID:          "e",
		LastUpdated: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Raw:         domain.RawRecord{"lastupdated": "2024-05-19T09:00:00"},
	}

	got, err := SelectRecent([]domain.Event{ev}, 4, now)
	require.NoError(t, err)
	assert.Len(t, got, 1, "raw field wins over the stale normalized value")
}

func TestSelectRecent_ExcludesUnmodifiedWhenOthersHaveMetadata(t *testing.T) {
	now := time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)
	d := domain.NewCivilDate(2024, time.May, 19)
	events := []domain.Event{
		modifiedEvent("tracked", "2024-05-19T09:00:00"),
		{ID: "untracked", StartDate: &d},
	}

	got, err := SelectRecent(events, 7, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tracked", got[0].ID)
}

func TestSelectRecent_DegradedFallback(t *testing.T) {
	now := time.Date(2024, time.May, 20, 12, 0, 0, 0, time.UTC)
	inWindow := domain.NewCivilDate(2024, time.May, 18)
	future := domain.NewCivilDate(2024, time.June, 3)
	past := domain.NewCivilDate(2024, time.April, 1)
	events := []domain.Event{
		{ID: "in-window", StartDate: &inWindow},
		{ID: "future", StartDate: &future},
		{ID: "long-past", StartDate: &past},
		{ID: "dateless"},
	}

	got, err := SelectRecent(events, 7, now)
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, ev := range got {
		ids = append(ids, ev.ID)
	}
	assert.ElementsMatch(t, []string{"in-window", "future"}, ids)
}

func TestSelectRecent_RejectsUnknownWindow(t *testing.T) {
	_, err := SelectRecent(nil, 3, time.Now())
	require.Error(t, err)
	var ae *domain.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, domain.CodeValidation, ae.Code)
}

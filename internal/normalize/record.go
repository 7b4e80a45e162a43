package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/openshelf/branch-events/internal/domain"
)

// Field candidates, in preference order. Source feeds disagree on
// spellings; the first present, non-blank key wins.
var (
	idFields          = []string{"id", "event_id", "recordid", "pk", "_id"}
	titleFields       = []string{"title", "eventname", "event_name", "name"}
	descriptionFields = []string{"description", "details", "event_description"}
	startDateFields   = []string{"startdate", "start_date", "date", "eventdate"}
	endDateFields     = []string{"enddate", "end_date"}
	startTimeFields   = []string{"starttime", "start_time"}
	endTimeFields     = []string{"endtime", "end_time"}
	libraryFields     = []string{"library", "location", "branch"}
	websiteFields     = []string{"pagelink", "link", "website", "url"}

	// Source-native spelling first.
	lastModifiedFields = []string{"lastupdated", "last_modified", "modified"}
)

// SourceLastModified reads and parses the feed's last-modified stamp
// straight from a raw record. Both Normalize and the recency filter go
// through here so the field spellings cannot drift apart.
func SourceLastModified(raw domain.RawRecord) (time.Time, bool) {
	v := raw.Text(lastModifiedFields...)
	if v == "" {
		return time.Time{}, false
	}
	t, err := ParseInstant(v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

const slotCount = 3

// Normalize maps a raw event record into the canonical Event. It is
// deterministic and pure: the same raw record always yields the same
// Event, including the fallback id.
func Normalize(raw domain.RawRecord) domain.Event {
	ev := domain.Event{Raw: raw}

	ev.Title = cleanText(raw.Text(titleFields...))
	ev.Description = cleanText(raw.Text(descriptionFields...))
	ev.Library = cleanText(raw.Text(libraryFields...))
	ev.Website = cleanText(raw.Text(websiteFields...))
	ev.StartTime = cleanText(raw.Text(startTimeFields...))
	ev.EndTime = cleanText(raw.Text(endTimeFields...))

	categories := collectSlots(raw, "eventtype", "category")
	if len(categories) > 0 {
		ev.Category = categories[0]
		ev.Program = strings.Join(categories, ", ")
	}
	ages := collectSlots(raw, "agegroup", "age_group")
	if len(ages) > 0 {
		ev.AgeGroup = ages[0]
	}

	ev.StartDate = civilDateOrNil(raw.Text(startDateFields...))
	ev.EndDate = civilDateOrNil(raw.Text(endDateFields...))

	if t, ok := SourceLastModified(raw); ok {
		ev.LastUpdated = t
	}

	if id := raw.Text(idFields...); id != "" {
		ev.ID = id
	} else {
		ev.ID = fallbackID(ev)
	}

	return ev
}

// collectSlots gathers up to three numbered slot fields (base1..base3),
// dropping blanks, plus an unnumbered fallback spelling.
func collectSlots(raw domain.RawRecord, base, fallback string) []string {
	out := make([]string, 0, slotCount)
	for i := 1; i <= slotCount; i++ {
		if v := cleanText(raw.Text(base + strconv.Itoa(i))); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		if v := cleanText(raw.Text(base, fallback)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func civilDateOrNil(value string) *domain.CivilDate {
	if value == "" {
		return nil
	}
	d, err := ToCivilDate(value)
	if err != nil {
		return nil
	}
	return &d
}

// cleanText trims and collapses internal whitespace. Absence, not the
// empty string, is the "no value" sentinel throughout.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// fallbackID derives a stable id from record content so that
// re-ingestion of an id-less record stays idempotent.
func fallbackID(ev domain.Event) string {
	start := ""
	if ev.StartDate != nil {
		start = ev.StartDate.String()
	}
	sum := sha256.Sum256([]byte(Slug(ev.Title) + "|" + start + "|" + Slug(ev.Library)))
	return "evt-" + hex.EncodeToString(sum[:8])
}

// Slug lower-cases and reduces a title to hyphen-separated alphanumeric
// runs.
func Slug(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

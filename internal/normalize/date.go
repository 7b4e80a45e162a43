// Package normalize converts raw catalogue records into the canonical
// event shape. Everything here is pure: no I/O, no clocks.
package normalize

import (
	"strings"
	"time"

	"github.com/openshelf/branch-events/internal/domain"
)

// referenceZone is the source data's home zone. Calendar dates are read
// as they appear in this zone, not in the process's local zone, so a
// serialized date survives re-parsing on a client anywhere in the world.
var referenceZone *time.Location

func init() {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// No tzdata available; standard-time offset is close enough for a
		// fixed reference anchor.
		loc = time.FixedZone("EST", -5*3600)
	}
	referenceZone = loc
}

// ReferenceZone returns the fixed zone calendar dates are anchored to.
func ReferenceZone() *time.Location { return referenceZone }

// dateOnlyLayouts are formats that carry no time-of-day component. The
// parsed components are taken as the civil date directly, with no zone
// conversion. MM/DD/YYYY is tried before DD/MM/YYYY, so an ambiguous
// value like 03/04/2024 reads as March 4.
var dateOnlyLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2 2006",
}

// instantLayouts carry a time-of-day; values without an explicit offset
// are read in the reference zone.
var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 3:04 PM",
}

// ToCivilDate converts any supported date representation into the
// calendar date as it reads in the reference zone. Unparseable input
// yields domain.ErrInvalidDate; callers treat that as "unknown date",
// not a hard failure.
func ToCivilDate(value string) (domain.CivilDate, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return domain.CivilDate{}, domain.ErrInvalidDate("empty date value")
	}

	for _, layout := range dateOnlyLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return domain.NewCivilDate(y, m, d), nil
		}
	}

	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, referenceZone); err == nil {
			return domain.CivilDateOf(t, referenceZone), nil
		}
	}

	return domain.CivilDate{}, domain.ErrInvalidDate("unrecognized date format: " + s)
}

// CivilDateFromTime reads an absolute instant's calendar date in the
// reference zone.
func CivilDateFromTime(t time.Time) domain.CivilDate {
	return domain.CivilDateOf(t, referenceZone)
}

// ParseInstant parses a last-modified style timestamp as an absolute
// instant. Values without an explicit offset are read as UTC; the
// recency filter anchors to UTC midnights, deliberately distinct from
// the civil-date anchor above.
func ParseInstant(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, domain.ErrInvalidDate("empty timestamp value")
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, domain.ErrInvalidDate("unrecognized timestamp format: " + s)
}

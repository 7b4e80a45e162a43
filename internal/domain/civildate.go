package domain

import (
	"fmt"
	"time"
)

// CivilDate is a calendar date with no time-of-day or timezone component.
// Two CivilDates are equal iff year, month and day all match, independent
// of how each was originally represented.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

func NewCivilDate(year int, month time.Month, day int) CivilDate {
	return CivilDate{Year: year, Month: month, Day: day}
}

// CivilDateOf reads t's calendar date in loc.
func CivilDateOf(t time.Time, loc *time.Location) CivilDate {
	y, m, d := t.In(loc).Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

// ParseCivilDate parses a strict YYYY-MM-DD string.
func ParseCivilDate(s string) (CivilDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return CivilDate{}, ErrInvalidDate("not a YYYY-MM-DD date: " + s)
	}
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: m, Day: d}, nil
}

func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d CivilDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d CivilDate) Equal(o CivilDate) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

func (d CivilDate) Before(o CivilDate) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d CivilDate) After(o CivilDate) bool {
	return o.Before(d)
}

// Time returns midnight of the date in loc.
func (d CivilDate) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d CivilDate) AddDays(n int) CivilDate {
	t := d.Time(time.UTC).AddDate(0, 0, n)
	y, m, day := t.Date()
	return CivilDate{Year: y, Month: m, Day: day}
}

func (d CivilDate) Weekday() time.Weekday {
	return d.Time(time.UTC).Weekday()
}

// MarshalJSON serializes as a quoted YYYY-MM-DD string so the receiving
// party reproduces the same calendar day regardless of its own timezone.
func (d CivilDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *CivilDate) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return ErrInvalidDate("not a quoted date string")
	}
	parsed, err := ParseCivilDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

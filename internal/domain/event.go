package domain

import "time"

// Event is the canonical, render-ready representation of one raw source
// record. It is immutable once constructed: re-fetching recomputes, never
// patches. Absent string fields are ""; absent dates are nil.
type Event struct {
	// ID is deterministic: re-normalizing the same raw record yields the
	// same id, including the content-hash fallback path.
	ID string

	Title       string
	Description string

	StartDate *CivilDate
	EndDate   *CivilDate
	StartTime string
	EndTime   string

	Library string

	// Category is the first surviving source category slot; Program keeps
	// the full joined slot list. AgeGroup is the first age-group slot.
	Category string
	Program  string
	AgeGroup string

	Website string

	// LastUpdated is the normalized last-modified instant; zero means the
	// source carried none. Recency selection prefers the source-native raw
	// field over this one.
	LastUpdated time.Time

	// Raw is the source record, retained for recency lookups and
	// debugging. Exclusively owned by the event, read-only.
	Raw RawRecord
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64
	Lng float64
}

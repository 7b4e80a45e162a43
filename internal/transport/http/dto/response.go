package dto

import "time"

// EventResp is the stable API response model. Dates are civil
// "YYYY-MM-DD" strings so the browser never shifts them across
// timezones; times stay the source's display strings.
type EventResp struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	Description string `json:"description,omitempty"`
	Library     string `json:"library,omitempty"`
	Category    string `json:"category,omitempty"`
	Program     string `json:"program,omitempty"`
	AgeGroup    string `json:"age_group,omitempty"`
	Website     string `json:"website,omitempty"`

	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`

	LastUpdated *time.Time `json:"last_updated,omitempty"`

	// Derived: present only when the branch resolved to coordinates.
	Coordinates *CoordinatesResp `json:"coordinates,omitempty"`
}

type CoordinatesResp struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CellResp is one day cell of the calendar grid.
type CellResp struct {
	Date          string      `json:"date"`
	InTargetMonth bool        `json:"in_target_month"`
	IsToday       bool        `json:"is_today"`
	Events        []EventResp `json:"events"`
	OverflowCount int         `json:"overflow_count"`
}

type CalendarResp struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Weeks [][]CellResp `json:"weeks"`
}

type RecentResp struct {
	Days   int         `json:"days"`
	Events []EventResp `json:"events"`
}

type BranchResp struct {
	Name        string          `json:"name"`
	Coordinates CoordinatesResp `json:"coordinates"`
	Address     string          `json:"address,omitempty"`
	Phone       string          `json:"phone,omitempty"`
}

type NearbyResp struct {
	Branch     BranchResp `json:"branch"`
	DistanceKm float64    `json:"distance_km"`
}

type ResolveResp struct {
	Query       string          `json:"query"`
	Name        string          `json:"name"`
	Coordinates CoordinatesResp `json:"coordinates"`
}

type HealthResp struct {
	Status      string    `json:"status"`
	Events      int       `json:"events"`
	Branches    int       `json:"branches"`
	Truncated   bool      `json:"truncated"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

package dto

import (
	"github.com/openshelf/branch-events/internal/application/events"
	"github.com/openshelf/branch-events/internal/calendar"
	"github.com/openshelf/branch-events/internal/domain"
	"github.com/openshelf/branch-events/internal/geo"
)

// CoordsResolver binds a branch name to coordinates; false means the
// event ships without a map pin.
type CoordsResolver func(name string) (domain.Coordinates, bool)

func ToEventResp(e domain.Event, resolve CoordsResolver) EventResp {
	out := EventResp{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Library:     e.Library,
		Category:    e.Category,
		Program:     e.Program,
		AgeGroup:    e.AgeGroup,
		Website:     e.Website,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
	}
	if e.StartDate != nil {
		out.StartDate = e.StartDate.String()
	}
	if e.EndDate != nil {
		out.EndDate = e.EndDate.String()
	}
	if !e.LastUpdated.IsZero() {
		t := e.LastUpdated
		out.LastUpdated = &t
	}
	if resolve != nil && e.Library != "" {
		if c, ok := resolve(e.Library); ok {
			out.Coordinates = &CoordinatesResp{Lat: c.Lat, Lng: c.Lng}
		}
	}
	return out
}

func ToEventResps(evs []domain.Event, resolve CoordsResolver) []EventResp {
	out := make([]EventResp, 0, len(evs))
	for _, e := range evs {
		out = append(out, ToEventResp(e, resolve))
	}
	return out
}

func ToCalendarResp(g calendar.Grid, resolve CoordsResolver) CalendarResp {
	weeks := g.Weeks()
	out := CalendarResp{
		Year:  g.Year,
		Month: int(g.Month),
		Weeks: make([][]CellResp, 0, len(weeks)),
	}
	for _, week := range weeks {
		row := make([]CellResp, 0, 7)
		for _, cell := range week {
			row = append(row, CellResp{
				Date:          cell.Date.String(),
				InTargetMonth: cell.InTargetMonth,
				IsToday:       cell.IsToday,
				Events:        ToEventResps(cell.Events, resolve),
				OverflowCount: cell.OverflowCount,
			})
		}
		out.Weeks = append(out.Weeks, row)
	}
	return out
}

func ToBranchResp(e *geo.Entry) BranchResp {
	return BranchResp{
		Name:        e.Name,
		Coordinates: CoordinatesResp{Lat: e.Coords.Lat, Lng: e.Coords.Lng},
		Address:     e.Address,
		Phone:       e.Phone,
	}
}

func ToBranchResps(entries []*geo.Entry) []BranchResp {
	out := make([]BranchResp, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToBranchResp(e))
	}
	return out
}

func ToNearbyResps(items []events.BranchDistance) []NearbyResp {
	out := make([]NearbyResp, 0, len(items))
	for _, it := range items {
		out = append(out, NearbyResp{
			Branch:     ToBranchResp(it.Branch),
			DistanceKm: it.DistanceKm,
		})
	}
	return out
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/openshelf/branch-events/internal/application/events"
	"github.com/openshelf/branch-events/internal/calendar"
	"github.com/openshelf/branch-events/internal/domain"
	"github.com/openshelf/branch-events/internal/normalize"
	"github.com/openshelf/branch-events/internal/transport/http/dto"
	"github.com/openshelf/branch-events/internal/transport/http/response"
)

type Clock interface{ Now() time.Time }

type EventsHandler struct {
	svc   *events.Service
	clock Clock
}

func NewEventsHandler(svc *events.Service, clock Clock) *EventsHandler {
	return &EventsHandler{svc: svc, clock: clock}
}

// Calendar serves the month grid. Defaults to the current month in the
// reference timezone when year/month are omitted.
func (h *EventsHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	today := normalize.CivilDateFromTime(h.clock.Now())
	year := today.Year
	month := today.Month

	if v := q.Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"year": "must be an integer",
			}))
			return
		}
		year = n
	}
	if v := q.Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"month": "must be 1-12",
			}))
			return
		}
		month = time.Month(n)
	}

	displayCap := calendarDisplayCap(q.Get("layout"))

	grid, err := h.svc.Calendar(r.Context(), year, month, displayCap)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Data(w, http.StatusOK, dto.ToCalendarResp(grid, h.svc.ResolveBranch))
}

// Recent serves the what's-new list for an enumerated day window.
func (h *EventsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"days": "must be an integer",
			}))
			return
		}
		days = n
	}

	evs, err := h.svc.Recent(r.Context(), days)
	if err != nil {
		response.Err(w, r, err)
		return
	}

	response.Data(w, http.StatusOK, dto.RecentResp{
		Days:   days,
		Events: dto.ToEventResps(evs, h.svc.ResolveBranch),
	})
}

// calendarDisplayCap maps the layout hint to how many events a day cell
// lists before overflowing into a "+N more" count.
func calendarDisplayCap(layout string) int {
	if layout == "narrow" {
		return calendar.DisplayCapNarrow
	}
	return calendar.DisplayCapWide
}

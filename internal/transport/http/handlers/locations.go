package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/openshelf/branch-events/internal/application/events"
	"github.com/openshelf/branch-events/internal/domain"
	"github.com/openshelf/branch-events/internal/transport/http/dto"
	"github.com/openshelf/branch-events/internal/transport/http/response"
)

type LocationsHandler struct {
	svc *events.Service
}

func NewLocationsHandler(svc *events.Service) *LocationsHandler {
	return &LocationsHandler{svc: svc}
}

// List returns every indexed branch, sorted by name.
func (h *LocationsHandler) List(w http.ResponseWriter, r *http.Request) {
	response.Data(w, http.StatusOK, dto.ToBranchResps(h.svc.Branches()))
}

// Resolve binds a free-text branch name to a canonical entry.
func (h *LocationsHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("name"))
	if query == "" {
		response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
			"name": "must not be empty",
		}))
		return
	}

	entry, ok := h.svc.LookupBranch(query)
	if !ok {
		response.Err(w, r, domain.ErrNoMatch("no branch matching query"))
		return
	}

	response.Data(w, http.StatusOK, dto.ResolveResp{
		Query:       query,
		Name:        entry.Name,
		Coordinates: dto.CoordinatesResp{Lat: entry.Coords.Lat, Lng: entry.Coords.Lng},
	})
}

// Nearby lists branches sorted by distance from lat/lng.
func (h *LocationsHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
			"lat": "lat and lng must be decimal degrees",
		}))
		return
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
			"lat": "out of range",
		}))
		return
	}

	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 50 {
			response.Err(w, r, domain.ErrValidationMeta("invalid query param", map[string]string{
				"limit": "must be 1-50",
			}))
			return
		}
		limit = n
	}

	items := h.svc.Nearby(domain.Coordinates{Lat: lat, Lng: lng}, limit)
	response.Data(w, http.StatusOK, dto.ToNearbyResps(items))
}

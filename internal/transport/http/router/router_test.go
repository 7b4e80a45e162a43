package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/branch-events/internal/application/contact"
	"github.com/openshelf/branch-events/internal/application/events"
	"github.com/openshelf/branch-events/internal/config"
	"github.com/openshelf/branch-events/internal/domain"
	"github.com/openshelf/branch-events/internal/opendata"
	"github.com/openshelf/branch-events/internal/transport/http/handlers"
)

type stubClock struct{}

func (stubClock) Now() time.Time { return time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC) }

type stubSource struct{}

func (stubSource) FetchPage(_ context.Context, resourceID string, offset, limit int) (opendata.Page, error) {
	if offset > 0 {
		return opendata.Page{Total: 1}, nil
	}
	switch resourceID {
	case "res-events":
		return opendata.Page{
			Records: []domain.RawRecord{{
				"id": "1", "title": "Storytime", "startdate": "2024-03-05", "library": "Agincourt",
			}},
			Total: 1,
		}, nil
	default:
		return opendata.Page{
			Records: []domain.RawRecord{{
				"branchname": "Agincourt", "lat": 43.7853, "long": -79.2785, "physicalbranch": "1",
			}},
			Total: 1,
		}, nil
	}
}

func testRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	svc := events.New(stubSource{}, stubClock{}, nil, events.Options{
		EventsResource:   "res-events",
		BranchesResource: "res-branches",
	})
	require.NoError(t, svc.Refresh(context.Background()))

	return New(
		handlers.NewEventsHandler(svc, stubClock{}),
		handlers.NewLocationsHandler(svc),
		handlers.NewContactHandler(contact.New(contact.NoopPublisher{})),
		handlers.NewHealthHandler(svc),
		cfg,
	)
}

func TestRouter_Routing(t *testing.T) {
	r := testRouter(t, &config.Config{RLEnabled: false})

	t.Run("calendar_route_returns_200", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/events/calendar?year=2024&month=3", nil))

		assert.Equal(t, 200, rr.Code)
		assert.Contains(t, rr.Body.String(), "Storytime")
	})

	t.Run("locations_route_returns_200", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/locations", nil))

		assert.Equal(t, 200, rr.Code)
	})

	t.Run("healthz_returns_200", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))

		assert.Equal(t, 200, rr.Code)
	})

	t.Run("metrics_exposed", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

		assert.Equal(t, 200, rr.Code)
	})

	t.Run("unknown_route_404s", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/nope", nil))

		assert.Equal(t, 404, rr.Code)
	})

	t.Run("request_id_header_is_set", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))

		assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
	})

	t.Run("security_headers_applied", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest("GET", "/healthz", nil))

		assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	})
}

func TestRouter_RateLimit(t *testing.T) {
	r := testRouter(t, &config.Config{
		RLEnabled: true,
		RLLimit:   2,
		RLWindow:  time.Minute,
	})

	codes := make([]int, 0, 3)
	for range 3 {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/healthz", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		r.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, 200, codes[0])
	assert.Equal(t, 200, codes[1])
	assert.Equal(t, 429, codes[2])
}

package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/branch-events/internal/domain"
)

func TestErr(t *testing.T) {
	t.Run("maps_domain_error_to_correct_status", func(t *testing.T) {
		tests := []struct {
			name       string
			err        error
			wantStatus int
			wantCode   string
		}{
			{
				name:       "validation",
				err:        domain.ErrValidation("bad window"),
				wantStatus: http.StatusBadRequest,
				wantCode:   "validation_error",
			},
			{
				name:       "invalid_date",
				err:        domain.ErrInvalidDate("2024-13-40"),
				wantStatus: http.StatusBadRequest,
				wantCode:   "invalid_date",
			},
			{
				name:       "no_match",
				err:        domain.ErrNoMatch("no branch matching query"),
				wantStatus: http.StatusNotFound,
				wantCode:   "no_match",
			},
			{
				name:       "source_unavailable",
				err:        domain.ErrSourceUnavailable("catalogue down", nil),
				wantStatus: http.StatusBadGateway,
				wantCode:   "source_unavailable",
			},
			{
				name:       "generic_error",
				err:        errors.New("boom"),
				wantStatus: http.StatusInternalServerError,
				wantCode:   "internal_error",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rr := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
				Err(rr, req, tt.err)

				assert.Equal(t, tt.wantStatus, rr.Code)

				var body ErrorBody
				err := json.Unmarshal(rr.Body.Bytes(), &body)
				assert.NoError(t, err)
				assert.Equal(t, tt.wantCode, body.Error.Code)
			})
		}
	})

	t.Run("validation_meta_is_passed_through", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
		Err(rr, req, domain.ErrValidationMeta("invalid query param", map[string]string{
			"days": "must be one of: 1, 4, 7, 14, 21, 28",
		}))

		var body ErrorBody
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Contains(t, body.Error.Meta, "days")
	})
}

func TestData(t *testing.T) {
	t.Run("wraps_payload_in_data_envelope", func(t *testing.T) {
		rr := httptest.NewRecorder()
		payload := map[string]string{"id": "evt-1a2b3c4d"}

		Data(rr, http.StatusOK, payload)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))

		var env Envelope
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
		dataMap := env.Data.(map[string]any)
		assert.Equal(t, "evt-1a2b3c4d", dataMap["id"])
	})
}

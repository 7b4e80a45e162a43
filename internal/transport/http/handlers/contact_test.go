package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openshelf/branch-events/internal/application/contact"
)

func TestContactHandler_Submit(t *testing.T) {
	h := NewContactHandler(contact.New(contact.NoopPublisher{}))

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		h.Submit(rr, req)
		return rr
	}

	t.Run("accepts_valid_message", func(t *testing.T) {
		rr := post(`{"name":"Pat","email":"pat@example.com","subject":"Hours","body":"Are you open Sunday?"}`)

		assert.Equal(t, http.StatusAccepted, rr.Code)
		assert.Contains(t, rr.Body.String(), "queued")
	})

	t.Run("rejects_invalid_email", func(t *testing.T) {
		rr := post(`{"name":"Pat","email":"not-an-email","subject":"Hours","body":"hello"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "email")
	})

	t.Run("rejects_malformed_json", func(t *testing.T) {
		rr := post(`{"name":`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

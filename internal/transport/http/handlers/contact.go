package handlers

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/openshelf/branch-events/internal/application/contact"
	"github.com/openshelf/branch-events/internal/domain"
	"github.com/openshelf/branch-events/internal/transport/http/response"
)

type ContactHandler struct {
	svc *contact.Service
}

func NewContactHandler(svc *contact.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Submit validates and forwards a contact-form message.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var msg contact.Message
	if err := render.DecodeJSON(r.Body, &msg); err != nil {
		response.Err(w, r, domain.ErrValidation("malformed JSON body"))
		return
	}

	if err := h.svc.Submit(r.Context(), msg); err != nil {
		response.Err(w, r, err)
		return
	}

	response.Data(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

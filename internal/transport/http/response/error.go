package response

import (
	"errors"
	"net/http"

	zlog "github.com/rs/zerolog/log"

	"github.com/openshelf/branch-events/internal/domain"
	appCtx "github.com/openshelf/branch-events/internal/pkg/context"
)

// Err maps a domain error to a status code and writes the error
// envelope. Anything that is not an AppError stays a 500 and its
// detail goes to the logs only.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	requestID := appCtx.GetRequestID(r.Context())

	if err == nil {
		Fail(w, http.StatusInternalServerError, "internal_error", "unknown error", nil, requestID)
		return
	}

	var ae *domain.AppError
	if errors.As(err, &ae) {
		Fail(w, statusFromCode(ae.Code), string(ae.Code), ae.Message, ae.Meta, requestID)
		return
	}

	zlog.Error().Err(err).Str("request_id", requestID).Msg("unhandled error")
	Fail(w, http.StatusInternalServerError, "internal_error", "internal error", nil, requestID)
}

func statusFromCode(code domain.ErrCode) int {
	switch code {
	case domain.CodeValidation, domain.CodeInvalidDate:
		return http.StatusBadRequest
	case domain.CodeNotFound, domain.CodeNoMatch:
		return http.StatusNotFound
	case domain.CodeSourceUnavailable, domain.CodeNoDatastoreResource:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

package response

import (
	"errors"
	"net/http"

	zlog "github.com/rs/zerolog/log"

	"github.com/evently/event-actions-service/internal/domain"
	appCtx "github.com/evently/event-actions-service/internal/pkg/context"
)

// Err maps an application error to the wire. Unknown errors become an
// opaque 500; the details stay in the logs.
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
	case domain.CodeValidation:
		return http.StatusBadRequest
	case domain.CodeForbidden:
		return http.StatusForbidden
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

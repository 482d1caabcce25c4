package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/tendant/learning-tracks/internal/domain"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	StatusCode int                `json:"statusCode"`
	Error      string             `json:"error"`
	Message    string             `json:"message"`
	Violations []domain.Violation `json:"violations,omitempty"`
}

// statusFor maps an error kind to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrExternalUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// renderError writes err as an ErrorResponse. 5xx failures are logged;
// storage and upstream detail is kept out of the body.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := ErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    err.Error(),
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Message = "validation failed"
		resp.Violations = verr.Violations
	}

	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err)
	}
	switch {
	case status == http.StatusInternalServerError:
		resp.Message = "internal server error"
	case status == http.StatusServiceUnavailable:
		resp.Message = upstreamMessage(err)
	}

	render.Status(r, status)
	render.JSON(w, r, resp)
}

// upstreamMessage names the upstream condition without transport detail
func upstreamMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrQuotaExceeded):
		return domain.ErrQuotaExceeded.Error()
	case errors.Is(err, domain.ErrRateLimitExceeded):
		return domain.ErrRateLimitExceeded.Error()
	}
	return domain.ErrExternalUnavailable.Error()
}

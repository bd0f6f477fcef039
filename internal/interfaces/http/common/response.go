package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/localbites/localbites-services/api/internal/directory/domain"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *logrus.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.WithError(err).Error("failed to encode JSON response")
	}
}

// WriteError maps a domain error onto its HTTP status and writes the
// envelope. Unknown errors become a 500 without leaking internals.
func WriteError(logger *logrus.Logger, w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		WriteJSON(logger, w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "validation failed",
			Fields: validation.Fields,
		})
		return
	}

	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		WriteJSON(logger, w, http.StatusNotFound, ErrorResponse{Error: notFound.Error()})
		return
	}

	var authz *domain.AuthorizationError
	if errors.As(err, &authz) {
		WriteJSON(logger, w, http.StatusForbidden, ErrorResponse{Error: authz.Error()})
		return
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		WriteJSON(logger, w, http.StatusConflict, ErrorResponse{Error: conflict.Error()})
		return
	}

	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		if logger != nil {
			logger.WithError(upstream.Err).WithField("op", upstream.Op).Error("data store failure")
		}
		WriteJSON(logger, w, http.StatusServiceUnavailable, ErrorResponse{Error: "data store unavailable"})
		return
	}

	if logger != nil {
		logger.WithError(err).Error("unhandled error")
	}
	WriteJSON(logger, w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

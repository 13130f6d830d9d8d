package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/omindustries/backoffice/internal/metrics"
	"github.com/omindustries/backoffice/internal/repository"
	"github.com/omindustries/backoffice/internal/service"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Validation problems go back to the submitter, missing entities turn into
// 404s, everything else is an operational failure worth a log line and an
// error counter.
func respondServiceError(w http.ResponseWriter, operation string, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrInvalidStatus):
		respondError(w, http.StatusBadRequest, "invalid status value")
	case errors.Is(err, service.ErrInvalidAction):
		respondError(w, http.StatusBadRequest, "invalid moderation action")
	case errors.Is(err, repository.ErrObjectNotFound):
		respondError(w, http.StatusNotFound, "not found")
	default:
		metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
		zap.L().Error("operation failed",
			zap.String("operation", operation),
			zap.Error(err),
		)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

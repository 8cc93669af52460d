package httpx

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"coilworks/internal/dto"
	apperrors "coilworks/internal/errors"
	"coilworks/internal/infrastructure/logger"
)

func WriteJSON(w http.ResponseWriter, log *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("failed to encode response", zap.Error(err))
	}
}

func WriteData(w http.ResponseWriter, log *zap.Logger, status int, data interface{}) {
	WriteJSON(w, log, status, dto.Envelope{Success: true, Data: data})
}

// WriteError maps a typed application error onto a status code and envelope.
// Untyped errors are logged and reported as internal errors.
func WriteError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	traceID := logger.TraceID(r.Context())
	log = logger.For(r.Context(), log)

	if ve, ok := apperrors.IsValidationError(err); ok {
		WriteJSON(w, log, http.StatusBadRequest, dto.Envelope{
			Error: ve.Message, Code: "VALIDATION_ERROR", Details: ve.Details, TraceID: traceID,
		})
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		WriteJSON(w, log, http.StatusNotFound, dto.Envelope{Error: err.Error(), Code: "NOT_FOUND", TraceID: traceID})
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		WriteJSON(w, log, http.StatusConflict, dto.Envelope{Error: err.Error(), Code: "CONFLICT", TraceID: traceID})
		return
	}

	if _, ok := apperrors.IsUnauthorizedError(err); ok {
		WriteJSON(w, log, http.StatusUnauthorized, dto.Envelope{Error: err.Error(), Code: "UNAUTHORIZED", TraceID: traceID})
		return
	}

	if _, ok := apperrors.IsForbiddenError(err); ok {
		WriteJSON(w, log, http.StatusForbidden, dto.Envelope{Error: err.Error(), Code: "FORBIDDEN", TraceID: traceID})
		return
	}

	log.Error("unexpected error", zap.Error(err))
	WriteJSON(w, log, http.StatusInternalServerError, dto.Envelope{
		Error: "an unexpected error occurred", Code: "INTERNAL_ERROR", TraceID: traceID,
	})
}

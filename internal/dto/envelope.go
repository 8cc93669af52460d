package dto

import (
	"encoding/json"

	apperrors "coilworks/internal/errors"
)

// Envelope wraps every API response body.
type Envelope struct {
	Success bool                         `json:"success"`
	Data    interface{}                  `json:"data,omitempty"`
	Error   string                       `json:"error,omitempty"`
	Code    string                       `json:"code,omitempty"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
	TraceID string                       `json:"traceId,omitempty"`
}

// RawEnvelope is the client-side view of Envelope with data left undecoded.
type RawEnvelope struct {
	Success bool                         `json:"success"`
	Data    json.RawMessage              `json:"data,omitempty"`
	Error   string                       `json:"error,omitempty"`
	Code    string                       `json:"code,omitempty"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

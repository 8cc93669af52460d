package dto

import "coilworks/internal/domain"

type SubmitRequest struct {
	CartItems domain.CartState `json:"cartItems"`
}

type StatusRequest struct {
	Status domain.Status `json:"status" validate:"required"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

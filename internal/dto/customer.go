package dto

import "coilworks/internal/domain"

type CustomerStatusRequest struct {
	AdminID  string                `json:"adminId" validate:"required"`
	UpdateID string                `json:"updateId" validate:"required"`
	Status   domain.CustomerStatus `json:"status" validate:"required,oneof=active inactive"`
}

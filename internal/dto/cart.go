package dto

import "coilworks/internal/domain"

type AddToCartRequest struct {
	User      string `json:"user" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1,max=10000"`
}

type AddCustomCoilRequest struct {
	UserID string `json:"userId" validate:"required"`
	domain.CustomCoil
}

type RemoveFromCartRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type SaveCartRequest struct {
	UserID    string           `json:"userId" validate:"required"`
	CartItems domain.CartState `json:"cartItems"`
}

package apiclient

import (
	"context"
	"net/http"

	"coilworks/internal/domain"
	"coilworks/internal/dto"
)

func (c *Client) AddToCart(ctx context.Context, token, userID, productID string, quantity int) error {
	req := dto.AddToCartRequest{User: userID, ProductID: productID, Quantity: quantity}
	return c.do(ctx, "cart add", http.MethodPost, "/cart/add", token, req, nil)
}

func (c *Client) AddCustomCoil(ctx context.Context, token, userID string, coil domain.CustomCoil) error {
	req := dto.AddCustomCoilRequest{UserID: userID, CustomCoil: coil}
	return c.do(ctx, "cart add custom coil", http.MethodPost, "/cart/addCustomCoil", token, req, nil)
}

func (c *Client) RemoveFromCart(ctx context.Context, token, userID, productID string) error {
	req := dto.RemoveFromCartRequest{UserID: userID}
	return c.do(ctx, "cart remove", http.MethodDelete, "/cart/"+escape(productID), token, req, nil)
}

func (c *Client) SaveCart(ctx context.Context, token, userID string, state domain.CartState) error {
	req := dto.SaveCartRequest{UserID: userID, CartItems: state}
	return c.do(ctx, "cart save", http.MethodPost, "/cart/save", token, req, nil)
}

func (c *Client) GetCart(ctx context.Context, token, userID string) (domain.CartState, error) {
	var state domain.CartState
	if err := c.do(ctx, "cart get", http.MethodGet, "/cart/"+escape(userID), token, nil, &state); err != nil {
		return domain.CartState{}, err
	}
	return state, nil
}

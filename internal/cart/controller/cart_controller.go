package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"coilworks/internal/access"
	"coilworks/internal/domain"
	"coilworks/internal/dto"
	"coilworks/internal/httpx"
)

type Service interface {
	AddItem(ctx context.Context, userID, productID string, quantity int) error
	AddCustomCoil(ctx context.Context, userID string, coil domain.CustomCoil) error
	RemoveItem(ctx context.Context, userID, productID string) error
	Save(ctx context.Context, userID string, state domain.CartState) (domain.CartState, error)
	Get(ctx context.Context, userID string) (domain.CartState, error)
}

// Controller serves the cart mirror. Every call is scoped to the user named
// in the request, who must be the caller.
type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req dto.AddToCartRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	if err := access.RequireOwner(r.Context(), req.User); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	if err := c.service.AddItem(r.Context(), req.User, req.ProductID, req.Quantity); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	httpx.WriteData(w, c.logger, http.StatusOK, domain.CartLineItem{ProductID: req.ProductID, Quantity: req.Quantity})
}

func (c *Controller) HandleAddCustomCoil(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCustomCoilRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	if err := access.RequireOwner(r.Context(), req.UserID); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	if err := c.service.AddCustomCoil(r.Context(), req.UserID, req.CustomCoil); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	httpx.WriteData(w, c.logger, http.StatusOK, req.CustomCoil)
}

func (c *Controller) HandleRemove(w http.ResponseWriter, r *http.Request) {
	var req dto.RemoveFromCartRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	if err := access.RequireOwner(r.Context(), req.UserID); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	productID := chi.URLParam(r, "productId")
	if err := c.service.RemoveItem(r.Context(), req.UserID, productID); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	httpx.WriteData(w, c.logger, http.StatusOK, map[string]string{"productId": productID})
}

func (c *Controller) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveCartRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	if err := access.RequireOwner(r.Context(), req.UserID); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	saved, err := c.service.Save(r.Context(), req.UserID, req.CartItems)
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	httpx.WriteData(w, c.logger, http.StatusOK, saved)
}

func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if err := access.RequireOwner(r.Context(), userID); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	state, err := c.service.Get(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	httpx.WriteData(w, c.logger, http.StatusOK, state)
}

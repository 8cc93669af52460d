package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"coilworks/internal/access"
	"coilworks/internal/domain"
	"coilworks/internal/dto"
	apperrors "coilworks/internal/errors"
	"coilworks/internal/httpx"
)

type Service interface {
	List(ctx context.Context, adminID string) ([]domain.Customer, error)
	SetStatus(ctx context.Context, adminID, targetID string, status domain.CustomerStatus) (*domain.Customer, error)
	Delete(ctx context.Context, adminID, targetID string) error
}

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

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	adminID := chi.URLParam(r, "adminId")
	if err := access.RequireOwner(r.Context(), adminID); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	customers, err := c.service.List(r.Context(), adminID)
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	httpx.WriteData(w, c.logger, http.StatusOK, customers)
}

func (c *Controller) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.CustomerStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	if err := access.RequireOwner(r.Context(), req.AdminID); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	customer, err := c.service.SetStatus(r.Context(), req.AdminID, req.UpdateID, req.Status)
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	httpx.WriteData(w, c.logger, http.StatusOK, customer)
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity := access.IdentityFrom(r.Context())
	if identity == nil {
		httpx.WriteError(w, r, c.logger, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	id := chi.URLParam(r, "id")
	if err := c.service.Delete(r.Context(), identity.UserID, id); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	httpx.WriteData(w, c.logger, http.StatusOK, map[string]string{"id": id})
}

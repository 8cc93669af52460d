package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"coilworks/internal/dto"
	"coilworks/internal/httpx"
)

type Service interface {
	Settings(ctx context.Context) dto.SettingsResponse
	UpdateProfile(ctx context.Context, req dto.CompanyProfileRequest) (dto.SettingsResponse, error)
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

func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	httpx.WriteData(w, c.logger, http.StatusOK, c.service.Settings(r.Context()))
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.CompanyProfileRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	settings, err := c.service.UpdateProfile(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	httpx.WriteData(w, c.logger, http.StatusOK, settings)
}

package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"coilworks/internal/domain"
	"coilworks/internal/dto"
	"coilworks/internal/httpx"
)

type Service interface {
	List(ctx context.Context, category, search string) ([]domain.CatalogItem, error)
	Get(ctx context.Context, id string) (*domain.CatalogItem, error)
	Create(ctx context.Context, req dto.ProductRequest) (*domain.CatalogItem, error)
	Update(ctx context.Context, id string, req dto.ProductRequest) (*domain.CatalogItem, error)
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

// HandleList serves GET /products with optional ?category= and ?q= filters.
func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	products, err := c.service.List(r.Context(), query.Get("category"), query.Get("q"))
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	httpx.WriteData(w, c.logger, http.StatusOK, products)
}

func (c *Controller) HandleGet(w http.ResponseWriter, r *http.Request) {
	product, err := c.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	httpx.WriteData(w, c.logger, http.StatusOK, product)
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	product, err := c.service.Create(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	httpx.WriteData(w, c.logger, http.StatusCreated, product)
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	product, err := c.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	httpx.WriteData(w, c.logger, http.StatusOK, product)
}

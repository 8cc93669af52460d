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
	"coilworks/internal/workflow"
)

type Service interface {
	Submit(ctx context.Context, userID string, state domain.CartState) (*domain.Record, error)
	Get(ctx context.Context, id string) (*domain.Record, error)
	List(ctx context.Context) ([]domain.Record, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Record, error)
	SetStatus(ctx context.Context, id string, status domain.Status) (*domain.Record, error)
}

// RecordController serves one record kind. Enquiries and orders mount their
// own instance under their own paths.
type RecordController struct {
	service Service
	logger  *zap.Logger
}

func NewRecordController(service Service, logger *zap.Logger) *RecordController {
	return &RecordController{
		service: service,
		logger:  logger,
	}
}

func (c *RecordController) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	identity := access.IdentityFrom(r.Context())
	if identity == nil {
		httpx.WriteError(w, r, c.logger, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req dto.SubmitRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	record, err := c.service.Submit(r.Context(), identity.UserID, req.CartItems)
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	httpx.WriteData(w, c.logger, http.StatusCreated, record)
}

// HandleList serves the staff listing. ?q= narrows it with the same matching
// the back-office board uses.
func (c *RecordController) HandleList(w http.ResponseWriter, r *http.Request) {
	records, err := c.service.List(r.Context())
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	httpx.WriteData(w, c.logger, http.StatusOK, workflow.Filter(records, r.URL.Query().Get("q")))
}

func (c *RecordController) HandleListForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if err := access.RequireOwner(r.Context(), userID); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	records, err := c.service.ListForUser(r.Context(), userID)
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	httpx.WriteData(w, c.logger, http.StatusOK, records)
}

// HandleGet returns one record by id or human id. Customers only see their
// own; a foreign record is reported as missing.
func (c *RecordController) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity := access.IdentityFrom(r.Context())
	if identity == nil {
		httpx.WriteError(w, r, c.logger, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	id := chi.URLParam(r, "id")
	record, err := c.service.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	if !identity.Role.IsStaff() && record.User.UserID != identity.UserID {
		httpx.WriteError(w, r, c.logger, apperrors.NewNotFoundError("record "+id+" not found"))
		return
	}
	httpx.WriteData(w, c.logger, http.StatusOK, record)
}

func (c *RecordController) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.StatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}

	record, err := c.service.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		httpx.WriteError(w, r, c.logger, err)
		return
	}
	httpx.WriteData(w, c.logger, http.StatusOK, record)
}

package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"coilworks/internal/access"
	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
)

type mockService struct {
	ListFunc      func(ctx context.Context, adminID string) ([]domain.Customer, error)
	SetStatusFunc func(ctx context.Context, adminID, targetID string, status domain.CustomerStatus) (*domain.Customer, error)
	DeleteFunc    func(ctx context.Context, adminID, targetID string) error
}

func (m *mockService) List(ctx context.Context, adminID string) ([]domain.Customer, error) {
	return m.ListFunc(ctx, adminID)
}

func (m *mockService) SetStatus(ctx context.Context, adminID, targetID string, status domain.CustomerStatus) (*domain.Customer, error) {
	return m.SetStatusFunc(ctx, adminID, targetID, status)
}

func (m *mockService) Delete(ctx context.Context, adminID, targetID string) error {
	return m.DeleteFunc(ctx, adminID, targetID)
}

func serveAs(c *Controller, req *http.Request, identity *domain.Identity) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/customers/{adminId}", c.HandleList)
	r.Put("/customers/status", c.HandleSetStatus)
	r.Delete("/customers/{id}", c.HandleDelete)

	if identity != nil {
		req = req.WithContext(access.WithIdentity(req.Context(), identity))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

var admin = &domain.Identity{UserID: "admin-1", Role: domain.RoleAdmin}

func TestHandleList(t *testing.T) {
	svc := &mockService{
		ListFunc: func(ctx context.Context, adminID string) ([]domain.Customer, error) {
			return []domain.Customer{{ID: "u-1", Name: "Ravi"}}, nil
		},
	}

	rec := serveAs(NewController(svc, zap.NewNop()), httptest.NewRequest(http.MethodGet, "/customers/admin-1", nil), admin)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Ravi"`)
}

func TestHandleList_OtherAdminID(t *testing.T) {
	rec := serveAs(NewController(&mockService{}, zap.NewNop()), httptest.NewRequest(http.MethodGet, "/customers/admin-2", nil), admin)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleSetStatus_InvalidStatus(t *testing.T) {
	body := strings.NewReader(`{"adminId":"admin-1","updateId":"u-1","status":"banned"}`)

	rec := serveAs(NewController(&mockService{}, zap.NewNop()), httptest.NewRequest(http.MethodPut, "/customers/status", body), admin)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"status"`)
}

func TestHandleSetStatus_Success(t *testing.T) {
	svc := &mockService{
		SetStatusFunc: func(ctx context.Context, adminID, targetID string, status domain.CustomerStatus) (*domain.Customer, error) {
			assert.Equal(t, "u-1", targetID)
			return &domain.Customer{ID: targetID, Status: status}, nil
		},
	}
	body := strings.NewReader(`{"adminId":"admin-1","updateId":"u-1","status":"inactive"}`)

	rec := serveAs(NewController(svc, zap.NewNop()), httptest.NewRequest(http.MethodPut, "/customers/status", body), admin)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"inactive"`)
}

func TestHandleDelete_Self(t *testing.T) {
	svc := &mockService{
		DeleteFunc: func(ctx context.Context, adminID, targetID string) error {
			return apperrors.NewConflictError("admins cannot delete their own account")
		},
	}

	rec := serveAs(NewController(svc, zap.NewNop()), httptest.NewRequest(http.MethodDelete, "/customers/admin-1", nil), admin)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleDelete_Anonymous(t *testing.T) {
	rec := serveAs(NewController(&mockService{}, zap.NewNop()), httptest.NewRequest(http.MethodDelete, "/customers/u-1", nil), nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

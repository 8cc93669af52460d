package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
)

type mockRepository struct {
	FindByIDFunc     func(ctx context.Context, id string) (*domain.Customer, error)
	ListExceptFunc   func(ctx context.Context, excludeID string) ([]domain.Customer, error)
	UpdateStatusFunc func(ctx context.Context, id string, status domain.CustomerStatus, updatedAt time.Time) error
	DeleteFunc       func(ctx context.Context, id string) error
}

func (m *mockRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockRepository) ListExcept(ctx context.Context, excludeID string) ([]domain.Customer, error) {
	return m.ListExceptFunc(ctx, excludeID)
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id string, status domain.CustomerStatus, updatedAt time.Time) error {
	return m.UpdateStatusFunc(ctx, id, status, updatedAt)
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func TestList_ExcludesAdmin(t *testing.T) {
	repo := &mockRepository{
		ListExceptFunc: func(ctx context.Context, excludeID string) ([]domain.Customer, error) {
			assert.Equal(t, "admin-1", excludeID)
			return nil, nil
		},
	}
	svc := NewService(repo, zap.NewNop())

	customers, err := svc.List(context.Background(), "admin-1")
	require.NoError(t, err)
	assert.NotNil(t, customers)
}

func TestSetStatus_Success(t *testing.T) {
	var stored domain.CustomerStatus
	repo := &mockRepository{
		UpdateStatusFunc: func(ctx context.Context, id string, status domain.CustomerStatus, updatedAt time.Time) error {
			stored = status
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Customer, error) {
			return &domain.Customer{ID: id, Status: stored}, nil
		},
	}
	svc := NewService(repo, zap.NewNop())

	customer, err := svc.SetStatus(context.Background(), "admin-1", "u-1", domain.CustomerInactive)
	require.NoError(t, err)
	assert.Equal(t, domain.CustomerInactive, customer.Status)
}

func TestSetStatus_InvalidStatus(t *testing.T) {
	svc := NewService(&mockRepository{}, zap.NewNop())

	_, err := svc.SetStatus(context.Background(), "admin-1", "u-1", "suspended")
	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestSetStatus_Self(t *testing.T) {
	svc := NewService(&mockRepository{}, zap.NewNop())

	_, err := svc.SetStatus(context.Background(), "admin-1", "admin-1", domain.CustomerInactive)
	_, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
}

func TestDelete_Self(t *testing.T) {
	svc := NewService(&mockRepository{}, zap.NewNop())

	_, ok := apperrors.IsConflictError(svc.Delete(context.Background(), "admin-1", "admin-1"))
	assert.True(t, ok)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockRepository{
		DeleteFunc: func(ctx context.Context, id string) error {
			return apperrors.NewNotFoundError("user with id ghost not found")
		},
	}
	svc := NewService(repo, zap.NewNop())

	_, ok := apperrors.IsNotFoundError(svc.Delete(context.Background(), "admin-1", "ghost"))
	assert.True(t, ok)
}

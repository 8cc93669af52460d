package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	ListExcept(ctx context.Context, excludeID string) ([]domain.Customer, error)
	UpdateStatus(ctx context.Context, id string, status domain.CustomerStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type CustomerService struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *CustomerService) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns every account except the requesting admin's own.
func (s *CustomerService) List(ctx context.Context, adminID string) ([]domain.Customer, error) {
	customers, err := s.repo.ListExcept(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	return customers, nil
}

func (s *CustomerService) SetStatus(ctx context.Context, adminID, targetID string, status domain.CustomerStatus) (*domain.Customer, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be active or inactive",
		})
	}
	if adminID == targetID {
		return nil, apperrors.NewConflictError("admins cannot change their own status")
	}

	if err := s.repo.UpdateStatus(ctx, targetID, status, s.now().UTC()); err != nil {
		return nil, err
	}

	s.logger.Info("account status changed",
		zap.String("adminId", adminID),
		zap.String("userId", targetID),
		zap.String("status", string(status)),
	)
	return s.repo.FindByID(ctx, targetID)
}

func (s *CustomerService) Delete(ctx context.Context, adminID, targetID string) error {
	if adminID == targetID {
		return apperrors.NewConflictError("admins cannot delete their own account")
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return err
	}

	s.logger.Info("account deleted", zap.String("adminId", adminID), zap.String("userId", targetID))
	return nil
}

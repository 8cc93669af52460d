package workflow

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
	"coilworks/internal/infrastructure/metrics"
)

type RecordRepository interface {
	Insert(ctx context.Context, record *domain.Record) error
	FindByID(ctx context.Context, id string) (*domain.Record, error)
	FindAll(ctx context.Context) ([]domain.Record, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Record, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error
}

type CatalogReader interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.CatalogItem, error)
}

type CustomerReader interface {
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
}

// Service runs one record kind (enquiries or orders) through its lifecycle.
type Service struct {
	lifecycle Lifecycle
	records   RecordRepository
	catalog   CatalogReader
	customers CustomerReader
	logger    *zap.Logger
	now       func() time.Time

	maxAttempts int
	backoff     func(attempt int) time.Duration
}

func NewService(
	lifecycle Lifecycle,
	records RecordRepository,
	catalog CatalogReader,
	customers CustomerReader,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		lifecycle:   lifecycle,
		records:     records,
		catalog:     catalog,
		customers:   customers,
		logger:      logger.With(zap.String("kind", string(lifecycle.Kind))),
		now:         time.Now,
		maxAttempts: 3,
		backoff:     jitteredBackoff,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Lifecycle() Lifecycle {
	return s.lifecycle
}

// Submit creates a record from the submitted cart contents on behalf of userID.
func (s *Service) Submit(ctx context.Context, userID string, state domain.CartState) (*domain.Record, error) {
	cart := domain.CartFromState(state)
	if cart.IsEmpty() {
		return nil, apperrors.NewValidationError("cart is empty", apperrors.ValidationDetail{
			Field:   "cart",
			Message: "add at least one product or custom coil before submitting",
		})
	}

	customer, err := s.customers.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if customer.Status == domain.CustomerInactive {
		return nil, apperrors.NewForbiddenError("account is inactive")
	}
	if customer.Role.IsStaff() {
		return nil, apperrors.NewForbiddenError("staff accounts cannot submit carts")
	}

	lineItems := cart.LineItems()
	ids := make([]string, 0, len(lineItems))
	for _, li := range lineItems {
		ids = append(ids, li.ProductID)
	}

	catalog := make(map[string]domain.CatalogItem, len(ids))
	if len(ids) > 0 {
		products, err := s.catalog.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("loading cart products: %w", err)
		}
		for _, p := range products {
			catalog[p.ID] = p
		}
	}

	var missing []apperrors.ValidationDetail
	for _, id := range ids {
		if _, ok := catalog[id]; !ok {
			missing = append(missing, apperrors.ValidationDetail{
				Field:   "items",
				Message: fmt.Sprintf("product %s is no longer available", id),
			})
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("cart references unknown products", missing...)
	}

	record, err := NewRecord(s.lifecycle, cart, catalog, customer.Snapshot(), s.now())
	if err != nil {
		return nil, err
	}

	if err := s.insertWithRetry(ctx, record); err != nil {
		s.logger.Error("failed to insert record", zap.String("userId", userID), zap.Error(err))
		return nil, err
	}

	metrics.RecordsCreatedTotal.WithLabelValues(string(s.lifecycle.Kind)).Inc()
	s.logger.Info("record submitted",
		zap.String("humanId", record.HumanID),
		zap.String("userId", userID),
		zap.Int("itemCount", len(record.Items)),
		zap.Int("customItemCount", len(record.CustomItems)),
	)
	return record, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Record, error) {
	return s.records.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Record, error) {
	records, err := s.records.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Record, error) {
	records, err := s.records.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.Record{}
	}
	return records, nil
}

// SetStatus moves a record to status. Any known status is accepted from any
// other, terminal ones included.
func (s *Service) SetStatus(ctx context.Context, id string, status domain.Status) (*domain.Record, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.lifecycle.Transition(record.Status, status); err != nil {
		return nil, err
	}

	if s.lifecycle.IsTerminal(record.Status) && record.Status != status {
		s.logger.Warn("record reopened from terminal status",
			zap.String("humanId", record.HumanID),
			zap.String("from", string(record.Status)),
			zap.String("to", string(status)),
		)
	}

	updatedAt := s.now().UTC()
	if err := s.records.UpdateStatus(ctx, record.ID, status, updatedAt); err != nil {
		s.logger.Error("failed to update record status", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	metrics.StatusUpdatesTotal.WithLabelValues(string(s.lifecycle.Kind), string(status)).Inc()
	s.logger.Info("record status updated",
		zap.String("humanId", record.HumanID),
		zap.String("from", string(record.Status)),
		zap.String("to", string(status)),
	)

	record.Status = status
	record.UpdatedAt = updatedAt
	return record, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
)

type Repository interface {
	UpsertItem(ctx context.Context, userID, productID string, quantity int, position int64) error
	UpsertCustomCoil(ctx context.Context, userID string, coil domain.CustomCoil, position int64) error
	DeleteItem(ctx context.Context, userID, productID string) error
	Replace(ctx context.Context, userID string, state domain.CartState) error
	Find(ctx context.Context, userID string) (domain.CartState, error)
}

type CatalogReader interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.CatalogItem, error)
}

// CartService mirrors the storefront's local cart on the server so it can be
// restored on another device after sign-in.
type CartService struct {
	repo    Repository
	catalog CatalogReader
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(repo Repository, catalog CatalogReader, logger *zap.Logger) *CartService {
	return &CartService{
		repo:    repo,
		catalog: catalog,
		logger:  logger,
		now:     time.Now,
	}
}

// AddItem sets the quantity of productID in the user's cart.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	if err := (domain.CartLineItem{ProductID: productID, Quantity: quantity}).Validate(); err != nil {
		return err
	}

	products, err := s.catalog.FindByIDs(ctx, []string{productID})
	if err != nil {
		return fmt.Errorf("loading product: %w", err)
	}
	if len(products) == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("product with id %s not found", productID))
	}

	if err := s.repo.UpsertItem(ctx, userID, productID, quantity, s.position()); err != nil {
		return err
	}

	s.logger.Debug("cart item stored", zap.String("userId", userID), zap.String("productId", productID), zap.Int("quantity", quantity))
	return nil
}

func (s *CartService) AddCustomCoil(ctx context.Context, userID string, coil domain.CustomCoil) error {
	if err := coil.Validate(); err != nil {
		return err
	}

	if err := s.repo.UpsertCustomCoil(ctx, userID, coil, s.position()); err != nil {
		return err
	}

	s.logger.Debug("custom coil stored", zap.String("userId", userID), zap.String("coilType", coil.CoilType))
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) error {
	return s.repo.DeleteItem(ctx, userID, productID)
}

// Save replaces the stored cart. Duplicate keys are merged and items whose
// product left the catalog are dropped rather than failing the whole save.
func (s *CartService) Save(ctx context.Context, userID string, state domain.CartState) (domain.CartState, error) {
	normalized := domain.CartFromState(state).State()

	if len(normalized.Items) > 0 {
		ids := make([]string, 0, len(normalized.Items))
		for _, item := range normalized.Items {
			ids = append(ids, item.ProductID)
		}

		products, err := s.catalog.FindByIDs(ctx, ids)
		if err != nil {
			return domain.CartState{}, fmt.Errorf("loading cart products: %w", err)
		}

		known := make(map[string]struct{}, len(products))
		for _, p := range products {
			known[p.ID] = struct{}{}
		}

		kept := normalized.Items[:0]
		for _, item := range normalized.Items {
			if _, ok := known[item.ProductID]; !ok {
				s.logger.Warn("dropping unknown product from saved cart",
					zap.String("userId", userID),
					zap.String("productId", item.ProductID),
				)
				continue
			}
			kept = append(kept, item)
		}
		normalized.Items = kept
	}

	if err := s.repo.Replace(ctx, userID, normalized); err != nil {
		s.logger.Error("failed to save cart", zap.String("userId", userID), zap.Error(err))
		return domain.CartState{}, err
	}

	s.logger.Info("cart saved",
		zap.String("userId", userID),
		zap.Int("items", len(normalized.Items)),
		zap.Int("customCoils", len(normalized.CustomCoils)),
	)
	return normalized, nil
}

func (s *CartService) Get(ctx context.Context, userID string) (domain.CartState, error) {
	return s.repo.Find(ctx, userID)
}

func (s *CartService) position() int64 {
	return s.now().UnixNano()
}

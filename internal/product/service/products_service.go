package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"coilworks/internal/domain"
	"coilworks/internal/dto"
	apperrors "coilworks/internal/errors"
	"coilworks/internal/infrastructure/metrics"
)

type Repository interface {
	FindAll(ctx context.Context, category, search string) ([]domain.CatalogItem, error)
	FindByID(ctx context.Context, id string) (*domain.CatalogItem, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.CatalogItem, error)
	Insert(ctx context.Context, product *domain.CatalogItem) error
	Update(ctx context.Context, product *domain.CatalogItem) error
}

// Cache is a best-effort read-through cache. Errors are logged and the
// service falls back to the repository.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (slot string, found bool, err error)
	Set(ctx context.Context, slot string, value interface{}) error
	Invalidate(ctx context.Context) error
}

type ProductService struct {
	repo   Repository
	cache  Cache
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService builds the catalog service. cache may be nil.
func NewService(repo Repository, cache Cache, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *ProductService) List(ctx context.Context, category, search string) ([]domain.CatalogItem, error) {
	category = strings.TrimSpace(category)
	search = strings.TrimSpace(search)
	key := "products:" + category + ":" + search

	var products []domain.CatalogItem
	slot, hit := s.cached(ctx, key, &products)
	if hit {
		return products, nil
	}

	products, err := s.repo.FindAll(ctx, category, search)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.CatalogItem{}
	}

	s.store(ctx, slot, products)
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.CatalogItem, error) {
	key := "product:" + id

	var product domain.CatalogItem
	slot, hit := s.cached(ctx, key, &product)
	if hit {
		return &product, nil
	}

	found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.store(ctx, slot, found)
	return found, nil
}

// FindByIDs always reads through to the repository: submissions snapshot
// the catalog as it is at that moment.
func (s *ProductService) FindByIDs(ctx context.Context, ids []string) ([]domain.CatalogItem, error) {
	return s.repo.FindByIDs(ctx, ids)
}

func (s *ProductService) Create(ctx context.Context, req dto.ProductRequest) (*domain.CatalogItem, error) {
	if err := validatePrice(req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	product := &domain.CatalogItem{
		ID:          s.newID(),
		SKU:         strings.TrimSpace(req.SKU),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Category:    strings.TrimSpace(req.Category),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("product created", zap.String("productId", product.ID), zap.String("sku", product.SKU))
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, req dto.ProductRequest) (*domain.CatalogItem, error) {
	if err := validatePrice(req); err != nil {
		return nil, err
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.SKU = strings.TrimSpace(req.SKU)
	product.Name = strings.TrimSpace(req.Name)
	product.Description = req.Description
	product.Price = req.Price
	product.Images = req.Images
	if product.Images == nil {
		product.Images = []string{}
	}
	product.Category = strings.TrimSpace(req.Category)
	product.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("product updated", zap.String("productId", product.ID), zap.String("sku", product.SKU))
	return product, nil
}

func validatePrice(req dto.ProductRequest) error {
	if req.Price.IsNegative() {
		return apperrors.NewValidationError("invalid price", apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must not be negative",
		})
	}
	return nil
}

// cached returns the slot a miss should be written back to. The slot is empty
// when the cache is off or unreadable.
func (s *ProductService) cached(ctx context.Context, key string, dest interface{}) (string, bool) {
	if s.cache == nil {
		return "", false
	}

	slot, found, err := s.cache.Get(ctx, key, dest)
	switch {
	case err != nil:
		metrics.CatalogCacheTotal.WithLabelValues("error").Inc()
		s.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		return "", false
	case found:
		metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
		return slot, true
	default:
		metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		return slot, false
	}
}

func (s *ProductService) store(ctx context.Context, slot string, value interface{}) {
	if s.cache == nil || slot == "" {
		return
	}
	if err := s.cache.Set(ctx, slot, value); err != nil {
		s.logger.Warn("catalog cache write failed", zap.String("slot", slot), zap.Error(err))
	}
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

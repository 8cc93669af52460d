package product

import (
	"database/sql"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"coilworks/internal/product/cache"
	"coilworks/internal/product/controller"
	"coilworks/internal/product/repository"
	"coilworks/internal/product/service"
)

type Module struct {
	Controller *controller.Controller
	Service    *service.ProductService
}

// NewModule wires the catalog. A nil redis client disables caching.
func NewModule(db *sql.DB, redisClient *goredis.Client, cacheTTL time.Duration, logger *zap.Logger) *Module {
	repo := repository.NewMySQLRepository(db)

	var svc *service.ProductService
	if redisClient != nil {
		svc = service.NewService(repo, cache.NewRedisCache(redisClient, cacheTTL), logger)
	} else {
		svc = service.NewService(repo, nil, logger)
	}

	return &Module{
		Controller: controller.NewController(svc, logger),
		Service:    svc,
	}
}

package cart

import (
	"database/sql"

	"go.uber.org/zap"

	"coilworks/internal/cart/controller"
	"coilworks/internal/cart/repository"
	"coilworks/internal/cart/service"
)

func NewModule(db *sql.DB, catalog service.CatalogReader, logger *zap.Logger) *controller.Controller {
	repo := repository.NewMySQLRepository(db)
	svc := service.NewService(repo, catalog, logger)
	return controller.NewController(svc, logger)
}

package company

import (
	"database/sql"

	"go.uber.org/zap"

	"coilworks/internal/company/controller"
	"coilworks/internal/company/repository"
	"coilworks/internal/company/service"
	"coilworks/internal/config"
)

func NewModule(db *sql.DB, defaults config.StorefrontConfig, logger *zap.Logger) *controller.Controller {
	repo := repository.NewMySQLCompanyProfileRepository(db)
	svc := service.NewService(repo, defaults, logger)
	return controller.NewController(svc, logger)
}

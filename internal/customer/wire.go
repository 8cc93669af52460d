package customer

import (
	"database/sql"

	"go.uber.org/zap"

	"coilworks/internal/customer/controller"
	"coilworks/internal/customer/repository"
	"coilworks/internal/customer/service"
)

type Module struct {
	Controller *controller.Controller
	Service    *service.CustomerService
}

func NewModule(db *sql.DB, logger *zap.Logger) *Module {
	repo := repository.NewMySQLRepository(db)
	svc := service.NewService(repo, logger)
	return &Module{
		Controller: controller.NewController(svc, logger),
		Service:    svc,
	}
}

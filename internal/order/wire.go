package order

import (
	"database/sql"

	"go.uber.org/zap"

	"coilworks/internal/config"
	"coilworks/internal/order/controller"
	"coilworks/internal/workflow"
	workflowctrl "coilworks/internal/workflow/controller"
	"coilworks/internal/workflow/repository"
)

type Module struct {
	Records *workflowctrl.RecordController
	Health  *controller.HealthController
}

func NewModule(
	db *sql.DB,
	catalog workflow.CatalogReader,
	customers workflow.CustomerReader,
	cfg config.WorkflowConfig,
	logger *zap.Logger,
) *Module {
	repo := repository.NewMySQLOrderRepository(db)
	svc := workflow.NewService(workflow.OrderLifecycle, repo, catalog, customers, logger,
		workflow.WithMaxAttempts(cfg.MaxRetryAttempts),
	)

	return &Module{
		Records: workflowctrl.NewRecordController(svc, logger),
		Health:  controller.NewHealthController(db, logger),
	}
}

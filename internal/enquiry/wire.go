package enquiry

import (
	"database/sql"

	"go.uber.org/zap"

	"coilworks/internal/config"
	"coilworks/internal/workflow"
	"coilworks/internal/workflow/controller"
	"coilworks/internal/workflow/repository"
)

func NewModule(
	db *sql.DB,
	catalog workflow.CatalogReader,
	customers workflow.CustomerReader,
	cfg config.WorkflowConfig,
	logger *zap.Logger,
) *controller.RecordController {
	repo := repository.NewMySQLEnquiryRepository(db)
	svc := workflow.NewService(workflow.EnquiryLifecycle, repo, catalog, customers, logger,
		workflow.WithMaxAttempts(cfg.MaxRetryAttempts),
	)
	return controller.NewRecordController(svc, logger)
}

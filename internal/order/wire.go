package order

import (
	"database/sql"

	"go.uber.org/zap"

	"kingflex/internal/config"
	"kingflex/internal/infrastructure/mail"
	"kingflex/internal/infrastructure/pdf"
	"kingflex/internal/order/controller"
	"kingflex/internal/order/repository"
	"kingflex/internal/order/service"
	"kingflex/internal/order/usecase"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger, mailer *mail.Mailer, renderer *pdf.Renderer) *controller.OrderController {
	repo := repository.NewMySQLOrderRepository(db)

	allocator := service.NewNumberAllocator(repo, cfg.Order.Location)
	notifier := service.NewNotificationService(mailer, renderer, cfg.Mail.SalesEmail)

	submitUC := usecase.NewSubmitOrderUseCase(
		repo,
		allocator,
		renderer,
		notifier,
		logger,
		cfg.Order.MaxSubmitAttempts,
		cfg.Order.DailyLimit,
	)
	manageUC := usecase.NewManageOrdersUseCase(repo, notifier, logger)

	return controller.NewOrderController(submitUC, manageUC, logger)
}

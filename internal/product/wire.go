package product

import (
	"database/sql"

	"go.uber.org/zap"

	"kingflex/internal/product/controller"
	"kingflex/internal/product/repository"
	"kingflex/internal/product/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.ProductController {
	repo := repository.NewMySQLProductRepository(db)
	svc := service.NewProductService(repo)
	return controller.NewProductController(svc, logger)
}

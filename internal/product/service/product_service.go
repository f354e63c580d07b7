package service

import (
	"context"

	"kingflex/internal/domain"
	"kingflex/internal/dto"
	apperrors "kingflex/internal/errors"
)

type ProductRepository interface {
	FindByType(ctx context.Context, productType domain.ProductType) ([]domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id uint, name, detail, unit string) (*domain.Product, error)
	Delete(ctx context.Context, id uint) error
}

type ProductService struct {
	products ProductRepository
}

func NewProductService(products ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) ListByType(ctx context.Context, productType string) ([]domain.Product, error) {
	pt := domain.ProductType(productType)
	if !pt.Valid() {
		return nil, apperrors.NewValidationError("invalid product type", apperrors.ValidationDetail{
			Field:   "type",
			Message: "type must be one of normal, 152mm, shared",
		})
	}

	return s.products.FindByType(ctx, pt)
}

func (s *ProductService) Create(ctx context.Context, req dto.CreateProductRequest, createdBy uint) (*domain.Product, error) {
	var details []apperrors.ValidationDetail
	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if req.Unit == "" {
		details = append(details, apperrors.ValidationDetail{Field: "unit", Message: "unit is required"})
	}
	if !domain.ProductType(req.Type).Valid() {
		details = append(details, apperrors.ValidationDetail{Field: "type", Message: "type must be one of normal, 152mm, shared"})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("name, unit, and type are required", details...)
	}

	return s.products.Insert(ctx, &domain.Product{
		Name:      req.Name,
		Detail:    req.Detail,
		Unit:      req.Unit,
		Type:      domain.ProductType(req.Type),
		CreatedBy: createdBy,
	})
}

func (s *ProductService) Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*domain.Product, error) {
	if req.Name == "" || req.Unit == "" {
		return nil, apperrors.NewValidationError("name and unit are required")
	}

	return s.products.Update(ctx, id, req.Name, req.Detail, req.Unit)
}

func (s *ProductService) Delete(ctx context.Context, id uint) error {
	return s.products.Delete(ctx, id)
}

package dto

import "kingflex/internal/domain"

type CreateProductRequest struct {
	Name   string `json:"name"`
	Detail string `json:"detail"`
	Unit   string `json:"unit"`
	Type   string `json:"type"`
}

type UpdateProductRequest struct {
	Name   string `json:"name"`
	Detail string `json:"detail"`
	Unit   string `json:"unit"`
}

type ProductDTO struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Detail string `json:"detail"`
	Unit   string `json:"unit"`
	Type   string `json:"type"`
}

func NewProductDTO(product *domain.Product) ProductDTO {
	return ProductDTO{
		ID:     product.ID,
		Name:   product.Name,
		Detail: product.Detail,
		Unit:   product.Unit,
		Type:   string(product.Type),
	}
}

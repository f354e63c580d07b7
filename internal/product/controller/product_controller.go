package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kingflex/internal/auth/middleware"
	"kingflex/internal/domain"
	"kingflex/internal/dto"
	apperrors "kingflex/internal/errors"
)

type ProductService interface {
	ListByType(ctx context.Context, productType string) ([]domain.Product, error)
	Create(ctx context.Context, req dto.CreateProductRequest, createdBy uint) (*domain.Product, error)
	Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*domain.Product, error)
	Delete(ctx context.Context, id uint) error
}

type ProductController struct {
	service ProductService
	logger  *zap.Logger
}

func NewProductController(service ProductService, logger *zap.Logger) *ProductController {
	return &ProductController{service: service, logger: logger}
}

func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	products, err := c.service.ListByType(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		c.handleError(w, err, logger, "Failed to fetch products")
		return
	}

	dtos := make([]dto.ProductDTO, len(products))
	for i := range products {
		dtos[i] = dto.NewProductDTO(&products[i])
	}

	c.writeJSON(w, http.StatusOK, dtos)
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	actor := middleware.UserFromContext(r.Context())
	if actor == nil {
		c.writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	product, err := c.service.Create(r.Context(), req, actor.ID)
	if err != nil {
		c.handleError(w, err, logger, "Failed to add product")
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.NewProductDTO(product))
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.productID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	product, err := c.service.Update(r.Context(), id, req)
	if err != nil {
		c.handleError(w, err, logger, "Failed to update product")
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewProductDTO(product))
}

func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	id, ok := c.productID(w, r)
	if !ok {
		return
	}

	if err := c.service.Delete(r.Context(), id); err != nil {
		c.handleError(w, err, logger, "Failed to delete product")
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Product deleted successfully",
		"id":      id,
	})
}

func (c *ProductController) productID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.writeError(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

func (c *ProductController) requestLogger() *zap.Logger {
	return c.logger.With(zap.String("traceId", uuid.New().String()))
}

func (c *ProductController) handleError(w http.ResponseWriter, err error, logger *zap.Logger, fallback string) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeError(w, http.StatusBadRequest, ve.Message)
		return
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, err.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, fallback)
}

func (c *ProductController) writeError(w http.ResponseWriter, status int, message string) {
	c.writeJSON(w, status, map[string]interface{}{"success": false, "message": message})
}

func (c *ProductController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"kingflex/internal/auth/middleware"
	"kingflex/internal/domain"
	"kingflex/internal/dto"
	apperrors "kingflex/internal/errors"
)

type SubmitOrderUseCase interface {
	Submit(ctx context.Context, req dto.SubmitOrderRequest, actor *dto.AuthenticatedUser) (*domain.Order, error)
}

type ManageOrdersUseCase interface {
	GuestOrder(ctx context.Context, orderNumber, email string) (*domain.Order, error)
	UserOrders(ctx context.Context, userID uint) ([]domain.Order, error)
	OrderByID(ctx context.Context, orderID uint, actor dto.AuthenticatedUser) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status domain.OrderStatus, actor dto.AuthenticatedUser) (*domain.Order, error)
}

type OrderController struct {
	submitUC SubmitOrderUseCase
	manageUC ManageOrdersUseCase
	logger   *zap.Logger
}

func NewOrderController(submitUC SubmitOrderUseCase, manageUC ManageOrdersUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		submitUC: submitUC,
		manageUC: manageUC,
		logger:   logger,
	}
}

func (c *OrderController) Submit(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.SubmitOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	actor := middleware.UserFromContext(r.Context())
	if actor == nil && !req.IsGuestOrder {
		c.writeError(w, http.StatusUnauthorized, "Please login first")
		return
	}

	if err := validateSubmitRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	order, err := c.submitUC.Submit(r.Context(), req, actor)
	if err != nil {
		c.handleUseCaseErrorWithFallback(w, err, logger, "Order creation failed")
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.SubmitOrderResponse{
		Message: "Order created successfully",
		Order:   dto.NewOrderDTO(order),
	})
}

func (c *OrderController) GuestOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderNumber := r.URL.Query().Get("orderNumber")
	email := r.URL.Query().Get("email")
	if orderNumber == "" || email == "" {
		c.writeError(w, http.StatusBadRequest, "Order number and email are required")
		return
	}

	order, err := c.manageUC.GuestOrder(r.Context(), orderNumber, email)
	if err != nil {
		c.handleUseCaseError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.OrderResponse{
		Success: true,
		Order:   dto.NewOrderDTO(order),
	})
}

func (c *OrderController) MyOrders(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	actor := middleware.UserFromContext(r.Context())
	if actor == nil {
		c.writeError(w, http.StatusUnauthorized, "Please login first")
		return
	}

	orders, err := c.manageUC.UserOrders(r.Context(), actor.ID)
	if err != nil {
		c.handleUseCaseError(w, err, logger)
		return
	}

	dtos := make([]dto.OrderDTO, len(orders))
	for i := range orders {
		dtos[i] = dto.NewOrderDTO(&orders[i])
	}

	c.writeJSON(w, http.StatusOK, dto.OrdersResponse{Success: true, Orders: dtos})
}

func (c *OrderController) GetByID(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, actor, ok := c.orderIDAndActor(w, r)
	if !ok {
		return
	}

	order, err := c.manageUC.OrderByID(r.Context(), orderID, *actor)
	if err != nil {
		c.handleUseCaseError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.OrderResponse{
		Success: true,
		Order:   dto.NewOrderDTO(order),
	})
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, actor, ok := c.orderIDAndActor(w, r)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, err := c.manageUC.UpdateStatus(r.Context(), orderID, domain.OrderStatus(req.Status), *actor)
	if err != nil {
		c.handleUseCaseError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.UpdateOrderStatusResponse{
		Success: true,
		Message: "Order status updated successfully",
		Order:   dto.NewOrderDTO(order),
	})
}

func (c *OrderController) orderIDAndActor(w http.ResponseWriter, r *http.Request) (uint, *dto.AuthenticatedUser, bool) {
	orderIDStr := chi.URLParam(r, "orderId")
	orderID, err := strconv.ParseUint(orderIDStr, 10, 64)
	if err != nil {
		c.writeValidationError(w, "invalid orderId", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId must be a positive integer",
		})
		return 0, nil, false
	}

	actor := middleware.UserFromContext(r.Context())
	if actor == nil {
		c.writeError(w, http.StatusUnauthorized, "Please login first")
		return 0, nil, false
	}

	return uint(orderID), actor, true
}

func validateSubmitRequest(req dto.SubmitOrderRequest) error {
	var details []apperrors.ValidationDetail

	required := []struct {
		field, value string
	}{
		{"companyName", req.CompanyName},
		{"contactName", req.ContactName},
		{"phone", req.Phone},
		{"email", req.Email},
		{"deliveryAddress", req.DeliveryAddress},
		{"deliveryDate", req.DeliveryDate},
		{"deliveryTime", req.DeliveryTime},
	}
	for _, f := range required {
		if f.value == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   f.field,
				Message: f.field + " is required",
			})
		}
	}

	if req.DeliveryDate != "" {
		if _, err := time.Parse("2006-01-02", req.DeliveryDate); err != nil {
			details = append(details, apperrors.ValidationDetail{
				Field:   "deliveryDate",
				Message: "deliveryDate must be formatted as YYYY-MM-DD",
			})
		}
	}

	if !domain.CraneTruck(req.CraneTruck).Valid() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "craneTruck",
			Message: "craneTruck must be YES or NO",
		})
	}

	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}
	for idx, item := range req.Items {
		if item.Name == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].name",
				Message: "item name is required",
			})
		}
		if item.Quantity <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(idx) + "].quantity",
				Message: "quantity must be positive",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func (c *OrderController) handleUseCaseError(w http.ResponseWriter, err error, logger *zap.Logger) {
	c.handleUseCaseErrorWithFallback(w, err, logger, "an unexpected error occurred")
}

func (c *OrderController) handleUseCaseErrorWithFallback(w http.ResponseWriter, err error, logger *zap.Logger, fallback string) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if _, ok := apperrors.IsForbiddenError(err); ok {
		c.writeError(w, http.StatusForbidden, err.Error())
		return
	}
	if _, ok := apperrors.IsUnauthorizedError(err); ok {
		c.writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeError(w, http.StatusConflict, err.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, fallback)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *OrderController) writeError(w http.ResponseWriter, status int, message string) {
	c.writeJSON(w, status, errorResponse{Success: false, Message: message})
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

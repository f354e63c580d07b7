package usecase

import (
	"context"

	"go.uber.org/zap"

	"kingflex/internal/domain"
	"kingflex/internal/dto"
	apperrors "kingflex/internal/errors"
)

type OrderQueryStore interface {
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindGuestOrder(ctx context.Context, orderNumber, email string) (*domain.Order, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error
}

type StatusNotifier interface {
	NotifyStatusUpdate(order *domain.Order) error
}

// ManageOrdersUseCase covers order retrieval and status updates.
type ManageOrdersUseCase struct {
	orders   OrderQueryStore
	notifier StatusNotifier
	logger   *zap.Logger
}

func NewManageOrdersUseCase(orders OrderQueryStore, notifier StatusNotifier, logger *zap.Logger) *ManageOrdersUseCase {
	return &ManageOrdersUseCase{
		orders:   orders,
		notifier: notifier,
		logger:   logger,
	}
}

// GuestOrder authorizes by (orderNumber, email) equality, an intentional
// low-friction design for guest tracking.
func (uc *ManageOrdersUseCase) GuestOrder(ctx context.Context, orderNumber, email string) (*domain.Order, error) {
	return uc.orders.FindGuestOrder(ctx, orderNumber, email)
}

func (uc *ManageOrdersUseCase) UserOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	return uc.orders.FindByUser(ctx, userID)
}

func (uc *ManageOrdersUseCase) OrderByID(ctx context.Context, orderID uint, actor dto.AuthenticatedUser) (*domain.Order, error) {
	order, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if actor.Role != domain.UserRoleAdmin && !order.OwnedBy(actor.ID) {
		return nil, apperrors.NewForbiddenError("no access to this order")
	}

	return order, nil
}

// UpdateStatus commits the status change, then sends the status-update mail
// as best-effort enrichment that never alters the reported outcome.
func (uc *ManageOrdersUseCase) UpdateStatus(ctx context.Context, orderID uint, status domain.OrderStatus, actor dto.AuthenticatedUser) (*domain.Order, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid order status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of pending, processing, completed, cancelled",
		})
	}

	order, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	isAdmin := actor.Role == domain.UserRoleAdmin
	if !isAdmin && !order.OwnedBy(actor.ID) {
		return nil, apperrors.NewForbiddenError("no access to this order")
	}
	if order.StatusLocked() && !isAdmin {
		return nil, apperrors.NewForbiddenError("unable to update completed or cancelled orders")
	}

	if err := uc.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	order.Status = status

	if err := uc.notifier.NotifyStatusUpdate(order); err != nil {
		uc.logger.Warn("status update notification failed",
			zap.String("orderNumber", order.OrderNumber),
			zap.Error(err))
	}

	return order, nil
}

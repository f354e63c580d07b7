package usecase

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"kingflex/internal/domain"
	"kingflex/internal/dto"
	apperrors "kingflex/internal/errors"
)

type mockOrderQueryStore struct {
	FindByIDFunc       func(ctx context.Context, id uint) (*domain.Order, error)
	FindGuestOrderFunc func(ctx context.Context, orderNumber, email string) (*domain.Order, error)
	FindByUserFunc     func(ctx context.Context, userID uint) ([]domain.Order, error)
	UpdateStatusFunc   func(ctx context.Context, id uint, status domain.OrderStatus) error
}

func (m *mockOrderQueryStore) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderQueryStore) FindGuestOrder(ctx context.Context, orderNumber, email string) (*domain.Order, error) {
	return m.FindGuestOrderFunc(ctx, orderNumber, email)
}

func (m *mockOrderQueryStore) FindByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	return m.FindByUserFunc(ctx, userID)
}

func (m *mockOrderQueryStore) UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error {
	if m.UpdateStatusFunc == nil {
		return nil
	}
	return m.UpdateStatusFunc(ctx, id, status)
}

type mockStatusNotifier struct {
	NotifyStatusUpdateFunc func(order *domain.Order) error
	calls                  int
}

func (m *mockStatusNotifier) NotifyStatusUpdate(order *domain.Order) error {
	m.calls++
	if m.NotifyStatusUpdateFunc == nil {
		return nil
	}
	return m.NotifyStatusUpdateFunc(order)
}

func ownedOrder(ownerID uint, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:          10,
		OrderNumber: "PO260901-001",
		Email:       "owner@example.test",
		Status:      status,
		CreatedBy:   &ownerID,
		CreatedAt:   time.Now(),
	}
}

func TestOrderByID_OwnerAllowed(t *testing.T) {
	ctx := context.Background()

	store := &mockOrderQueryStore{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return ownedOrder(7, domain.OrderStatusPending), nil
		},
	}
	uc := NewManageOrdersUseCase(store, &mockStatusNotifier{}, zap.NewNop())

	order, err := uc.OrderByID(ctx, 10, dto.AuthenticatedUser{ID: 7, Role: domain.UserRoleUser})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if order.ID != 10 {
		t.Errorf("expected order 10, got %d", order.ID)
	}
}

func TestOrderByID_NonOwnerForbidden(t *testing.T) {
	ctx := context.Background()

	store := &mockOrderQueryStore{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return ownedOrder(7, domain.OrderStatusPending), nil
		},
	}
	uc := NewManageOrdersUseCase(store, &mockStatusNotifier{}, zap.NewNop())

	_, err := uc.OrderByID(ctx, 10, dto.AuthenticatedUser{ID: 8, Role: domain.UserRoleUser})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, ok := apperrors.IsForbiddenError(err); !ok {
		t.Errorf("expected ForbiddenError, got %T", err)
	}
}

func TestOrderByID_AdminAllowed(t *testing.T) {
	ctx := context.Background()

	store := &mockOrderQueryStore{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return ownedOrder(7, domain.OrderStatusPending), nil
		},
	}
	uc := NewManageOrdersUseCase(store, &mockStatusNotifier{}, zap.NewNop())

	if _, err := uc.OrderByID(ctx, 10, dto.AuthenticatedUser{ID: 99, Role: domain.UserRoleAdmin}); err != nil {
		t.Fatalf("expected no error for admin, got %v", err)
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	ctx := context.Background()

	uc := NewManageOrdersUseCase(&mockOrderQueryStore{}, &mockStatusNotifier{}, zap.NewNop())

	_, err := uc.UpdateStatus(ctx, 10, domain.OrderStatus("shipped"), dto.AuthenticatedUser{ID: 7})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Errorf("expected ValidationError, got %T", err)
	}
}

func TestUpdateStatus_LockedForNonAdmin(t *testing.T) {
	ctx := context.Background()

	store := &mockOrderQueryStore{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return ownedOrder(7, domain.OrderStatusCompleted), nil
		},
	}
	uc := NewManageOrdersUseCase(store, &mockStatusNotifier{}, zap.NewNop())

	_, err := uc.UpdateStatus(ctx, 10, domain.OrderStatusCancelled, dto.AuthenticatedUser{ID: 7, Role: domain.UserRoleUser})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, ok := apperrors.IsForbiddenError(err); !ok {
		t.Errorf("expected ForbiddenError, got %T", err)
	}
}

func TestUpdateStatus_AdminCanUpdateLockedOrder(t *testing.T) {
	ctx := context.Background()

	updated := false
	store := &mockOrderQueryStore{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return ownedOrder(7, domain.OrderStatusCompleted), nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uint, status domain.OrderStatus) error {
			updated = true
			return nil
		},
	}
	notifier := &mockStatusNotifier{}
	uc := NewManageOrdersUseCase(store, notifier, zap.NewNop())

	order, err := uc.UpdateStatus(ctx, 10, domain.OrderStatusCancelled, dto.AuthenticatedUser{ID: 99, Role: domain.UserRoleAdmin})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !updated {
		t.Error("expected status to be persisted")
	}
	if order.Status != domain.OrderStatusCancelled {
		t.Errorf("expected cancelled status, got %s", order.Status)
	}
	if notifier.calls != 1 {
		t.Errorf("expected one status notification, got %d", notifier.calls)
	}
}

func TestUpdateStatus_NotificationFailureDoesNotFail(t *testing.T) {
	ctx := context.Background()

	store := &mockOrderQueryStore{
		FindByIDFunc: func(ctx context.Context, id uint) (*domain.Order, error) {
			return ownedOrder(7, domain.OrderStatusPending), nil
		},
	}
	notifier := &mockStatusNotifier{
		NotifyStatusUpdateFunc: func(order *domain.Order) error {
			return apperrors.NewInternalError("smtp unavailable", nil)
		},
	}
	uc := NewManageOrdersUseCase(store, notifier, zap.NewNop())

	order, err := uc.UpdateStatus(ctx, 10, domain.OrderStatusProcessing, dto.AuthenticatedUser{ID: 7, Role: domain.UserRoleUser})
	if err != nil {
		t.Fatalf("expected no error when notification fails, got %v", err)
	}
	if order.Status != domain.OrderStatusProcessing {
		t.Errorf("expected processing status, got %s", order.Status)
	}
}

func TestGuestOrder_PassesThrough(t *testing.T) {
	ctx := context.Background()

	store := &mockOrderQueryStore{
		FindGuestOrderFunc: func(ctx context.Context, orderNumber, email string) (*domain.Order, error) {
			if orderNumber != "PO260901-001" || email != "guest@example.test" {
				t.Errorf("unexpected lookup: %s %s", orderNumber, email)
			}
			return &domain.Order{OrderNumber: orderNumber, Email: email, IsGuestOrder: true}, nil
		},
	}
	uc := NewManageOrdersUseCase(store, &mockStatusNotifier{}, zap.NewNop())

	order, err := uc.GuestOrder(ctx, "PO260901-001", "guest@example.test")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !order.IsGuestOrder {
		t.Error("expected guest order")
	}
}

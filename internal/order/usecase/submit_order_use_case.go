package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"kingflex/internal/domain"
	"kingflex/internal/dto"
	apperrors "kingflex/internal/errors"
)

type OrderStore interface {
	Insert(ctx context.Context, order *domain.Order) (*domain.Order, error)
	CountByUserSince(ctx context.Context, userID uint, since time.Time) (int, error)
}

type NumberAllocator interface {
	Allocate(ctx context.Context, now time.Time) (string, error)
	DayStart(now time.Time) time.Time
}

type DocumentRenderer interface {
	Render(order *domain.Order) (string, error)
	Cleanup(path string) error
}

type Notifier interface {
	NotifyCustomer(order *domain.Order, docPath string) error
	NotifySalesTeam(order *domain.Order, docPath string) error
}

// SubmitOrderUseCase runs the order submission workflow: allocate a number,
// persist the order, then render and dispatch the confirmation document as
// best-effort enrichment. Only allocation and persistence failures reach the
// caller; once the order is persisted it is durable regardless of what the
// renderer or the mail transport do.
type SubmitOrderUseCase struct {
	orders      OrderStore
	allocator   NumberAllocator
	renderer    DocumentRenderer
	notifier    Notifier
	logger      *zap.Logger
	maxAttempts int
	dailyLimit  int
	now         func() time.Time
}

func NewSubmitOrderUseCase(
	orders OrderStore,
	allocator NumberAllocator,
	renderer DocumentRenderer,
	notifier Notifier,
	logger *zap.Logger,
	maxAttempts int,
	dailyLimit int,
) *SubmitOrderUseCase {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &SubmitOrderUseCase{
		orders:      orders,
		allocator:   allocator,
		renderer:    renderer,
		notifier:    notifier,
		logger:      logger,
		maxAttempts: maxAttempts,
		dailyLimit:  dailyLimit,
		now:         time.Now,
	}
}

func (uc *SubmitOrderUseCase) Submit(ctx context.Context, req dto.SubmitOrderRequest, actor *dto.AuthenticatedUser) (*domain.Order, error) {
	if err := uc.checkDailyLimit(ctx, actor); err != nil {
		return nil, err
	}

	order, err := uc.persistWithFreshNumber(ctx, req, actor)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("order created",
		zap.String("orderNumber", order.OrderNumber),
		zap.Bool("isGuestOrder", order.IsGuestOrder))

	uc.enrich(order)

	return order, nil
}

// checkDailyLimit caps registered non-admin users; guests are not limited.
func (uc *SubmitOrderUseCase) checkDailyLimit(ctx context.Context, actor *dto.AuthenticatedUser) error {
	if actor == nil || actor.Role == domain.UserRoleAdmin || uc.dailyLimit <= 0 {
		return nil
	}

	count, err := uc.orders.CountByUserSince(ctx, actor.ID, uc.allocator.DayStart(uc.now()))
	if err != nil {
		return apperrors.NewInternalError("counting user orders", err)
	}
	if count >= uc.dailyLimit {
		return apperrors.NewForbiddenError("today's order limit has been reached")
	}

	return nil
}

// persistWithFreshNumber is the only transactional part of the workflow.
// Allocation is not atomic: a concurrent submission can compute the same
// number, in which case the unique index rejects the insert and the attempt
// loop re-allocates. With a single attempt the conflict surfaces to the
// caller, who may retry.
func (uc *SubmitOrderUseCase) persistWithFreshNumber(ctx context.Context, req dto.SubmitOrderRequest, actor *dto.AuthenticatedUser) (*domain.Order, error) {
	for attempt := 1; ; attempt++ {
		number, err := uc.allocator.Allocate(ctx, uc.now())
		if err != nil {
			return nil, err
		}

		order := buildOrder(req, number, actor)

		persisted, err := uc.orders.Insert(ctx, order)
		if err == nil {
			return persisted, nil
		}

		if _, ok := apperrors.IsConflictError(err); ok && attempt < uc.maxAttempts {
			uc.logger.Warn("duplicate order number, reallocating",
				zap.String("orderNumber", number),
				zap.Int("attempt", attempt))
			continue
		}

		return nil, err
	}
}

// enrich renders the document and dispatches both notifications. Failures are
// logged and never propagated: the order is already durable. The document
// handle, once produced, is cleaned up on every exit path exactly once.
func (uc *SubmitOrderUseCase) enrich(order *domain.Order) {
	docPath, err := uc.renderer.Render(order)
	if err != nil {
		uc.logger.Error("order document rendering failed",
			zap.String("orderNumber", order.OrderNumber),
			zap.Error(err))
		return
	}

	defer func() {
		if err := uc.renderer.Cleanup(docPath); err != nil {
			uc.logger.Error("order document cleanup failed",
				zap.String("orderNumber", order.OrderNumber),
				zap.Error(err))
		}
	}()

	// Fan-out to both recipients; a failure of one send never cancels the
	// other, so no shared context is wired into the group.
	var g errgroup.Group
	g.Go(func() error { return uc.notifier.NotifyCustomer(order, docPath) })
	g.Go(func() error { return uc.notifier.NotifySalesTeam(order, docPath) })

	if err := g.Wait(); err != nil {
		uc.logger.Error("order notification failed",
			zap.String("orderNumber", order.OrderNumber),
			zap.Error(err))
	}
}

func buildOrder(req dto.SubmitOrderRequest, number string, actor *dto.AuthenticatedUser) *domain.Order {
	items := make([]domain.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.OrderItem{
			Name:     item.Name,
			Detail:   item.Detail,
			Quantity: item.Quantity,
			UOM:      item.UOM,
		}
	}

	deliveryDate, _ := time.Parse("2006-01-02", req.DeliveryDate)

	order := &domain.Order{
		OrderNumber:     number,
		CompanyName:     req.CompanyName,
		ContactName:     req.ContactName,
		Phone:           req.Phone,
		Email:           req.Email,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryDate:    deliveryDate,
		DeliveryTime:    req.DeliveryTime,
		CraneTruck:      domain.CraneTruck(req.CraneTruck),
		Items:           items,
		Note:            req.Note,
		Status:          domain.OrderStatusPending,
		IsGuestOrder:    req.IsGuestOrder,
	}

	if actor != nil && !req.IsGuestOrder {
		id := actor.ID
		order.CreatedBy = &id
	}

	return order
}

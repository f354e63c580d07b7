package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	apperrors "kingflex/internal/errors"
)

type LatestNumberFinder interface {
	FindLatestOrderNumberSince(ctx context.Context, dayStart time.Time) (string, error)
}

// NumberAllocator derives the next sequential daily order number from the
// persisted order set. It performs no locking: two concurrent allocations can
// compute the same number, and the unique index on orderNumber rejects the
// second insert.
type NumberAllocator struct {
	orders LatestNumberFinder
	loc    *time.Location
}

func NewNumberAllocator(orders LatestNumberFinder, loc *time.Location) *NumberAllocator {
	if loc == nil {
		loc = time.Local
	}
	return &NumberAllocator{orders: orders, loc: loc}
}

// Allocate returns the next order number for the calendar day containing now,
// formatted as PO<YYMMDD>-<seq3>.
func (a *NumberAllocator) Allocate(ctx context.Context, now time.Time) (string, error) {
	local := now.In(a.loc)
	dayStart := a.DayStart(now)

	latest, err := a.orders.FindLatestOrderNumberSince(ctx, dayStart)
	if err != nil {
		return "", apperrors.NewInternalError("finding latest order number", err)
	}

	sequence := 1
	if latest != "" {
		last, err := strconv.Atoi(latest[len(latest)-3:])
		if err != nil {
			return "", apperrors.NewInternalError(
				fmt.Sprintf("parsing sequence of order number %s", latest), err)
		}
		sequence = last + 1
	}

	return fmt.Sprintf("PO%s-%03d", local.Format("060102"), sequence), nil
}

// DayStart truncates now to midnight in the configured location.
func (a *NumberAllocator) DayStart(now time.Time) time.Time {
	local := now.In(a.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.loc)
}

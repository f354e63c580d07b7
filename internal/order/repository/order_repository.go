package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"kingflex/internal/domain"
	apperrors "kingflex/internal/errors"
)

const mysqlDuplicateEntry = 1062

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// Insert persists the order and its items in one transaction. The unique
// index on orderNumber converts a concurrent-allocation race into a
// ConflictError instead of a silently duplicated number.
func (r *MySQLOrderRepository) Insert(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO Orders (orderNumber, companyName, contactName, phone, email,
		                    deliveryAddress, deliveryDate, deliveryTime, craneTruck,
		                    note, status, createdBy, isGuestOrder)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.OrderNumber, order.CompanyName, order.ContactName, order.Phone, order.Email,
		order.DeliveryAddress, order.DeliveryDate, order.DeliveryTime, string(order.CraneTruck),
		order.Note, string(order.Status), order.CreatedBy, order.IsGuestOrder,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, apperrors.NewConflictError(
				fmt.Sprintf("order number %s already exists", order.OrderNumber))
		}
		return nil, fmt.Errorf("inserting order: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading order id: %w", err)
	}
	order.ID = uint(id)

	for i := range order.Items {
		item := &order.Items[i]
		res, err := tx.ExecContext(ctx, `
			INSERT INTO OrderItems (orderId, name, detail, quantity, uom)
			VALUES (?, ?, ?, ?, ?)`,
			order.ID, item.Name, item.Detail, item.Quantity, item.UOM,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting order item: %w", err)
		}
		itemID, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("reading order item id: %w", err)
		}
		item.ID = uint(itemID)
		item.OrderID = order.ID
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing order: %w", err)
	}

	return r.FindByID(ctx, order.ID)
}

// FindLatestOrderNumberSince returns the lexicographically greatest order
// number among orders created at or after dayStart, or "" when there is none.
// String ordering is equivalent to numeric ordering here because the sequence
// suffix is fixed-width zero-padded.
func (r *MySQLOrderRepository) FindLatestOrderNumberSince(ctx context.Context, dayStart time.Time) (string, error) {
	var number string
	err := r.db.QueryRowContext(ctx, `
		SELECT orderNumber
		FROM Orders
		WHERE createdAt >= ?
		ORDER BY orderNumber DESC
		LIMIT 1`, dayStart,
	).Scan(&number)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("querying latest order number: %w", err)
	}

	return number, nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	order, err := r.scanOrder(r.db.QueryRowContext(ctx, selectOrder+` WHERE id = ?`, id))
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
		}
		return nil, err
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// FindGuestOrder authorizes guest tracking by (orderNumber, email) equality.
func (r *MySQLOrderRepository) FindGuestOrder(ctx context.Context, orderNumber, email string) (*domain.Order, error) {
	order, err := r.scanOrder(r.db.QueryRowContext(ctx,
		selectOrder+` WHERE orderNumber = ? AND email = ? AND isGuestOrder = 1`,
		orderNumber, email,
	))
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewNotFoundError("order not found")
		}
		return nil, err
	}

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *MySQLOrderRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, selectOrder+` WHERE createdBy = ? ORDER BY createdAt DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying user orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	for i := range orders {
		if err := r.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}

	return orders, nil
}

func (r *MySQLOrderRepository) CountByUserSince(ctx context.Context, userID uint, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM Orders WHERE createdBy = ? AND createdAt >= ?`,
		userID, since,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting user orders: %w", err)
	}
	return count, nil
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE Orders SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return nil
}

const selectOrder = `
	SELECT id, orderNumber, companyName, contactName, phone, email,
	       deliveryAddress, deliveryDate, deliveryTime, craneTruck,
	       note, status, createdBy, isGuestOrder, createdAt, updatedAt
	FROM Orders`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *MySQLOrderRepository) scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var note sql.NullString
	var craneTruck, status string

	err := row.Scan(
		&order.ID, &order.OrderNumber, &order.CompanyName, &order.ContactName,
		&order.Phone, &order.Email, &order.DeliveryAddress, &order.DeliveryDate,
		&order.DeliveryTime, &craneTruck, &note, &status, &order.CreatedBy,
		&order.IsGuestOrder, &order.CreatedAt, &order.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scanning order row: %w", err)
	}

	order.Note = note.String
	order.CraneTruck = domain.CraneTruck(craneTruck)
	order.Status = domain.OrderStatus(status)

	return &order, nil
}

func (r *MySQLOrderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, orderId, name, detail, quantity, uom
		FROM OrderItems
		WHERE orderId = ?
		ORDER BY id`, order.ID)
	if err != nil {
		return fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	order.Items = nil
	for rows.Next() {
		var item domain.OrderItem
		var detail sql.NullString
		if err := rows.Scan(&item.ID, &item.OrderID, &item.Name, &detail, &item.Quantity, &item.UOM); err != nil {
			return fmt.Errorf("scanning order item row: %w", err)
		}
		item.Detail = detail.String
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating order item rows: %w", err)
	}

	return nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	// Fallback for stores that surface the constraint by message only.
	return strings.Contains(err.Error(), "Duplicate entry")
}

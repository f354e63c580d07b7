package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type CraneTruck string

const (
	CraneTruckYes CraneTruck = "YES"
	CraneTruckNo  CraneTruck = "NO"
)

func (c CraneTruck) Valid() bool {
	return c == CraneTruckYes || c == CraneTruckNo
}

// Order number format: PO<YYMMDD>-<seq3>, unique, sequence resets each calendar day.
type Order struct {
	ID              uint
	OrderNumber     string
	CompanyName     string
	ContactName     string
	Phone           string
	Email           string
	DeliveryAddress string
	DeliveryDate    time.Time
	DeliveryTime    string
	CraneTruck      CraneTruck
	Items           []OrderItem
	Note            string
	Status          OrderStatus
	CreatedBy       *uint
	IsGuestOrder    bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OrderItem struct {
	ID       uint
	OrderID  uint
	Name     string
	Detail   string
	Quantity float64
	UOM      string
}

// StatusLocked reports whether the order reached a terminal status that only
// admins are allowed to change.
func (o *Order) StatusLocked() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}

// OwnedBy reports whether the order was created by the given user.
func (o *Order) OwnedBy(userID uint) bool {
	return o.CreatedBy != nil && *o.CreatedBy == userID
}

package dto

import (
	"time"

	"kingflex/internal/domain"
)

type OrderItemRequest struct {
	Name     string  `json:"name"`
	Detail   string  `json:"detail"`
	Quantity float64 `json:"quantity"`
	UOM      string  `json:"uom"`
}

type SubmitOrderRequest struct {
	CompanyName     string             `json:"companyName"`
	ContactName     string             `json:"contactName"`
	Phone           string             `json:"phone"`
	Email           string             `json:"email"`
	DeliveryAddress string             `json:"deliveryAddress"`
	DeliveryDate    string             `json:"deliveryDate"`
	DeliveryTime    string             `json:"deliveryTime"`
	CraneTruck      string             `json:"craneTruck"`
	Items           []OrderItemRequest `json:"items"`
	Note            string             `json:"note,omitempty"`
	IsGuestOrder    bool               `json:"isGuestOrder"`
}

type OrderItemDTO struct {
	Name     string  `json:"name"`
	Detail   string  `json:"detail,omitempty"`
	Quantity float64 `json:"quantity"`
	UOM      string  `json:"uom"`
}

// OrderDTO never exposes createdBy.
type OrderDTO struct {
	ID              uint           `json:"id"`
	OrderNumber     string         `json:"orderNumber"`
	CompanyName     string         `json:"companyName"`
	ContactName     string         `json:"contactName"`
	Phone           string         `json:"phone"`
	Email           string         `json:"email"`
	DeliveryAddress string         `json:"deliveryAddress"`
	DeliveryDate    time.Time      `json:"deliveryDate"`
	DeliveryTime    string         `json:"deliveryTime"`
	CraneTruck      string         `json:"craneTruck"`
	Items           []OrderItemDTO `json:"items"`
	Note            string         `json:"note,omitempty"`
	Status          string         `json:"status"`
	IsGuestOrder    bool           `json:"isGuestOrder"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func NewOrderDTO(order *domain.Order) OrderDTO {
	items := make([]OrderItemDTO, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemDTO{
			Name:     item.Name,
			Detail:   item.Detail,
			Quantity: item.Quantity,
			UOM:      item.UOM,
		}
	}

	return OrderDTO{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CompanyName:     order.CompanyName,
		ContactName:     order.ContactName,
		Phone:           order.Phone,
		Email:           order.Email,
		DeliveryAddress: order.DeliveryAddress,
		DeliveryDate:    order.DeliveryDate,
		DeliveryTime:    order.DeliveryTime,
		CraneTruck:      string(order.CraneTruck),
		Items:           items,
		Note:            order.Note,
		Status:          string(order.Status),
		IsGuestOrder:    order.IsGuestOrder,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

type SubmitOrderResponse struct {
	Message string   `json:"message"`
	Order   OrderDTO `json:"order"`
}

type OrderResponse struct {
	Success bool     `json:"success"`
	Order   OrderDTO `json:"order"`
}

type OrdersResponse struct {
	Success bool       `json:"success"`
	Orders  []OrderDTO `json:"orders"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type UpdateOrderStatusResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Order   OrderDTO `json:"order"`
}

package service

import (
	"kingflex/internal/domain"
	apperrors "kingflex/internal/errors"
	"kingflex/internal/infrastructure/mail"
)

type Transport interface {
	Send(to, subject, htmlBody string, attachments ...mail.Attachment) error
}

type HandleStore interface {
	Exists(path string) bool
}

// NotificationService sends the rendered order document to the customer and
// to the internal sales address.
type NotificationService struct {
	transport  Transport
	files      HandleStore
	salesEmail string
}

func NewNotificationService(transport Transport, files HandleStore, salesEmail string) *NotificationService {
	return &NotificationService{
		transport:  transport,
		files:      files,
		salesEmail: salesEmail,
	}
}

func (s *NotificationService) NotifyCustomer(order *domain.Order, docPath string) error {
	if !s.files.Exists(docPath) {
		return apperrors.NewInternalError("order document not found", nil)
	}

	subject, body := mail.CustomerOrderEmail(order)
	return s.transport.Send(order.Email, subject, body, mail.Attachment{
		Path:     docPath,
		Filename: "Order-" + order.OrderNumber + ".pdf",
	})
}

func (s *NotificationService) NotifySalesTeam(order *domain.Order, docPath string) error {
	if !s.files.Exists(docPath) {
		return apperrors.NewInternalError("order document not found", nil)
	}

	subject, body := mail.SalesTeamEmail(order)
	return s.transport.Send(s.salesEmail, subject, body, mail.Attachment{
		Path:     docPath,
		Filename: "Order-" + order.OrderNumber + ".pdf",
	})
}

// NotifyStatusUpdate is a best-effort mail without attachment, sent after a
// status change is committed.
func (s *NotificationService) NotifyStatusUpdate(order *domain.Order) error {
	subject, body := mail.OrderStatusUpdateEmail(order)
	return s.transport.Send(order.Email, subject, body)
}

package service

import (
	"strings"
	"testing"

	"kingflex/internal/domain"
	apperrors "kingflex/internal/errors"
	"kingflex/internal/infrastructure/mail"
)

type sentMail struct {
	to          string
	subject     string
	attachments []mail.Attachment
}

type mockTransport struct {
	SendFunc func(to, subject, htmlBody string, attachments ...mail.Attachment) error
	sent     []sentMail
}

func (m *mockTransport) Send(to, subject, htmlBody string, attachments ...mail.Attachment) error {
	m.sent = append(m.sent, sentMail{to: to, subject: subject, attachments: attachments})
	if m.SendFunc == nil {
		return nil
	}
	return m.SendFunc(to, subject, htmlBody, attachments...)
}

type mockHandleStore struct {
	exists bool
}

func (m *mockHandleStore) Exists(path string) bool {
	return m.exists
}

func testOrder() *domain.Order {
	return &domain.Order{
		OrderNumber: "PO260901-003",
		CompanyName: "BuildRight Construction",
		Email:       "customer@example.test",
		Status:      domain.OrderStatusPending,
	}
}

func TestNotifyCustomer_AttachesDocument(t *testing.T) {
	transport := &mockTransport{}
	svc := NewNotificationService(transport, &mockHandleStore{exists: true}, "sales@kingflex.test")

	if err := svc.NotifyCustomer(testOrder(), "/tmp/PO260901-003.pdf"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(transport.sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(transport.sent))
	}
	m := transport.sent[0]
	if m.to != "customer@example.test" {
		t.Errorf("expected mail to customer, got %s", m.to)
	}
	if !strings.Contains(m.subject, "PO260901-003") {
		t.Errorf("expected order number in subject, got %q", m.subject)
	}
	if len(m.attachments) != 1 || m.attachments[0].Filename != "Order-PO260901-003.pdf" {
		t.Errorf("expected renamed attachment, got %+v", m.attachments)
	}
}

func TestNotifySalesTeam_SendsToSalesAddress(t *testing.T) {
	transport := &mockTransport{}
	svc := NewNotificationService(transport, &mockHandleStore{exists: true}, "sales@kingflex.test")

	if err := svc.NotifySalesTeam(testOrder(), "/tmp/PO260901-003.pdf"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(transport.sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(transport.sent))
	}
	if transport.sent[0].to != "sales@kingflex.test" {
		t.Errorf("expected mail to sales address, got %s", transport.sent[0].to)
	}
}

func TestNotifyCustomer_MissingDocument(t *testing.T) {
	transport := &mockTransport{}
	svc := NewNotificationService(transport, &mockHandleStore{exists: false}, "sales@kingflex.test")

	err := svc.NotifyCustomer(testOrder(), "/tmp/gone.pdf")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, ok := apperrors.IsInternalError(err); !ok {
		t.Errorf("expected InternalError, got %T", err)
	}
	if len(transport.sent) != 0 {
		t.Error("expected no mail when the document is missing")
	}
}

func TestNotifyStatusUpdate_NoAttachment(t *testing.T) {
	transport := &mockTransport{}
	svc := NewNotificationService(transport, &mockHandleStore{exists: false}, "sales@kingflex.test")

	order := testOrder()
	order.Status = domain.OrderStatusProcessing

	if err := svc.NotifyStatusUpdate(order); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(transport.sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(transport.sent))
	}
	m := transport.sent[0]
	if m.to != "customer@example.test" {
		t.Errorf("expected mail to customer, got %s", m.to)
	}
	if len(m.attachments) != 0 {
		t.Error("expected no attachment on status update mail")
	}
}

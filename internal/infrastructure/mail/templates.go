package mail

import (
	"fmt"

	"kingflex/internal/domain"
)

// Each template returns the subject and HTML body for one outbound mail.

func VerificationEmail(code string) (string, string) {
	body := fmt.Sprintf(`
		<h1>Email verification</h1>
		<p>Your verification code is:</p>
		<h2 style="color: #4A90E2; font-size: 24px; text-align: center; padding: 10px; background: #f5f5f5; border-radius: 5px;">%s</h2>
		<p>This code will expire in 1 hour.</p>
		<p>If you did not request this verification, please ignore this email.</p>`, code)
	return "Please verify your email", body
}

func PasswordResetEmail(code string) (string, string) {
	body := fmt.Sprintf(`
		<h1>Password Reset Code</h1>
		<p>You have requested to reset your password.</p>
		<p>Your password reset code is:</p>
		<h2 style="color: #4A90E2; font-size: 24px; text-align: center; padding: 10px; background: #f5f5f5; border-radius: 5px;">%s</h2>
		<p>This code will expire in 1 hour.</p>
		<p>If you did not request this reset, please ignore this email.</p>`, code)
	return "Password Reset Code", body
}

func CustomerOrderEmail(order *domain.Order) (string, string) {
	subject := fmt.Sprintf("Order Confirmation #%s", order.OrderNumber)
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif;">
			<h2>Order Confirmation</h2>
			<p>Dear %s,</p>
			<p>Thank you for your order. Your order number is %s.</p>
			<h3>Order Details:</h3>
			<p>
				Delivery Date: %s<br>
				Delivery Time: %s<br>
				Delivery Address: %s<br>
				Crane Truck Required: %s
			</p>
			<p>Please find your order details in the attached PDF.</p>
			<p>If you have any questions, please contact our customer service team.</p>
			<p>Best regards,<br>KingFlex</p>
		</div>`,
		order.CompanyName, order.OrderNumber,
		order.DeliveryDate.Format("01/02/2006"), order.DeliveryTime,
		order.DeliveryAddress, order.CraneTruck)
	return subject, body
}

func SalesTeamEmail(order *domain.Order) (string, string) {
	subject := fmt.Sprintf("New Order #%s", order.OrderNumber)
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif;">
			<h2>New Order Notification</h2>
			<p>Order Number: %s</p>
			<h3>Customer Information:</h3>
			<p>
				Company: %s<br>
				Contact: %s<br>
				Phone: %s<br>
				Email: %s
			</p>
			<h3>Delivery Information:</h3>
			<p>
				Date: %s<br>
				Time: %s<br>
				Address: %s<br>
				Crane Truck: %s
			</p>
			<p>Please check the attached PDF for complete order details.</p>
		</div>`,
		order.OrderNumber, order.CompanyName, order.ContactName, order.Phone,
		order.Email, order.DeliveryDate.Format("01/02/2006"), order.DeliveryTime,
		order.DeliveryAddress, order.CraneTruck)
	return subject, body
}

func OrderStatusUpdateEmail(order *domain.Order) (string, string) {
	subject := fmt.Sprintf("Order status update #%s", order.OrderNumber)
	body := fmt.Sprintf(`
		<h1>Order status updated</h1>
		<p>Dear %s,</p>
		<p>Your order status has been updated to: %s</p>
		<p>Order number: %s</p>
		<p>If you have any questions, please contact our customer service team.</p>`,
		order.ContactName, order.Status, order.OrderNumber)
	return subject, body
}

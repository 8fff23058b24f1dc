package utils

import (
	"fmt"
	"log/slog"

	"brelis-api/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends transactional mail through SendGrid. When no API key is
// configured it logs and drops messages, so local development works without
// an account.
type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewEmailService initializes and returns a new EmailService instance.
func NewEmailService(apiKey, fromEmail, fromName string) *EmailService {
	var client *sendgrid.Client
	if apiKey != "" {
		client = sendgrid.NewSendClient(apiKey)
	}
	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendEmail sends a basic email to the specified recipient.
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es.client == nil {
		slog.Info("email delivery disabled, dropping message",
			slog.String("to", toEmail), slog.String("subject", subject))
		return nil
	}

	from := mail.NewEmail(es.fromName, es.fromEmail)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, htmlContent, htmlContent)

	response, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}
	return nil
}

// SendVerificationEmail sends an email verification link to the user.
func (es *EmailService) SendVerificationEmail(toEmail, token, baseURL string) error {
	subject := "Verify Your Email - BRELIS Streetwear"
	verificationLink := fmt.Sprintf("%s/api/auth/verify?token=%s", baseURL, token)
	htmlContent := fmt.Sprintf(
		"<strong>Welcome to BRELIS.</strong><br><br>Please verify your email by clicking on the following link: <a href=\"%s\">Verify Email</a>",
		verificationLink,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

// SendOrderConfirmationEmail sends an order confirmation email to the user.
func (es *EmailService) SendOrderConfirmationEmail(toEmail, name string, order *models.Order) error {
	subject := "Order Confirmation - BRELIS Streetwear"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Thank you for your purchase! Your order (ID: %s) has been placed successfully.<br><br>Total Amount: <strong>₹%.2f</strong><br>Payment Method: <strong>%s</strong><br>Coins you will earn on delivery: <strong>%d</strong><br><br>Thank you for shopping with us!",
		name,
		order.ID.Hex(),
		order.Total,
		order.Payment.Method,
		order.CoinsEarned,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

// SendOrderStatusEmail notifies the user of an order status change.
func (es *EmailService) SendOrderStatusEmail(toEmail, name string, order *models.Order) error {
	subject := "Order Update - BRELIS Streetwear"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Your order (ID: %s) is now <strong>%s</strong>.<br><br>Thank you for shopping with us!",
		name,
		order.ID.Hex(),
		order.Status,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

// SendContactEmail forwards a contact-form message to the store address.
func (es *EmailService) SendContactEmail(storeEmail, name, fromEmail, message string) error {
	subject := fmt.Sprintf("Contact form: %s", name)
	htmlContent := fmt.Sprintf(
		"<strong>From:</strong> %s &lt;%s&gt;<br><br>%s",
		name, fromEmail, message,
	)
	return es.SendEmail(storeEmail, subject, htmlContent)
}

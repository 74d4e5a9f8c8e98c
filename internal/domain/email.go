package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeMessageEmailData holds data for the welcome email.
type WelcomeMessageEmailData struct {
	Email     string
	FirstName string
}

// OrderConfirmationEmailData holds data for the order confirmation email.
type OrderConfirmationEmailData struct {
	Email       string
	FirstName   string
	EventTitle  string
	Reference   string
	TotalAmount string
	IsFree      bool
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcomeMessage(ctx context.Context, data *WelcomeMessageEmailData) error
	SendOrderConfirmation(ctx context.Context, data *OrderConfirmationEmailData) error
}

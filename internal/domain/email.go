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

// MemberWelcomeEmailData holds data for the email sent to a newly registered member.
type MemberWelcomeEmailData struct {
	Email     string
	FirstName string
	GymName   string
	PlanName  string // empty when the member has no plan yet
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendMemberWelcome(ctx context.Context, data *MemberWelcomeEmailData) error
}

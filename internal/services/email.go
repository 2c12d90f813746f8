package services

import (
	"context"
	"fmt"
	"log"

	"gymadmin/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendMemberWelcome sends the new-member welcome email using the "member_welcome" template.
func (s *emailService) SendMemberWelcome(ctx context.Context, data *domain.MemberWelcomeEmailData) error {
	if data == nil {
		return fmt.Errorf("member welcome data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("member_welcome", data)
	if err != nil {
		return fmt.Errorf("failed to render member_welcome template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	log.Printf("[EMAIL] Welcome email sent to %s", data.Email)
	return nil
}

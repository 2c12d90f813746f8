package email

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gymadmin/internal/domain"
)

func TestTemplateRenderer_MemberWelcome(t *testing.T) {
	renderer := NewTemplateRenderer()

	subject, htmlBody, textBody, err := renderer.Render("member_welcome", &domain.MemberWelcomeEmailData{
		Email:     "ana@example.com",
		FirstName: "Ana",
		GymName:   "Iron Works",
		PlanName:  "Monthly Unlimited",
	})
	require.NoError(t, err)
	require.Equal(t, "Welcome to Iron Works!", subject)
	require.Contains(t, htmlBody, "Welcome to Iron Works, Ana!")
	require.Contains(t, htmlBody, "Monthly Unlimited")
	require.Contains(t, textBody, "Welcome to Iron Works, Ana!")
}

func TestTemplateRenderer_MemberWelcome_NoPlan(t *testing.T) {
	renderer := NewTemplateRenderer()

	_, htmlBody, textBody, err := renderer.Render("member_welcome", &domain.MemberWelcomeEmailData{
		Email:     "ana@example.com",
		FirstName: "Ana",
		GymName:   "Iron Works",
	})
	require.NoError(t, err)
	require.NotContains(t, htmlBody, "plan")
	require.Contains(t, textBody, "Your membership is now active.")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	renderer := NewTemplateRenderer()

	_, _, _, err := renderer.Render("does_not_exist", nil)
	require.Error(t, err)
}

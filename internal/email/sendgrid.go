// internal/email/sendgrid.go
package email

import (
	"context"
	"fmt"

	"github.com/emresys/emre/internal/config"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender delivers notification email through the Sendgrid API. A Sender
// built without an API key is a no-op, so deployments without Sendgrid
// configured still work.
type Sender struct {
	client *sendgrid.Client
	from   string
}

func NewSender(cfg *config.Config) *Sender {
	s := &Sender{from: cfg.Sendgrid.From}
	if cfg.Sendgrid.APIKey != "" {
		s.client = sendgrid.NewSendClient(cfg.Sendgrid.APIKey)
	}
	return s
}

// MembershipApproved tells a user their organization membership request was
// accepted.
func (s *Sender) MembershipApproved(ctx context.Context, to, firstName, orgName string) error {
	subject := fmt.Sprintf("Your membership in %s has been approved", orgName)
	text := fmt.Sprintf(
		"Hi %s,\n\nYour request to join %s has been approved. You can now access the organization's teams, incidents and resources.\n",
		firstName, orgName)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your request to join <strong>%s</strong> has been approved. You can now access the organization's teams, incidents and resources.</p>",
		firstName, orgName)

	return s.send(to, subject, text, html)
}

func (s *Sender) send(to, subject, textContent, htmlContent string) error {
	if s.client == nil {
		return nil
	}

	from := mail.NewEmail("Emergency Response Coordination", s.from)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), textContent, htmlContent)

	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("sending via Sendgrid: %w", err)
	}
	if response.StatusCode != 202 {
		return fmt.Errorf("unexpected Sendgrid status code: %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}

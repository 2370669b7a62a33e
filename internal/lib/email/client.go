// Package email sends transactional emails through Resend.
//
// Bodies are rendered from HTML templates embedded in the binary.
package email

import (
	"fmt"

	"github.com/deppfellow/workout-api/internal/config"
	"github.com/pkg/errors"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
)

// DefaultFrom is the sender identity. Resend accepts it without a
// verified domain.
const DefaultFrom = "Workout API <onboarding@resend.dev>"

// sender is the slice of the Resend emails service we use.
type sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Client wraps the Resend client and a logger.
type Client struct {
	sender sender
	from   string
	logger *zerolog.Logger
}

// NewClient creates a Client using the Resend API key from cfg.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		sender: resend.NewClient(cfg.Integration.ResendAPIKey).Emails,
		from:   DefaultFrom,
		logger: logger,
	}
}

// SendEmail renders templateName with data and sends the result to to.
func (c *Client) SendEmail(to, subject string, templateName Template, data map[string]string) error {
	body, err := Render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	sent, err := c.sender.Send(params)
	if err != nil {
		return errors.Wrapf(err, "failed to send email %s", templateName)
	}

	c.logger.Debug().
		Str("template", string(templateName)).
		Str("email_id", sent.Id).
		Msg("email accepted by provider")

	return nil
}

// AthleteRegistered is the data shown in a registration notification.
type AthleteRegistered struct {
	Name           string
	CPF            string
	Category       string
	TrainingCenter string
	RegisteredAt   string
}

// SendAthleteRegisteredEmail tells the notification inbox about a new athlete.
func (c *Client) SendAthleteRegisteredEmail(to string, a AthleteRegistered) error {
	data := map[string]string{
		"AthleteName":    a.Name,
		"AthleteCPF":     a.CPF,
		"Category":       a.Category,
		"TrainingCenter": a.TrainingCenter,
		"RegisteredAt":   a.RegisteredAt,
	}

	return c.SendEmail(
		to,
		fmt.Sprintf("New athlete registered: %s", a.Name),
		TemplateAthleteRegistered,
		data,
	)
}

package email

import (
	"context"

	"github.com/resend/resend-go/v2"

	"github.com/subwatch/subwatch/internal/config"
	ierr "github.com/subwatch/subwatch/internal/errors"
)

// Transport is the outbound email capability. A transport that is not
// configured reports IsEnabled() == false; callers treat that as a valid
// "not sent" outcome rather than an error.
type Transport interface {
	IsEnabled() bool
	GetFromAddress() string
	SendEmail(ctx context.Context, from, to, subject, htmlBody, textBody string) (string, error)
}

// EmailClient sends email through Resend.
type EmailClient struct {
	client      *resend.Client
	fromAddress string
	enabled     bool
}

// NewClient builds the Resend transport. An empty API key yields a disabled
// client instead of an error.
func NewClient(cfg *config.Configuration) Transport {
	return &EmailClient{
		client:      resend.NewClient(cfg.Email.APIKey),
		fromAddress: cfg.Email.FromAddress,
		enabled:     cfg.Email.APIKey != "",
	}
}

func (c *EmailClient) IsEnabled() bool {
	return c.enabled
}

func (c *EmailClient) GetFromAddress() string {
	return c.fromAddress
}

func (c *EmailClient) SendEmail(ctx context.Context, from, to, subject, htmlBody, textBody string) (string, error) {
	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlBody,
		Text:    textBody,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to send email").
			WithReportableDetails(map[string]interface{}{
				"to":      to,
				"subject": subject,
			}).
			Mark(ierr.ErrHTTPClient)
	}
	return sent.Id, nil
}

package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"

	"github.com/subwatch/subwatch/internal/logger"
	"github.com/subwatch/subwatch/internal/types"
)

// emailTemplates stores email templates as string constants
var emailTemplates = map[string]string{
	"renewal-reminder.html": `<!DOCTYPE html>
<html>
<head>
    <meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
    <title>Subscription renewal reminder</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; font-size: 14px; line-height: 1.6; color: #333;">
    <p>Hi{{if .user_name}} {{.user_name}}{{end}},</p>
    <p>Your <strong>{{.subscription_name}}</strong> subscription {{.when_phrase}}.</p>
    <p>
        Amount: <strong>{{.amount}}</strong><br/>
        Renewal date: <strong>{{.renewal_date}}</strong>
    </p>
    <p>If you no longer need it, now is a good time to cancel before you are charged.</p>
    <br/>
    <p>— subwatch</p>
</body>
</html>`,
}

// SendEmailRequest is a plain outbound email.
type SendEmailRequest struct {
	FromAddress string
	ToAddress   string
	Subject     string
	Text        string
}

// SendEmailResponse reports the outcome of a send attempt. Success == false
// with a nil error means the transport is not configured.
type SendEmailResponse struct {
	MessageID string
	Success   bool
	Error     string
}

// SendReminderRequest carries everything needed to render and send one
// renewal reminder email.
type SendReminderRequest struct {
	ToAddress        string
	UserName         string
	SubscriptionName string
	Amount           decimal.Decimal
	RenewalDate      time.Time
	DaysUntil        int
}

// Email handles email operations
type Email struct {
	client Transport
	logger *logger.Logger
}

// NewEmail creates a new email service
func NewEmail(client Transport, log *logger.Logger) *Email {
	return &Email{
		client: client,
		logger: log,
	}
}

// ReminderSubject builds the subject line for a renewal reminder. The
// wording varies with how close the renewal is.
func ReminderSubject(subscriptionName string, daysUntil int) string {
	switch {
	case daysUntil <= 0:
		return fmt.Sprintf("%s renews today", subscriptionName)
	case daysUntil == 1:
		return fmt.Sprintf("%s renews tomorrow", subscriptionName)
	default:
		return fmt.Sprintf("%s renews in %d days", subscriptionName, daysUntil)
	}
}

// whenPhrase is the body counterpart of ReminderSubject.
func whenPhrase(daysUntil int) string {
	switch {
	case daysUntil <= 0:
		return "renews today"
	case daysUntil == 1:
		return "renews tomorrow"
	default:
		return fmt.Sprintf("renews in %d days", daysUntil)
	}
}

// SendRenewalReminder renders the reminder template and sends it. A missing
// transport configuration is a recognized "not sent" outcome, logged at warn
// level and returned without an error.
func (s *Email) SendRenewalReminder(ctx context.Context, req SendReminderRequest) (*SendEmailResponse, error) {
	subject := ReminderSubject(req.SubscriptionName, req.DaysUntil)

	if !s.client.IsEnabled() {
		s.logger.Warnw("email client is disabled, skipping email send",
			"to", req.ToAddress,
			"subject", subject,
		)
		return &SendEmailResponse{
			Success: false,
			Error:   "email client is disabled",
		}, nil
	}

	htmlContent, err := s.renderTemplate("renewal-reminder.html", map[string]interface{}{
		"user_name":         req.UserName,
		"subscription_name": req.SubscriptionName,
		"when_phrase":       whenPhrase(req.DaysUntil),
		"amount":            req.Amount.StringFixed(2),
		"renewal_date":      types.FormatCivilDate(req.RenewalDate),
	})
	if err != nil {
		s.logger.Errorw("failed to render email template",
			"error", err,
			"to", req.ToAddress,
		)
		return &SendEmailResponse{Success: false, Error: err.Error()}, err
	}

	messageID, err := s.client.SendEmail(ctx, s.client.GetFromAddress(), req.ToAddress, subject, htmlContent, "")
	if err != nil {
		s.logger.Errorw("failed to send email",
			"error", err,
			"to", req.ToAddress,
			"subject", subject,
		)
		return &SendEmailResponse{Success: false, Error: err.Error()}, err
	}

	s.logger.Infow("email sent successfully",
		"message_id", messageID,
		"to", req.ToAddress,
		"subject", subject,
	)
	return &SendEmailResponse{MessageID: messageID, Success: true}, nil
}

func (s *Email) renderTemplate(templatePath string, data map[string]interface{}) (string, error) {
	templateContent, exists := emailTemplates[templatePath]
	if !exists {
		return "", fmt.Errorf("template not found: %s", templatePath)
	}

	tmpl, err := template.New("email").Parse(templateContent)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

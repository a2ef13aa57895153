package testutil

import (
	"context"
	"fmt"
	"sync"

	ierr "github.com/subwatch/subwatch/internal/errors"
)

// SentEmail records one message delivered through the fake transport.
type SentEmail struct {
	From     string
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// FakeEmailTransport implements email.Transport, recording every send so
// tests can assert on dispatch behavior. Sends can be failed on demand.
type FakeEmailTransport struct {
	mu       sync.Mutex
	enabled  bool
	failNext bool
	sent     []SentEmail
}

func NewFakeEmailTransport() *FakeEmailTransport {
	return &FakeEmailTransport{enabled: true}
}

func (t *FakeEmailTransport) IsEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

func (t *FakeEmailTransport) GetFromAddress() string {
	return "reminders@example.test"
}

func (t *FakeEmailTransport) SendEmail(ctx context.Context, from, to, subject, htmlBody, textBody string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failNext {
		t.failNext = false
		return "", ierr.NewError("injected email failure").Mark(ierr.ErrHTTPClient)
	}
	t.sent = append(t.sent, SentEmail{
		From:     from,
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
	return fmt.Sprintf("msg_%d", len(t.sent)), nil
}

// SetEnabled toggles the transport, simulating a missing API key.
func (t *FakeEmailTransport) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
}

// FailNext makes the next send return an error.
func (t *FakeEmailTransport) FailNext() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failNext = true
}

// Sent returns a copy of all recorded messages.
func (t *FakeEmailTransport) Sent() []SentEmail {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]SentEmail, len(t.sent))
	copy(out, t.sent)
	return out
}

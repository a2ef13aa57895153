package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/subwatch/subwatch/internal/config"
	ierr "github.com/subwatch/subwatch/internal/errors"
	"github.com/subwatch/subwatch/internal/logger"
)

// Poster posts a JSON payload to a webhook URL. Failure is reported by
// error; there is no partial success.
type Poster interface {
	PostJSON(ctx context.Context, url string, payload interface{}) error
}

type httpPoster struct {
	client *retryablehttp.Client
}

// NewPoster builds the webhook HTTP client with retry and timeout from
// config.
func NewPoster(cfg *config.Configuration, log *logger.Logger) Poster {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.Webhook.RetryMax
	client.HTTPClient.Timeout = cfg.Webhook.RequestTimeout
	client.Logger = log.GetRetryableHTTPLogger()
	return &httpPoster{client: client}
}

func (p *httpPoster) PostJSON(ctx context.Context, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to marshal webhook payload").
			Mark(ierr.ErrInternal)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to build webhook request").
			Mark(ierr.ErrInternal)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Webhook request failed").
			Mark(ierr.ErrHTTPClient)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ierr.NewErrorf("webhook returned status %d", resp.StatusCode).
			WithHint("Webhook endpoint rejected the payload").
			WithReportableDetails(map[string]interface{}{
				"status_code": resp.StatusCode,
			}).
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}

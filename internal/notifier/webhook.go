package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/aleister1102/drivewatch/internal/common/errorwrapper"
	"github.com/aleister1102/drivewatch/internal/httpclient"
	"github.com/aleister1102/drivewatch/internal/notifier/discord"
)

// Transport posts one serialized payload to a webhook URL and returns the
// response status code. Decoupled from the client so retry behavior is
// testable with a fake.
type Transport interface {
	Post(ctx context.Context, webhookURL string, body []byte) (statusCode int, err error)
}

// HTTPTransport is the production Transport over net/http.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates a transport over the given HTTP client.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = httpclient.NewHTTPClient(httpclient.DefaultHTTPClientConfig())
	}
	return &HTTPTransport{client: client}
}

// Post sends the body as JSON to the webhook URL.
func (ht *HTTPTransport) Post(ctx context.Context, webhookURL string, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return 0, errorwrapper.WrapError(err, "failed to create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ht.client.Do(req)
	if err != nil {
		return 0, errorwrapper.NewNetworkError(webhookURL, "webhook request failed", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	return resp.StatusCode, nil
}

// WebhookClient delivers message payloads to a webhook endpoint with bounded
// retry and linearly increasing backoff.
type WebhookClient struct {
	logger      zerolog.Logger
	transport   Transport
	retryPolicy httpclient.RetryPolicy
}

// NewWebhookClient creates a webhook client with the given transport and
// retry policy.
func NewWebhookClient(transport Transport, retryPolicy httpclient.RetryPolicy, logger zerolog.Logger) *WebhookClient {
	if transport == nil {
		transport = NewHTTPTransport(nil)
	}
	return &WebhookClient{
		logger:      logger.With().Str("module", "WebhookClient").Logger(),
		transport:   transport,
		retryPolicy: retryPolicy,
	}
}

// Send delivers one payload to the webhook URL. Non-success status codes and
// transport errors are retried up to the configured attempt limit; exhausting
// retries surfaces the final error.
func (wc *WebhookClient) Send(ctx context.Context, webhookURL string, payload discord.MessagePayload) error {
	if webhookURL == "" {
		wc.logger.Warn().Msg("Webhook URL is empty, skipping notification")
		return nil
	}
	if _, err := url.ParseRequestURI(webhookURL); err != nil {
		return errorwrapper.WrapError(err, "invalid webhook URL")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return errorwrapper.WrapError(err, "failed to marshal webhook payload")
	}

	err = wc.retryPolicy.Execute(ctx, func(ctx context.Context) (bool, error) {
		statusCode, postErr := wc.transport.Post(ctx, webhookURL, body)
		if postErr != nil {
			return true, postErr
		}
		if statusCode < 200 || statusCode >= 300 {
			return true, errorwrapper.NewError("webhook returned status %d", statusCode)
		}
		return false, nil
	})
	if err != nil {
		wc.logger.Error().Err(err).Str("webhook_url", webhookURL).Msg("Webhook delivery failed after retries")
		return err
	}

	wc.logger.Debug().Str("webhook_url", webhookURL).Msg("Webhook notification sent")
	return nil
}

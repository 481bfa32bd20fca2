package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/observability/metrics"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/render"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/internal/responses"
	"github.com/SmokeyLowkey/DouglasDrivewayServices/pkg/logging"
)

// Reply is the decoded result of a webhook round-trip. Failures are
// already converted into user-facing text; callers never see an error.
type Reply struct {
	Text        string
	IsFormatted bool
	Shape       string
}

// Client posts chat payloads to the automation webhook. One attempt per
// message, no retries; the timeout cancels the request via context.
type Client struct {
	url        string
	timeout    time.Duration
	httpClient *http.Client
	decoder    *Decoder
	logger     *logging.Logger
	metrics    *metrics.ChatMetrics
}

func NewClient(url string, timeout time.Duration, logger *logging.Logger, m *metrics.ChatMetrics) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		url:     url,
		timeout: timeout,
		// The per-request context enforces the deadline; the http.Client
		// itself stays unbounded.
		httpClient: &http.Client{},
		decoder:    NewDecoder(logger),
		logger:     logger,
		metrics:    m,
	}
}

// Send posts the payload and decodes whatever comes back. Every failure
// mode (marshal, network, timeout, non-2xx, unreadable body) collapses to
// one of the fixed apology strings; details go to the log only.
func (c *Client) Send(ctx context.Context, p Payload, lastUserMessage string) Reply {
	body, err := json.Marshal(p)
	if err != nil {
		c.logger.Error("failed to marshal webhook payload", "error", err)
		return c.failure(responses.ConnectionTrouble, "marshal_error")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("failed to build webhook request", "error", err)
		return c.failure(responses.ConnectionTrouble, "request_error")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			c.logger.Warn("webhook request timed out", "timeout", c.timeout, "elapsed_ms", elapsed.Milliseconds())
			c.metrics.ObserveWebhook("timeout", elapsed.Seconds())
			return Reply{Text: responses.Timeout, Shape: "timeout"}
		}
		c.logger.Error("webhook request failed", "error", err)
		c.metrics.ObserveWebhook("network_error", elapsed.Seconds())
		return Reply{Text: responses.ConnectionTrouble, Shape: "network_error"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Error("webhook returned non-2xx status",
			"status", resp.StatusCode,
			"detail", string(detail),
		)
		c.metrics.ObserveWebhook("bad_status", elapsed.Seconds())
		return Reply{Text: responses.ConnectionTrouble, Shape: "bad_status"}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("failed to read webhook response body", "error", err)
		c.metrics.ObserveWebhook("read_error", elapsed.Seconds())
		return Reply{Text: responses.ConnectionTrouble, Shape: "read_error"}
	}

	text, shape := c.decoder.Decode(raw, lastUserMessage)
	formatted := render.IsFormatted(text)
	c.logger.Info("webhook response decoded",
		"shape", shape,
		"status", resp.StatusCode,
		"elapsed_ms", elapsed.Milliseconds(),
		"length", len(text),
	)
	c.metrics.ObserveWebhook("ok", elapsed.Seconds())
	c.metrics.ObserveDecodedShape(shape)
	return Reply{Text: text, IsFormatted: formatted, Shape: shape}
}

func (c *Client) failure(text, shape string) Reply {
	c.metrics.ObserveWebhook(shape, 0)
	return Reply{Text: text, Shape: shape}
}

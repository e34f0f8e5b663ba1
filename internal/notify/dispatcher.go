// Package notify delivers gate decisions to the external automation webhook.
// Delivery is best effort: one attempt, bounded by a timeout, with the
// outcome reported as a model.Notification instead of an error.
package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"github.com/egisf/egisf/internal/logging"
	"github.com/egisf/egisf/internal/model"
	"github.com/egisf/egisf/internal/webclient"
)

// DefaultTimeout bounds a single delivery when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

const localOnlyMessage = "decision recorded locally only"

// Config holds the webhook endpoint settings.
type Config struct {
	URL     string        `json:"url" yaml:"url" env:"URL"`
	Timeout time.Duration `json:"timeout" yaml:"timeout" env:"TIMEOUT"`
}

// Dispatcher posts payloads to the configured webhook.
type Dispatcher struct {
	cfg    Config
	client webclient.WebClient
	logger logging.Logger
}

// NewDispatcher creates a Dispatcher. An empty URL turns every Dispatch
// into a skipped notification.
func NewDispatcher(cfg Config, client webclient.WebClient, logger logging.Logger) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Dispatcher{
		cfg:    cfg,
		client: client,
		logger: logger.With(logging.Field{Key: "component", Value: "notify"}),
	}
}

// Enabled reports whether a webhook URL is configured.
func (d *Dispatcher) Enabled() bool {
	return d.cfg.URL != ""
}

// Config returns the dispatcher's settings.
func (d *Dispatcher) Config() Config {
	return d.cfg
}

// Dispatch makes a single delivery attempt. It never returns an error: every
// failure is folded into the returned Notification.
func (d *Dispatcher) Dispatch(ctx context.Context, p Payload) model.Notification {
	if !d.Enabled() {
		return model.Notification{Kind: model.NotificationSkipped, Message: localOnlyMessage}
	}

	body, err := json.Marshal(p)
	if err != nil {
		d.logger.Error("encoding webhook payload", logging.Field{Key: "error", Value: err.Error()})
		return model.Notification{
			Kind:    model.NotificationNetworkError,
			Error:   fmt.Sprintf("encode payload: %v", err),
			Message: localOnlyMessage,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := d.client.Post(ctx, d.cfg.URL, body)
	elapsed := time.Since(start)

	if err != nil {
		n := classifyTransportError(err)
		d.logger.Warn("webhook delivery failed",
			logging.Field{Key: "evaluation_id", Value: p.EvaluationID},
			logging.Field{Key: "kind", Value: string(n.Kind)},
			logging.Field{Key: "elapsed", Value: elapsed.String()},
			logging.Field{Key: "error", Value: err.Error()})
		return n
	}

	if resp.StatusCode != http.StatusOK {
		d.logger.Warn("webhook rejected delivery",
			logging.Field{Key: "evaluation_id", Value: p.EvaluationID},
			logging.Field{Key: "status", Value: resp.StatusCode})
		return model.Notification{
			Kind:       model.NotificationHTTPError,
			StatusCode: resp.StatusCode,
			Error:      fmt.Sprintf("unexpected response status: %d", resp.StatusCode),
			Message:    localOnlyMessage,
		}
	}

	d.logger.Info("webhook delivered",
		logging.Field{Key: "evaluation_id", Value: p.EvaluationID},
		logging.Field{Key: "elapsed", Value: elapsed.String()})

	return model.Notification{
		Kind:       model.NotificationDelivered,
		Delivered:  true,
		StatusCode: resp.StatusCode,
		Response:   responseJSON(resp.Body),
		Message:    "decision delivered to the automation workflow",
	}
}

// classifyTransportError separates deadline expiry from other failures.
func classifyTransportError(err error) model.Notification {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return model.Notification{
			Kind:    model.NotificationTimeout,
			Error:   "webhook did not respond before the timeout",
			Message: localOnlyMessage,
		}
	}
	return model.Notification{
		Kind:    model.NotificationNetworkError,
		Error:   err.Error(),
		Message: localOnlyMessage,
	}
}

// responseJSON keeps a JSON body as-is and wraps anything else as a JSON
// string. The response schema is not checked.
func responseJSON(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if gjson.ValidBytes(body) {
		return json.RawMessage(body)
	}
	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil
	}
	return quoted
}

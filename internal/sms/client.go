// Package sms delivers outbound text messages through the Africa's Talking
// bulk messaging API.
package sms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/mkulimalink/internal/config"
	"github.com/spec-kit/mkulimalink/internal/observability"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("sms delivery disabled")

// Sender delivers a text message to a canonical phone number.
type Sender interface {
	Send(ctx context.Context, to, message string) error
}

// Client posts messages to the provider HTTP endpoint.
type Client struct {
	cfg     config.SMSConfig
	http    *http.Client
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewClient builds the provider client.
func NewClient(cfg config.SMSConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
		metrics: metrics,
	}
}

// Enabled reports whether outbound delivery is configured.
func (c *Client) Enabled() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

// Send delivers one message. Returns ErrDisabled when no API key is set.
func (c *Client) Send(ctx context.Context, to, message string) error {
	if !c.Enabled() {
		c.metrics.RecordSMS("disabled")
		c.logger.Debug("sms disabled; dropping message", zap.String("to", to))
		return ErrDisabled
	}

	messageID := uuid.NewString()

	data := url.Values{}
	data.Set("username", c.cfg.Username)
	data.Set("to", to)
	data.Set("message", message)
	if c.cfg.SenderID != "" {
		data.Set("from", c.cfg.SenderID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, strings.NewReader(data.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", c.cfg.APIKey)
	req.Header.Set("Idempotency-Key", messageID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.RecordSMS("failed")
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		c.metrics.RecordSMS("failed")
		return fmt.Errorf("sms provider returned status %d", resp.StatusCode)
	}

	c.metrics.RecordSMS("sent")
	c.logger.Info("sms sent",
		zap.String("to", to),
		zap.String("message_id", messageID))
	return nil
}

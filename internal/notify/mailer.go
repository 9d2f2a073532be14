package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Message one outbound email
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends email. The bool result is telemetry only; callers never fail on it.
type Mailer interface {
	Send(ctx context.Context, msg Message) bool
}

// gatewayRequest body accepted by the HTTP email gateway
type gatewayRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}

// gatewayResponse gateway reply; only the id is used, for logging
type gatewayResponse struct {
	ID string `json:"id"`
}

// GatewayMailer posts messages to an HTTP email API. No retries.
type GatewayMailer struct {
	httpClient *resty.Client
	endpoint   string
	from       string
	logger     *zap.Logger
}

// NewGatewayMailer builds a mailer that POSTs JSON to endpoint with a bearer apiKey.
func NewGatewayMailer(endpoint, apiKey, fromAddress string, logger *zap.Logger) *GatewayMailer {
	client := resty.New().
		SetTimeout(10*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &GatewayMailer{
		httpClient: client,
		endpoint:   endpoint,
		from:       FromHeader(fromAddress),
		logger:     logger,
	}
}

// FromHeader formats the organisation sender.
func FromHeader(address string) string {
	return fmt.Sprintf("%q <%s>", "ADE Community Based Organization", address)
}

func (m *GatewayMailer) Send(ctx context.Context, msg Message) bool {
	var result gatewayResponse
	resp, err := m.httpClient.R().
		SetContext(ctx).
		SetBody(gatewayRequest{
			From:    m.from,
			To:      msg.To,
			Subject: msg.Subject,
			Text:    msg.Text,
			HTML:    msg.HTML,
		}).
		SetResult(&result).
		Post(m.endpoint)
	if err != nil {
		m.logger.Warn("Email send failed", zap.String("to", msg.To), zap.String("subject", msg.Subject), zap.Error(err))
		return false
	}
	if resp.IsError() {
		m.logger.Warn("Email gateway rejected message",
			zap.String("to", msg.To),
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()),
		)
		return false
	}
	m.logger.Info("Email sent", zap.String("to", msg.To), zap.String("message_id", result.ID))
	return true
}

// LogMailer logs instead of sending; used when no gateway is configured.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) bool {
	m.logger.Info("Email (not sent, no gateway configured)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return true
}

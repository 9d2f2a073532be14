package notify

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// Alert short admin notification pushed to the alert topic
type Alert struct {
	Kind       string    `json:"kind"` // contact.created, payment.callback
	Title      string    `json:"title"`
	Reference  string    `json:"reference,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AlertPublisher pushes admin alerts. Failures are logged by the caller.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, a Alert) error
}

// mqttPublisher the subset of common/mqtt.Client used here
type mqttPublisher interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
}

// MQTTAlerts publishes alerts as JSON to one MQTT topic.
type MQTTAlerts struct {
	client mqttPublisher
	topic  string
	qos    byte
	logger *zap.Logger
}

func NewMQTTAlerts(client mqttPublisher, topic string, qos byte, logger *zap.Logger) *MQTTAlerts {
	return &MQTTAlerts{client: client, topic: topic, qos: qos, logger: logger}
}

func (a *MQTTAlerts) PublishAlert(_ context.Context, alert Alert) error {
	if alert.OccurredAt.IsZero() {
		alert.OccurredAt = time.Now().UTC()
	}
	payload, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	if err := a.client.Publish(a.topic, a.qos, false, payload); err != nil {
		return err
	}
	a.logger.Debug("Admin alert published", zap.String("topic", a.topic), zap.String("kind", alert.Kind))
	return nil
}

// NopAlerts drops alerts; used when MQTT is disabled.
type NopAlerts struct{}

func (NopAlerts) PublishAlert(context.Context, Alert) error { return nil }

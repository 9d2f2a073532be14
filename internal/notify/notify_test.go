package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGatewayMailer_Send(t *testing.T) {
	var got gatewayRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg-1"}`))
	}))
	defer srv.Close()

	m := NewGatewayMailer(srv.URL, "secret", "noreply@ade.org", zap.NewNop())
	ok := m.Send(context.Background(), Message{To: "jane@x.com", Subject: "Hi", Text: "hello"})

	assert.True(t, ok)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "jane@x.com", got.To)
	assert.Equal(t, `"ADE Community Based Organization" <noreply@ade.org>`, got.From)
	assert.Equal(t, "hello", got.Text)
}

func TestGatewayMailer_Send_RejectedReturnsFalse(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := NewGatewayMailer(srv.URL, "", "noreply@ade.org", zap.NewNop())
	assert.False(t, m.Send(context.Background(), Message{To: "jane@x.com", Subject: "Hi"}))
	assert.Equal(t, 1, calls)
}

func TestGatewayMailer_Send_Unreachable(t *testing.T) {
	m := NewGatewayMailer("http://127.0.0.1:1/send", "", "noreply@ade.org", zap.NewNop())
	assert.False(t, m.Send(context.Background(), Message{To: "jane@x.com"}))
}

func TestLogMailer(t *testing.T) {
	assert.True(t, NewLogMailer(zap.NewNop()).Send(context.Background(), Message{To: "a@b.co"}))
}

func TestDonationReceipt(t *testing.T) {
	msg, err := DonationReceipt("jane@x.com", ReceiptData{
		Name:          "Jane <Doe>",
		Amount:        100,
		Currency:      "KES",
		DonationType:  "general",
		Date:          time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		TransactionID: "tx-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", msg.To)
	assert.Contains(t, msg.HTML, "KES 100.00")
	assert.Contains(t, msg.HTML, "March 5, 2024")
	assert.Contains(t, msg.HTML, "Jane &lt;Doe&gt;")
	assert.Contains(t, msg.HTML, "#4CAF50")
	assert.Contains(t, msg.Text, "tx-1")
}

func TestContactTemplates(t *testing.T) {
	msg, err := ContactConfirmation("jane@x.com", "Jane", "Helping out")
	require.NoError(t, err)
	assert.Equal(t, "We Received Your Message - ADE Organization", msg.Subject)
	assert.Equal(t, "Dear Jane, Thank you for contacting us regarding: Helping out. We will get back to you soon.", msg.Text)

	msg, err = AdminContactNotification("staff@ade.org", AdminContactData{
		Name: "Jane", Email: "jane@x.com", Reason: "donation", Subject: "Gift", Message: "I want to give",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Contact Form: DONATION - Jane", msg.Subject)
	assert.Equal(t, "New contact from Jane (jane@x.com) regarding donation. Subject: Gift", msg.Text)
	assert.NotContains(t, msg.HTML, "Phone:")
}

type fakeMQTT struct {
	topic   string
	payload []byte
	err     error
}

func (f *fakeMQTT) Publish(topic string, _ byte, _ bool, payload []byte) error {
	f.topic, f.payload = topic, payload
	return f.err
}

func TestMQTTAlerts(t *testing.T) {
	client := &fakeMQTT{}
	a := NewMQTTAlerts(client, "ade/admin/alerts", 1, zap.NewNop())
	require.NoError(t, a.PublishAlert(context.Background(), Alert{Kind: "contact.created", Title: "New contact", Reference: "c1"}))

	assert.Equal(t, "ade/admin/alerts", client.topic)
	var got Alert
	require.NoError(t, json.Unmarshal(client.payload, &got))
	assert.Equal(t, "c1", got.Reference)
	assert.False(t, got.OccurredAt.IsZero())

	client.err = errors.New("not connected")
	assert.Error(t, a.PublishAlert(context.Background(), Alert{Kind: "x"}))
	assert.NoError(t, NopAlerts{}.PublishAlert(context.Background(), Alert{}))
}

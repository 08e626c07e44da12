package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"airzy-ingest/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func webhookConfig(url string) *config.Config {
	cfg := &config.Config{}
	cfg.Notify.Channel = ChannelWebhook
	cfg.Notify.Webhook.URL = url
	cfg.Notify.Webhook.TimeoutSeconds = 5
	return cfg
}

func TestWebhookNotifier_Send(t *testing.T) {
	var received webhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewWebhookNotifier(webhookConfig(server.URL), zap.NewNop())

	err := n.Send(context.Background(), "minji@example.com", "[AIRZY] Air quality alert", "PM2.5 exceeded")

	require.NoError(t, err)
	assert.Equal(t, "minji@example.com", received.To)
	assert.Equal(t, "[AIRZY] Air quality alert", received.Subject)
	assert.Equal(t, "PM2.5 exceeded", received.Body)
}

func TestWebhookNotifier_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	n := NewWebhookNotifier(webhookConfig(server.URL), zap.NewNop())

	err := n.Send(context.Background(), "minji@example.com", "subject", "body")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestWebhookNotifier_URLNotConfigured(t *testing.T) {
	n := NewWebhookNotifier(webhookConfig(""), zap.NewNop())

	err := n.Send(context.Background(), "minji@example.com", "subject", "body")

	assert.Error(t, err)
}

// SMTP 账号未配置时邮件通道降级为只记录日志，不报错
func TestEmailNotifier_DisabledWithoutCredentials(t *testing.T) {
	cfg := &config.Config{}
	cfg.Notify.SMTP.Host = "smtp.gmail.com"
	cfg.Notify.SMTP.Port = 587

	n := NewEmailNotifier(cfg, zap.NewNop())

	err := n.Send(context.Background(), "minji@example.com", "subject", "body")

	assert.NoError(t, err)
}

func TestNewNotifier_ChannelSelection(t *testing.T) {
	cfg := &config.Config{}
	cfg.Notify.Channel = ChannelEmail

	n, err := NewNotifier(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &EmailNotifier{}, n)

	cfg.Notify.Channel = ChannelWebhook
	n, err = NewNotifier(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &WebhookNotifier{}, n)

	cfg.Notify.Channel = "pigeon"
	_, err = NewNotifier(cfg, zap.NewNop())
	assert.Error(t, err)
}

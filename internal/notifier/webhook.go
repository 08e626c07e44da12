package notifier

import (
	"context"
	"fmt"
	"time"

	"airzy-ingest/internal/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// webhookPayload Webhook 通道的 JSON 消息体
type webhookPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// WebhookNotifier HTTP Webhook 通知通道
// 向配置的 URL POST 一条 JSON 告警消息
type WebhookNotifier struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

// NewWebhookNotifier 创建 Webhook 通知通道
func NewWebhookNotifier(cfg *config.Config, logger *zap.Logger) *WebhookNotifier {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Notify.Webhook.TimeoutSeconds) * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &WebhookNotifier{
		httpClient: client,
		url:        cfg.Notify.Webhook.URL,
		logger:     logger,
	}
}

// Send 发送告警消息到 Webhook
func (n *WebhookNotifier) Send(ctx context.Context, to, subject, body string) error {
	if n.url == "" {
		return fmt.Errorf("webhook url is not configured")
	}

	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(webhookPayload{
			To:      to,
			Subject: subject,
			Body:    body,
		}).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("failed to post alert webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("alert webhook returned status %d", resp.StatusCode())
	}

	n.logger.Info("Alert webhook sent",
		zap.String("to", to),
		zap.Int("status", resp.StatusCode()),
	)

	return nil
}

// NewNotifier 按配置的通道创建通知发送器
func NewNotifier(cfg *config.Config, logger *zap.Logger) (Notifier, error) {
	switch cfg.Notify.Channel {
	case ChannelEmail:
		return NewEmailNotifier(cfg, logger), nil
	case ChannelWebhook:
		return NewWebhookNotifier(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown notify channel: %s", cfg.Notify.Channel)
	}
}

package notifier

import (
	"context"
	"fmt"

	"airzy-ingest/internal/config"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// EmailNotifier SMTP 邮件通知通道
// SMTP 账号未配置时降级为只记录日志不发送（与本地开发环境保持一致）
type EmailNotifier struct {
	dialer  *gomail.Dialer
	from    string
	enabled bool
	logger  *zap.Logger
}

// NewEmailNotifier 创建邮件通知通道
func NewEmailNotifier(cfg *config.Config, logger *zap.Logger) *EmailNotifier {
	smtp := cfg.Notify.SMTP

	n := &EmailNotifier{
		from:   smtp.From,
		logger: logger,
	}
	if n.from == "" {
		n.from = smtp.Username
	}

	if smtp.Username == "" || smtp.Password == "" {
		logger.Warn("SMTP credentials not configured, email notifications disabled")
		return n
	}

	n.dialer = gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)
	n.enabled = true

	return n
}

// Send 发送纯文本告警邮件
func (n *EmailNotifier) Send(ctx context.Context, to, subject, body string) error {
	if !n.enabled {
		n.logger.Info("Email notification skipped (SMTP not configured)",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send alert email to %s: %w", to, err)
	}

	n.logger.Info("Alert email sent",
		zap.String("to", to),
		zap.String("subject", subject),
	)

	return nil
}

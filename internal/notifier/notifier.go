// Package notifier 告警通知发送通道
// 通道对管道是外部协作方：发送失败返回错误，由调用方记录并吞掉，
// 绝不传播回接入循环。超时由各通道自己负责。
package notifier

import "context"

// 通道名称
const (
	ChannelEmail   = "email"
	ChannelWebhook = "webhook"
)

// Notifier 通知发送接口
type Notifier interface {
	// Send 向联系地址发送一条人类可读的告警消息
	Send(ctx context.Context, to, subject, body string) error
}

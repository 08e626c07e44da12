package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"airzy-ingest/internal/config"
	"airzy-ingest/internal/domain"
	"airzy-ingest/internal/mqtt"

	"go.uber.org/zap"
)

// Processor 消息处理接口（由 service.Pipeline 实现）
type Processor interface {
	ProcessMeasurement(ctx context.Context, m *domain.Measurement) error
}

// Subscriber 传输层订阅接口（由 mqtt.Client 实现，测试注入假实现）
type Subscriber interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	Unsubscribe(topics ...string) error
}

// MQTTConsumer 遥测消息消费者
// 每条消息是一个短生命周期的工作单元：解码 → 交给管道处理 → 返回订阅循环。
// 任意一条消息的失败都不中断后续消息的处理
type MQTTConsumer struct {
	config    *config.Config
	client    Subscriber
	processor Processor
	logger    *zap.Logger

	mu       sync.Mutex
	started  bool
	inFlight sync.WaitGroup
}

// NewMQTTConsumer 创建消息消费者
func NewMQTTConsumer(
	cfg *config.Config,
	client Subscriber,
	processor Processor,
	logger *zap.Logger,
) *MQTTConsumer {
	return &MQTTConsumer{
		config:    cfg,
		client:    client,
		processor: processor,
		logger:    logger,
	}
}

// Start 订阅遥测主题，开始消费
// 幂等：重复调用不会重复订阅。订阅失败返回 TransportConnectionError，
// 重连策略由传输层自身负责
func (c *MQTTConsumer) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return nil
	}

	if err := c.client.Subscribe(c.config.MQTT.Topic, c.config.MQTT.QoS, c.handleMessage); err != nil {
		return &domain.TransportConnectionError{Err: err}
	}

	c.started = true
	c.logger.Info("MQTT consumer started",
		zap.String("topic", c.config.MQTT.Topic),
	)

	return nil
}

// Stop 停止消费：先取消订阅不再接收新消息，再等待在途消息处理完成
// 没有消息会在事务中途被丢弃
func (c *MQTTConsumer) Stop(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return nil
	}

	if err := c.client.Unsubscribe(c.config.MQTT.Topic); err != nil {
		c.logger.Error("Failed to unsubscribe", zap.Error(err))
	}

	c.inFlight.Wait()
	c.started = false

	c.logger.Info("MQTT consumer stopped")
	return nil
}

// handleMessage 处理一条入站消息
// 返回的错误只用于日志和测试断言，绝不会让订阅循环崩溃
func (c *MQTTConsumer) handleMessage(topic string, payload []byte) error {
	c.inFlight.Add(1)
	defer c.inFlight.Done()

	m, err := decodeMeasurement(payload)
	if err != nil {
		c.logger.Warn("Discarding malformed telemetry message",
			zap.String("topic", topic),
			zap.Error(err),
		)
		return err
	}

	err = c.processor.ProcessMeasurement(context.Background(), m)
	if err != nil {
		var ownerErr *domain.OwnerResolutionError
		if errors.As(err, &ownerErr) {
			// 库中没有可归属的账户：正常的非致命结果
			c.logger.Info("Discarding telemetry message, no owner available",
				zap.String("topic", topic),
			)
			return err
		}

		c.logger.Error("Failed to process telemetry message",
			zap.String("topic", topic),
			zap.Error(err),
		)
		return err
	}

	c.logger.Debug("Telemetry message processed",
		zap.String("topic", topic),
		zap.Float64("pm25", m.PM25),
	)

	return nil
}

// measurementPayload 入站 JSON 消息体
// 三个数值字段必填，用指针区分"缺失"和"零值"；account_id 可选
type measurementPayload struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	PM25        *float64 `json:"pm25"`
	AccountID   *int64   `json:"account_id"`
}

// decodeMeasurement 严格解码入站消息
// 必填字段缺失或非数值都返回 DecodeError，消息被丢弃
func decodeMeasurement(payload []byte) (*domain.Measurement, error) {
	var raw measurementPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, &domain.DecodeError{Err: err}
	}

	if raw.Temperature == nil {
		return nil, &domain.DecodeError{Field: "temperature"}
	}
	if raw.Humidity == nil {
		return nil, &domain.DecodeError{Field: "humidity"}
	}
	if raw.PM25 == nil {
		return nil, &domain.DecodeError{Field: "pm25"}
	}

	return &domain.Measurement{
		Temperature: *raw.Temperature,
		Humidity:    *raw.Humidity,
		PM25:        *raw.PM25,
		AccountID:   raw.AccountID,
	}, nil
}

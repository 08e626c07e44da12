package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"airzy-ingest/internal/config"
	"airzy-ingest/internal/domain"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RealtimeData 账户最新一次读数的缓存结构（外部面板消费）
type RealtimeData struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	PM25        float64 `json:"pm25"`
	AirQuality  string  `json:"air_quality"`
	Timestamp   int64   `json:"timestamp"`
}

// Manager Redis 缓存管理器
// 所有操作都是尽力而为：读失败回退到 PostgreSQL，写失败只记录日志
type Manager struct {
	config      *config.Config
	redisClient *redis.Client
	logger      *zap.Logger
}

// NewManager 创建缓存管理器
func NewManager(cfg *config.Config, redisClient *redis.Client, logger *zap.Logger) *Manager {
	return &Manager{
		config:      cfg,
		redisClient: redisClient,
		logger:      logger,
	}
}

// SetRealtime 更新账户的实时数据缓存（带 TTL）
func (m *Manager) SetRealtime(ctx context.Context, accountID int64, data *RealtimeData) error {
	key := fmt.Sprintf("%s%d%s",
		m.config.Cache.RealtimeKeyPrefix,
		accountID,
		m.config.Cache.RealtimeSuffix,
	)

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal realtime data: %w", err)
	}

	err = m.redisClient.Set(
		ctx,
		key,
		jsonData,
		time.Duration(m.config.Cache.RealtimeTTL)*time.Second,
	).Err()
	if err != nil {
		return fmt.Errorf("failed to set realtime cache: %w", err)
	}

	m.logger.Debug("Updated realtime cache",
		zap.Int64("account_id", accountID),
		zap.String("key", key),
	)

	return nil
}

// GetPolicy 从缓存读取账户的告警策略
// 未命中时返回 (nil, false, nil)；短 TTL 内的陈旧读取是设计上接受的
func (m *Manager) GetPolicy(ctx context.Context, accountID int64) (*domain.AlertPolicy, bool, error) {
	key := m.policyKey(accountID)

	val, err := m.redisClient.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get policy cache: %w", err)
	}

	var policy domain.AlertPolicy
	if err := json.Unmarshal([]byte(val), &policy); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached policy: %w", err)
	}

	return &policy, true, nil
}

// SetPolicy 写入告警策略缓存（带 TTL）
func (m *Manager) SetPolicy(ctx context.Context, accountID int64, policy *domain.AlertPolicy) error {
	key := m.policyKey(accountID)

	jsonData, err := json.Marshal(policy)
	if err != nil {
		return fmt.Errorf("failed to marshal policy: %w", err)
	}

	err = m.redisClient.Set(
		ctx,
		key,
		jsonData,
		time.Duration(m.config.Cache.PolicyTTL)*time.Second,
	).Err()
	if err != nil {
		return fmt.Errorf("failed to set policy cache: %w", err)
	}

	return nil
}

func (m *Manager) policyKey(accountID int64) string {
	return fmt.Sprintf("%s%d%s",
		m.config.Cache.PolicyKeyPrefix,
		accountID,
		m.config.Cache.PolicySuffix,
	)
}

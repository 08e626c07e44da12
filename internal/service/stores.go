package service

import (
	"context"

	"airzy-ingest/internal/cache"
	"airzy-ingest/internal/domain"
)

// Repository 层的访问接口。管道只依赖接口，
// 测试用假实现替换，不需要真实的 PostgreSQL / Redis。

// AccountStore 账户读取契约
type AccountStore interface {
	FindEarliest(ctx context.Context) (*domain.Account, error)
	FindByID(ctx context.Context, accountID int64) (*domain.Account, error)
}

// AlertPolicyStore 告警策略读取契约
type AlertPolicyStore interface {
	Get(ctx context.Context, accountID int64) (*domain.AlertPolicy, error)
}

// ReadingStore 读数写入契约（事务提交后才返回）
type ReadingStore interface {
	Insert(ctx context.Context, reading *domain.Reading) (*domain.Reading, error)
}

// AlertEventStore 告警事件写入契约
type AlertEventStore interface {
	Insert(ctx context.Context, event *domain.AlertEvent) error
}

// CacheStore Redis 缓存契约（实时数据 + 策略缓存）
type CacheStore interface {
	SetRealtime(ctx context.Context, accountID int64, data *cache.RealtimeData) error
	GetPolicy(ctx context.Context, accountID int64) (*domain.AlertPolicy, bool, error)
	SetPolicy(ctx context.Context, accountID int64, policy *domain.AlertPolicy) error
}

package service

import (
	"context"
	"fmt"
	"time"

	"airzy-ingest/internal/cache"
	"airzy-ingest/internal/domain"
	"airzy-ingest/internal/evaluator"

	"go.uber.org/zap"
)

// Pipeline 单条遥测消息的处理管道
// 归属解析 → 质量分级 → 事务写入 → 提交后尽力而为地刷新缓存并评估告警。
// 每条消息独立处理：一条消息的失败不影响下一条
type Pipeline struct {
	accounts   AccountStore
	readings   ReadingStore
	dispatcher *AlertDispatcher
	cache      CacheStore // 可为 nil
	logger     *zap.Logger
}

// NewPipeline 创建处理管道
func NewPipeline(
	accounts AccountStore,
	readings ReadingStore,
	dispatcher *AlertDispatcher,
	cacheStore CacheStore,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		accounts:   accounts,
		readings:   readings,
		dispatcher: dispatcher,
		cache:      cacheStore,
		logger:     logger,
	}
}

// ProcessMeasurement 处理一条已解码的遥测消息
// 返回的错误带类型（OwnerResolutionError / PersistenceError），
// 调用方按类型记录日志后继续订阅循环；告警阶段的失败在这里就地吞掉
func (p *Pipeline) ProcessMeasurement(ctx context.Context, m *domain.Measurement) error {
	// 1. 解析归属账户：消息携带的 account_id 优先，
	//    否则回退到最早创建的账户（单租户部署的默认归属）
	accountID, err := p.resolveOwner(ctx, m)
	if err != nil {
		return err
	}

	// 2. 质量分级
	quality := evaluator.ClassifyAirQuality(m.PM25)

	// 3. 在独立事务中写入读数（失败已在仓库层回滚）
	reading := &domain.Reading{
		AccountID:   accountID,
		Temperature: m.Temperature,
		Humidity:    m.Humidity,
		PM25:        m.PM25,
		AirQuality:  quality,
	}
	if _, err := p.readings.Insert(ctx, reading); err != nil {
		return &domain.PersistenceError{Op: "insert reading", Err: err}
	}

	p.logger.Debug("Reading persisted",
		zap.Int64("reading_id", reading.ID),
		zap.Int64("account_id", accountID),
		zap.String("air_quality", quality),
	)

	// 4. 提交后刷新实时缓存（尽力而为）
	if p.cache != nil {
		err := p.cache.SetRealtime(ctx, accountID, &cache.RealtimeData{
			Temperature: m.Temperature,
			Humidity:    m.Humidity,
			PM25:        m.PM25,
			AirQuality:  quality,
			Timestamp:   time.Now().Unix(),
		})
		if err != nil {
			p.logger.Warn("Failed to update realtime cache",
				zap.Int64("account_id", accountID),
				zap.Error(err),
			)
		}
	}

	// 5. 提交后评估告警（尽力而为：任何失败只记录日志，读数已提交不受影响）
	if _, err := p.dispatcher.Dispatch(ctx, accountID, m.Temperature, m.Humidity, m.PM25); err != nil {
		p.logger.Error("Alert dispatch failed",
			zap.Int64("account_id", accountID),
			zap.Error(err),
		)
	}

	return nil
}

// resolveOwner 解析读数的归属账户
// 库中无任何账户是正常的非致命结果：丢弃消息并报告 no owner available
func (p *Pipeline) resolveOwner(ctx context.Context, m *domain.Measurement) (int64, error) {
	if m.AccountID != nil {
		return *m.AccountID, nil
	}

	account, err := p.accounts.FindEarliest(ctx)
	if err != nil {
		return 0, &domain.OwnerResolutionError{
			Reason: fmt.Sprintf("earliest account lookup failed: %v", err),
		}
	}
	if account == nil {
		return 0, &domain.OwnerResolutionError{Reason: "no account registered"}
	}

	return account.AccountID, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"airzy-ingest/internal/domain"

	"go.uber.org/zap"
)

// AlertPolicyRepository 告警策略仓库（只读）
// 策略的写入（三个阈值 + 间隔整体原子替换）由外部 REST 服务完成
type AlertPolicyRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAlertPolicyRepository 创建告警策略仓库
func NewAlertPolicyRepository(db *sql.DB, logger *zap.Logger) *AlertPolicyRepository {
	return &AlertPolicyRepository{
		db:     db,
		logger: logger,
	}
}

// Get 查询账户的告警策略
// 策略行不存在时返回 (nil, nil)：该账户未启用告警，调用方必须跳过评估，
// 不得用默认阈值凭空构造策略
func (r *AlertPolicyRepository) Get(ctx context.Context, accountID int64) (*domain.AlertPolicy, error) {
	query := `
		SELECT
			account_id,
			pm25_threshold,
			temperature_threshold,
			humidity_threshold,
			interval_minutes,
			updated_at
		FROM alert_policies
		WHERE account_id = $1
	`

	var policy domain.AlertPolicy
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&policy.AccountID,
		&policy.PM25Threshold,
		&policy.TemperatureThreshold,
		&policy.HumidityThreshold,
		&policy.IntervalMinutes,
		&policy.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get alert policy for account %d: %w", accountID, err)
	}

	return &policy, nil
}

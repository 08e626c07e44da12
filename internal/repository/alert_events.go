package repository

import (
	"context"
	"database/sql"
	"fmt"

	"airzy-ingest/internal/domain"

	"go.uber.org/zap"
)

// AlertEventRepository 告警事件仓库（已派发通知的审计记录）
type AlertEventRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAlertEventRepository 创建告警事件仓库
func NewAlertEventRepository(db *sql.DB, logger *zap.Logger) *AlertEventRepository {
	return &AlertEventRepository{
		db:     db,
		logger: logger,
	}
}

// Insert 写入一条告警事件
// 告警路径是尽力而为的：这里失败只记录日志，不影响已提交的读数
func (r *AlertEventRepository) Insert(ctx context.Context, event *domain.AlertEvent) error {
	if event == nil {
		return fmt.Errorf("event is required")
	}

	query := `
		INSERT INTO alert_events (
			event_id,
			account_id,
			dimension,
			observed,
			threshold,
			sent_to,
			created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW()
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.EventID,
		event.AccountID,
		event.Dimension,
		event.Observed,
		event.Threshold,
		event.SentTo,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert event: %w", err)
	}

	return nil
}

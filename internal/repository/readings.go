package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"airzy-ingest/internal/domain"

	"go.uber.org/zap"
)

// MaxReadingsPerQuery 历史查询单次返回的最大行数
const MaxReadingsPerQuery = 100

// ReadingRepository 遥测读数仓库
type ReadingRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewReadingRepository 创建读数仓库
func NewReadingRepository(db *sql.DB, logger *zap.Logger) *ReadingRepository {
	return &ReadingRepository{
		db:     db,
		logger: logger,
	}
}

// Insert 在独立事务中写入一条读数
// 每条消息一个事务，事务只包含这一次 INSERT；失败时回滚，
// 单条消息的持久化失败不影响后续消息
func (r *ReadingRepository) Insert(ctx context.Context, reading *domain.Reading) (*domain.Reading, error) {
	if reading == nil {
		return nil, fmt.Errorf("reading is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
		INSERT INTO readings (
			account_id,
			temperature,
			humidity,
			pm25,
			air_quality,
			note,
			created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW()
		)
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, query,
		reading.AccountID,
		reading.Temperature,
		reading.Humidity,
		reading.PM25,
		reading.AirQuality,
		reading.Note,
	).Scan(&reading.ID, &reading.CreatedAt)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Error("Failed to rollback reading insert", zap.Error(rbErr))
		}
		return nil, fmt.Errorf("failed to insert reading: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reading insert: %w", err)
	}

	return reading, nil
}

// List 按可选时间范围查询读数（边界含等于），按创建时间倒序，至多 100 条
// 供历史数据导出工具等读方使用
func (r *ReadingRepository) List(ctx context.Context, from, to *time.Time, limit int) ([]domain.Reading, error) {
	if limit <= 0 || limit > MaxReadingsPerQuery {
		limit = MaxReadingsPerQuery
	}

	query := `
		SELECT
			id,
			account_id,
			temperature,
			humidity,
			pm25,
			air_quality,
			note,
			created_at
		FROM readings
	`

	var args []interface{}
	argN := 1
	var where []string
	if from != nil {
		where = append(where, fmt.Sprintf("created_at >= $%d", argN))
		args = append(args, *from)
		argN++
	}
	if to != nil {
		where = append(where, fmt.Sprintf("created_at <= $%d", argN))
		args = append(args, *to)
		argN++
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argN)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings: %w", err)
	}
	defer rows.Close()

	var readings []domain.Reading
	for rows.Next() {
		var reading domain.Reading
		err := rows.Scan(
			&reading.ID,
			&reading.AccountID,
			&reading.Temperature,
			&reading.Humidity,
			&reading.PM25,
			&reading.AirQuality,
			&reading.Note,
			&reading.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		readings = append(readings, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate readings: %w", err)
	}

	return readings, nil
}

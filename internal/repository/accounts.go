package repository

import (
	"context"
	"database/sql"
	"fmt"

	"airzy-ingest/internal/domain"

	"go.uber.org/zap"
)

// AccountRepository 账户仓库（只读）
// 账户的创建/删除由外部 REST 服务负责，接入服务只做归属解析
type AccountRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAccountRepository 创建账户仓库
func NewAccountRepository(db *sql.DB, logger *zap.Logger) *AccountRepository {
	return &AccountRepository{
		db:     db,
		logger: logger,
	}
}

const accountColumns = `
	account_id,
	name,
	email,
	password_hash,
	created_at
`

// FindEarliest 查询最早创建的账户（无主消息的默认归属，单租户部署回退策略）
// 库中无任何账户时返回 (nil, nil)
func (r *AccountRepository) FindEarliest(ctx context.Context) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY account_id ASC
		LIMIT 1
	`

	account, err := r.scanAccount(r.db.QueryRowContext(ctx, query))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find earliest account: %w", err)
	}

	return account, nil
}

// FindByID 按 ID 查询账户，不存在时返回 (nil, nil)
func (r *AccountRepository) FindByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1
	`

	account, err := r.scanAccount(r.db.QueryRowContext(ctx, query, accountID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find account %d: %w", accountID, err)
	}

	return account, nil
}

func (r *AccountRepository) scanAccount(row *sql.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.AccountID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

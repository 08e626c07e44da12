package domain

import "time"

// Account 账户领域模型（对应 accounts 表）
// 账户生命周期（注册/登录/删除）由外部 REST 服务管理，
// 接入服务只读取 id、display name 和 contact email
type Account struct {
	AccountID    int64     `db:"account_id"`    // BIGSERIAL
	Name         string    `db:"name"`          // VARCHAR(50), NOT NULL
	Email        string    `db:"email"`         // VARCHAR(50), UNIQUE NOT NULL
	PasswordHash string    `db:"password_hash"` // VARCHAR(100), NOT NULL（接入服务不使用）
	CreatedAt    time.Time `db:"created_at"`    // TIMESTAMPTZ
}

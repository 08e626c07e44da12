package domain

import "time"

// 告警维度（按评估优先级排列）
const (
	DimensionPM25        = "pm25"
	DimensionTemperature = "temperature"
	DimensionHumidity    = "humidity"
)

// AlertReason 阈值评估结果：哪个维度、观测值多少、配置阈值多少
type AlertReason struct {
	Dimension string  // pm25 / temperature / humidity
	Observed  float64 // 实际观测值
	Threshold float64 // 配置的阈值
}

// AlertEvent 已派发通知的审计记录（对应 alert_events 表）
type AlertEvent struct {
	EventID   string    `db:"event_id"`   // UUID
	AccountID int64     `db:"account_id"` // BIGINT, FK -> accounts
	Dimension string    `db:"dimension"`  // VARCHAR(20)
	Observed  float64   `db:"observed"`
	Threshold float64   `db:"threshold"`
	SentTo    string    `db:"sent_to"`    // 通知送达的联系地址
	CreatedAt time.Time `db:"created_at"` // TIMESTAMPTZ
}

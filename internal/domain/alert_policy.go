package domain

import "time"

// AlertPolicy 告警策略领域模型（对应 alert_policies 表，每账户至多一行）
// 阈值字段为 nil 表示该维度未配置，评估时直接跳过，不得代入默认值；
// 策略行整行缺失表示该账户未启用告警。
// 策略的写入由外部 REST 服务完成（三个阈值 + 间隔整体原子替换）
type AlertPolicy struct {
	AccountID            int64     `db:"account_id"`            // BIGINT, PK/FK -> accounts
	PM25Threshold        *float64  `db:"pm25_threshold"`        // nullable
	TemperatureThreshold *float64  `db:"temperature_threshold"` // nullable
	HumidityThreshold    *float64  `db:"humidity_threshold"`    // nullable
	IntervalMinutes      int       `db:"interval_minutes"`      // 评估间隔（分钟）
	UpdatedAt            time.Time `db:"updated_at"`            // TIMESTAMPTZ
}

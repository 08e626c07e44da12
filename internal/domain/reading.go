package domain

import (
	"database/sql"
	"time"
)

// 空气质量等级
const (
	AirQualityGood   = "good"
	AirQualityNormal = "normal"
	AirQualityBad    = "bad"
)

// Reading 遥测读数领域模型（对应 readings 表）
// 接入后不可变：只由接入管道（或外部手动上报路径）插入，从不更新
type Reading struct {
	ID          int64          `db:"id"`          // BIGSERIAL
	AccountID   int64          `db:"account_id"`  // BIGINT, FK -> accounts
	Temperature float64        `db:"temperature"` // 摄氏度
	Humidity    float64        `db:"humidity"`    // 相对湿度（%）
	PM25        float64        `db:"pm25"`        // 颗粒物浓度（µg/m³）
	AirQuality  string         `db:"air_quality"` // VARCHAR(20), good/normal/bad
	Note        sql.NullString `db:"note"`        // VARCHAR(255), nullable
	CreatedAt   time.Time      `db:"created_at"`  // TIMESTAMPTZ
}

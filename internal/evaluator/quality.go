package evaluator

import "airzy-ingest/internal/domain"

// ClassifyAirQuality 按 PM2.5 浓度计算空气质量等级
// 边界值落在上一档：pm25 < 15 → good；15 <= pm25 < 50 → normal；pm25 >= 50 → bad
func ClassifyAirQuality(pm25 float64) string {
	switch {
	case pm25 < 15:
		return domain.AirQualityGood
	case pm25 < 50:
		return domain.AirQualityNormal
	default:
		return domain.AirQualityBad
	}
}

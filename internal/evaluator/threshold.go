package evaluator

import "airzy-ingest/internal/domain"

// EvaluateThresholds 按固定优先级（pm25 > temperature > humidity）评估告警策略，
// 返回第一个达到或超过配置阈值的维度（observed >= threshold，含等于）。
// 阈值为 nil 的维度未配置，直接跳过，不得代入默认值；
// 没有任何维度触发时返回 nil。每次评估至多产生一个结果。
func EvaluateThresholds(policy *domain.AlertPolicy, temperature, humidity, pm25 float64) *domain.AlertReason {
	if policy == nil {
		return nil
	}

	// 1) 颗粒物
	if policy.PM25Threshold != nil && pm25 >= *policy.PM25Threshold {
		return &domain.AlertReason{
			Dimension: domain.DimensionPM25,
			Observed:  pm25,
			Threshold: *policy.PM25Threshold,
		}
	}

	// 2) 温度（仅在颗粒物未触发时）
	if policy.TemperatureThreshold != nil && temperature >= *policy.TemperatureThreshold {
		return &domain.AlertReason{
			Dimension: domain.DimensionTemperature,
			Observed:  temperature,
			Threshold: *policy.TemperatureThreshold,
		}
	}

	// 3) 湿度
	if policy.HumidityThreshold != nil && humidity >= *policy.HumidityThreshold {
		return &domain.AlertReason{
			Dimension: domain.DimensionHumidity,
			Observed:  humidity,
			Threshold: *policy.HumidityThreshold,
		}
	}

	return nil
}

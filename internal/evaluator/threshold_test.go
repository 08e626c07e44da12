package evaluator

import (
	"testing"

	"airzy-ingest/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestEvaluateThresholds_NilPolicy(t *testing.T) {
	assert.Nil(t, EvaluateThresholds(nil, 99, 99, 99))
}

func TestEvaluateThresholds_NoThresholdConfigured(t *testing.T) {
	policy := &domain.AlertPolicy{AccountID: 1}

	assert.Nil(t, EvaluateThresholds(policy, 99, 99, 999))
}

// 未配置的维度永远不触发，也不得代入默认值
func TestEvaluateThresholds_UnconfiguredDimensionsNeverTrigger(t *testing.T) {
	policy := &domain.AlertPolicy{
		AccountID:     1,
		PM25Threshold: floatPtr(50),
	}

	// 温度/湿度远超常识阈值，但未配置，不得触发
	reason := EvaluateThresholds(policy, 99, 99, 10)
	assert.Nil(t, reason)
}

func TestEvaluateThresholds_PM25Exceeded(t *testing.T) {
	policy := &domain.AlertPolicy{
		AccountID:     1,
		PM25Threshold: floatPtr(50),
	}

	reason := EvaluateThresholds(policy, 20, 40, 60)
	require.NotNil(t, reason)
	assert.Equal(t, domain.DimensionPM25, reason.Dimension)
	assert.Equal(t, 60.0, reason.Observed)
	assert.Equal(t, 50.0, reason.Threshold)
}

// 固定优先级：颗粒物先于温度，后者即使同样超限也不报告
func TestEvaluateThresholds_PriorityOrder(t *testing.T) {
	policy := &domain.AlertPolicy{
		AccountID:            1,
		PM25Threshold:        floatPtr(50),
		TemperatureThreshold: floatPtr(30),
	}

	reason := EvaluateThresholds(policy, 31, 40, 60)
	require.NotNil(t, reason)
	assert.Equal(t, domain.DimensionPM25, reason.Dimension)
}

func TestEvaluateThresholds_TemperatureExceeded(t *testing.T) {
	policy := &domain.AlertPolicy{
		AccountID:            1,
		PM25Threshold:        floatPtr(50),
		TemperatureThreshold: floatPtr(30),
	}

	reason := EvaluateThresholds(policy, 31, 40, 10)
	require.NotNil(t, reason)
	assert.Equal(t, domain.DimensionTemperature, reason.Dimension)
	assert.Equal(t, 31.0, reason.Observed)
	assert.Equal(t, 30.0, reason.Threshold)
}

func TestEvaluateThresholds_HumidityExceeded(t *testing.T) {
	policy := &domain.AlertPolicy{
		AccountID:         1,
		HumidityThreshold: floatPtr(60),
	}

	reason := EvaluateThresholds(policy, 20, 75, 10)
	require.NotNil(t, reason)
	assert.Equal(t, domain.DimensionHumidity, reason.Dimension)
	assert.Equal(t, 75.0, reason.Observed)
	assert.Equal(t, 60.0, reason.Threshold)
}

// 比较含等于：observed == threshold 触发
func TestEvaluateThresholds_InclusiveComparison(t *testing.T) {
	policy := &domain.AlertPolicy{
		AccountID:     1,
		PM25Threshold: floatPtr(50),
	}

	reason := EvaluateThresholds(policy, 20, 40, 50)
	require.NotNil(t, reason)
	assert.Equal(t, domain.DimensionPM25, reason.Dimension)
}

func TestEvaluateThresholds_NothingExceeded(t *testing.T) {
	policy := &domain.AlertPolicy{
		AccountID:            1,
		PM25Threshold:        floatPtr(50),
		TemperatureThreshold: floatPtr(30),
		HumidityThreshold:    floatPtr(60),
	}

	assert.Nil(t, EvaluateThresholds(policy, 22, 45, 12))
}

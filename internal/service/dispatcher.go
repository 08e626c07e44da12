package service

import (
	"context"
	"fmt"

	"airzy-ingest/internal/domain"
	"airzy-ingest/internal/evaluator"
	"airzy-ingest/internal/notifier"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AlertDispatcher 告警派发器
// 在读数提交之后运行：查账户、查策略、评估阈值、发送通知。
// 任意阶段失败都转换为带类型的错误，由调用方记录并吞掉：
// 这条路径上的失败绝不回滚、也绝不影响已提交的读数
type AlertDispatcher struct {
	accounts AccountStore
	policies AlertPolicyStore
	events   AlertEventStore
	cache    CacheStore // 可为 nil（未配置 Redis 时直接查库）
	notifier notifier.Notifier
	subject  string
	logger   *zap.Logger
}

// NewAlertDispatcher 创建告警派发器
func NewAlertDispatcher(
	accounts AccountStore,
	policies AlertPolicyStore,
	events AlertEventStore,
	cacheStore CacheStore,
	n notifier.Notifier,
	subject string,
	logger *zap.Logger,
) *AlertDispatcher {
	return &AlertDispatcher{
		accounts: accounts,
		policies: policies,
		events:   events,
		cache:    cacheStore,
		notifier: n,
		subject:  subject,
		logger:   logger,
	}
}

// Dispatch 评估账户的告警策略，必要时发送通知
// 返回值：(nil, nil) 无需告警；(event, nil) 已派发；(nil, err) 某阶段失败。
// 账户或策略行不存在都是正常的无操作：不得用默认阈值凭空构造策略
func (d *AlertDispatcher) Dispatch(ctx context.Context, accountID int64, temperature, humidity, pm25 float64) (*domain.AlertEvent, error) {
	// 1. 查账户
	account, err := d.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, &domain.AlertDispatchError{Stage: "lookup-account", Err: err}
	}
	if account == nil {
		d.logger.Info("No account found for alert evaluation, skipping",
			zap.Int64("account_id", accountID),
		)
		return nil, nil
	}

	// 2. 查策略（先走缓存，失败或未命中回退到库；短 TTL 内的陈旧读取可接受）
	policy, err := d.loadPolicy(ctx, accountID)
	if err != nil {
		return nil, &domain.AlertDispatchError{Stage: "lookup-policy", Err: err}
	}
	if policy == nil {
		d.logger.Debug("No alert policy for account, alerting disabled",
			zap.Int64("account_id", accountID),
		)
		return nil, nil
	}

	// 3. 阈值评估（固定优先级，至多一个维度触发）
	reason := evaluator.EvaluateThresholds(policy, temperature, humidity, pm25)
	if reason == nil {
		return nil, nil
	}

	// 4. 组装并发送通知
	body := composeAlertBody(account.Name, reason)
	if err := d.notifier.Send(ctx, account.Email, d.subject, body); err != nil {
		return nil, &domain.AlertDispatchError{Stage: "send", Err: err}
	}

	event := &domain.AlertEvent{
		EventID:   uuid.New().String(),
		AccountID: accountID,
		Dimension: reason.Dimension,
		Observed:  reason.Observed,
		Threshold: reason.Threshold,
		SentTo:    account.Email,
	}

	// 5. 审计记录（尽力而为：通知已发出，这里失败只记录日志）
	if err := d.events.Insert(ctx, event); err != nil {
		d.logger.Warn("Failed to record alert event",
			zap.String("event_id", event.EventID),
			zap.Int64("account_id", accountID),
			zap.Error(err),
		)
	}

	d.logger.Info("Alert notification dispatched",
		zap.String("event_id", event.EventID),
		zap.Int64("account_id", accountID),
		zap.String("dimension", reason.Dimension),
		zap.Float64("observed", reason.Observed),
		zap.Float64("threshold", reason.Threshold),
	)

	return event, nil
}

// loadPolicy 读策略：缓存命中直接返回，否则查库并回填缓存
func (d *AlertDispatcher) loadPolicy(ctx context.Context, accountID int64) (*domain.AlertPolicy, error) {
	if d.cache != nil {
		policy, hit, err := d.cache.GetPolicy(ctx, accountID)
		if err != nil {
			d.logger.Warn("Policy cache read failed, falling back to database",
				zap.Int64("account_id", accountID),
				zap.Error(err),
			)
		} else if hit {
			return policy, nil
		}
	}

	policy, err := d.policies.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if policy != nil && d.cache != nil {
		if err := d.cache.SetPolicy(ctx, accountID, policy); err != nil {
			d.logger.Warn("Policy cache write failed",
				zap.Int64("account_id", accountID),
				zap.Error(err),
			)
		}
	}

	return policy, nil
}

// composeAlertBody 组装告警正文：账户名、超限维度、观测值、阈值
func composeAlertBody(name string, reason *domain.AlertReason) string {
	return fmt.Sprintf(
		"Dear %s,\n\n%s exceeded the configured threshold.\n- observed: %v\n- threshold: %v\n\nPlease check your indoor air quality.",
		name,
		dimensionDisplay(reason.Dimension),
		reason.Observed,
		reason.Threshold,
	)
}

func dimensionDisplay(dimension string) string {
	switch dimension {
	case domain.DimensionPM25:
		return "Fine dust (PM2.5)"
	case domain.DimensionTemperature:
		return "Temperature"
	case domain.DimensionHumidity:
		return "Humidity"
	default:
		return dimension
	}
}

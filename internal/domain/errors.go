package domain

import "fmt"

// 管道错误分类。每个阶段返回自己的错误类型，
// 测试可以用 errors.As 断言失败种类，而不是解析日志文本。
// 所有错误对进程都是非致命的：上层记录日志后继续处理下一条消息。

// DecodeError 入站消息格式错误（缺字段 / 非数值 / 非法 JSON）
type DecodeError struct {
	Field string // 缺失或非法的字段名，整体解析失败时为空
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode failed: invalid field %q", e.Field)
	}
	return fmt.Sprintf("decode failed: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// OwnerResolutionError 无法为读数找到归属账户（库中无任何账户）
type OwnerResolutionError struct {
	Reason string
}

func (e *OwnerResolutionError) Error() string {
	return fmt.Sprintf("owner resolution failed: %s", e.Reason)
}

// PersistenceError 读数写入失败（事务已回滚）
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// AlertDispatchError 告警路径任意阶段的失败（查账户/查策略/发送通知）
// 在读数提交之后发生，只记录日志，绝不影响已提交的数据
type AlertDispatchError struct {
	Stage string // lookup-account / lookup-policy / send / record
	Err   error
}

func (e *AlertDispatchError) Error() string {
	return fmt.Sprintf("alert dispatch failed at %s: %v", e.Stage, e.Err)
}

func (e *AlertDispatchError) Unwrap() error { return e.Err }

// TransportConnectionError 订阅建立失败（重连策略由传输层自身负责）
type TransportConnectionError struct {
	Err error
}

func (e *TransportConnectionError) Error() string {
	return fmt.Sprintf("transport connection failed: %v", e.Err)
}

func (e *TransportConnectionError) Unwrap() error { return e.Err }

package service

import (
	"context"
	"time"

	"airzy-ingest/internal/cache"
	"airzy-ingest/internal/domain"
)

// 测试用的假存储和假通知通道

type fakeAccountStore struct {
	earliest    *domain.Account
	earliestErr error
	byID        map[int64]*domain.Account
	byIDErr     error
}

func (f *fakeAccountStore) FindEarliest(ctx context.Context) (*domain.Account, error) {
	if f.earliestErr != nil {
		return nil, f.earliestErr
	}
	return f.earliest, nil
}

func (f *fakeAccountStore) FindByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID[accountID], nil
}

type fakePolicyStore struct {
	policies map[int64]*domain.AlertPolicy
	err      error
	getCalls int
}

func (f *fakePolicyStore) Get(ctx context.Context, accountID int64) (*domain.AlertPolicy, error) {
	f.getCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.policies[accountID], nil
}

type fakeReadingStore struct {
	inserted []*domain.Reading
	// 每次 Insert 依次消费一个错误，nil 表示成功（模拟第 N 条失败、第 N+1 条成功）
	errQueue []error
	nextID   int64
}

func (f *fakeReadingStore) Insert(ctx context.Context, reading *domain.Reading) (*domain.Reading, error) {
	if len(f.errQueue) > 0 {
		err := f.errQueue[0]
		f.errQueue = f.errQueue[1:]
		if err != nil {
			return nil, err
		}
	}
	f.nextID++
	reading.ID = f.nextID
	reading.CreatedAt = time.Now()
	f.inserted = append(f.inserted, reading)
	return reading, nil
}

type fakeAlertEventStore struct {
	events []*domain.AlertEvent
	err    error
}

func (f *fakeAlertEventStore) Insert(ctx context.Context, event *domain.AlertEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type sentMessage struct {
	to      string
	subject string
	body    string
}

type fakeNotifier struct {
	sent []sentMessage
	err  error
}

func (f *fakeNotifier) Send(ctx context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMessage{to: to, subject: subject, body: body})
	return nil
}

type fakeCacheStore struct {
	realtime map[int64]*cache.RealtimeData
	policies map[int64]*domain.AlertPolicy
	getErr   error
	setErr   error
}

func newFakeCacheStore() *fakeCacheStore {
	return &fakeCacheStore{
		realtime: make(map[int64]*cache.RealtimeData),
		policies: make(map[int64]*domain.AlertPolicy),
	}
}

func (f *fakeCacheStore) SetRealtime(ctx context.Context, accountID int64, data *cache.RealtimeData) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.realtime[accountID] = data
	return nil
}

func (f *fakeCacheStore) GetPolicy(ctx context.Context, accountID int64) (*domain.AlertPolicy, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	policy, ok := f.policies[accountID]
	return policy, ok, nil
}

func (f *fakeCacheStore) SetPolicy(ctx context.Context, accountID int64, policy *domain.AlertPolicy) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.policies[accountID] = policy
	return nil
}

func floatPtr(v float64) *float64 {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func testAccount(id int64, name, email string) *domain.Account {
	return &domain.Account{
		AccountID: id,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
	}
}

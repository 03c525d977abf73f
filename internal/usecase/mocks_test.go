//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"kinetic-flow-backend/internal/domain"
	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/adapter"
)

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// =============================
// --- Mock PaymentGateway
// =============================

type MockPaymentGateway struct {
	KeyIDVal string

	CreateOrderFunc        func(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]string) (string, error)
	CreateSubscriptionFunc func(ctx context.Context, externalPlanID string, totalCycles int, notes map[string]string) (string, error)
	FetchPaymentFunc       func(ctx context.Context, paymentID string) (*model.GatewayPayment, error)
}

var _ adapter.PaymentGateway = (*MockPaymentGateway)(nil)

func (m *MockPaymentGateway) Name() string { return "mockpay" }

func (m *MockPaymentGateway) KeyID() string {
	if m.KeyIDVal == "" {
		return "rzp_test_mock"
	}
	return m.KeyIDVal
}

func (m *MockPaymentGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]string) (string, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, amountPaise, currency, receipt, notes)
	}
	return "order_mock_1", nil
}

func (m *MockPaymentGateway) CreateSubscription(ctx context.Context, externalPlanID string, totalCycles int, notes map[string]string) (string, error) {
	if m.CreateSubscriptionFunc != nil {
		return m.CreateSubscriptionFunc(ctx, externalPlanID, totalCycles, notes)
	}
	return "sub_mock_1", nil
}

func (m *MockPaymentGateway) FetchPayment(ctx context.Context, paymentID string) (*model.GatewayPayment, error) {
	if m.FetchPaymentFunc != nil {
		return m.FetchPaymentFunc(ctx, paymentID)
	}
	return &model.GatewayPayment{ID: paymentID, Status: model.PaymentStatusCaptured, Notes: map[string]string{"plan": "elite"}}, nil
}

// =============================
// --- Mock subscription store
// =============================

// MockSubscriptionStore is both the writer and the read repository, mirroring
// how the two ports share one table in production.
type MockSubscriptionStore struct {
	mu   sync.RWMutex
	subs map[string]*model.Subscription

	UpsertFunc func(ctx context.Context, sub *model.Subscription) error
}

func NewMockSubscriptionStore() *MockSubscriptionStore {
	return &MockSubscriptionStore{subs: make(map[string]*model.Subscription)}
}

func (m *MockSubscriptionStore) Upsert(ctx context.Context, sub *model.Subscription) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, sub)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sub
	m.subs[sub.UserID] = &cp
	return nil
}

func (m *MockSubscriptionStore) FindByUser(ctx context.Context, userID string) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.subs[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *sub
	return &cp, nil
}

// =============================
// --- Mock CouponRepo
// =============================

type MockCouponRepo struct {
	mu      sync.Mutex
	coupons map[string]*model.Coupon // by code

	ConsumeUseFunc func(ctx context.Context, couponID string) error
}

func NewMockCouponRepo() *MockCouponRepo {
	return &MockCouponRepo{coupons: make(map[string]*model.Coupon)}
}

func (m *MockCouponRepo) Put(c *model.Coupon) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.coupons[c.Code] = &cp
}

func (m *MockCouponRepo) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.coupons[code]
	if !ok {
		return nil, domain.ErrCouponNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MockCouponRepo) ConsumeUse(ctx context.Context, couponID string) error {
	if m.ConsumeUseFunc != nil {
		return m.ConsumeUseFunc(ctx, couponID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.coupons {
		if c.ID == couponID {
			if c.Uses >= c.MaxUses {
				return domain.ErrCouponExhausted
			}
			c.Uses++
			return nil
		}
	}
	return domain.ErrCouponNotFound
}

// =============================
// --- Mock goal repositories
// =============================

type MockVisionRepo struct {
	mu      sync.RWMutex
	visions map[string]*model.Vision

	SaveFunc func(ctx context.Context, v *model.Vision) error
}

func NewMockVisionRepo() *MockVisionRepo {
	return &MockVisionRepo{visions: make(map[string]*model.Vision)}
}

func (m *MockVisionRepo) Save(ctx context.Context, v *model.Vision) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, v)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *v
	m.visions[v.ID] = &cp
	return nil
}

func (m *MockVisionRepo) FindByID(ctx context.Context, id string) (*model.Vision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.visions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *MockVisionRepo) ListByUser(ctx context.Context, userID string) ([]*model.Vision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Vision
	for _, v := range m.visions {
		if v.UserID == userID {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockVisionRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	vs, _ := m.ListByUser(ctx, userID)
	return len(vs), nil
}

func (m *MockVisionRepo) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.visions[id]
	if !ok || v.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.visions, id)
	return nil
}

type MockMilestoneRepo struct {
	mu         sync.RWMutex
	milestones map[string]*model.Milestone
}

func NewMockMilestoneRepo() *MockMilestoneRepo {
	return &MockMilestoneRepo{milestones: make(map[string]*model.Milestone)}
}

func (m *MockMilestoneRepo) Save(ctx context.Context, ms *model.Milestone) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *ms
	m.milestones[ms.ID] = &cp
	return nil
}

func (m *MockMilestoneRepo) ListByVision(ctx context.Context, userID, visionID string) ([]*model.Milestone, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Milestone
	for _, ms := range m.milestones {
		if ms.UserID == userID && ms.VisionID == visionID {
			cp := *ms
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockMilestoneRepo) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ms, ok := m.milestones[id]
	if !ok || ms.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.milestones, id)
	return nil
}

type MockTaskRepo struct {
	mu    sync.RWMutex
	tasks map[string]*model.Task
}

func NewMockTaskRepo() *MockTaskRepo {
	return &MockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *MockTaskRepo) Save(ctx context.Context, t *model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *t
	m.tasks[t.ID] = &cp
	return nil
}

func (m *MockTaskRepo) FindByID(ctx context.Context, userID, id string) (*model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (m *MockTaskRepo) ListByUserAndDate(ctx context.Context, userID string, date time.Time) ([]*model.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Task
	for _, t := range m.tasks {
		if t.UserID != userID {
			continue
		}
		if (t.PlannedDate != nil && sameDay(*t.PlannedDate, date)) || (t.DueDate != nil && sameDay(*t.DueDate, date)) {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockTaskRepo) SetCompleted(ctx context.Context, userID, id string, completed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return domain.ErrNotFound
	}
	t.IsCompleted = completed
	if completed {
		now := time.Now()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	return nil
}

func (m *MockTaskRepo) SetDailyPriority(ctx context.Context, userID, id string, date time.Time, isPriority bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return domain.ErrNotFound
	}
	t.IsDailyPriority = isPriority
	if isPriority {
		d := date
		t.PlannedDate = &d
	}
	return nil
}

func (m *MockTaskRepo) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok || t.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

func (m *MockTaskRepo) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cnt := 0
	for _, t := range m.tasks {
		if t.UserID == userID && t.IsCompleted && t.CompletedAt != nil && !t.CompletedAt.Before(since) {
			cnt++
		}
	}
	return cnt, nil
}

func (m *MockTaskRepo) CompletionByVision(ctx context.Context, userID string) (map[string][2]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string][2]int)
	for _, t := range m.tasks {
		if t.UserID != userID || t.MilestoneID == nil {
			continue
		}
		// the mock treats milestone id as the vision key; aggregate tests wire
		// ids accordingly
		v := out[*t.MilestoneID]
		v[1]++
		if t.IsCompleted {
			v[0]++
		}
		out[*t.MilestoneID] = v
	}
	return out, nil
}

type MockDailyLogRepo struct {
	mu   sync.Mutex
	logs map[string]*model.DailyLog // key userID+date
}

func NewMockDailyLogRepo() *MockDailyLogRepo {
	return &MockDailyLogRepo{logs: make(map[string]*model.DailyLog)}
}

func logKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (m *MockDailyLogRepo) Upsert(ctx context.Context, log *model.DailyLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *log
	m.logs[logKey(log.UserID, log.Date)] = &cp
	return nil
}

func (m *MockDailyLogRepo) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*model.DailyLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.logs[logKey(userID, date)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

// =============================
// --- Mock AI adapter
// =============================

type MockAIAdapter struct {
	ChatFunc func(ctx context.Context, messages []adapter.Message) (string, error)
}

var _ adapter.AIServiceAdapter = (*MockAIAdapter)(nil)

func (m *MockAIAdapter) Chat(ctx context.Context, messages []adapter.Message) (string, error) {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, messages)
	}
	return "keep going", nil
}

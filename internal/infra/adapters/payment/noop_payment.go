package payment

import (
	"context"
	"fmt"
	"sync"

	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*NoopPaymentGateway)(nil)

// NoopPaymentGateway is a simple in-memory gateway for dev mode and tests.
// Every payment it is asked about reports as captured.
type NoopPaymentGateway struct {
	mu     sync.Mutex
	seq    int64
	orders map[string]map[string]string // order/subscription id -> notes
}

func NewNoopPaymentGateway() *NoopPaymentGateway {
	return &NoopPaymentGateway{orders: make(map[string]map[string]string)}
}

func (g *NoopPaymentGateway) Name() string  { return "noop" }
func (g *NoopPaymentGateway) KeyID() string { return "rzp_test_noop" }

func (g *NoopPaymentGateway) next(prefix string) string {
	g.seq++
	return fmt.Sprintf("%s_noop_%d", prefix, g.seq)
}

func (g *NoopPaymentGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.next("order")
	g.orders[id] = notes
	return id, nil
}

func (g *NoopPaymentGateway) CreateSubscription(ctx context.Context, externalPlanID string, totalCycles int, notes map[string]string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.next("sub")
	g.orders[id] = notes
	return id, nil
}

func (g *NoopPaymentGateway) FetchPayment(ctx context.Context, paymentID string) (*model.GatewayPayment, error) {
	return &model.GatewayPayment{
		ID:     paymentID,
		Status: model.PaymentStatusCaptured,
		Notes:  map[string]string{"plan": string(model.PlanElite)},
	}, nil
}

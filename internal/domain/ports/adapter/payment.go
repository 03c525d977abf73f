package adapter

import (
	"context"

	"kinetic-flow-backend/internal/domain/model"
)

// PaymentGateway is the hex port for the external payment processor.
// Every call is a single attempt; the gateway may create duplicate objects on
// repeated calls and no retry happens here.
type PaymentGateway interface {
	Name() string

	// KeyID returns the publishable key handed to the client checkout widget.
	KeyID() string

	// CreateOrder creates a one-time order and returns the gateway order id.
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string, notes map[string]string) (string, error)

	// CreateSubscription creates a recurring subscription bound to a
	// pre-provisioned gateway plan id and returns the gateway subscription id.
	CreateSubscription(ctx context.Context, externalPlanID string, totalCycles int, notes map[string]string) (string, error)

	// FetchPayment returns the live status and notes for a payment id.
	FetchPayment(ctx context.Context, paymentID string) (*model.GatewayPayment, error)
}

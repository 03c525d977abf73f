package model

// CheckoutParams is the uniform result handed to the client checkout widget,
// regardless of billing mode. Exactly one of OrderID/SubscriptionID is set.
type CheckoutParams struct {
	KeyID          string `json:"key_id"`
	OrderID        string `json:"order_id,omitempty"`
	SubscriptionID string `json:"subscription_id,omitempty"`
	AmountPaise    int64  `json:"amount,omitempty"`
	Currency       string `json:"currency,omitempty"`
	Description    string `json:"description"`
}

// PaymentConfirmation is the client-reported success payload. It is an
// unauthenticated claim until the signature checks out; none of it is
// persisted directly.
type PaymentConfirmation struct {
	OrderID        string `json:"order_id"`
	SubscriptionID string `json:"subscription_id"`
	PaymentID      string `json:"payment_id"`
	Signature      string `json:"signature"`
}

// GatewayPayment is the provider's view of a payment, fetched directly during
// forced reconciliation.
type GatewayPayment struct {
	ID     string
	Status string // created | authorized | captured | refunded | failed
	Notes  map[string]string
}

// PaymentStatusCaptured is the only gateway status that forced reconciliation
// accepts as settled funds.
const PaymentStatusCaptured = "captured"

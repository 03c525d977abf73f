package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"kinetic-flow-backend/internal/domain"
	"kinetic-flow-backend/internal/domain/model"
	"kinetic-flow-backend/internal/domain/ports/adapter"
	"kinetic-flow-backend/internal/domain/ports/repository"
	"kinetic-flow-backend/internal/infra/metrics"
)

// Compile-time check
var _ BillingUseCase = (*billingUC)(nil)

type BillingUseCase interface {
	// InitiateCheckout creates a gateway-side order or recurring subscription
	// for the plan and returns the parameters the checkout widget needs.
	// One gateway object is created per call; repeated calls create
	// duplicates and nothing here retries.
	InitiateCheckout(ctx context.Context, userID string, planID model.PlanID) (*model.CheckoutParams, error)

	// VerifyCheckout validates the client-reported confirmation against the
	// gateway signature and, on success, reconciles the subscription record.
	VerifyCheckout(ctx context.Context, userID string, planID model.PlanID, conf model.PaymentConfirmation) error

	// ForceVerify queries the gateway directly by payment id to rescue
	// "paid but not recorded" states after a failed or skipped signature
	// verification. Returns the plan that was activated.
	ForceVerify(ctx context.Context, userID, paymentID string) (model.PlanID, error)
}

type billingUC struct {
	catalog   *model.Catalog
	gateway   adapter.PaymentGateway
	writer    repository.SubscriptionWriter
	keySecret string
	log       *zerolog.Logger
}

func NewBillingUseCase(catalog *model.Catalog, gateway adapter.PaymentGateway, writer repository.SubscriptionWriter, keySecret string, log *zerolog.Logger) *billingUC {
	return &billingUC{
		catalog:   catalog,
		gateway:   gateway,
		writer:    writer,
		keySecret: keySecret,
		log:       log,
	}
}

func (u *billingUC) InitiateCheckout(ctx context.Context, userID string, planID model.PlanID) (*model.CheckoutParams, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	plan, err := u.catalog.Lookup(planID)
	if err != nil {
		return nil, err
	}
	if u.gateway == nil {
		return nil, domain.ErrGatewayNotConfigured
	}

	// The plan note is what forced reconciliation later reads back from the
	// gateway to recover the purchased tier.
	notes := map[string]string{"plan": string(planID)}
	params := &model.CheckoutParams{
		KeyID:       u.gateway.KeyID(),
		Description: planID.DisplayName() + " Subscription",
	}

	switch plan.Billing.Kind {
	case model.BillingRecurring:
		subID, err := u.gateway.CreateSubscription(ctx, plan.Billing.ExternalPlanID, plan.Billing.TotalCycles, notes)
		if err != nil {
			return nil, err
		}
		params.SubscriptionID = subID
	default:
		orderID, err := u.gateway.CreateOrder(ctx, plan.Billing.AmountPaise, plan.Billing.Currency, receipt(userID), notes)
		if err != nil {
			return nil, err
		}
		params.OrderID = orderID
		params.AmountPaise = plan.Billing.AmountPaise
		params.Currency = plan.Billing.Currency
	}

	metrics.IncCheckout(string(planID), string(plan.Billing.Kind))
	return params, nil
}

func receipt(userID string) string {
	prefix := userID
	if len(prefix) > 5 {
		prefix = prefix[:5]
	}
	return fmt.Sprintf("receipt_%d_%s", time.Now().UnixMilli(), prefix)
}

func (u *billingUC) VerifyCheckout(ctx context.Context, userID string, planID model.PlanID, conf model.PaymentConfirmation) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	plan, err := u.catalog.Lookup(planID)
	if err != nil {
		return err
	}
	if u.keySecret == "" {
		return domain.ErrGatewayNotConfigured
	}

	// Field order is mode-specific and part of the signature contract.
	var base string
	switch plan.Billing.Kind {
	case model.BillingRecurring:
		base = conf.PaymentID + "|" + conf.SubscriptionID
	default:
		base = conf.OrderID + "|" + conf.PaymentID
	}

	if !signatureMatches(u.keySecret, base, conf.Signature) {
		metrics.IncVerification("invalid_signature")
		u.log.Warn().Str("payment_id", conf.PaymentID).Msg("payment signature mismatch")
		return domain.ErrInvalidSignature
	}

	sub, err := model.NewActiveSubscription(userID, planID, conf.PaymentID, optional(conf.SubscriptionID))
	if err != nil {
		return err
	}
	if err := u.writer.Upsert(ctx, sub); err != nil {
		metrics.IncVerification("write_failed")
		u.log.Error().Err(err).Str("user_id", userID).Msg("subscription upsert failed after verified payment")
		return domain.ErrSubscriptionWrite
	}

	metrics.IncVerification("ok")
	if plan.Billing.Kind == model.BillingOneTime {
		metrics.AddPaymentRevenue(plan.Billing.Currency, plan.Billing.AmountPaise)
	}
	return nil
}

// signatureMatches computes HMAC-SHA256 over base with the gateway secret and
// compares in constant time.
func signatureMatches(secret, base, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(base))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (u *billingUC) ForceVerify(ctx context.Context, userID, paymentID string) (model.PlanID, error) {
	if userID == "" {
		return "", domain.ErrUnauthenticated
	}
	if u.gateway == nil {
		return "", domain.ErrGatewayNotConfigured
	}

	payment, err := u.gateway.FetchPayment(ctx, paymentID)
	if err != nil {
		metrics.IncForcedReconciliation("error")
		return "", err
	}
	if payment.Status != model.PaymentStatusCaptured {
		metrics.IncForcedReconciliation("not_captured")
		// the detail after the sentinel is shown to the user as-is
		return "", fmt.Errorf("%w: Payment status is %s, not captured.", domain.ErrPaymentNotCaptured, payment.Status)
	}

	planID := model.PlanID(payment.Notes["plan"])
	if planID == "" {
		// Documented fallback when the gateway note is missing. The guess has
		// revenue impact for ai_ultimate buyers, so it is logged loudly.
		planID = model.PlanElite
		u.log.Warn().Str("payment_id", paymentID).Msg("gateway notes missing plan tag; defaulting to elite")
	}

	sub, err := model.NewActiveSubscription(userID, planID, payment.ID, nil)
	if err != nil {
		return "", err
	}
	if err := u.writer.Upsert(ctx, sub); err != nil {
		metrics.IncForcedReconciliation("error")
		u.log.Error().Err(err).Str("user_id", userID).Msg("subscription upsert failed during forced reconciliation")
		return "", domain.ErrSubscriptionWrite
	}

	metrics.IncForcedReconciliation("ok")
	return planID, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

//go:build !integration

package model

import (
	"errors"
	"testing"
	"time"

	"kinetic-flow-backend/internal/domain"
)

// --- Catalog Tests ---

func TestCatalog(t *testing.T) {
	t.Run("should default both tiers to one-time orders", func(t *testing.T) {
		c := NewCatalog("", "")

		elite, err := c.Lookup(PlanElite)
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if elite.Billing.Kind != BillingOneTime {
			t.Errorf("expected one_time, got %s", elite.Billing.Kind)
		}
		if elite.Billing.AmountPaise != 19900 || elite.Billing.Currency != "INR" {
			t.Errorf("unexpected elite pricing: %+v", elite.Billing)
		}

		ultimate, _ := c.Lookup(PlanAIUltimate)
		if ultimate.Billing.AmountPaise != 29900 {
			t.Errorf("expected 29900 paise for ai_ultimate, got %d", ultimate.Billing.AmountPaise)
		}
	})

	t.Run("should switch a tier to recurring when its gateway plan id is set", func(t *testing.T) {
		c := NewCatalog("plan_elite_ext", "")

		elite, _ := c.Lookup(PlanElite)
		if elite.Billing.Kind != BillingRecurring {
			t.Fatalf("expected recurring, got %s", elite.Billing.Kind)
		}
		if elite.Billing.ExternalPlanID != "plan_elite_ext" {
			t.Errorf("expected the configured plan id, got %q", elite.Billing.ExternalPlanID)
		}
		if elite.Billing.TotalCycles != DefaultCycles {
			t.Errorf("expected %d cycles, got %d", DefaultCycles, elite.Billing.TotalCycles)
		}

		// the other tier stays one-time
		ultimate, _ := c.Lookup(PlanAIUltimate)
		if ultimate.Billing.Kind != BillingOneTime {
			t.Errorf("expected ai_ultimate to stay one_time, got %s", ultimate.Billing.Kind)
		}
	})

	t.Run("should reject free and unknown plan ids", func(t *testing.T) {
		c := NewCatalog("", "")

		for _, id := range []PlanID{PlanFree, PlanID("platinum"), PlanID("")} {
			if _, err := c.Lookup(id); !errors.Is(err, domain.ErrUnknownPlan) {
				t.Errorf("expected ErrUnknownPlan for %q, got: %v", id, err)
			}
		}
	})
}

// --- Coupon Tests ---

func TestCouponValidate(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	t.Run("should pass a live coupon", func(t *testing.T) {
		c := &Coupon{IsActive: true, Uses: 0, MaxUses: 5, ExpiresAt: &future}
		if err := c.Validate(now); err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
	})

	t.Run("should check inactive before exhausted before expired", func(t *testing.T) {
		c := &Coupon{IsActive: false, Uses: 9, MaxUses: 5, ExpiresAt: &past}
		if err := c.Validate(now); !errors.Is(err, domain.ErrCouponInactive) {
			t.Errorf("expected ErrCouponInactive first, got: %v", err)
		}

		c.IsActive = true
		if err := c.Validate(now); !errors.Is(err, domain.ErrCouponExhausted) {
			t.Errorf("expected ErrCouponExhausted second, got: %v", err)
		}

		c.Uses = 0
		if err := c.Validate(now); !errors.Is(err, domain.ErrCouponExpired) {
			t.Errorf("expected ErrCouponExpired last, got: %v", err)
		}
	})

	t.Run("should treat a nil expiry as never expiring", func(t *testing.T) {
		c := &Coupon{IsActive: true, Uses: 0, MaxUses: 1}
		if err := c.Validate(now); err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
	})
}

// --- Subscription Tests ---

func TestNewActiveSubscription(t *testing.T) {
	t.Run("should build an active record", func(t *testing.T) {
		sub, err := NewActiveSubscription("user-1", PlanElite, "pay_1", nil)
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if sub.Status != SubscriptionStatusActive {
			t.Errorf("expected active status, got %s", sub.Status)
		}
	})

	t.Run("should reject missing fields", func(t *testing.T) {
		cases := []struct {
			userID, paymentID string
			plan              PlanID
		}{
			{"", "pay_1", PlanElite},
			{"user-1", "", PlanElite},
			{"user-1", "pay_1", ""},
		}
		for _, tc := range cases {
			if _, err := NewActiveSubscription(tc.userID, tc.plan, tc.paymentID, nil); !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument for %+v, got: %v", tc, err)
			}
		}
	})
}

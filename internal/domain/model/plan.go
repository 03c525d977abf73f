package model

import "kinetic-flow-backend/internal/domain"

// PlanID identifies a billing tier.
type PlanID string

const (
	PlanFree       PlanID = "free"
	PlanElite      PlanID = "elite"
	PlanAIUltimate PlanID = "ai_ultimate"
)

// Paid reports whether the plan gates any premium feature.
func (p PlanID) Paid() bool { return p == PlanElite || p == PlanAIUltimate }

// DisplayName returns the marketing name shown in checkout descriptions.
func (p PlanID) DisplayName() string {
	switch p {
	case PlanElite:
		return "Elite"
	case PlanAIUltimate:
		return "AI Ultimate"
	default:
		return "Free"
	}
}

// BillingModeKind tags the two supported billing shapes.
type BillingModeKind string

const (
	BillingOneTime   BillingModeKind = "one_time"
	BillingRecurring BillingModeKind = "recurring"
)

// BillingMode is a tagged variant: exactly one of the two field groups is
// meaningful, selected by Kind.
type BillingMode struct {
	Kind BillingModeKind

	// One-time order mode.
	AmountPaise int64
	Currency    string

	// Recurring subscription mode.
	ExternalPlanID string // gateway-side pre-provisioned plan id
	TotalCycles    int    // fixed billing-cycle count
}

// Plan is a static catalog entry for a purchasable tier.
type Plan struct {
	ID      PlanID
	Billing BillingMode
}

// Catalog maps plan identifiers to their billing parameters. Entries are
// code-defined and immutable after construction.
type Catalog struct {
	plans map[PlanID]Plan
}

// DefaultCycles is the billing-cycle count handed to the gateway when a
// recurring plan does not specify one.
const DefaultCycles = 12

// NewCatalog builds the two-tier catalog. A recurring external plan id, when
// provided, supersedes the one-time mode for that tier.
func NewCatalog(eliteExternalID, ultimateExternalID string) *Catalog {
	c := &Catalog{plans: make(map[PlanID]Plan)}
	c.plans[PlanElite] = entry(PlanElite, 19900, eliteExternalID)
	c.plans[PlanAIUltimate] = entry(PlanAIUltimate, 29900, ultimateExternalID)
	return c
}

func entry(id PlanID, amountPaise int64, externalID string) Plan {
	if externalID != "" {
		return Plan{ID: id, Billing: BillingMode{
			Kind:           BillingRecurring,
			ExternalPlanID: externalID,
			TotalCycles:    DefaultCycles,
		}}
	}
	return Plan{ID: id, Billing: BillingMode{
		Kind:        BillingOneTime,
		AmountPaise: amountPaise,
		Currency:    "INR",
	}}
}

// Lookup returns the catalog entry for id, or ErrUnknownPlan for anything
// that is not a recognized paid tier.
func (c *Catalog) Lookup(id PlanID) (Plan, error) {
	p, ok := c.plans[id]
	if !ok {
		return Plan{}, domain.ErrUnknownPlan
	}
	return p, nil
}

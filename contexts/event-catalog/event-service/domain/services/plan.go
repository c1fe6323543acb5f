package services

import (
	"strings"

	"galavote/contexts/event-catalog/event-service/domain/entities"
)

// Plan is derived, never persisted: quota checks recompute it from the
// account's billing fields on every call.
type Plan struct {
	Name       string
	EventQuota int
}

const (
	PlanFree       = "free"
	PlanStarter    = "starter"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// Price ids the billing collaborator assigns per tier.
const (
	priceIDStarter    = "price_starter_monthly"
	priceIDPro        = "price_pro_monthly"
	priceIDEnterprise = "price_enterprise_monthly"
)

// enterpriseQuota is unbounded in practice.
const enterpriseQuota = 1_000_000

// PlanForAccount derives the subscription plan from billing fields. Anything
// other than an active subscription falls back to the free tier regardless of
// price id.
func PlanForAccount(account entities.BillingAccount) Plan {
	if !strings.EqualFold(strings.TrimSpace(account.SubscriptionStatus), "active") {
		return Plan{Name: PlanFree, EventQuota: 1}
	}
	switch strings.TrimSpace(account.PriceID) {
	case priceIDStarter:
		return Plan{Name: PlanStarter, EventQuota: 5}
	case priceIDPro:
		return Plan{Name: PlanPro, EventQuota: 20}
	case priceIDEnterprise:
		return Plan{Name: PlanEnterprise, EventQuota: enterpriseQuota}
	default:
		return Plan{Name: PlanFree, EventQuota: 1}
	}
}

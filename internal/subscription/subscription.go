package subscription

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("subscription not found")

// BillingCycle is how often a subscription charges.
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
	CycleWeekly  BillingCycle = "weekly"
)

// Subscription is a recurring charge tracked for a user.
type Subscription struct {
	ID           uuid.UUID
	UserID       string
	Name         string
	Price        int64 // cents, per billing cycle
	BillingCycle BillingCycle
	Active       bool
	Trial        bool
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
}

// MonthlyCost normalizes the price to a monthly figure in cents:
// yearly prices divide by 12, weekly prices multiply by 4.
func (s *Subscription) MonthlyCost() int64 {
	switch s.BillingCycle {
	case CycleYearly:
		return s.Price / 12
	case CycleWeekly:
		return s.Price * 4
	default:
		return s.Price
	}
}

// MonthlyCostUnits returns the normalized monthly cost in currency units.
func (s *Subscription) MonthlyCostUnits() float64 { return float64(s.MonthlyCost()) / 100 }

// TotalMonthlyCost sums the normalized monthly cost of all active,
// non-trial subscriptions.
func TotalMonthlyCost(subs []*Subscription) int64 {
	var total int64

	for _, s := range subs {
		if !s.Active || s.Trial {
			continue
		}

		total += s.MonthlyCost()
	}

	return total
}

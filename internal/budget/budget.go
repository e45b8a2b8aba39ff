package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("budget not found")

// Period is the budgeting window. Only monthly budgets take part in the
// analysis services; other periods are stored for completeness.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodWeekly  Period = "weekly"
	PeriodYearly  Period = "yearly"
)

// Budget caps a category's spend for a period.
type Budget struct {
	ID           uuid.UUID
	UserID       string
	Category     string
	MonthlyLimit int64 // cents
	Period       Period
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
}

// LimitUnits returns the monthly limit in currency units.
func (b *Budget) LimitUnits() float64 { return float64(b.MonthlyLimit) / 100 }

package goal

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("goal not found")

// Goal is a savings target the user is building toward.
type Goal struct {
	ID           uuid.UUID
	UserID       string
	Name         string
	TargetAmount int64 // cents
	SavedAmount  int64 // cents
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
}

// Progress returns completion as a percentage in [0,100].
func (g *Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}

	pct := float64(g.SavedAmount) / float64(g.TargetAmount) * 100
	if pct > 100 {
		pct = 100
	}

	return pct
}

// Remaining returns the unsaved portion in cents, never negative.
func (g *Goal) Remaining() int64 {
	rem := g.TargetAmount - g.SavedAmount
	if rem < 0 {
		return 0
	}

	return rem
}

// MonthlyPace estimates the cents-per-month contribution rate from the
// goal's age. Goals younger than a month count as one month old.
func (g *Goal) MonthlyPace(now time.Time) float64 {
	months := now.Sub(g.CreatedAt).Hours() / 24 / 30
	if months < 1 {
		months = 1
	}

	return float64(g.SavedAmount) / months
}

// MonthsToCompletion projects how many months remain at the given monthly
// contribution in cents. Returns 0 when already complete and -1 when the
// pace is zero (never completes).
func (g *Goal) MonthsToCompletion(monthlyContribution float64) float64 {
	rem := g.Remaining()
	if rem == 0 {
		return 0
	}

	if monthlyContribution <= 0 {
		return -1
	}

	return math.Ceil(float64(rem) / monthlyContribution)
}

package analysis

import (
	"math"
	"time"

	"github.com/fintwin-app/fintwin/internal/transaction"
)

// Velocity captures how fast money is being spent right now. It is a rough
// personal runway heuristic: no smoothing, no outlier handling.
type Velocity struct {
	DailyRate   float64 `json:"daily_rate"`
	WeeklyRate  float64 `json:"weekly_rate"`
	MonthlyRate float64 `json:"monthly_rate"`

	// Acceleration is the percent change in spend between the trailing
	// 30-day window and the 30 days before it.
	Acceleration float64 `json:"acceleration"`

	// BurnRate is trailing-30-day expense over income, as a percentage.
	// 100 when the window has no income.
	BurnRate float64 `json:"burn_rate"`

	// DaysUntilBroke estimates days until the window's remaining income is
	// exhausted at the current daily rate. Nil when the daily rate is zero,
	// 0 when remaining income is already non-positive.
	DaysUntilBroke *int `json:"days_until_broke"`
}

// ComputeVelocity derives spend rates from the trailing 30- and 60-day
// windows ending at now.
func ComputeVelocity(txs []*transaction.Transaction, now time.Time) Velocity {
	cutoff30 := now.AddDate(0, 0, -30)
	cutoff60 := now.AddDate(0, 0, -60)

	var expense30, income30, expensePrior float64

	for _, tx := range txs {
		if tx.Date.After(now) {
			continue
		}

		switch {
		case tx.Date.After(cutoff30):
			if tx.IsExpense() {
				expense30 += tx.AmountUnits()
			} else {
				income30 += tx.AmountUnits()
			}
		case tx.Date.After(cutoff60):
			if tx.IsExpense() {
				expensePrior += tx.AmountUnits()
			}
		}
	}

	daily := expense30 / 30

	v := Velocity{
		DailyRate:   round1(daily),
		WeeklyRate:  round1(daily * 7),
		MonthlyRate: round1(expense30),
	}

	if expensePrior > 0 {
		v.Acceleration = round1((expense30 - expensePrior) / expensePrior * 100)
	}

	if income30 > 0 {
		v.BurnRate = round1(expense30 / income30 * 100)
	} else {
		v.BurnRate = 100
	}

	if daily > 0 {
		remaining := income30 - expense30

		days := 0
		if remaining > 0 {
			days = int(math.Round(remaining / daily))
		}

		v.DaysUntilBroke = &days
	}

	return v
}

package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/fintwin-app/fintwin/internal/budget"
	"github.com/fintwin-app/fintwin/internal/transaction"
)

// Severity orders alerts from most to least urgent.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityDanger   Severity = "danger"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// AlertType identifies the detector that raised an alert.
type AlertType string

const (
	AlertOverdraft       AlertType = "overdraft"
	AlertBudgetBreach    AlertType = "budget_breach"
	AlertUnusualSpending AlertType = "unusual_spending"
	AlertForecastDeficit AlertType = "forecast_deficit"
	AlertAllClear        AlertType = "all_clear"
)

// Alert is one detected risk with a suggested action.
type Alert struct {
	ID          uuid.UUID `json:"id"`
	Type        AlertType `json:"type"`
	Severity    Severity  `json:"severity"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Tip         string    `json:"tip,omitempty"`
	Probability float64   `json:"probability"`
}

var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityDanger:   1,
	SeverityWarning:  2,
	SeverityInfo:     3,
}

// DetectRisks runs all detectors over the current state and returns alerts
// sorted by severity. An empty result is replaced with a single info alert
// so callers always have something to show.
func DetectRisks(txs []*transaction.Transaction, vel Velocity, budgets []*budget.Budget, forecasts []Forecast, params Params, now time.Time) []Alert {
	var alerts []Alert

	if a, ok := detectOverdraft(vel, params); ok {
		alerts = append(alerts, a)
	}

	alerts = append(alerts, detectBudgetBreaches(txs, budgets, params, now)...)

	if a, ok := detectUnusualSpending(txs, vel, params, now); ok {
		alerts = append(alerts, a)
	}

	if a, ok := detectForecastDeficit(forecasts); ok {
		alerts = append(alerts, a)
	}

	if len(alerts) == 0 {
		alerts = append(alerts, Alert{
			ID:       uuid.New(),
			Type:     AlertAllClear,
			Severity: SeverityInfo,
			Title:    "No risks detected",
			Message:  "Your spending looks healthy right now. Keep it up.",
		})
	}

	sortAlerts(alerts)

	return alerts
}

func sortAlerts(alerts []Alert) {
	for i := 1; i < len(alerts); i++ {
		for j := i; j > 0 && severityRank[alerts[j].Severity] < severityRank[alerts[j-1].Severity]; j-- {
			alerts[j], alerts[j-1] = alerts[j-1], alerts[j]
		}
	}
}

func detectOverdraft(vel Velocity, params Params) (Alert, bool) {
	if vel.DaysUntilBroke == nil {
		return Alert{}, false
	}

	days := *vel.DaysUntilBroke
	if days > params.OverdraftAlertDays {
		return Alert{}, false
	}

	severity := SeverityWarning
	switch {
	case days <= 5:
		severity = SeverityCritical
	case days <= 10:
		severity = SeverityDanger
	}

	return Alert{
		ID:          uuid.New(),
		Type:        AlertOverdraft,
		Severity:    severity,
		Title:       "Overdraft risk",
		Message:     fmt.Sprintf("At your current pace your money runs out in about %d days.", days),
		Tip:         "Pause non-essential spending until your next income lands.",
		Probability: clamp(100-float64(days)*5, 0, 100),
	}, true
}

func detectBudgetBreaches(txs []*transaction.Transaction, budgets []*budget.Budget, params Params, now time.Time) []Alert {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := float64(monthStart.AddDate(0, 1, -1).Day())
	dayOfMonth := float64(now.Day())
	expectedPct := dayOfMonth / daysInMonth * 100

	var alerts []Alert

	for _, b := range budgets {
		limit := b.LimitUnits()
		if limit <= 0 {
			continue
		}

		var spent float64

		for _, tx := range txs {
			if !tx.IsExpense() || tx.Date.Before(monthStart) || tx.Date.After(now) {
				continue
			}

			if MatchCategory(tx.CategoryOrDefault(), b.Category) {
				spent += tx.AmountUnits()
			}
		}

		actualPct := spent / limit * 100

		if actualPct <= expectedPct*params.BudgetBreachFactor || actualPct >= 100 {
			continue
		}

		remaining := limit - spent
		daysLeft := math.Max(daysInMonth-dayOfMonth, 1)

		alerts = append(alerts, Alert{
			ID:       uuid.New(),
			Type:     AlertBudgetBreach,
			Severity: SeverityWarning,
			Title:    fmt.Sprintf("%s budget on track to break", b.Category),
			Message: fmt.Sprintf("You have used %.0f%% of your %s budget with %.0f%% of the month gone.",
				actualPct, b.Category, expectedPct),
			Tip: fmt.Sprintf("Keep %s spending under %.2f per day to stay within budget.",
				b.Category, remaining/daysLeft),
			Probability: clamp(actualPct-expectedPct, 0, 100),
		})
	}

	return alerts
}

func detectUnusualSpending(txs []*transaction.Transaction, vel Velocity, params Params, now time.Time) (Alert, bool) {
	if vel.WeeklyRate <= 0 {
		return Alert{}, false
	}

	weekStart := now.AddDate(0, 0, -7)

	var weekSpend float64

	for _, tx := range txs {
		if tx.IsExpense() && !tx.Date.Before(weekStart) && !tx.Date.After(now) {
			weekSpend += tx.AmountUnits()
		}
	}

	if weekSpend <= vel.WeeklyRate*params.UnusualSpendFactor {
		return Alert{}, false
	}

	return Alert{
		ID:       uuid.New(),
		Type:     AlertUnusualSpending,
		Severity: SeverityWarning,
		Title:    "Unusual spending this week",
		Message: fmt.Sprintf("You spent %.2f in the last 7 days, well above your usual %.2f per week.",
			weekSpend, vel.WeeklyRate),
		Tip:         "Review this week's transactions for anything unexpected.",
		Probability: clamp(weekSpend/vel.WeeklyRate*50, 0, 100),
	}, true
}

func detectForecastDeficit(forecasts []Forecast) (Alert, bool) {
	for _, f := range forecasts {
		if f.RiskLevel != RiskCritical {
			continue
		}

		return Alert{
			ID:       uuid.New(),
			Type:     AlertForecastDeficit,
			Severity: SeverityDanger,
			Title:    "Deficit ahead",
			Message: fmt.Sprintf("Your %s forecast projects spending %.2f more than you earn.",
				f.Label, -f.ProjectedSavings),
			Tip:         "Trim recurring costs now so the shortfall never arrives.",
			Probability: 70,
		}, true
	}

	return Alert{}, false
}

// Package whatif projects a hypothetical financial decision forward and
// grades it.
package whatif

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/fintwin-app/fintwin/internal/analysis"
	"github.com/fintwin-app/fintwin/internal/budget"
	"github.com/fintwin-app/fintwin/internal/goal"
	"github.com/fintwin-app/fintwin/internal/subscription"
	"github.com/fintwin-app/fintwin/internal/transaction"
)

// ErrUnknownScenario is returned for a scenario type the simulator does
// not recognize.
var ErrUnknownScenario = errors.New("unknown scenario type")

// ScenarioType selects the decision being simulated.
type ScenarioType string

const (
	ScenarioCancelSubscription ScenarioType = "cancel_subscription"
	ScenarioAddSubscription    ScenarioType = "add_subscription"
	ScenarioAdjustBudget       ScenarioType = "adjust_budget"
	ScenarioChangeIncome       ScenarioType = "change_income"
	ScenarioSavingsGoal        ScenarioType = "savings_goal"
	ScenarioMajorPurchase      ScenarioType = "major_purchase"
	ScenarioCutCategory        ScenarioType = "cut_category"
)

// Recommendation grades a scenario by its monthly delta.
type Recommendation string

const (
	HighlyRecommended Recommendation = "highly_recommended"
	Recommended       Recommendation = "recommended"
	Neutral           Recommendation = "neutral"
	NotRecommended    Recommendation = "not_recommended"
)

const (
	defaultHorizonMonths = 12
	maxHorizonMonths     = 60

	// highlyRecommendedDelta is the monthly saving above which a scenario
	// is graded highly recommended.
	highlyRecommendedDelta = 100
)

// Request describes one scenario. Amounts are in currency units per month
// unless noted.
type Request struct {
	Scenario      ScenarioType `json:"scenario"`
	HorizonMonths int          `json:"horizon_months,omitempty"`

	SubscriptionIDs []uuid.UUID `json:"subscription_ids,omitempty"` // cancel_subscription

	Name        string  `json:"name,omitempty"`         // add_subscription, major_purchase
	MonthlyCost float64 `json:"monthly_cost,omitempty"` // add_subscription

	Category string  `json:"category,omitempty"`  // adjust_budget, cut_category
	NewLimit float64 `json:"new_limit,omitempty"` // adjust_budget

	IncomeChange float64 `json:"income_change,omitempty"` // change_income, signed

	TargetAmount float64 `json:"target_amount,omitempty"` // savings_goal
	TargetMonths int     `json:"target_months,omitempty"` // savings_goal

	PurchasePrice float64 `json:"purchase_price,omitempty"` // major_purchase
	FinanceMonths int     `json:"finance_months,omitempty"` // major_purchase
	InterestRate  float64 `json:"interest_rate,omitempty"`  // major_purchase, annual fraction

	CutPercent float64 `json:"cut_percent,omitempty"` // cut_category, 0..100
}

// Data is the user's current financial state the scenario runs against.
type Data struct {
	Transactions  []*transaction.Transaction
	Budgets       []*budget.Budget
	Subscriptions []*subscription.Subscription
	Goals         []*goal.Goal
	Now           time.Time
}

// ProjectionPoint is one month of the forward projection.
type ProjectionPoint struct {
	Month int `json:"month"` // 1-based offset from now

	// Cumulative is the plain sum of monthly deltas so far.
	Cumulative float64 `json:"cumulative"`

	// Value is the compounded worth of those deltas. Equal to Cumulative
	// for scenarios that cost money.
	Value float64 `json:"value"`
}

// GoalImpact shows what redirecting part of a freed-up saving does to one
// active goal.
type GoalImpact struct {
	GoalID             uuid.UUID `json:"goal_id"`
	Name               string    `json:"name"`
	ExtraMonthly       float64   `json:"extra_monthly"`
	MonthsToCompletion float64   `json:"months_to_completion"`
}

// Result is a fully simulated scenario.
type Result struct {
	Scenario       ScenarioType      `json:"scenario"`
	Description    string            `json:"description"`
	MonthlyDelta   float64           `json:"monthly_delta"` // positive is a saving
	HorizonMonths  int               `json:"horizon_months"`
	TotalSavings   float64           `json:"total_savings"`
	Projection     []ProjectionPoint `json:"projection"`
	Recommendation Recommendation    `json:"recommendation"`
	Pros           []string          `json:"pros,omitempty"`
	Cons           []string          `json:"cons,omitempty"`
	GoalImpacts    []GoalImpact      `json:"goal_impacts,omitempty"`
}

// Simulate computes the scenario's single monthly delta, projects it over
// the horizon with monthly compounding on savings, and grades it.
func Simulate(req Request, data Data, params analysis.Params) (Result, error) {
	horizon := req.HorizonMonths
	if horizon <= 0 {
		horizon = defaultHorizonMonths
	}
	if horizon > maxHorizonMonths {
		horizon = maxHorizonMonths
	}

	delta, description, err := monthlyDelta(req, data)
	if err != nil {
		return Result{}, err
	}

	rate := params.MonthlyReturnRate()
	projection := project(delta, horizon, rate)

	var total float64
	if len(projection) > 0 {
		total = projection[len(projection)-1].Value
	}

	res := Result{
		Scenario:       req.Scenario,
		Description:    description,
		MonthlyDelta:   round2(delta),
		HorizonMonths:  horizon,
		TotalSavings:   total,
		Projection:     projection,
		Recommendation: recommend(delta),
		GoalImpacts:    goalImpacts(delta, data.Goals, params),
	}

	res.Pros, res.Cons = prosCons(req.Scenario, delta, total, horizon)

	return res, nil
}

func monthlyDelta(req Request, data Data) (float64, string, error) {
	switch req.Scenario {
	case ScenarioCancelSubscription:
		if len(req.SubscriptionIDs) == 0 {
			return 0, "No subscriptions selected.", nil
		}

		wanted := make(map[uuid.UUID]bool, len(req.SubscriptionIDs))
		for _, id := range req.SubscriptionIDs {
			wanted[id] = true
		}

		var freed float64
		var names []string

		for _, s := range data.Subscriptions {
			if wanted[s.ID] && s.Active {
				freed += s.MonthlyCostUnits()
				names = append(names, s.Name)
			}
		}

		return freed, fmt.Sprintf("Cancel %d subscription(s): %s.", len(names), joinNames(names)), nil

	case ScenarioAddSubscription:
		return -req.MonthlyCost, fmt.Sprintf("Add %s at %.2f per month.", orDefault(req.Name, "a subscription"), req.MonthlyCost), nil

	case ScenarioAdjustBudget:
		baseline := budgetBaseline(req.Category, data)
		delta := baseline - req.NewLimit

		return delta, fmt.Sprintf("Change the %s budget from %.2f to %.2f per month.", req.Category, baseline, req.NewLimit), nil

	case ScenarioChangeIncome:
		verb := "Increase"
		if req.IncomeChange < 0 {
			verb = "Decrease"
		}

		return req.IncomeChange, fmt.Sprintf("%s monthly income by %.2f.", verb, math.Abs(req.IncomeChange)), nil

	case ScenarioSavingsGoal:
		months := req.TargetMonths
		if months <= 0 {
			months = defaultHorizonMonths
		}

		contribution := req.TargetAmount / float64(months)

		return -contribution, fmt.Sprintf("Save %.2f over %d months (%.2f per month).", req.TargetAmount, months, contribution), nil

	case ScenarioMajorPurchase:
		months := req.FinanceMonths
		if months <= 0 {
			months = defaultHorizonMonths
		}

		payment := amortize(req.PurchasePrice, req.InterestRate, months)

		return -payment, fmt.Sprintf("Finance %s (%.2f) over %d months at %.2f per month.",
			orDefault(req.Name, "a purchase"), req.PurchasePrice, months, payment), nil

	case ScenarioCutCategory:
		avg := categoryMonthlyAverage(req.Category, data)
		saved := avg * req.CutPercent / 100

		return saved, fmt.Sprintf("Cut %s spending by %.0f%% (about %.2f per month).", req.Category, req.CutPercent, saved), nil

	default:
		return 0, "", fmt.Errorf("%w: %s", ErrUnknownScenario, req.Scenario)
	}
}

// amortize is the flat payment for a principal over n months, a standard
// annuity when an interest rate is given.
func amortize(principal, annualRate float64, months int) float64 {
	if months <= 0 {
		return principal
	}

	if annualRate <= 0 {
		return principal / float64(months)
	}

	r := annualRate / 12

	return principal * r / (1 - math.Pow(1+r, -float64(months)))
}

// project builds the month-by-month series. Savings compound at the
// monthly rate; costs accumulate linearly.
func project(delta float64, horizon int, rate float64) []ProjectionPoint {
	points := make([]ProjectionPoint, horizon)

	var value float64

	for m := 1; m <= horizon; m++ {
		cumulative := delta * float64(m)

		if delta > 0 {
			value = value*(1+rate) + delta
		} else {
			value = cumulative
		}

		points[m-1] = ProjectionPoint{
			Month:      m,
			Cumulative: round2(cumulative),
			Value:      round2(value),
		}
	}

	return points
}

func recommend(delta float64) Recommendation {
	switch {
	case delta >= highlyRecommendedDelta:
		return HighlyRecommended
	case delta > 0:
		return Recommended
	case delta == 0:
		return Neutral
	default:
		return NotRecommended
	}
}

// goalImpacts redirects the configured share of a positive delta to the
// user's incomplete goals, split evenly.
func goalImpacts(delta float64, goals []*goal.Goal, params analysis.Params) []GoalImpact {
	if delta <= 0 {
		return nil
	}

	var open []*goal.Goal

	for _, g := range goals {
		if g.Remaining() > 0 {
			open = append(open, g)
		}
	}

	if len(open) == 0 {
		return nil
	}

	perGoal := delta * params.GoalFundingSplit / float64(len(open))
	perGoalCents := perGoal * 100

	impacts := make([]GoalImpact, 0, len(open))

	for _, g := range open {
		impacts = append(impacts, GoalImpact{
			GoalID:             g.ID,
			Name:               g.Name,
			ExtraMonthly:       round2(perGoal),
			MonthsToCompletion: g.MonthsToCompletion(perGoalCents),
		})
	}

	return impacts
}

// budgetBaseline is the current limit of a matching budget, or the recent
// average spend when no budget exists yet.
func budgetBaseline(category string, data Data) float64 {
	for _, b := range data.Budgets {
		if analysis.MatchCategory(b.Category, category) {
			return b.LimitUnits()
		}
	}

	return categoryMonthlyAverage(category, data)
}

// categoryMonthlyAverage averages the category's spend over the trailing
// three calendar months.
func categoryMonthlyAverage(category string, data Data) float64 {
	now := data.Now
	if now.IsZero() {
		now = time.Now()
	}

	cutoff := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -2, 0)

	var total float64

	for _, tx := range data.Transactions {
		if !tx.IsExpense() || tx.Date.Before(cutoff) || tx.Date.After(now) {
			continue
		}

		if analysis.MatchCategory(tx.CategoryOrDefault(), category) {
			total += tx.AmountUnits()
		}
	}

	return total / 3
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "none"
	case 1:
		return names[0]
	default:
		out := names[0]
		for _, n := range names[1:] {
			out += ", " + n
		}

		return out
	}
}

// Package universe recomputes historical spending under fixed alternate
// policies and reports what each policy would have been worth by now.
package universe

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/fintwin-app/fintwin/internal/analysis"
	"github.com/fintwin-app/fintwin/internal/budget"
	"github.com/fintwin-app/fintwin/internal/goal"
	"github.com/fintwin-app/fintwin/internal/subscription"
	"github.com/fintwin-app/fintwin/internal/transaction"
)

// Type names one counterfactual policy.
type Type string

const (
	TypePerfectBudget    Type = "perfect_budget"
	TypeNoImpulse        Type = "no_impulse"
	TypeInvestor         Type = "investor_you"
	TypeSubscriptionFree Type = "subscription_free"
	TypeSaver            Type = "saver_you"
	TypeFrugal           Type = "frugal_you"
)

// windowMonths is the historical window every universe replays.
const windowMonths = 6

// MonthComparison is one month of actual-vs-alternate history.
type MonthComparison struct {
	Month      string  `json:"month"` // YYYY-MM
	Actual     float64 `json:"actual"`
	Alternate  float64 `json:"alternate"`
	Difference float64 `json:"difference"`
}

// Universe is one fully replayed counterfactual.
type Universe struct {
	Type             Type              `json:"type"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Months           []MonthComparison `json:"months"`
	TotalDifference  float64           `json:"total_difference"`
	PotentialSavings float64           `json:"potential_savings"`
	Insights         []string          `json:"insights"`
}

// monthData is one bucketed month of history.
type monthData struct {
	key     string
	income  float64
	expense float64
	txs     []*transaction.Transaction
	// monthsAgo is how far back the month sits, 0 for the current month.
	monthsAgo int
}

// Generate replays the last six months under each of the six policies and
// returns the universes sorted by potential savings descending. Each
// month's saving is compounded at the configured return rate from its own
// month to now.
func Generate(txs []*transaction.Transaction, budgets []*budget.Budget, subs []*subscription.Subscription, goals []*goal.Goal, params analysis.Params, now time.Time) []Universe {
	window := bucketMonths(txs, now)

	universes := []Universe{
		perfectBudget(window, budgets, params),
		noImpulse(window, params),
		investor(window, params),
		subscriptionFree(window, subs, params),
		saver(window, params),
		frugal(window, params),
	}

	sort.SliceStable(universes, func(i, j int) bool {
		return universes[i].PotentialSavings > universes[j].PotentialSavings
	})

	return universes
}

// bucketMonths splits history into the trailing six calendar months,
// oldest first. Transactions outside the window or in the future are
// dropped.
func bucketMonths(txs []*transaction.Transaction, now time.Time) []monthData {
	window := make([]monthData, windowMonths)
	index := make(map[string]int, windowMonths)

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < windowMonths; i++ {
		m := first.AddDate(0, i-windowMonths+1, 0)
		key := m.Format("2006-01")
		window[i] = monthData{key: key, monthsAgo: windowMonths - 1 - i}
		index[key] = i
	}

	for _, tx := range txs {
		if tx.Date.After(now) {
			continue
		}

		i, ok := index[tx.Date.Format("2006-01")]
		if !ok {
			continue
		}

		if tx.IsExpense() {
			window[i].expense += tx.AmountUnits()
		} else {
			window[i].income += tx.AmountUnits()
		}

		window[i].txs = append(window[i].txs, tx)
	}

	return window
}

// compound grows each month's difference at the monthly return rate from
// its month until now and sums the results.
func compound(months []MonthComparison, window []monthData, params analysis.Params) float64 {
	rate := params.MonthlyReturnRate()

	var total float64

	for i, m := range months {
		total += m.Difference * math.Pow(1+rate, float64(window[i].monthsAgo))
	}

	return math.Round(total*100) / 100
}

func buildUniverse(t Type, name, description string, months []MonthComparison, window []monthData, params analysis.Params) Universe {
	var total float64
	for _, m := range months {
		total += m.Difference
	}

	u := Universe{
		Type:             t,
		Name:             name,
		Description:      description,
		Months:           months,
		TotalDifference:  math.Round(total*100) / 100,
		PotentialSavings: compound(months, window, params),
	}

	u.Insights = insightsFor(u)

	return u
}

func perfectBudget(window []monthData, budgets []*budget.Budget, params analysis.Params) Universe {
	months := make([]MonthComparison, len(window))

	for i, m := range window {
		byCategory := make(map[string]float64)
		for _, tx := range m.txs {
			if tx.IsExpense() {
				byCategory[tx.CategoryOrDefault()] += tx.AmountUnits()
			}
		}

		var alternate float64

		for cat, spent := range byCategory {
			capped := spent

			// Categories without a matching budget replay unchanged.
			for _, b := range budgets {
				if analysis.MatchCategory(cat, b.Category) {
					capped = math.Min(spent, b.LimitUnits())
					break
				}
			}

			alternate += capped
		}

		months[i] = comparison(m.key, m.expense, alternate)
	}

	return buildUniverse(TypePerfectBudget, "Perfect Budget You",
		"You never spent a cent over any category budget.",
		months, window, params)
}

func noImpulse(window []monthData, params analysis.Params) Universe {
	months := make([]MonthComparison, len(window))

	for i, m := range window {
		alternate := m.expense

		for _, tx := range m.txs {
			if tx.IsExpense() && isImpulse(tx, params) {
				alternate -= tx.AmountUnits()
			}
		}

		months[i] = comparison(m.key, m.expense, math.Max(alternate, 0))
	}

	return buildUniverse(TypeNoImpulse, "No-Impulse You",
		"Every impulse purchase skipped, essentials untouched.",
		months, window, params)
}

// isImpulse flags a purchase as impulsive when its description carries an
// impulse keyword, its category is an impulse category, or it is a small
// weekend purchase.
func isImpulse(tx *transaction.Transaction, params analysis.Params) bool {
	desc := strings.ToLower(tx.Description)
	for _, kw := range params.ImpulseKeywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}

	for _, c := range params.ImpulseCategories {
		if strings.EqualFold(tx.CategoryOrDefault(), c) {
			return true
		}
	}

	wd := tx.Date.Weekday()
	weekend := wd == time.Saturday || wd == time.Sunday

	return weekend && tx.AmountUnits() <= params.ImpulseWeekendMax
}

func investor(window []monthData, params analysis.Params) Universe {
	rate := params.MonthlyReturnRate()
	months := make([]MonthComparison, len(window))

	var plain, invested float64

	for i, m := range window {
		net := m.income - m.expense
		plain += net
		invested = invested*(1+rate) + net

		months[i] = MonthComparison{
			Month:      m.key,
			Actual:     math.Round(plain*100) / 100,
			Alternate:  math.Round(invested*100) / 100,
			Difference: math.Round((invested-plain)*100) / 100,
		}
	}

	// The investment gain is already cumulative, so the universe total is
	// the final month's difference rather than a sum.
	var final float64
	if len(months) > 0 {
		final = months[len(months)-1].Difference
	}

	u := Universe{
		Type: TypeInvestor,
		Name: "Investor You",
		Description: fmt.Sprintf("Every month's net savings invested at %.0f%% a year.",
			params.AnnualReturnRate*100),
		Months:           months,
		TotalDifference:  final,
		PotentialSavings: final,
	}

	u.Insights = insightsFor(u)

	return u
}

func subscriptionFree(window []monthData, subs []*subscription.Subscription, params analysis.Params) Universe {
	subCost := float64(subscription.TotalMonthlyCost(subs)) / 100

	months := make([]MonthComparison, len(window))
	for i, m := range window {
		months[i] = comparison(m.key, m.expense, math.Max(m.expense-subCost, 0))
	}

	return buildUniverse(TypeSubscriptionFree, "Subscription-Free You",
		"All recurring subscriptions cancelled six months ago.",
		months, window, params)
}

func saver(window []monthData, params analysis.Params) Universe {
	months := make([]MonthComparison, len(window))

	for i, m := range window {
		actualSavings := m.income - m.expense
		target := m.income * params.SaverTargetRate

		months[i] = MonthComparison{
			Month:      m.key,
			Actual:     math.Round(actualSavings*100) / 100,
			Alternate:  math.Round(target*100) / 100,
			Difference: math.Round((target-actualSavings)*100) / 100,
		}
	}

	return buildUniverse(TypeSaver, "Disciplined Saver You",
		fmt.Sprintf("You banked %.0f%% of every month's income, no exceptions.", params.SaverTargetRate*100),
		months, window, params)
}

func frugal(window []monthData, params analysis.Params) Universe {
	months := make([]MonthComparison, len(window))

	for i, m := range window {
		months[i] = comparison(m.key, m.expense, m.expense*(1-params.FrugalCutRate))
	}

	return buildUniverse(TypeFrugal, "Frugal You",
		fmt.Sprintf("Every expense trimmed by %.0f%%.", params.FrugalCutRate*100),
		months, window, params)
}

// comparison builds an expense-series month where the saving is what the
// alternate policy did not spend.
func comparison(key string, actual, alternate float64) MonthComparison {
	return MonthComparison{
		Month:      key,
		Actual:     math.Round(actual*100) / 100,
		Alternate:  math.Round(alternate*100) / 100,
		Difference: math.Round((actual-alternate)*100) / 100,
	}
}

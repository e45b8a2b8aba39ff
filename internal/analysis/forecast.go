package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/fintwin-app/fintwin/internal/subscription"
	"github.com/fintwin-app/fintwin/internal/transaction"
)

// RiskLevel grades a forecast month.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Forecast is one projected future month.
type Forecast struct {
	Month             string             `json:"month"` // YYYY-MM
	Label             string             `json:"label"` // "Sep 2026"
	ProjectedExpenses float64            `json:"projected_expenses"`
	ProjectedIncome   float64            `json:"projected_income"`
	ProjectedSavings  float64            `json:"projected_savings"`
	RiskLevel         RiskLevel          `json:"risk_level"`
	Warnings          []string           `json:"warnings,omitempty"`
	CategoryBreakdown map[string]float64 `json:"category_breakdown,omitempty"`
}

// forecastWeights bias the trailing three months toward recency.
var forecastWeights = []float64{0.2, 0.3, 0.5}

const forecastMonths = 2

// GenerateForecasts projects the next two months from a recency-weighted
// average of recent history, a damped aggregate trend, and the normalized
// monthly subscription load. With no data at all it returns two zeroed
// placeholder months rather than failing.
func GenerateForecasts(txs []*transaction.Transaction, patterns []SpendingPattern, subs []*subscription.Subscription, params Params, now time.Time) []Forecast {
	expenseByMonth := make(map[string]float64)
	incomeByMonth := make(map[string]float64)

	for _, tx := range txs {
		if tx.Date.After(now) {
			continue
		}

		if tx.IsExpense() {
			expenseByMonth[monthKey(tx.Date)] += tx.AmountUnits()
		} else {
			incomeByMonth[monthKey(tx.Date)] += tx.AmountUnits()
		}
	}

	baseExpense := weightedRecentAverage(expenseByMonth)
	baseIncome := weightedRecentAverage(incomeByMonth)

	// Fall back to the pattern sum when there is no direct expense history.
	if baseExpense == 0 {
		for _, p := range patterns {
			baseExpense += p.AvgMonthlySpend
		}
	}

	subCost := float64(subscription.TotalMonthlyCost(subs)) / 100

	if baseExpense == 0 && baseIncome == 0 && subCost == 0 {
		return placeholderForecasts(now)
	}

	trendPct := aggregateTrendPercent(patterns)
	breakdown := categoryBreakdown(txs, patterns)

	forecasts := make([]Forecast, 0, forecastMonths)

	for offset := 1; offset <= forecastMonths; offset++ {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)

		// Damped trend: half the observed trend, compounded per month out.
		multiplier := math.Pow(1+trendPct/100*0.5, float64(offset))

		expenses := round1((baseExpense + subCost) * multiplier)
		income := round1(baseIncome)
		savings := round1(income - expenses)

		risk, warnings := gradeForecast(income, savings)

		forecasts = append(forecasts, Forecast{
			Month:             month.Format("2006-01"),
			Label:             month.Format("Jan 2006"),
			ProjectedExpenses: expenses,
			ProjectedIncome:   income,
			ProjectedSavings:  savings,
			RiskLevel:         risk,
			Warnings:          warnings,
			CategoryBreakdown: scaleBreakdown(breakdown, expenses),
		})
	}

	return forecasts
}

// weightedRecentAverage averages the last up-to-three monthly totals with
// recency-biased weights, renormalized when fewer months exist.
func weightedRecentAverage(byMonth map[string]float64) float64 {
	months := sortedKeys(byMonth)
	if len(months) == 0 {
		return 0
	}

	if len(months) > 3 {
		months = months[len(months)-3:]
	}

	weights := forecastWeights[len(forecastWeights)-len(months):]

	var sum, weightSum float64

	for i, m := range months {
		sum += byMonth[m] * weights[i]
		weightSum += weights[i]
	}

	return sum / weightSum
}

// aggregateTrendPercent is the spend-weighted mean of per-category trends.
func aggregateTrendPercent(patterns []SpendingPattern) float64 {
	var weighted, total float64

	for _, p := range patterns {
		weighted += p.TrendPercent * p.AvgMonthlySpend
		total += p.AvgMonthlySpend
	}

	if total == 0 {
		return 0
	}

	return weighted / total
}

func gradeForecast(income, savings float64) (RiskLevel, []string) {
	if savings < 0 {
		return RiskCritical, []string{"Projected spending exceeds projected income"}
	}

	if income <= 0 {
		return RiskLow, nil
	}

	rate := savings / income * 100

	switch {
	case rate < 10:
		return RiskHigh, []string{"Projected savings rate is below 10%"}
	case rate < 20:
		return RiskMedium, []string{"Projected savings rate is below 20%"}
	default:
		return RiskLow, nil
	}
}

// categoryBreakdown returns per-category proportions of spend, from
// patterns when available, otherwise from the last 50 expense rows.
func categoryBreakdown(txs []*transaction.Transaction, patterns []SpendingPattern) map[string]float64 {
	totals := make(map[string]float64)

	if len(patterns) > 0 {
		for _, p := range patterns {
			totals[p.Category] = p.AvgMonthlySpend
		}
	} else {
		var expenses []*transaction.Transaction

		for _, tx := range txs {
			if tx.IsExpense() {
				expenses = append(expenses, tx)
			}
		}

		sort.Slice(expenses, func(i, j int) bool {
			return expenses[i].Date.Before(expenses[j].Date)
		})

		if len(expenses) > 50 {
			expenses = expenses[len(expenses)-50:]
		}

		for _, tx := range expenses {
			totals[tx.CategoryOrDefault()] += tx.AmountUnits()
		}
	}

	var sum float64
	for _, v := range totals {
		sum += v
	}

	if sum == 0 {
		return nil
	}

	shares := make(map[string]float64, len(totals))
	for cat, v := range totals {
		shares[cat] = v / sum
	}

	return shares
}

func scaleBreakdown(shares map[string]float64, expenses float64) map[string]float64 {
	if shares == nil {
		return nil
	}

	scaled := make(map[string]float64, len(shares))
	for cat, share := range shares {
		scaled[cat] = round1(share * expenses)
	}

	return scaled
}

func placeholderForecasts(now time.Time) []Forecast {
	forecasts := make([]Forecast, 0, forecastMonths)

	for offset := 1; offset <= forecastMonths; offset++ {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)

		forecasts = append(forecasts, Forecast{
			Month:     month.Format("2006-01"),
			Label:     month.Format("Jan 2006"),
			RiskLevel: RiskLow,
			Warnings:  []string{"Add transactions to see your forecast"},
		})
	}

	return forecasts
}

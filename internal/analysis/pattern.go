package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/fintwin-app/fintwin/internal/transaction"
)

// TrendDirection labels how a category's monthly spend is moving.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// SpendingPattern summarizes one category's expense behavior.
type SpendingPattern struct {
	Category           string         `json:"category"`
	AvgMonthlySpend    float64        `json:"avg_monthly_spend"`
	AvgDailySpend      float64        `json:"avg_daily_spend"`
	Trend              TrendDirection `json:"trend"`
	TrendPercent       float64        `json:"trend_percent"`
	Volatility         float64        `json:"volatility"`
	SeasonalPeaks      []string       `json:"seasonal_peaks,omitempty"`
	HighSpendDays      []int          `json:"high_spend_days,omitempty"`
	PredictedNextMonth float64        `json:"predicted_next_month"`
	Confidence         float64        `json:"confidence"`
	MonthsOfData       int            `json:"months_of_data"`
}

// AnalyzePatterns derives a SpendingPattern per expense category, sorted by
// average monthly spend descending. Fewer than two expense rows overall
// yields nil. The function never mutates its input and is deterministic for
// a given input, so repeated calls return identical results.
func AnalyzePatterns(txs []*transaction.Transaction, params Params) []SpendingPattern {
	var expenses []*transaction.Transaction

	for _, tx := range txs {
		if tx.IsExpense() {
			expenses = append(expenses, tx)
		}
	}

	if len(expenses) < 2 {
		return nil
	}

	byCategory := make(map[string][]*transaction.Transaction)
	for _, tx := range expenses {
		cat := tx.CategoryOrDefault()
		byCategory[cat] = append(byCategory[cat], tx)
	}

	patterns := make([]SpendingPattern, 0, len(byCategory))

	for cat, catTxs := range byCategory {
		patterns = append(patterns, analyzeCategory(cat, catTxs, params))
	}

	sort.Slice(patterns, func(i, j int) bool {
		return patterns[i].AvgMonthlySpend > patterns[j].AvgMonthlySpend
	})

	return patterns
}

func analyzeCategory(cat string, txs []*transaction.Transaction, params Params) SpendingPattern {
	monthTotals := make(map[string]float64)
	for _, tx := range txs {
		monthTotals[monthKey(tx.Date)] += tx.AmountUnits()
	}

	months := sortedKeys(monthTotals)

	totals := make([]float64, len(months))
	for i, m := range months {
		totals[i] = monthTotals[m]
	}

	avgMonthly := mean(totals)

	trend, trendPct := detectTrend(totals, params)

	volatility := 0.0
	if avgMonthly > 0 {
		volatility = clamp(stddev(totals)/avgMonthly, 0, 1)
	}

	prediction := math.Round(mean(lastN(totals, 3)) * (1 + trendPct/100))
	if prediction < 0 {
		prediction = 0
	}

	confidence := clamp((1-volatility)*80+math.Min(float64(len(months))/6, 1)*20, 0, 100)

	return SpendingPattern{
		Category:           cat,
		AvgMonthlySpend:    round1(avgMonthly),
		AvgDailySpend:      round1(avgMonthly / 30),
		Trend:              trend,
		TrendPercent:       round1(trendPct),
		Volatility:         volatility,
		SeasonalPeaks:      seasonalPeaks(months, monthTotals, avgMonthly, params),
		HighSpendDays:      highSpendDays(txs, params),
		PredictedNextMonth: prediction,
		Confidence:         round1(confidence),
		MonthsOfData:       len(months),
	}
}

// detectTrend compares recent spend against the prior baseline. With four
// or more months the last three are averaged against everything before
// them; with fewer, only the last two months are compared and the
// threshold is tighter.
func detectTrend(totals []float64, params Params) (TrendDirection, float64) {
	if len(totals) < 2 {
		return TrendStable, 0
	}

	var recent, prior, threshold float64

	if len(totals) >= 4 {
		recent = mean(totals[len(totals)-3:])
		prior = mean(totals[:len(totals)-3])
		threshold = params.TrendThresholdPct
	} else {
		recent = totals[len(totals)-1]
		prior = totals[len(totals)-2]
		threshold = params.ShortTrendThresholdPct
	}

	if prior == 0 {
		return TrendStable, 0
	}

	changePct := (recent - prior) / prior * 100

	switch {
	case changePct > threshold:
		return TrendIncreasing, changePct
	case changePct < -threshold:
		return TrendDecreasing, changePct
	default:
		return TrendStable, changePct
	}
}

// seasonalPeaks finds calendar months whose average total (across years)
// exceeds the peak factor times the overall monthly average.
func seasonalPeaks(months []string, monthTotals map[string]float64, avgMonthly float64, params Params) []string {
	if avgMonthly == 0 {
		return nil
	}

	sums := make(map[time.Month]float64)
	counts := make(map[time.Month]int)

	for _, m := range months {
		t, err := time.Parse("2006-01", m)
		if err != nil {
			continue
		}

		sums[t.Month()] += monthTotals[m]
		counts[t.Month()]++
	}

	var peaks []string

	for m := time.January; m <= time.December; m++ {
		if counts[m] == 0 {
			continue
		}

		if sums[m]/float64(counts[m]) > params.SeasonalPeakFactor*avgMonthly {
			peaks = append(peaks, m.String()[:3])
		}
	}

	return peaks
}

// highSpendDays finds days of the month with transaction counts above the
// day-pattern factor times the mean daily count. The mean divides by a
// fixed 31 days, a deliberate calendar-unaware approximation.
func highSpendDays(txs []*transaction.Transaction, params Params) []int {
	counts := make(map[int]int)
	for _, tx := range txs {
		counts[tx.Date.Day()]++
	}

	meanCount := float64(len(txs)) / 31

	var days []int

	for day, n := range counts {
		if float64(n) > params.DayPatternFactor*meanCount {
			days = append(days, day)
		}
	}

	sort.Ints(days)

	return days
}

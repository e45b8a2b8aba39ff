// Package analysis derives spending patterns, spend velocity, forecasts and
// risk alerts from a user's transaction history. Everything here is a pure
// function of its inputs plus a Params set; nothing is persisted.
package analysis

// Params collects the heuristic constants used across the analysis services.
// The defaults mirror the product's tuning; none of them are validated
// financial assumptions, which is why they live here and not inline.
type Params struct {
	// AnnualReturnRate is the assumed investment return used when
	// compounding counterfactual or hypothetical savings.
	AnnualReturnRate float64

	// SaverTargetRate is the savings-rate target for the "saver" universe.
	SaverTargetRate float64

	// FrugalCutRate is the flat expense reduction for the "frugal" universe.
	FrugalCutRate float64

	// GoalFundingSplit is the share of freed-up monthly savings assumed to
	// be redirected to active goals in what-if estimates.
	GoalFundingSplit float64

	// SeasonalPeakFactor flags calendar months above this multiple of the
	// average monthly spend as seasonal peaks.
	SeasonalPeakFactor float64

	// DayPatternFactor flags days of month with transaction counts above
	// this multiple of the mean daily count.
	DayPatternFactor float64

	// TrendThresholdPct is the percentage change needed to call a trend
	// with four or more months of data; ShortTrendThresholdPct applies
	// below that.
	TrendThresholdPct      float64
	ShortTrendThresholdPct float64

	// OverdraftAlertDays is the runway length at or below which an
	// overdraft alert fires.
	OverdraftAlertDays int

	// BudgetBreachFactor is how far ahead of the prorated pace a budget's
	// spend must be before an alert fires.
	BudgetBreachFactor float64

	// UnusualSpendFactor is the multiple of the weekly rate at which the
	// trailing week counts as unusual.
	UnusualSpendFactor float64

	// Impulse heuristics for the no-impulse universe: descriptions matching
	// a keyword, categories in the list, or weekend purchases below
	// ImpulseWeekendMax (currency units) count as impulse buys.
	ImpulseKeywords   []string
	ImpulseCategories []string
	ImpulseWeekendMax float64
}

// DefaultParams returns the product defaults.
func DefaultParams() Params {
	return Params{
		AnnualReturnRate:       0.07,
		SaverTargetRate:        0.20,
		FrugalCutRate:          0.30,
		GoalFundingSplit:       0.50,
		SeasonalPeakFactor:     1.2,
		DayPatternFactor:       1.5,
		TrendThresholdPct:      10,
		ShortTrendThresholdPct: 5,
		OverdraftAlertDays:     15,
		BudgetBreachFactor:     1.3,
		UnusualSpendFactor:     1.5,
		ImpulseKeywords: []string{
			"sale", "clearance", "deal", "discount", "flash",
			"limited", "impulse", "treat",
		},
		ImpulseCategories: []string{"Shopping", "Entertainment"},
		ImpulseWeekendMax: 50,
	}
}

// MonthlyReturnRate converts the annual return rate to a monthly one.
func (p Params) MonthlyReturnRate() float64 {
	return p.AnnualReturnRate / 12
}

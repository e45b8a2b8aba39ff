package analysis

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintwin-app/fintwin/internal/budget"
	"github.com/fintwin-app/fintwin/internal/transaction"
)

func intPtr(v int) *int { return &v }

func TestDetectRisks_AllClearFallback(t *testing.T) {
	alerts := DetectRisks(nil, Velocity{}, nil, nil, DefaultParams(), day(2026, time.August, 30))

	require.Len(t, alerts, 1)
	assert.Equal(t, AlertAllClear, alerts[0].Type)
	assert.Equal(t, SeverityInfo, alerts[0].Severity)
}

func TestDetectRisks_OverdraftSeverity(t *testing.T) {
	now := day(2026, time.August, 30)
	params := DefaultParams()

	tests := []struct {
		name         string
		days         *int
		wantSeverity Severity
		wantAlert    bool
	}{
		{name: "CriticalWithinFiveDays", days: intPtr(3), wantSeverity: SeverityCritical, wantAlert: true},
		{name: "DangerWithinTenDays", days: intPtr(8), wantSeverity: SeverityDanger, wantAlert: true},
		{name: "WarningWithinHorizon", days: intPtr(14), wantSeverity: SeverityWarning, wantAlert: true},
		{name: "BeyondHorizon", days: intPtr(40), wantAlert: false},
		{name: "NoSpendRate", days: nil, wantAlert: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vel := Velocity{DailyRate: 50, DaysUntilBroke: tc.days}

			alerts := DetectRisks(nil, vel, nil, nil, params, now)
			require.NotEmpty(t, alerts)

			if !tc.wantAlert {
				assert.NotEqual(t, AlertOverdraft, alerts[0].Type)
				return
			}

			assert.Equal(t, AlertOverdraft, alerts[0].Type)
			assert.Equal(t, tc.wantSeverity, alerts[0].Severity)
		})
	}
}

func TestDetectRisks_OverdraftProbability(t *testing.T) {
	vel := Velocity{DaysUntilBroke: intPtr(4)}

	alerts := DetectRisks(nil, vel, nil, nil, DefaultParams(), day(2026, time.August, 30))

	require.NotEmpty(t, alerts)
	require.Equal(t, AlertOverdraft, alerts[0].Type)
	assert.InDelta(t, 80, alerts[0].Probability, 0.01)
}

func TestDetectRisks_BudgetBreach(t *testing.T) {
	// September 10th: a third of a 30-day month gone.
	now := day(2026, time.September, 10)

	foodBudget := &budget.Budget{
		ID:           uuid.New(),
		UserID:       "user-1",
		Category:     "Food",
		MonthlyLimit: 30000,
		Period:       budget.PeriodMonthly,
	}

	tests := []struct {
		name       string
		spentCents int64
		wantAlert  bool
	}{
		{name: "WellAheadOfPace", spentCents: 25000, wantAlert: true},
		{name: "OnPace", spentCents: 10000, wantAlert: false},
		{name: "AlreadyBlown", spentCents: 31000, wantAlert: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			txs := []*transaction.Transaction{
				expense("Food", tc.spentCents, day(2026, time.September, 5)),
			}

			alerts := DetectRisks(txs, Velocity{}, []*budget.Budget{foodBudget}, nil, DefaultParams(), now)
			require.NotEmpty(t, alerts)

			if tc.wantAlert {
				assert.Equal(t, AlertBudgetBreach, alerts[0].Type)
				assert.Equal(t, SeverityWarning, alerts[0].Severity)
				assert.NotEmpty(t, alerts[0].Tip)
			} else {
				assert.NotEqual(t, AlertBudgetBreach, alerts[0].Type)
			}
		})
	}
}

func TestDetectRisks_BudgetBreachMatchesLooseCategoryNames(t *testing.T) {
	now := day(2026, time.September, 10)

	b := &budget.Budget{
		ID:           uuid.New(),
		Category:     "food",
		MonthlyLimit: 30000,
		Period:       budget.PeriodMonthly,
	}
	txs := []*transaction.Transaction{
		expense("Food & Drink", 25000, day(2026, time.September, 5)),
	}

	alerts := DetectRisks(txs, Velocity{}, []*budget.Budget{b}, nil, DefaultParams(), now)

	require.NotEmpty(t, alerts)
	assert.Equal(t, AlertBudgetBreach, alerts[0].Type)
}

func TestDetectRisks_UnusualSpending(t *testing.T) {
	now := day(2026, time.August, 30)
	vel := Velocity{WeeklyRate: 100}

	txs := []*transaction.Transaction{
		expense("Shopping", 20000, now.AddDate(0, 0, -2)),
	}

	alerts := DetectRisks(txs, vel, nil, nil, DefaultParams(), now)

	require.NotEmpty(t, alerts)
	assert.Equal(t, AlertUnusualSpending, alerts[0].Type)
	assert.Equal(t, SeverityWarning, alerts[0].Severity)
}

func TestDetectRisks_ForecastDeficit(t *testing.T) {
	forecasts := []Forecast{
		{Month: "2026-09", Label: "Sep 2026", RiskLevel: RiskMedium},
		{Month: "2026-10", Label: "Oct 2026", RiskLevel: RiskCritical, ProjectedSavings: -300},
	}

	alerts := DetectRisks(nil, Velocity{}, nil, forecasts, DefaultParams(), day(2026, time.August, 30))

	require.NotEmpty(t, alerts)
	assert.Equal(t, AlertForecastDeficit, alerts[0].Type)
	assert.Equal(t, SeverityDanger, alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "Oct 2026")
}

func TestDetectRisks_SortsBySeverity(t *testing.T) {
	now := day(2026, time.August, 30)

	vel := Velocity{DailyRate: 50, WeeklyRate: 100, DaysUntilBroke: intPtr(2)}
	txs := []*transaction.Transaction{
		expense("Shopping", 20000, now.AddDate(0, 0, -2)),
	}
	forecasts := []Forecast{
		{Month: "2026-09", Label: "Sep 2026", RiskLevel: RiskCritical, ProjectedSavings: -100},
	}

	alerts := DetectRisks(txs, vel, nil, forecasts, DefaultParams(), now)

	require.GreaterOrEqual(t, len(alerts), 3)
	assert.Equal(t, SeverityCritical, alerts[0].Severity)

	for i := 1; i < len(alerts); i++ {
		assert.GreaterOrEqual(t, severityRank[alerts[i].Severity], severityRank[alerts[i-1].Severity])
	}
}

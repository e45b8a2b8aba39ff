package analysis

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintwin-app/fintwin/internal/transaction"
)

func expense(cat string, cents int64, date time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		ID:       uuid.New(),
		UserID:   "user-1",
		Amount:   cents,
		Type:     transaction.TypeExpense,
		Category: cat,
		Date:     date,
	}
}

func income(cents int64, date time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		ID:       uuid.New(),
		UserID:   "user-1",
		Amount:   cents,
		Type:     transaction.TypeIncome,
		Category: "Salary",
		Date:     date,
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func TestAnalyzePatterns_NotEnoughData(t *testing.T) {
	params := DefaultParams()

	tests := []struct {
		name string
		txs  []*transaction.Transaction
	}{
		{name: "NoTransactions", txs: nil},
		{
			name: "SingleExpense",
			txs:  []*transaction.Transaction{expense("Food", 10000, day(2026, time.June, 15))},
		},
		{
			name: "IncomeOnly",
			txs: []*transaction.Transaction{
				income(300000, day(2026, time.June, 1)),
				income(300000, day(2026, time.July, 1)),
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, AnalyzePatterns(tc.txs, params))
		})
	}
}

func TestAnalyzePatterns_ConstantSpendIsStable(t *testing.T) {
	txs := []*transaction.Transaction{
		expense("Food", 10000, day(2026, time.May, 15)),
		expense("Food", 10000, day(2026, time.June, 15)),
		expense("Food", 10000, day(2026, time.July, 15)),
	}

	patterns := AnalyzePatterns(txs, DefaultParams())
	require.Len(t, patterns, 1)

	p := patterns[0]
	assert.Equal(t, "Food", p.Category)
	assert.Equal(t, TrendStable, p.Trend)
	assert.InDelta(t, 0, p.Volatility, 1e-9)
	assert.InDelta(t, 100, p.AvgMonthlySpend, 0.01)
	assert.InDelta(t, 100, p.PredictedNextMonth, 0.01)
	assert.Equal(t, 3, p.MonthsOfData)
	// Zero volatility plus three months of data.
	assert.InDelta(t, 90, p.Confidence, 0.1)
}

func TestAnalyzePatterns_DetectsIncreasingTrend(t *testing.T) {
	txs := []*transaction.Transaction{
		expense("Food", 10000, day(2026, time.May, 15)),
		expense("Food", 10000, day(2026, time.June, 15)),
		expense("Food", 20000, day(2026, time.July, 15)),
	}

	patterns := AnalyzePatterns(txs, DefaultParams())
	require.Len(t, patterns, 1)

	p := patterns[0]
	assert.Equal(t, TrendIncreasing, p.Trend)
	assert.InDelta(t, 100, p.TrendPercent, 0.1)
	// mean of the last three months times the trend multiplier.
	assert.InDelta(t, 267, p.PredictedNextMonth, 0.01)
	assert.Greater(t, p.Volatility, 0.0)
}

func TestAnalyzePatterns_DetectsDecreasingTrend(t *testing.T) {
	txs := []*transaction.Transaction{
		expense("Shopping", 20000, day(2026, time.June, 10)),
		expense("Shopping", 10000, day(2026, time.July, 10)),
	}

	patterns := AnalyzePatterns(txs, DefaultParams())
	require.Len(t, patterns, 1)

	assert.Equal(t, TrendDecreasing, patterns[0].Trend)
	assert.InDelta(t, -50, patterns[0].TrendPercent, 0.1)
}

func TestAnalyzePatterns_SortsBySpendDescending(t *testing.T) {
	txs := []*transaction.Transaction{
		expense("Food", 10000, day(2026, time.June, 5)),
		expense("Food", 10000, day(2026, time.July, 5)),
		expense("Rent", 120000, day(2026, time.June, 1)),
		expense("Rent", 120000, day(2026, time.July, 1)),
		expense("Transport", 3000, day(2026, time.July, 20)),
	}

	patterns := AnalyzePatterns(txs, DefaultParams())
	require.Len(t, patterns, 3)

	assert.Equal(t, "Rent", patterns[0].Category)
	assert.Equal(t, "Food", patterns[1].Category)
	assert.Equal(t, "Transport", patterns[2].Category)
}

func TestAnalyzePatterns_UncategorizedFallsBackToDefault(t *testing.T) {
	txs := []*transaction.Transaction{
		expense("", 5000, day(2026, time.June, 5)),
		expense("", 5000, day(2026, time.July, 5)),
	}

	patterns := AnalyzePatterns(txs, DefaultParams())
	require.Len(t, patterns, 1)
	assert.Equal(t, transaction.DefaultCategory, patterns[0].Category)
}

func TestAnalyzePatterns_HighSpendDays(t *testing.T) {
	var txs []*transaction.Transaction
	// Five purchases on the 1st against one each on other days.
	for i := 0; i < 5; i++ {
		txs = append(txs, expense("Food", 2000, day(2026, time.March+time.Month(i), 1)))
	}
	txs = append(txs,
		expense("Food", 2000, day(2026, time.June, 12)),
		expense("Food", 2000, day(2026, time.July, 23)),
	)

	patterns := AnalyzePatterns(txs, DefaultParams())
	require.Len(t, patterns, 1)
	assert.Contains(t, patterns[0].HighSpendDays, 1)
}

func TestAnalyzePatterns_Deterministic(t *testing.T) {
	txs := []*transaction.Transaction{
		expense("Food", 10000, day(2026, time.May, 15)),
		expense("Food", 12000, day(2026, time.June, 15)),
		expense("Rent", 120000, day(2026, time.May, 1)),
		expense("Rent", 120000, day(2026, time.June, 1)),
	}

	first := AnalyzePatterns(txs, DefaultParams())
	second := AnalyzePatterns(txs, DefaultParams())

	assert.Equal(t, first, second)
}

package universe

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintwin-app/fintwin/internal/analysis"
	"github.com/fintwin-app/fintwin/internal/budget"
	"github.com/fintwin-app/fintwin/internal/subscription"
	"github.com/fintwin-app/fintwin/internal/transaction"
)

var testNow = time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

func tx(typ transaction.Type, cat, desc string, cents int64, date time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		ID:          uuid.New(),
		UserID:      "user-1",
		Amount:      cents,
		Type:        typ,
		Category:    cat,
		Description: desc,
		Date:        date,
	}
}

func findUniverse(t *testing.T, universes []Universe, typ Type) Universe {
	t.Helper()

	for _, u := range universes {
		if u.Type == typ {
			return u
		}
	}

	t.Fatalf("universe %s not found", typ)

	return Universe{}
}

func TestGenerate_ReturnsAllSixSorted(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.TypeIncome, "Salary", "salary", 300000, testNow.AddDate(0, -1, 0)),
		tx(transaction.TypeExpense, "Food", "groceries", 100000, testNow.AddDate(0, -1, 0)),
	}

	universes := Generate(txs, nil, nil, nil, analysis.DefaultParams(), testNow)

	require.Len(t, universes, 6)

	for i := 1; i < len(universes); i++ {
		assert.GreaterOrEqual(t, universes[i-1].PotentialSavings, universes[i].PotentialSavings)
	}

	for _, u := range universes {
		assert.Len(t, u.Months, 6)
		assert.NotEmpty(t, u.Insights)
	}
}

func TestPerfectBudget_UnbudgetedCategoryUnchanged(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, "Travel", "flights", 150000, testNow.AddDate(0, -1, 0)),
	}

	universes := Generate(txs, nil, nil, nil, analysis.DefaultParams(), testNow)
	u := findUniverse(t, universes, TypePerfectBudget)

	assert.Zero(t, u.TotalDifference)

	for _, m := range u.Months {
		assert.Equal(t, m.Actual, m.Alternate)
	}
}

func TestPerfectBudget_CapsOverspentCategory(t *testing.T) {
	budgets := []*budget.Budget{
		{ID: uuid.New(), Category: "Food", MonthlyLimit: 30000, Period: budget.PeriodMonthly},
	}
	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, "Food", "groceries", 50000, testNow.AddDate(0, -1, 0)),
		tx(transaction.TypeExpense, "Travel", "flights", 80000, testNow.AddDate(0, -1, 0)),
	}

	universes := Generate(txs, budgets, nil, nil, analysis.DefaultParams(), testNow)
	u := findUniverse(t, universes, TypePerfectBudget)

	// Food capped at 300, Travel untouched.
	assert.InDelta(t, 200, u.TotalDifference, 0.01)
	assert.Greater(t, u.PotentialSavings, u.TotalDifference)
}

func TestNoImpulse_RemovesFlaggedPurchases(t *testing.T) {
	params := analysis.DefaultParams()

	monday := time.Date(2026, time.July, 6, 12, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, time.July, 4, 12, 0, 0, 0, time.UTC)

	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, "Food", "weekly groceries", 40000, monday),
		tx(transaction.TypeExpense, "Food", "impulse snack run", 3000, monday),
		// Small weekend purchase, flagged by amount and day alone.
		tx(transaction.TypeExpense, "Food", "corner shop", 2000, saturday),
	}

	universes := Generate(txs, nil, nil, nil, params, testNow)
	u := findUniverse(t, universes, TypeNoImpulse)

	assert.InDelta(t, 50, u.TotalDifference, 0.01)
}

func TestSubscriptionFree_RemovesFlatMonthlyCost(t *testing.T) {
	subs := []*subscription.Subscription{
		{ID: uuid.New(), Name: "Streaming", Price: 1500, BillingCycle: subscription.CycleMonthly, Active: true},
	}
	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, "Entertainment", "streaming", 1500, testNow.AddDate(0, -1, 0)),
		tx(transaction.TypeExpense, "Entertainment", "streaming", 1500, testNow.AddDate(0, -2, 0)),
	}

	universes := Generate(txs, nil, subs, nil, analysis.DefaultParams(), testNow)
	u := findUniverse(t, universes, TypeSubscriptionFree)

	assert.InDelta(t, 30, u.TotalDifference, 0.01)

	// Months with no spend cannot go negative.
	for _, m := range u.Months {
		assert.GreaterOrEqual(t, m.Alternate, 0.0)
	}
}

func TestInvestor_CompoundsNetSavings(t *testing.T) {
	var txs []*transaction.Transaction
	for i := 1; i <= 6; i++ {
		txs = append(txs,
			tx(transaction.TypeIncome, "Salary", "salary", 300000, testNow.AddDate(0, -i, 0)),
			tx(transaction.TypeExpense, "Rent", "rent", 200000, testNow.AddDate(0, -i, 0)),
		)
	}

	universes := Generate(txs, nil, nil, nil, analysis.DefaultParams(), testNow)
	u := findUniverse(t, universes, TypeInvestor)

	assert.Positive(t, u.PotentialSavings)
	// Growth on six months of savings stays well below the principal.
	assert.Less(t, u.PotentialSavings, 6000.0)

	last := u.Months[len(u.Months)-1]
	assert.Greater(t, last.Alternate, last.Actual)
}

func TestFrugal_CutsEveryExpense(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, "Food", "groceries", 100000, testNow.AddDate(0, -1, 0)),
	}

	universes := Generate(txs, nil, nil, nil, analysis.DefaultParams(), testNow)
	u := findUniverse(t, universes, TypeFrugal)

	assert.InDelta(t, 300, u.TotalDifference, 0.01)
}

func TestGenerate_IgnoresHistoryOutsideWindow(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, "Food", "old groceries", 100000, testNow.AddDate(0, -9, 0)),
		tx(transaction.TypeExpense, "Food", "future groceries", 100000, testNow.AddDate(0, 1, 0)),
	}

	universes := Generate(txs, nil, nil, nil, analysis.DefaultParams(), testNow)
	u := findUniverse(t, universes, TypeFrugal)

	assert.Zero(t, u.TotalDifference)
}

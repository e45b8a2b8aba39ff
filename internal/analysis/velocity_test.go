package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintwin-app/fintwin/internal/transaction"
)

func TestComputeVelocity_EmptyInput(t *testing.T) {
	v := ComputeVelocity(nil, day(2026, time.August, 30))

	assert.Zero(t, v.DailyRate)
	assert.Zero(t, v.MonthlyRate)
	assert.InDelta(t, 100, v.BurnRate, 0.01)
	assert.Nil(t, v.DaysUntilBroke)
}

func TestComputeVelocity_Rates(t *testing.T) {
	now := day(2026, time.August, 30)
	txs := []*transaction.Transaction{
		income(300000, now.AddDate(0, 0, -25)),
		expense("Food", 90000, now.AddDate(0, 0, -20)),
		expense("Rent", 60000, now.AddDate(0, 0, -10)),
	}

	v := ComputeVelocity(txs, now)

	assert.InDelta(t, 50, v.DailyRate, 0.01)
	assert.InDelta(t, 350, v.WeeklyRate, 0.01)
	assert.InDelta(t, 1500, v.MonthlyRate, 0.01)
	assert.InDelta(t, 50, v.BurnRate, 0.01)

	require.NotNil(t, v.DaysUntilBroke)
	assert.Equal(t, 30, *v.DaysUntilBroke)
}

func TestComputeVelocity_OverspendingAgainstIncome(t *testing.T) {
	now := day(2026, time.August, 30)
	txs := []*transaction.Transaction{
		income(300000, now.AddDate(0, 0, -25)),
		expense("Rent", 330000, now.AddDate(0, 0, -15)),
	}

	v := ComputeVelocity(txs, now)

	assert.InDelta(t, 110, v.BurnRate, 0.01)

	require.NotNil(t, v.DaysUntilBroke)
	assert.Equal(t, 0, *v.DaysUntilBroke)
}

func TestComputeVelocity_NoIncomeInWindow(t *testing.T) {
	now := day(2026, time.August, 30)
	txs := []*transaction.Transaction{
		expense("Food", 30000, now.AddDate(0, 0, -5)),
	}

	v := ComputeVelocity(txs, now)

	assert.InDelta(t, 100, v.BurnRate, 0.01)

	require.NotNil(t, v.DaysUntilBroke)
	assert.Equal(t, 0, *v.DaysUntilBroke)
}

func TestComputeVelocity_Acceleration(t *testing.T) {
	now := day(2026, time.August, 30)

	tests := []struct {
		name string
		txs  []*transaction.Transaction
		want float64
	}{
		{
			name: "SpendingUpFiftyPercent",
			txs: []*transaction.Transaction{
				expense("Food", 100000, now.AddDate(0, 0, -45)),
				expense("Food", 150000, now.AddDate(0, 0, -15)),
			},
			want: 50,
		},
		{
			name: "SpendingHalved",
			txs: []*transaction.Transaction{
				expense("Food", 100000, now.AddDate(0, 0, -45)),
				expense("Food", 50000, now.AddDate(0, 0, -15)),
			},
			want: -50,
		},
		{
			name: "NoPriorWindow",
			txs: []*transaction.Transaction{
				expense("Food", 150000, now.AddDate(0, 0, -15)),
			},
			want: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := ComputeVelocity(tc.txs, now)
			assert.InDelta(t, tc.want, v.Acceleration, 0.01)
		})
	}
}

func TestComputeVelocity_IgnoresFutureTransactions(t *testing.T) {
	now := day(2026, time.August, 30)
	txs := []*transaction.Transaction{
		expense("Food", 30000, now.AddDate(0, 0, -5)),
		expense("Food", 999900, now.AddDate(0, 0, 3)),
	}

	v := ComputeVelocity(txs, now)

	assert.InDelta(t, 300, v.MonthlyRate, 0.01)
}

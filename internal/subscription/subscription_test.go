package subscription_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fintwin-app/fintwin/internal/subscription"
)

func TestMonthlyCost(t *testing.T) {
	type testCase struct {
		name  string
		sub   subscription.Subscription
		wantC int64
	}

	tests := []testCase{
		{
			name:  "Monthly",
			sub:   subscription.Subscription{Price: 999, BillingCycle: subscription.CycleMonthly},
			wantC: 999,
		},
		{
			name:  "YearlyDividesByTwelve",
			sub:   subscription.Subscription{Price: 12000, BillingCycle: subscription.CycleYearly},
			wantC: 1000,
		},
		{
			name:  "WeeklyMultipliesByFour",
			sub:   subscription.Subscription{Price: 250, BillingCycle: subscription.CycleWeekly},
			wantC: 1000,
		},
		{
			name:  "UnknownCycleTreatedAsMonthly",
			sub:   subscription.Subscription{Price: 500},
			wantC: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantC, tt.sub.MonthlyCost())
		})
	}
}

func TestTotalMonthlyCost(t *testing.T) {
	subs := []*subscription.Subscription{
		{Price: 999, BillingCycle: subscription.CycleMonthly, Active: true},
		{Price: 12000, BillingCycle: subscription.CycleYearly, Active: true},
		{Price: 500, BillingCycle: subscription.CycleMonthly, Active: false},     // cancelled
		{Price: 700, BillingCycle: subscription.CycleMonthly, Active: true, Trial: true}, // trial
	}

	assert.Equal(t, int64(1999), subscription.TotalMonthlyCost(subs))
}

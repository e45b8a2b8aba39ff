package digest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fintwin-app/fintwin/internal/analysis"
	"github.com/fintwin-app/fintwin/internal/budget"
	"github.com/fintwin-app/fintwin/internal/goal"
	"github.com/fintwin-app/fintwin/internal/insight"
	"github.com/fintwin-app/fintwin/internal/money"
	"github.com/fintwin-app/fintwin/internal/transaction"
)

const testUser = "user-1"

var testNow = time.Date(2026, time.August, 30, 8, 0, 0, 0, time.UTC)

type fixture struct {
	snapshots    *MockSnapshotter
	transactions *insight.MockTransactionSource
	budgets      *insight.MockBudgetSource
	goals        *insight.MockGoalSource
	mailer       *MockMailer
	service      *Service
}

func newFixture(t *testing.T) (*gomock.Controller, *fixture) {
	ctrl := gomock.NewController(t)

	f := &fixture{
		snapshots:    NewMockSnapshotter(ctrl),
		transactions: insight.NewMockTransactionSource(ctrl),
		budgets:      insight.NewMockBudgetSource(ctrl),
		goals:        insight.NewMockGoalSource(ctrl),
		mailer:       NewMockMailer(ctrl),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.service = NewService(f.snapshots, f.transactions, f.budgets, f.goals, f.mailer, money.Default(), logger)
	f.service.now = func() time.Time { return testNow }

	return ctrl, f
}

func weekTransactions() []*transaction.Transaction {
	return []*transaction.Transaction{
		{ID: uuid.New(), UserID: testUser, Amount: 12000, Type: transaction.TypeExpense, Category: "Food", Date: testNow.AddDate(0, 0, -2)},
		{ID: uuid.New(), UserID: testUser, Amount: 8000, Type: transaction.TypeExpense, Category: "Transport", Date: testNow.AddDate(0, 0, -3)},
		{ID: uuid.New(), UserID: testUser, Amount: 300000, Type: transaction.TypeIncome, Category: "Salary", Date: testNow.AddDate(0, 0, -5)},
	}
}

func TestService_Build(t *testing.T) {
	ctrl, f := newFixture(t)
	defer ctrl.Finish()

	// Weekly window, then the month-to-date window for budget usage.
	f.transactions.EXPECT().List(gomock.Any(), testUser, gomock.Any()).Return(weekTransactions(), nil).Times(2)
	f.budgets.EXPECT().List(gomock.Any(), testUser).Return([]*budget.Budget{
		{ID: uuid.New(), Category: "Food", MonthlyLimit: 40000, Period: budget.PeriodMonthly},
	}, nil)
	f.goals.EXPECT().List(gomock.Any(), testUser).Return([]*goal.Goal{
		{ID: uuid.New(), Name: "Holiday", TargetAmount: 100000, SavedAmount: 25000},
	}, nil)
	f.snapshots.EXPECT().Snapshot(gomock.Any(), testUser, false).Return(&insight.Snapshot{
		Alerts: []analysis.Alert{{Type: analysis.AlertOverdraft, Severity: analysis.SeverityCritical, Title: "Overdraft risk", Message: "Money runs out soon."}},
	}, nil)

	d, err := f.service.Build(context.Background(), testUser)

	require.NoError(t, err)
	assert.Equal(t, int64(20000), d.SpentCents)
	assert.Equal(t, int64(300000), d.IncomeCents)

	require.Len(t, d.TopCategories, 2)
	assert.Equal(t, "Food", d.TopCategories[0].Category)

	require.Len(t, d.Budgets, 1)
	assert.Equal(t, int64(12000), d.Budgets[0].SpentCents)

	require.Len(t, d.Goals, 1)
	assert.InDelta(t, 25, d.Goals[0].Progress, 0.01)

	require.NotNil(t, d.TopAlert)
	assert.Equal(t, "Overdraft risk", d.TopAlert.Title)
}

func TestService_BuildWithoutSnapshot(t *testing.T) {
	ctrl, f := newFixture(t)
	defer ctrl.Finish()

	f.transactions.EXPECT().List(gomock.Any(), testUser, gomock.Any()).Return(nil, nil)
	f.budgets.EXPECT().List(gomock.Any(), testUser).Return(nil, nil)
	f.goals.EXPECT().List(gomock.Any(), testUser).Return(nil, nil)
	f.snapshots.EXPECT().Snapshot(gomock.Any(), testUser, false).Return(nil, errors.New("analysis down"))

	d, err := f.service.Build(context.Background(), testUser)

	require.NoError(t, err)
	assert.Nil(t, d.TopAlert)
	assert.Zero(t, d.SpentCents)
}

func TestService_BuildTransactionErrorPropagates(t *testing.T) {
	ctrl, f := newFixture(t)
	defer ctrl.Finish()

	f.transactions.EXPECT().List(gomock.Any(), testUser, gomock.Any()).Return(nil, errors.New("db offline"))

	_, err := f.service.Build(context.Background(), testUser)

	assert.Error(t, err)
}

func TestService_Render(t *testing.T) {
	_, f := newFixture(t)

	d := &Digest{
		PeriodStart: testNow.AddDate(0, 0, -7),
		PeriodEnd:   testNow,
		SpentCents:  20000,
		IncomeCents: 300000,
		TopCategories: []CategoryTotal{
			{Category: "Food", Cents: 12000},
		},
		Budgets: []BudgetUsage{
			{Category: "Food", SpentCents: 12000, LimitCents: 40000},
		},
		Goals: []GoalProgress{
			{Name: "Holiday", Progress: 25},
		},
		TopAlert: &analysis.Alert{Title: "Overdraft risk", Message: "Money runs out soon."},
	}

	body := f.service.Render(d)

	assert.Contains(t, body, "Spent:")
	assert.Contains(t, body, "200.00")
	assert.Contains(t, body, "3,000.00")
	assert.Contains(t, body, "Food")
	assert.Contains(t, body, "30%")
	assert.Contains(t, body, "Holiday")
	assert.Contains(t, body, "Overdraft risk")
}

func TestService_Send(t *testing.T) {
	ctrl, f := newFixture(t)
	defer ctrl.Finish()

	f.transactions.EXPECT().List(gomock.Any(), testUser, gomock.Any()).Return(weekTransactions(), nil).AnyTimes()
	f.budgets.EXPECT().List(gomock.Any(), testUser).Return(nil, nil)
	f.goals.EXPECT().List(gomock.Any(), testUser).Return(nil, nil)
	f.snapshots.EXPECT().Snapshot(gomock.Any(), testUser, false).Return(&insight.Snapshot{}, nil)

	f.mailer.EXPECT().Send("user@example.com", gomock.Any(), gomock.Any()).Return(nil)

	err := f.service.Send(context.Background(), testUser, "user@example.com")

	assert.NoError(t, err)
}

func TestService_SendAllContinuesOnFailure(t *testing.T) {
	ctrl, f := newFixture(t)
	defer ctrl.Finish()

	f.transactions.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	f.budgets.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	f.goals.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	f.snapshots.EXPECT().Snapshot(gomock.Any(), gomock.Any(), false).Return(&insight.Snapshot{}, nil).AnyTimes()

	f.mailer.EXPECT().Send("a@example.com", gomock.Any(), gomock.Any()).Return(errors.New("relay down"))
	f.mailer.EXPECT().Send("b@example.com", gomock.Any(), gomock.Any()).Return(nil)

	f.service.SendAll(context.Background(), map[string]string{
		"user-a": "a@example.com",
		"user-b": "b@example.com",
	})
}

package insight

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

	"github.com/fintwin-app/fintwin/internal/enrich"
	"github.com/fintwin-app/fintwin/internal/transaction"
	"github.com/fintwin-app/fintwin/internal/whatif"
)

const testUser = "user-1"

var testNow = time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

type fixture struct {
	transactions  *MockTransactionSource
	budgets       *MockBudgetSource
	subscriptions *MockSubscriptionSource
	goals         *MockGoalSource
}

func newFixture(t *testing.T) (*gomock.Controller, fixture) {
	ctrl := gomock.NewController(t)

	return ctrl, fixture{
		transactions:  NewMockTransactionSource(ctrl),
		budgets:       NewMockBudgetSource(ctrl),
		subscriptions: NewMockSubscriptionSource(ctrl),
		goals:         NewMockGoalSource(ctrl),
	}
}

func newService(f fixture, opts ...Option) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)

	return NewService(f.transactions, f.budgets, f.subscriptions, f.goals, time.Minute, logger, opts...)
}

func sampleTransactions() []*transaction.Transaction {
	return []*transaction.Transaction{
		{ID: uuid.New(), UserID: testUser, Amount: 300000, Type: transaction.TypeIncome, Category: "Salary", Date: testNow.AddDate(0, 0, -20)},
		{ID: uuid.New(), UserID: testUser, Amount: 50000, Type: transaction.TypeExpense, Category: "Food", Date: testNow.AddDate(0, 0, -15)},
		{ID: uuid.New(), UserID: testUser, Amount: 50000, Type: transaction.TypeExpense, Category: "Food", Date: testNow.AddDate(0, -1, 0)},
	}
}

func expectFetch(f fixture, times int) {
	f.transactions.EXPECT().List(gomock.Any(), testUser, transaction.ListFilter{}).Return(sampleTransactions(), nil).Times(times)
	f.budgets.EXPECT().List(gomock.Any(), testUser).Return(nil, nil).Times(times)
	f.subscriptions.EXPECT().List(gomock.Any(), testUser, false).Return(nil, nil).Times(times)
	f.goals.EXPECT().List(gomock.Any(), testUser).Return(nil, nil).Times(times)
}

func TestService_Snapshot(t *testing.T) {
	ctrl, f := newFixture(t)
	defer ctrl.Finish()

	expectFetch(f, 1)

	svc := newService(f)

	snap, err := svc.Snapshot(context.Background(), testUser, false)

	require.NoError(t, err)
	assert.Equal(t, testNow, snap.GeneratedAt)
	assert.NotEmpty(t, snap.Patterns)
	assert.NotEmpty(t, snap.Forecasts)
	assert.NotEmpty(t, snap.Alerts)
	assert.Nil(t, snap.Enrichment)
}

func TestService_SnapshotCachesPerUser(t *testing.T) {
	ctrl, f := newFixture(t)
	defer ctrl.Finish()

	// One fetch serves both calls.
	expectFetch(f, 1)

	svc := newService(f)

	first, err := svc.Snapshot(context.Background(), testUser, false)
	require.NoError(t, err)

	second, err := svc.Snapshot(context.Background(), testUser, false)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestService_SnapshotCacheExpires(t *testing.T) {
	ctrl, f := newFixture(t)
	defer ctrl.Finish()

	expectFetch(f, 2)

	current := testNow
	svc := newService(f, WithClock(func() time.Time { return current }))

	first, err := svc.Snapshot(context.Background(), testUser, false)
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)

	second, err := svc.Snapshot(context.Background(), testUser, false)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
}

func TestService_SnapshotForceBypassesCache(t *testing.T) {
	ctrl, f := newFixture(t)
	defer ctrl.Finish()

	expectFetch(f, 2)

	svc := newService(f)

	first, err := svc.Snapshot(context.Background(), testUser, false)
	require.NoError(t, err)

	second, err := svc.Snapshot(context.Background(), testUser, true)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
}

func TestService_SnapshotTransactionErrorPropagates(t *testing.T) {
	ctrl, f := newFixture(t)
	defer ctrl.Finish()

	fetchErr := errors.New("database offline")

	f.transactions.EXPECT().List(gomock.Any(), testUser, transaction.ListFilter{}).Return(nil, fetchErr)
	f.budgets.EXPECT().List(gomock.Any(), testUser).Return(nil, nil).MaxTimes(1)
	f.subscriptions.EXPECT().List(gomock.Any(), testUser, false).Return(nil, nil).MaxTimes(1)
	f.goals.EXPECT().List(gomock.Any(), testUser).Return(nil, nil).MaxTimes(1)

	svc := newService(f)

	_, err := svc.Snapshot(context.Background(), testUser, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, fetchErr)
}

func TestService_SnapshotSecondarySourcesDegrade(t *testing.T) {
	ctrl, f := newFixture(t)
	defer ctrl.Finish()

	f.transactions.EXPECT().List(gomock.Any(), testUser, transaction.ListFilter{}).Return(sampleTransactions(), nil)
	f.budgets.EXPECT().List(gomock.Any(), testUser).Return(nil, errors.New("budgets down"))
	f.subscriptions.EXPECT().List(gomock.Any(), testUser, false).Return(nil, errors.New("subscriptions down"))
	f.goals.EXPECT().List(gomock.Any(), testUser).Return(nil, errors.New("goals down"))

	svc := newService(f)

	snap, err := svc.Snapshot(context.Background(), testUser, false)

	require.NoError(t, err)
	assert.NotEmpty(t, snap.Patterns)
}

func TestService_SnapshotEnrichmentFailureFallsBack(t *testing.T) {
	ctrl, f := newFixture(t)
	defer ctrl.Finish()

	expectFetch(f, 1)

	enricher := NewMockEnricher(ctrl)
	enricher.EXPECT().Insights(gomock.Any(), testUser).Return(nil, errors.New("sidecar down"))
	enricher.EXPECT().Forecast(gomock.Any(), testUser).Return(nil, errors.New("sidecar down"))
	enricher.EXPECT().Risks(gomock.Any(), testUser).Return(nil, errors.New("sidecar down"))

	svc := newService(f, WithEnricher(enricher))

	snap, err := svc.Snapshot(context.Background(), testUser, false)

	require.NoError(t, err)
	assert.Nil(t, snap.Enrichment)
	assert.NotEmpty(t, snap.Patterns)
}

func TestService_SnapshotAttachesEnrichment(t *testing.T) {
	ctrl, f := newFixture(t)
	defer ctrl.Finish()

	expectFetch(f, 1)

	enricher := NewMockEnricher(ctrl)
	enricher.EXPECT().Insights(gomock.Any(), testUser).Return([]enrich.Insight{{Title: "Coffee creep"}}, nil)
	enricher.EXPECT().Forecast(gomock.Any(), testUser).Return(&enrich.ForecastNote{Summary: "steady"}, nil)
	enricher.EXPECT().Risks(gomock.Any(), testUser).Return(nil, errors.New("risks facet down"))

	svc := newService(f, WithEnricher(enricher))

	snap, err := svc.Snapshot(context.Background(), testUser, false)

	require.NoError(t, err)
	require.NotNil(t, snap.Enrichment)
	assert.Len(t, snap.Enrichment.Insights, 1)
	assert.NotNil(t, snap.Enrichment.Forecast)
	assert.Nil(t, snap.Enrichment.Risks)
}

func TestService_Universes(t *testing.T) {
	ctrl, f := newFixture(t)
	defer ctrl.Finish()

	expectFetch(f, 1)

	svc := newService(f)

	universes, err := svc.Universes(context.Background(), testUser)

	require.NoError(t, err)
	assert.Len(t, universes, 6)
}

func TestService_WhatIf(t *testing.T) {
	ctrl, f := newFixture(t)
	defer ctrl.Finish()

	expectFetch(f, 1)

	svc := newService(f)

	res, err := svc.WhatIf(context.Background(), testUser, whatif.Request{
		Scenario:     whatif.ScenarioChangeIncome,
		IncomeChange: 200,
	})

	require.NoError(t, err)
	assert.Equal(t, whatif.HighlyRecommended, res.Recommendation)
}

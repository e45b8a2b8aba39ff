package subscription_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fintwin-app/fintwin/internal/subscription"
)

func TestCancelDeactivates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := subscription.NewMockRepository(ctrl)
	svc := subscription.NewService(repo)

	id := uuid.New()
	stored := &subscription.Subscription{ID: id, UserID: "user-1", Name: "Streaming", Active: true}

	repo.EXPECT().GetSubscription(gomock.Any(), "user-1", id).Return(stored, nil)
	repo.EXPECT().UpdateSubscription(gomock.Any(), stored).Return(nil)

	err := svc.Cancel(context.Background(), "user-1", id)
	require.NoError(t, err)

	assert.False(t, stored.Active)
}

func TestCancelNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := subscription.NewMockRepository(ctrl)
	svc := subscription.NewService(repo)

	id := uuid.New()
	repo.EXPECT().GetSubscription(gomock.Any(), "user-1", id).Return(nil, subscription.ErrNotFound)

	err := svc.Cancel(context.Background(), "user-1", id)
	assert.ErrorIs(t, err, subscription.ErrNotFound)
}

func TestCreateDefaultsToMonthly(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := subscription.NewMockRepository(ctrl)
	svc := subscription.NewService(repo)

	repo.EXPECT().CreateSubscription(gomock.Any(), gomock.Any()).Return(nil)

	sub, err := svc.Create(context.Background(), "user-1", subscription.CreateParams{Name: "Gym", Price: 2900})
	require.NoError(t, err)

	assert.Equal(t, subscription.CycleMonthly, sub.BillingCycle)
	assert.True(t, sub.Active)
}

package goal_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fintwin-app/fintwin/internal/goal"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name string
		g    goal.Goal
		want float64
	}{
		{"Empty", goal.Goal{TargetAmount: 10000}, 0},
		{"Halfway", goal.Goal{TargetAmount: 10000, SavedAmount: 5000}, 50},
		{"CapsAtHundred", goal.Goal{TargetAmount: 10000, SavedAmount: 15000}, 100},
		{"ZeroTarget", goal.Goal{SavedAmount: 5000}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, tc.g.Progress(), 0.001)
		})
	}
}

func TestMonthsToCompletion(t *testing.T) {
	g := goal.Goal{TargetAmount: 120000, SavedAmount: 20000}

	assert.Equal(t, float64(10), g.MonthsToCompletion(10000))
	assert.Equal(t, float64(-1), g.MonthsToCompletion(0))

	done := goal.Goal{TargetAmount: 10000, SavedAmount: 10000}
	assert.Equal(t, float64(0), done.MonthsToCompletion(10000))
}

func TestMonthlyPace(t *testing.T) {
	now := time.Now()

	young := goal.Goal{SavedAmount: 3000, CreatedAt: now.AddDate(0, 0, -5)}
	assert.InDelta(t, 3000, young.MonthlyPace(now), 0.001)

	old := goal.Goal{SavedAmount: 6000, CreatedAt: now.AddDate(0, 0, -60)}
	assert.InDelta(t, 3000, old.MonthlyPace(now), 1)
}

func TestContributeClampsAtZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := goal.NewMockRepository(ctrl)
	svc := goal.NewService(repo)

	id := uuid.New()
	stored := &goal.Goal{ID: id, UserID: "user-1", TargetAmount: 10000, SavedAmount: 2000}

	repo.EXPECT().GetGoal(gomock.Any(), "user-1", id).Return(stored, nil)
	repo.EXPECT().UpdateGoal(gomock.Any(), stored).Return(nil)

	g, err := svc.Contribute(context.Background(), "user-1", id, -5000)
	require.NoError(t, err)

	assert.Equal(t, int64(0), g.SavedAmount)
}

func TestCreateRejectsNonPositiveTarget(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := goal.NewMockRepository(ctrl)
	svc := goal.NewService(repo)

	_, err := svc.Create(context.Background(), "user-1", goal.CreateParams{Name: "Holiday"})
	assert.Error(t, err)
}

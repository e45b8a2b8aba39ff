package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	GetGoal(ctx context.Context, userID string, id uuid.UUID) (*Goal, error)
	UpdateGoal(ctx context.Context, g *Goal) error
	ListGoals(ctx context.Context, userID string) ([]*Goal, error)
	DeleteGoal(ctx context.Context, userID string, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name         string
	TargetAmount int64
}

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Goal, error) {
	if params.TargetAmount <= 0 {
		return nil, fmt.Errorf("target amount must be positive")
	}

	g := &Goal{
		UserID:       userID,
		Name:         params.Name,
		TargetAmount: params.TargetAmount,
	}
	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*Goal, error) {
	return s.repo.ListGoals(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Goal, error) {
	return s.repo.GetGoal(ctx, userID, id)
}

// Contribute adds to the saved amount, clamped at zero on withdrawal.
func (s *Service) Contribute(ctx context.Context, userID string, id uuid.UUID, amount int64) (*Goal, error) {
	g, err := s.repo.GetGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	g.SavedAmount += amount
	if g.SavedAmount < 0 {
		g.SavedAmount = 0
	}

	if err := s.repo.UpdateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) Update(ctx context.Context, g *Goal) error {
	return s.repo.UpdateGoal(ctx, g)
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repo.DeleteGoal(ctx, userID, id)
}

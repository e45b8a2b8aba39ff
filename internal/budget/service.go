package budget

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, userID string, id uuid.UUID) (*Budget, error)
	UpdateBudget(ctx context.Context, b *Budget) error
	ListBudgets(ctx context.Context, userID string) ([]*Budget, error)
	DeleteBudget(ctx context.Context, userID string, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Category     string
	MonthlyLimit int64
	Period       Period
}

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Budget, error) {
	period := params.Period
	if period == "" {
		period = PeriodMonthly
	}

	b := &Budget{
		UserID:       userID,
		Category:     params.Category,
		MonthlyLimit: params.MonthlyLimit,
		Period:       period,
	}
	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Budget, error) {
	return s.repo.GetBudget(ctx, userID, id)
}

func (s *Service) Update(ctx context.Context, b *Budget) error {
	return s.repo.UpdateBudget(ctx, b)
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, userID, id)
}

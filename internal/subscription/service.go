package subscription

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=subscription
type Repository interface {
	CreateSubscription(ctx context.Context, sub *Subscription) error
	GetSubscription(ctx context.Context, userID string, id uuid.UUID) (*Subscription, error)
	UpdateSubscription(ctx context.Context, sub *Subscription) error
	ListSubscriptions(ctx context.Context, userID string, activeOnly bool) ([]*Subscription, error)
	DeleteSubscription(ctx context.Context, userID string, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name         string
	Price        int64
	BillingCycle BillingCycle
	Trial        bool
}

func (s *Service) Create(ctx context.Context, userID string, params CreateParams) (*Subscription, error) {
	cycle := params.BillingCycle
	if cycle == "" {
		cycle = CycleMonthly
	}

	sub := &Subscription{
		UserID:       userID,
		Name:         params.Name,
		Price:        params.Price,
		BillingCycle: cycle,
		Active:       true,
		Trial:        params.Trial,
	}
	if err := s.repo.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	return sub, nil
}

func (s *Service) List(ctx context.Context, userID string, activeOnly bool) ([]*Subscription, error) {
	return s.repo.ListSubscriptions(ctx, userID, activeOnly)
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Subscription, error) {
	return s.repo.GetSubscription(ctx, userID, id)
}

func (s *Service) Update(ctx context.Context, sub *Subscription) error {
	return s.repo.UpdateSubscription(ctx, sub)
}

// Cancel deactivates the subscription without deleting its history.
func (s *Service) Cancel(ctx context.Context, userID string, id uuid.UUID) error {
	sub, err := s.repo.GetSubscription(ctx, userID, id)
	if err != nil {
		return err
	}

	sub.Active = false

	return s.repo.UpdateSubscription(ctx, sub)
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repo.DeleteSubscription(ctx, userID, id)
}

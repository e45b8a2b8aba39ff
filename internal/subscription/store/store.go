package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fintwin-app/fintwin/internal/subscription"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubscription(s scanner) (*subscription.Subscription, error) {
	var sub subscription.Subscription

	var cycleStr string

	if err := s.Scan(
		&sub.ID, &sub.UserID, &sub.Name, &sub.Price, &cycleStr, &sub.Active, &sub.Trial,
		&sub.CreatedAt, &sub.UpdatedAt, &sub.DeletedAt,
	); err != nil {
		return nil, err
	}

	sub.BillingCycle = subscription.BillingCycle(cycleStr)

	return &sub, nil
}

const selectSubscriptionColumns = `
	s.id, s.user_id, s.name, s.price, s.billing_cycle, s.active, s.trial,
	s.created_at, s.updated_at, s.deleted_at
`

func (s *Store) CreateSubscription(ctx context.Context, sub *subscription.Subscription) error {
	query := `
		INSERT INTO subscriptions (user_id, name, price, billing_cycle, active, trial, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		sub.UserID,
		sub.Name,
		sub.Price,
		sub.BillingCycle,
		sub.Active,
		sub.Trial,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating subscription: %w", err)
	}

	return nil
}

func (s *Store) GetSubscription(ctx context.Context, userID string, id uuid.UUID) (*subscription.Subscription, error) {
	query := `SELECT ` + selectSubscriptionColumns + `
		FROM subscriptions s
		WHERE s.id = $1 AND s.user_id = $2 AND s.deleted_at IS NULL`

	sub, err := scanSubscription(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, subscription.ErrNotFound
		}

		return nil, fmt.Errorf("getting subscription: %w", err)
	}

	return sub, nil
}

func (s *Store) ListSubscriptions(ctx context.Context, userID string, activeOnly bool) ([]*subscription.Subscription, error) {
	query := `SELECT ` + selectSubscriptionColumns + `
		FROM subscriptions s
		WHERE s.user_id = $1 AND s.deleted_at IS NULL`

	if activeOnly {
		query += " AND s.active"
	}

	query += " ORDER BY s.name ASC"

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*subscription.Subscription

	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning subscription: %w", err)
		}

		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subscription rows: %w", err)
	}

	return subs, nil
}

func (s *Store) UpdateSubscription(ctx context.Context, sub *subscription.Subscription) error {
	query := `
		UPDATE subscriptions
		SET name = $1, price = $2, billing_cycle = $3, active = $4, trial = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		sub.Name,
		sub.Price,
		sub.BillingCycle,
		sub.Active,
		sub.Trial,
		sub.ID,
		sub.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating subscription: %w", err)
	}

	return nil
}

func (s *Store) DeleteSubscription(ctx context.Context, userID string, id uuid.UUID) error {
	query := `
		UPDATE subscriptions
		SET deleted_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	_, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting subscription: %w", err)
	}

	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fintwin-app/fintwin/internal/budget"
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

func scanBudget(s scanner) (*budget.Budget, error) {
	var b budget.Budget

	var periodStr string

	if err := s.Scan(
		&b.ID, &b.UserID, &b.Category, &b.MonthlyLimit, &periodStr,
		&b.CreatedAt, &b.UpdatedAt, &b.DeletedAt,
	); err != nil {
		return nil, err
	}

	b.Period = budget.Period(periodStr)

	return &b, nil
}

const selectBudgetColumns = `
	b.id, b.user_id, b.category, b.monthly_limit, b.period, b.created_at, b.updated_at, b.deleted_at
`

func (s *Store) CreateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		INSERT INTO budgets (user_id, category, monthly_limit, period, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.UserID,
		b.Category,
		b.MonthlyLimit,
		b.Period,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating budget: %w", err)
	}

	return nil
}

func (s *Store) GetBudget(ctx context.Context, userID string, id uuid.UUID) (*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets b
		WHERE b.id = $1 AND b.user_id = $2 AND b.deleted_at IS NULL`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	return b, nil
}

func (s *Store) ListBudgets(ctx context.Context, userID string) ([]*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets b
		WHERE b.user_id = $1 AND b.deleted_at IS NULL
		ORDER BY b.category ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget rows: %w", err)
	}

	return budgets, nil
}

func (s *Store) UpdateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		UPDATE budgets
		SET category = $1, monthly_limit = $2, period = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		b.Category,
		b.MonthlyLimit,
		b.Period,
		b.ID,
		b.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating budget: %w", err)
	}

	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, userID string, id uuid.UUID) error {
	query := `
		UPDATE budgets
		SET deleted_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	_, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	return nil
}

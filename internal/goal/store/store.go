package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fintwin-app/fintwin/internal/goal"
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

func scanGoal(s scanner) (*goal.Goal, error) {
	var g goal.Goal

	if err := s.Scan(
		&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.SavedAmount,
		&g.CreatedAt, &g.UpdatedAt, &g.DeletedAt,
	); err != nil {
		return nil, err
	}

	return &g, nil
}

const selectGoalColumns = `
	g.id, g.user_id, g.name, g.target_amount, g.saved_amount, g.created_at, g.updated_at, g.deleted_at
`

func (s *Store) CreateGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (user_id, name, target_amount, saved_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		g.UserID,
		g.Name,
		g.TargetAmount,
		g.SavedAmount,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}

	return nil
}

func (s *Store) GetGoal(ctx context.Context, userID string, id uuid.UUID) (*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + `
		FROM goals g
		WHERE g.id = $1 AND g.user_id = $2 AND g.deleted_at IS NULL`

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, goal.ErrNotFound
		}

		return nil, fmt.Errorf("getting goal: %w", err)
	}

	return g, nil
}

func (s *Store) ListGoals(ctx context.Context, userID string) ([]*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + `
		FROM goals g
		WHERE g.user_id = $1 AND g.deleted_at IS NULL
		ORDER BY g.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goal rows: %w", err)
	}

	return goals, nil
}

func (s *Store) UpdateGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		UPDATE goals
		SET name = $1, target_amount = $2, saved_amount = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		g.Name,
		g.TargetAmount,
		g.SavedAmount,
		g.ID,
		g.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}

	return nil
}

func (s *Store) DeleteGoal(ctx context.Context, userID string, id uuid.UUID) error {
	query := `
		UPDATE goals
		SET deleted_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	_, err := s.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	return nil
}

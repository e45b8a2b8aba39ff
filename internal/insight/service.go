// Package insight assembles the user's "money twin": the full local
// analysis snapshot plus optional sidecar enrichment.
package insight

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fintwin-app/fintwin/internal/analysis"
	"github.com/fintwin-app/fintwin/internal/budget"
	"github.com/fintwin-app/fintwin/internal/enrich"
	"github.com/fintwin-app/fintwin/internal/goal"
	"github.com/fintwin-app/fintwin/internal/subscription"
	"github.com/fintwin-app/fintwin/internal/transaction"
	"github.com/fintwin-app/fintwin/internal/universe"
	"github.com/fintwin-app/fintwin/internal/whatif"
)

//go:generate mockgen -source=service.go -destination=sources_mock.go -package=insight

// TransactionSource lists a user's transactions. A failure here aborts the
// whole snapshot.
type TransactionSource interface {
	List(ctx context.Context, userID string, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

// BudgetSource lists a user's budgets. Failures degrade to an empty slice.
type BudgetSource interface {
	List(ctx context.Context, userID string) ([]*budget.Budget, error)
}

// SubscriptionSource lists a user's subscriptions. Failures degrade to an
// empty slice.
type SubscriptionSource interface {
	List(ctx context.Context, userID string, activeOnly bool) ([]*subscription.Subscription, error)
}

// GoalSource lists a user's goals. Failures degrade to an empty slice.
type GoalSource interface {
	List(ctx context.Context, userID string) ([]*goal.Goal, error)
}

// Enricher is the optional AI sidecar. Any method failing yields a nil
// facet, never an error for the caller.
type Enricher interface {
	Insights(ctx context.Context, userID string) ([]enrich.Insight, error)
	Forecast(ctx context.Context, userID string) (*enrich.ForecastNote, error)
	Risks(ctx context.Context, userID string) (*enrich.RiskNote, error)
}

// Enrichment groups the sidecar facets attached to a snapshot. Fields are
// nil when the sidecar is absent or failing.
type Enrichment struct {
	Insights []enrich.Insight     `json:"insights,omitempty"`
	Forecast *enrich.ForecastNote `json:"forecast,omitempty"`
	Risks    *enrich.RiskNote     `json:"risks,omitempty"`
}

// Snapshot is one full analysis pass over a user's data.
type Snapshot struct {
	GeneratedAt time.Time                  `json:"generated_at"`
	Patterns    []analysis.SpendingPattern `json:"patterns"`
	Velocity    analysis.Velocity          `json:"velocity"`
	Forecasts   []analysis.Forecast        `json:"forecasts"`
	Alerts      []analysis.Alert           `json:"alerts"`
	Enrichment  *Enrichment                `json:"enrichment,omitempty"`
}

type cacheEntry struct {
	snapshot  *Snapshot
	expiresAt time.Time
}

// Service runs the analysis pipeline and caches the result per user.
type Service struct {
	transactions  TransactionSource
	budgets       BudgetSource
	subscriptions SubscriptionSource
	goals         GoalSource
	enricher      Enricher
	params        analysis.Params
	logger        *slog.Logger

	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// Option tweaks a Service.
type Option func(*Service)

// WithEnricher attaches the optional AI sidecar.
func WithEnricher(e Enricher) Option {
	return func(s *Service) { s.enricher = e }
}

// WithParams overrides the analysis heuristics.
func WithParams(p analysis.Params) Option {
	return func(s *Service) { s.params = p }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService wires the analysis pipeline. ttl bounds how long a cached
// snapshot is served before recomputation.
func NewService(txs TransactionSource, budgets BudgetSource, subs SubscriptionSource, goals GoalSource, ttl time.Duration, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		transactions:  txs,
		budgets:       budgets,
		subscriptions: subs,
		goals:         goals,
		params:        analysis.DefaultParams(),
		logger:        logger,
		ttl:           ttl,
		now:           time.Now,
		cache:         make(map[string]cacheEntry),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Snapshot returns the user's analysis snapshot, served from the per-user
// cache when fresh. force bypasses the cache.
func (s *Service) Snapshot(ctx context.Context, userID string, force bool) (*Snapshot, error) {
	now := s.now()

	if !force {
		s.mu.Lock()
		entry, ok := s.cache[userID]
		s.mu.Unlock()

		if ok && now.Before(entry.expiresAt) {
			return entry.snapshot, nil
		}
	}

	data, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		GeneratedAt: now,
		Patterns:    analysis.AnalyzePatterns(data.Transactions, s.params),
		Velocity:    analysis.ComputeVelocity(data.Transactions, now),
	}

	snap.Forecasts = analysis.GenerateForecasts(data.Transactions, snap.Patterns, data.Subscriptions, s.params, now)
	snap.Alerts = analysis.DetectRisks(data.Transactions, snap.Velocity, data.Budgets, snap.Forecasts, s.params, now)
	snap.Enrichment = s.enrichment(ctx, userID)

	s.mu.Lock()
	s.cache[userID] = cacheEntry{snapshot: snap, expiresAt: now.Add(s.ttl)}
	s.mu.Unlock()

	return snap, nil
}

// Universes replays the user's history under the six alternate policies.
// Not cached: cheap relative to the fetch and rarely requested.
func (s *Service) Universes(ctx context.Context, userID string) ([]universe.Universe, error) {
	data, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	return universe.Generate(data.Transactions, data.Budgets, data.Subscriptions, data.Goals, s.params, s.now()), nil
}

// WhatIf simulates one hypothetical scenario against the user's current
// state.
func (s *Service) WhatIf(ctx context.Context, userID string, req whatif.Request) (whatif.Result, error) {
	data, err := s.fetch(ctx, userID)
	if err != nil {
		return whatif.Result{}, err
	}

	return whatif.Simulate(req, data, s.params)
}

// fetch loads the user's data concurrently. The transaction fetch is
// primary and its error propagates; the secondary sources fall back to
// empty with a warning.
func (s *Service) fetch(ctx context.Context, userID string) (whatif.Data, error) {
	data := whatif.Data{Now: s.now()}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		txs, err := s.transactions.List(gctx, userID, transaction.ListFilter{})
		if err != nil {
			return fmt.Errorf("fetching transactions: %w", err)
		}

		data.Transactions = txs

		return nil
	})

	g.Go(func() error {
		budgets, err := s.budgets.List(gctx, userID)
		if err != nil {
			s.logger.Warn("budget fetch failed, continuing without budgets", "user_id", userID, "error", err)
			return nil
		}

		data.Budgets = budgets

		return nil
	})

	g.Go(func() error {
		subs, err := s.subscriptions.List(gctx, userID, false)
		if err != nil {
			s.logger.Warn("subscription fetch failed, continuing without subscriptions", "user_id", userID, "error", err)
			return nil
		}

		data.Subscriptions = subs

		return nil
	})

	g.Go(func() error {
		goals, err := s.goals.List(gctx, userID)
		if err != nil {
			s.logger.Warn("goal fetch failed, continuing without goals", "user_id", userID, "error", err)
			return nil
		}

		data.Goals = goals

		return nil
	})

	if err := g.Wait(); err != nil {
		return whatif.Data{}, err
	}

	return data, nil
}

// enrichment gathers the sidecar facets. Every failure downgrades to a nil
// facet so local analysis always ships.
func (s *Service) enrichment(ctx context.Context, userID string) *Enrichment {
	if s.enricher == nil {
		return nil
	}

	var (
		mu sync.Mutex
		e  Enrichment
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		insights, err := s.enricher.Insights(gctx, userID)
		if err != nil {
			s.logger.Debug("enrichment insights unavailable", "user_id", userID, "error", err)
			return nil
		}

		mu.Lock()
		e.Insights = insights
		mu.Unlock()

		return nil
	})

	g.Go(func() error {
		note, err := s.enricher.Forecast(gctx, userID)
		if err != nil {
			s.logger.Debug("enrichment forecast unavailable", "user_id", userID, "error", err)
			return nil
		}

		mu.Lock()
		e.Forecast = note
		mu.Unlock()

		return nil
	})

	g.Go(func() error {
		note, err := s.enricher.Risks(gctx, userID)
		if err != nil {
			s.logger.Debug("enrichment risks unavailable", "user_id", userID, "error", err)
			return nil
		}

		mu.Lock()
		e.Risks = note
		mu.Unlock()

		return nil
	})

	_ = g.Wait()

	if e.Insights == nil && e.Forecast == nil && e.Risks == nil {
		return nil
	}

	return &e
}

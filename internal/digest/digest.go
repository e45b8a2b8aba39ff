// Package digest builds and mails the weekly financial summary.
package digest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/fintwin-app/fintwin/internal/analysis"
	"github.com/fintwin-app/fintwin/internal/insight"
	"github.com/fintwin-app/fintwin/internal/money"
	"github.com/fintwin-app/fintwin/internal/transaction"
)

//go:generate mockgen -source=digest.go -destination=digest_mock.go -package=digest

// Snapshotter provides the analysis snapshot the digest quotes from.
type Snapshotter interface {
	Snapshot(ctx context.Context, userID string, force bool) (*insight.Snapshot, error)
}

// Mailer delivers a rendered digest.
type Mailer interface {
	Send(to, subject string, body []byte) error
}

// CategoryTotal is one line of the top-spend table.
type CategoryTotal struct {
	Category string `json:"category"`
	Cents    int64  `json:"cents"`
}

// BudgetUsage is month-to-date consumption of one budget.
type BudgetUsage struct {
	Category   string `json:"category"`
	SpentCents int64  `json:"spent_cents"`
	LimitCents int64  `json:"limit_cents"`
}

// GoalProgress is one goal's standing.
type GoalProgress struct {
	Name     string  `json:"name"`
	Progress float64 `json:"progress"`
}

// Digest is one user's weekly summary, ready to render.
type Digest struct {
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	SpentCents    int64           `json:"spent_cents"`
	IncomeCents   int64           `json:"income_cents"`
	TopCategories []CategoryTotal `json:"top_categories"`
	Budgets       []BudgetUsage   `json:"budgets,omitempty"`
	Goals         []GoalProgress  `json:"goals,omitempty"`
	TopAlert      *analysis.Alert `json:"top_alert,omitempty"`
}

// Service assembles and sends weekly digests.
type Service struct {
	snapshots    Snapshotter
	transactions insight.TransactionSource
	budgets      insight.BudgetSource
	goals        insight.GoalSource
	mailer       Mailer
	formatter    *money.Formatter
	logger       *slog.Logger
	now          func() time.Time
}

func NewService(snapshots Snapshotter, txs insight.TransactionSource, budgets insight.BudgetSource, goals insight.GoalSource, mailer Mailer, formatter *money.Formatter, logger *slog.Logger) *Service {
	return &Service{
		snapshots:    snapshots,
		transactions: txs,
		budgets:      budgets,
		goals:        goals,
		mailer:       mailer,
		formatter:    formatter,
		logger:       logger,
		now:          time.Now,
	}
}

// Build assembles one user's digest for the trailing week.
func (s *Service) Build(ctx context.Context, userID string) (*Digest, error) {
	now := s.now()
	start := now.AddDate(0, 0, -7)

	d := &Digest{PeriodStart: start, PeriodEnd: now}

	txs, err := s.transactions.List(ctx, userID, transaction.ListFilter{
		StartDate: &start,
		EndDate:   &now,
	})
	if err != nil {
		return nil, fmt.Errorf("listing week transactions: %w", err)
	}

	byCategory := make(map[string]int64)

	for _, tx := range txs {
		if tx.IsExpense() {
			d.SpentCents += tx.Amount
			byCategory[tx.CategoryOrDefault()] += tx.Amount
		} else {
			d.IncomeCents += tx.Amount
		}
	}

	d.TopCategories = topCategories(byCategory, 3)
	d.Budgets = s.budgetUsage(ctx, userID, now)
	d.Goals = s.goalProgress(ctx, userID)

	snap, err := s.snapshots.Snapshot(ctx, userID, false)
	if err != nil {
		s.logger.Warn("digest proceeding without analysis snapshot", "user_id", userID, "error", err)
	} else if len(snap.Alerts) > 0 {
		alert := snap.Alerts[0]
		d.TopAlert = &alert
	}

	return d, nil
}

// Send builds, renders and mails the digest for one user.
func (s *Service) Send(ctx context.Context, userID, address string) error {
	d, err := s.Build(ctx, userID)
	if err != nil {
		return fmt.Errorf("building digest: %w", err)
	}

	subject := fmt.Sprintf("Your week in money: %s spent", s.formatter.Cents(d.SpentCents))

	if err := s.mailer.Send(address, subject, []byte(s.Render(d))); err != nil {
		return fmt.Errorf("sending digest to %s: %w", address, err)
	}

	s.logger.Info("weekly digest sent", "user_id", userID)

	return nil
}

// SendAll delivers the digest to every configured recipient. One failing
// user does not stop the rest.
func (s *Service) SendAll(ctx context.Context, recipients map[string]string) {
	for userID, address := range recipients {
		if err := s.Send(ctx, userID, address); err != nil {
			s.logger.Error("weekly digest failed", "user_id", userID, "error", err)
		}
	}
}

// Render produces the plain-text email body.
func (s *Service) Render(d *Digest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Weekly summary %s to %s\n\n",
		d.PeriodStart.Format("Jan 2"), d.PeriodEnd.Format("Jan 2"))

	fmt.Fprintf(&b, "Spent:  %s\n", s.formatter.Cents(d.SpentCents))
	fmt.Fprintf(&b, "Earned: %s\n", s.formatter.Cents(d.IncomeCents))

	if len(d.TopCategories) > 0 {
		b.WriteString("\nTop spending:\n")

		for _, c := range d.TopCategories {
			fmt.Fprintf(&b, "  %-16s %s\n", c.Category, s.formatter.Cents(c.Cents))
		}
	}

	if len(d.Budgets) > 0 {
		b.WriteString("\nBudgets this month:\n")

		for _, u := range d.Budgets {
			pct := 0.0
			if u.LimitCents > 0 {
				pct = float64(u.SpentCents) / float64(u.LimitCents) * 100
			}

			fmt.Fprintf(&b, "  %-16s %s of %s (%.0f%%)\n",
				u.Category, s.formatter.Cents(u.SpentCents), s.formatter.Cents(u.LimitCents), pct)
		}
	}

	if len(d.Goals) > 0 {
		b.WriteString("\nGoals:\n")

		for _, g := range d.Goals {
			fmt.Fprintf(&b, "  %-16s %.0f%% there\n", g.Name, g.Progress)
		}
	}

	if d.TopAlert != nil {
		fmt.Fprintf(&b, "\nHeads up: %s\n%s\n", d.TopAlert.Title, d.TopAlert.Message)
	}

	b.WriteString("\nSent by FinTwin. Reply STOP to the app settings, not this email.\n")

	return b.String()
}

func topCategories(byCategory map[string]int64, n int) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(byCategory))
	for cat, cents := range byCategory {
		out = append(out, CategoryTotal{Category: cat, Cents: cents})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Cents != out[j].Cents {
			return out[i].Cents > out[j].Cents
		}

		return out[i].Category < out[j].Category
	})

	if len(out) > n {
		out = out[:n]
	}

	return out
}

// budgetUsage reports month-to-date spend per budget. Failures degrade to
// an empty section rather than blocking the digest.
func (s *Service) budgetUsage(ctx context.Context, userID string, now time.Time) []BudgetUsage {
	budgets, err := s.budgets.List(ctx, userID)
	if err != nil {
		s.logger.Warn("digest proceeding without budgets", "user_id", userID, "error", err)
		return nil
	}

	if len(budgets) == 0 {
		return nil
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	txs, err := s.transactions.List(ctx, userID, transaction.ListFilter{
		StartDate: &monthStart,
		EndDate:   &now,
	})
	if err != nil {
		s.logger.Warn("digest proceeding without month transactions", "user_id", userID, "error", err)
		return nil
	}

	usage := make([]BudgetUsage, 0, len(budgets))

	for _, b := range budgets {
		u := BudgetUsage{Category: b.Category, LimitCents: b.MonthlyLimit}

		for _, tx := range txs {
			if tx.IsExpense() && analysis.MatchCategory(tx.CategoryOrDefault(), b.Category) {
				u.SpentCents += tx.Amount
			}
		}

		usage = append(usage, u)
	}

	return usage
}

func (s *Service) goalProgress(ctx context.Context, userID string) []GoalProgress {
	goals, err := s.goals.List(ctx, userID)
	if err != nil {
		s.logger.Warn("digest proceeding without goals", "user_id", userID, "error", err)
		return nil
	}

	out := make([]GoalProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalProgress{Name: g.Name, Progress: g.Progress()})
	}

	return out
}

package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a transaction does not exist or is deleted.
var ErrNotFound = errors.New("transaction not found")

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// DefaultCategory is assigned when a transaction carries no category.
const DefaultCategory = "Other"

// Transaction represents a financial transaction owned by a single user.
// Rows are immutable facts once recorded; amounts are stored in cents and
// are always positive, with Type carrying the sign convention.
type Transaction struct {
	ID             uuid.UUID
	UserID         string
	Amount         int64 // Amount in cents
	Type           Type
	Category       string
	Description    string
	RawDescription string
	Date           time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
}

// CategoryOrDefault returns the category, or DefaultCategory when unset.
func (t *Transaction) CategoryOrDefault() string {
	if t.Category == "" {
		return DefaultCategory
	}

	return t.Category
}

// IsExpense reports whether the transaction is an expense row.
func (t *Transaction) IsExpense() bool { return t.Type == TypeExpense }

// AmountUnits returns the amount in currency units rather than cents.
func (t *Transaction) AmountUnits() float64 { return float64(t.Amount) / 100 }

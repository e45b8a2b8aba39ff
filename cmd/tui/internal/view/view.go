package view

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const dbTimeout = 5 * time.Second

type CommonModel struct{}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// FormatAmount formats an amount in currency units.
func FormatAmount(units float64) string {
	return fmt.Sprintf("%.2f", units)
}

// FormatCents formats an amount stored as cents.
func FormatCents(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100.0)
}

// DbCtx returns a context with a standard timeout for service calls.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

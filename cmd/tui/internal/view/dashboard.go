package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fintwin-app/fintwin/internal/insight"
)

// DashboardModel shows spending patterns and the current velocity.
type DashboardModel struct {
	CommonModel
	insightSvc *insight.Service
	userID     string

	table    table.Model
	snapshot *insight.Snapshot
	loading  bool
	err      error
}

func NewDashboardModel(insightSvc *insight.Service, userID string) DashboardModel {
	columns := []table.Column{
		{Title: "Category", Width: 20},
		{Title: "Avg/Month", Width: 12},
		{Title: "Trend", Width: 12},
		{Title: "Trend %", Width: 10},
		{Title: "Next Month", Width: 12},
		{Title: "Confidence", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return DashboardModel{
		insightSvc: insightSvc,
		userID:     userID,
		table:      t,
		loading:    true,
	}
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd(false)
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.snapshot = msg.snapshot
		m.refreshTable()

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd(true)
		}

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Crunching your numbers...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	vel := m.snapshot.Velocity
	summary := fmt.Sprintf(
		"Burn rate: %.0f%%  |  Daily spend: %s  |  Weekly: %s  |  Acceleration: %+.0f%%",
		vel.BurnRate,
		FormatAmount(vel.DailyRate),
		FormatAmount(vel.WeeklyRate),
		vel.Acceleration,
	)

	if vel.DaysUntilBroke != nil {
		summary += fmt.Sprintf("  |  Days until broke: %d", *vel.DaysUntilBroke)
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(summary),
		tableView,
		lipgloss.NewStyle().Faint(true).PaddingTop(1).Render("Esc: back | r: refresh"),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *DashboardModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.snapshot.Patterns))
	for _, p := range m.snapshot.Patterns {
		rows = append(rows, table.Row{
			p.Category,
			FormatAmount(p.AvgMonthlySpend),
			string(p.Trend),
			fmt.Sprintf("%+.1f%%", p.TrendPercent),
			FormatAmount(p.PredictedNextMonth),
			fmt.Sprintf("%.0f%%", p.Confidence),
		})
	}

	m.table.SetRows(rows)
}

type snapshotMsg struct {
	snapshot *insight.Snapshot
	err      error
}

func (m DashboardModel) loadCmd(force bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snap, err := m.insightSvc.Snapshot(ctx, m.userID, force)

		return snapshotMsg{snapshot: snap, err: err}
	}
}

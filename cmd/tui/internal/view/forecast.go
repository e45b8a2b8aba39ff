package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fintwin-app/fintwin/internal/analysis"
	"github.com/fintwin-app/fintwin/internal/insight"
)

var riskColors = map[analysis.RiskLevel]lipgloss.Color{
	analysis.RiskLow:      lipgloss.Color("42"),
	analysis.RiskMedium:   lipgloss.Color("220"),
	analysis.RiskHigh:     lipgloss.Color("208"),
	analysis.RiskCritical: lipgloss.Color("196"),
}

// ForecastModel shows the projected months ahead.
type ForecastModel struct {
	CommonModel
	insightSvc *insight.Service
	userID     string

	table     table.Model
	forecasts []analysis.Forecast
	loading   bool
	err       error
}

func NewForecastModel(insightSvc *insight.Service, userID string) ForecastModel {
	columns := []table.Column{
		{Title: "Month", Width: 10},
		{Title: "Income", Width: 12},
		{Title: "Expenses", Width: 12},
		{Title: "Savings", Width: 12},
		{Title: "Risk", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(8),
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

	return ForecastModel{
		insightSvc: insightSvc,
		userID:     userID,
		table:      t,
		loading:    true,
	}
}

func (m ForecastModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ForecastModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case forecastsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.forecasts = msg.forecasts
		m.refreshTable()

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ForecastModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Projecting the months ahead...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	var warnings strings.Builder

	idx := m.table.Cursor()
	if idx >= 0 && idx < len(m.forecasts) {
		f := m.forecasts[idx]
		for _, w := range f.Warnings {
			warnings.WriteString(lipgloss.NewStyle().
				Foreground(riskColors[f.RiskLevel]).
				Render("! " + w))
			warnings.WriteString("\n")
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).PaddingBottom(1).Render("Forecast"),
		tableView,
		lipgloss.NewStyle().PaddingTop(1).Render(warnings.String()),
		lipgloss.NewStyle().Faint(true).Render("Esc: back | r: refresh"),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ForecastModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.forecasts))
	for _, f := range m.forecasts {
		rows = append(rows, table.Row{
			f.Label,
			FormatAmount(f.ProjectedIncome),
			FormatAmount(f.ProjectedExpenses),
			FormatAmount(f.ProjectedSavings),
			string(f.RiskLevel),
		})
	}

	m.table.SetRows(rows)
}

type forecastsMsg struct {
	forecasts []analysis.Forecast
	err       error
}

func (m ForecastModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snap, err := m.insightSvc.Snapshot(ctx, m.userID, false)
		if err != nil {
			return forecastsMsg{err: err}
		}

		return forecastsMsg{forecasts: snap.Forecasts}
	}
}

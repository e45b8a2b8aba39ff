package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fintwin-app/fintwin/internal/analysis"
	"github.com/fintwin-app/fintwin/internal/insight"
)

var severityColors = map[analysis.Severity]lipgloss.Color{
	analysis.SeverityCritical: lipgloss.Color("196"),
	analysis.SeverityDanger:   lipgloss.Color("208"),
	analysis.SeverityWarning:  lipgloss.Color("220"),
	analysis.SeverityInfo:     lipgloss.Color("39"),
}

// AlertsModel lists the current risk alerts, most severe first.
type AlertsModel struct {
	CommonModel
	insightSvc *insight.Service
	userID     string

	alerts  []analysis.Alert
	loading bool
	err     error
}

func NewAlertsModel(insightSvc *insight.Service, userID string) AlertsModel {
	return AlertsModel{
		insightSvc: insightSvc,
		userID:     userID,
		loading:    true,
	}
}

func (m AlertsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AlertsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case alertsMsg:
		m.loading = false
		m.alerts = msg.alerts
		m.err = msg.err

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

	return m, nil
}

func (m AlertsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Checking for risks...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Risk Alerts"))
	b.WriteString("\n\n")

	for _, a := range m.alerts {
		badge := lipgloss.NewStyle().
			Foreground(severityColors[a.Severity]).
			Bold(true).
			Render(fmt.Sprintf("[%s]", strings.ToUpper(string(a.Severity))))

		b.WriteString(fmt.Sprintf("%s %s\n", badge, a.Title))
		b.WriteString(lipgloss.NewStyle().PaddingLeft(2).Render(a.Message))
		b.WriteString("\n")

		if a.Tip != "" {
			tip := lipgloss.NewStyle().Faint(true).PaddingLeft(2).Render("Tip: " + a.Tip)
			b.WriteString(tip)
			b.WriteString("\n")
		}

		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Esc: back | r: refresh"))

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

type alertsMsg struct {
	alerts []analysis.Alert
	err    error
}

func (m AlertsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		snap, err := m.insightSvc.Snapshot(ctx, m.userID, false)
		if err != nil {
			return alertsMsg{err: err}
		}

		return alertsMsg{alerts: snap.Alerts}
	}
}

package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fintwin-app/fintwin/internal/insight"
	"github.com/fintwin-app/fintwin/internal/universe"
)

// UniversesModel browses the parallel-universe comparisons.
type UniversesModel struct {
	CommonModel
	insightSvc *insight.Service
	userID     string

	universes []universe.Universe
	cursor    int
	loading   bool
	err       error
}

func NewUniversesModel(insightSvc *insight.Service, userID string) UniversesModel {
	return UniversesModel{
		insightSvc: insightSvc,
		userID:     userID,
		loading:    true,
	}
}

func (m UniversesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m UniversesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case universesMsg:
		m.loading = false
		m.universes = msg.universes
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.universes)-1 {
				m.cursor++
			}
		}
	}

	return m, nil
}

func (m UniversesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Simulating alternate yous...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	var list strings.Builder

	list.WriteString(lipgloss.NewStyle().Bold(true).Render("Parallel Universes"))
	list.WriteString("\n\n")

	for i, u := range m.universes {
		line := fmt.Sprintf("%-22s %+.2f", u.Name, u.PotentialSavings)
		if i == m.cursor {
			line = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Render(line)
		}

		list.WriteString(line)
		list.WriteString("\n")
	}

	content := list.String()

	if m.cursor >= 0 && m.cursor < len(m.universes) {
		u := m.universes[m.cursor]

		var detail strings.Builder

		detail.WriteString(u.Description)
		detail.WriteString("\n\n")

		for _, mc := range u.Months {
			detail.WriteString(fmt.Sprintf("%s  actual %9.2f  alt %9.2f  diff %+9.2f\n",
				mc.Month, mc.Actual, mc.Alternate, mc.Difference))
		}

		detail.WriteString("\n")

		for _, ins := range u.Insights {
			detail.WriteString("* " + ins + "\n")
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render(detail.String())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content+"  ", panel)
	}

	content += "\n" + lipgloss.NewStyle().Faint(true).Render("Esc: back | j/k: select")

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type universesMsg struct {
	universes []universe.Universe
	err       error
}

func (m UniversesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		universes, err := m.insightSvc.Universes(ctx, m.userID)

		return universesMsg{universes: universes, err: err}
	}
}

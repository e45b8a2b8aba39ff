package view

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/fintwin-app/fintwin/internal/insight"
	"github.com/fintwin-app/fintwin/internal/whatif"
)

type whatIfState int

const (
	whatIfStatePick whatIfState = iota
	whatIfStateFill
	whatIfStateResult
)

// WhatIfModel walks through a scenario form and shows the simulation.
type WhatIfModel struct {
	CommonModel
	insightSvc *insight.Service
	userID     string

	state  whatIfState
	form   *huh.Form
	result *whatif.Result
	err    error

	scenario string

	formName    string
	formAmount  string
	formMonths  string
	formPercent string
}

func NewWhatIfModel(insightSvc *insight.Service, userID string) WhatIfModel {
	m := WhatIfModel{
		insightSvc: insightSvc,
		userID:     userID,
		state:      whatIfStatePick,
	}
	m.form = m.pickForm()

	return m
}

func (m *WhatIfModel) pickForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("scenario").
				Title("What if I...").
				Options(
					huh.NewOption("changed my income", string(whatif.ScenarioChangeIncome)),
					huh.NewOption("added a subscription", string(whatif.ScenarioAddSubscription)),
					huh.NewOption("cut a spending category", string(whatif.ScenarioCutCategory)),
					huh.NewOption("adjusted a budget", string(whatif.ScenarioAdjustBudget)),
					huh.NewOption("saved for a goal", string(whatif.ScenarioSavingsGoal)),
					huh.NewOption("made a major purchase", string(whatif.ScenarioMajorPurchase)),
				).
				Value(&m.scenario),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m *WhatIfModel) fillForm() *huh.Form {
	amountTitle := "Monthly amount"

	switch whatif.ScenarioType(m.scenario) {
	case whatif.ScenarioChangeIncome:
		amountTitle = "Income change per month (+/-)"
	case whatif.ScenarioAddSubscription:
		amountTitle = "Monthly cost"
	case whatif.ScenarioAdjustBudget:
		amountTitle = "New monthly limit"
	case whatif.ScenarioSavingsGoal, whatif.ScenarioMajorPurchase:
		amountTitle = "Total amount"
	}

	fields := []huh.Field{
		huh.NewInput().
			Key("name").
			Title("Name / category").
			Value(&m.formName),
		huh.NewInput().
			Key("amount").
			Title(amountTitle).
			Value(&m.formAmount).
			Validate(validNumber),
		huh.NewInput().
			Key("months").
			Title("Months (optional)").
			Value(&m.formMonths),
	}

	if whatif.ScenarioType(m.scenario) == whatif.ScenarioCutCategory {
		fields = append(fields, huh.NewInput().
			Key("percent").
			Title("Cut by percent").
			Value(&m.formPercent).
			Validate(validNumber))
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(45).WithShowHelp(false)
}

func validNumber(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("enter a number")
	}

	return nil
}

func (m WhatIfModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m WhatIfModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case whatIfResultMsg:
		m.state = whatIfStateResult
		m.result = msg.result
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			if m.state == whatIfStatePick {
				return m, Back
			}

			m.state = whatIfStatePick
			m.result = nil
			m.err = nil
			m.form = m.pickForm()

			return m, m.form.Init()
		}
	}

	if m.state == whatIfStateResult {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == whatIfStatePick {
		// Read through the form: the model is copied on every update, so
		// the Value bindings point at a stale copy.
		m.scenario = m.form.GetString("scenario")
		m.state = whatIfStateFill
		m.form = m.fillForm()

		return m, m.form.Init()
	}

	return m, m.simulateCmd()
}

func (m WhatIfModel) View() string {
	switch m.state {
	case whatIfStateResult:
		return m.resultView()
	default:
		title := lipgloss.NewStyle().Bold(true).Render("What-If Simulator")
		help := lipgloss.NewStyle().Faint(true).Render("Esc: back")

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View(), help),
		)
	}
}

func (m WhatIfModel) resultView() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\nEsc: back", m.err))
	}

	r := m.result

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Render(r.Description))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Monthly delta:  %+.2f\n", r.MonthlyDelta))
	b.WriteString(fmt.Sprintf("Over %d months: %+.2f\n", r.HorizonMonths, r.TotalSavings))
	b.WriteString(fmt.Sprintf("Verdict:        %s\n\n", r.Recommendation))

	for _, p := range r.Pros {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("+ " + p))
		b.WriteString("\n")
	}

	for _, c := range r.Cons {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("- " + c))
		b.WriteString("\n")
	}

	for _, gi := range r.GoalImpacts {
		b.WriteString(fmt.Sprintf("\nGoal %q: +%.2f/month, done in %.0f months\n",
			gi.Name, gi.ExtraMonthly, gi.MonthsToCompletion))
	}

	b.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render("Esc: new scenario"))

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}

type whatIfResultMsg struct {
	result *whatif.Result
	err    error
}

func (m WhatIfModel) simulateCmd() tea.Cmd {
	req := m.buildRequest()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		result, err := m.insightSvc.WhatIf(ctx, m.userID, req)
		if err != nil {
			return whatIfResultMsg{err: err}
		}

		return whatIfResultMsg{result: &result}
	}
}

func (m WhatIfModel) buildRequest() whatif.Request {
	name := m.form.GetString("name")
	amount, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("amount")), 64)
	months, _ := strconv.Atoi(strings.TrimSpace(m.form.GetString("months")))
	percent, _ := strconv.ParseFloat(strings.TrimSpace(m.form.GetString("percent")), 64)

	req := whatif.Request{
		Scenario:      whatif.ScenarioType(m.scenario),
		HorizonMonths: months,
	}

	switch req.Scenario {
	case whatif.ScenarioChangeIncome:
		req.IncomeChange = amount
	case whatif.ScenarioAddSubscription:
		req.Name = name
		req.MonthlyCost = amount
	case whatif.ScenarioCutCategory:
		req.Category = name
		req.CutPercent = percent
	case whatif.ScenarioAdjustBudget:
		req.Category = name
		req.NewLimit = amount
	case whatif.ScenarioSavingsGoal:
		req.TargetAmount = amount
		req.TargetMonths = months
		req.HorizonMonths = 0
	case whatif.ScenarioMajorPurchase:
		req.Name = name
		req.PurchasePrice = amount
		req.FinanceMonths = months
		req.HorizonMonths = 0
	}

	return req
}

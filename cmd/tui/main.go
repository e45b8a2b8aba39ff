package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/fintwin-app/fintwin/cmd/tui/internal/view"
	"github.com/fintwin-app/fintwin/internal/budget"
	budgetStore "github.com/fintwin-app/fintwin/internal/budget/store"
	"github.com/fintwin-app/fintwin/internal/config"
	"github.com/fintwin-app/fintwin/internal/database"
	"github.com/fintwin-app/fintwin/internal/goal"
	goalStore "github.com/fintwin-app/fintwin/internal/goal/store"
	"github.com/fintwin-app/fintwin/internal/insight"
	"github.com/fintwin-app/fintwin/internal/subscription"
	subscriptionStore "github.com/fintwin-app/fintwin/internal/subscription/store"
	"github.com/fintwin-app/fintwin/internal/transaction"
	txStore "github.com/fintwin-app/fintwin/internal/transaction/store"
)

type model struct {
	insightService *insight.Service
	userID         string

	currentView View

	dashboardView view.DashboardModel
	alertsView    view.AlertsModel
	forecastView  view.ForecastModel
	universesView view.UniversesModel
	whatIfView    view.WhatIfModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewAlerts    View = 2
	ViewForecast  View = 3
	ViewUniverses View = 4
	ViewWhatIf    View = 5
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	txSvc := transaction.NewService(txStore.New(db))
	budgetSvc := budget.NewService(budgetStore.New(db))
	subSvc := subscription.NewService(subscriptionStore.New(db))
	goalSvc := goal.NewService(goalStore.New(db))

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	insightSvc := insight.NewService(txSvc, budgetSvc, subSvc, goalSvc, cfg.Insights.CacheTTL, logger)

	userID := cfg.App.User

	return model{
		insightService: insightSvc,
		userID:         userID,
		currentView:    ViewMenu,
		dashboardView:  view.NewDashboardModel(insightSvc, userID),
		alertsView:     view.NewAlertsModel(insightSvc, userID),
		forecastView:   view.NewForecastModel(insightSvc, userID),
		universesView:  view.NewUniversesModel(insightSvc, userID),
		whatIfView:     view.NewWhatIfModel(insightSvc, userID),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.insightService, m.userID)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewAlerts
				m.alertsView = view.NewAlertsModel(m.insightService, m.userID)

				return m, m.alertsView.Init()
			case "3":
				m.currentView = ViewForecast
				m.forecastView = view.NewForecastModel(m.insightService, m.userID)

				return m, m.forecastView.Init()
			case "4":
				m.currentView = ViewUniverses
				m.universesView = view.NewUniversesModel(m.insightService, m.userID)

				return m, m.universesView.Init()
			case "5":
				m.currentView = ViewWhatIf
				m.whatIfView = view.NewWhatIfModel(m.insightService, m.userID)

				return m, m.whatIfView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewAlerts:
		var newModel tea.Model
		newModel, cmd = m.alertsView.Update(msg)
		m.alertsView = newModel.(view.AlertsModel)
	case ViewForecast:
		var newModel tea.Model
		newModel, cmd = m.forecastView.Update(msg)
		m.forecastView = newModel.(view.ForecastModel)
	case ViewUniverses:
		var newModel tea.Model
		newModel, cmd = m.universesView.Update(msg)
		m.universesView = newModel.(view.UniversesModel)
	case ViewWhatIf:
		var newModel tea.Model
		newModel, cmd = m.whatIfView.Update(msg)
		m.whatIfView = newModel.(view.WhatIfModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"FinTwin TUI\n\n" +
				"1. Spending Dashboard\n" +
				"2. Risk Alerts\n" +
				"3. Forecast\n" +
				"4. Parallel Universes\n" +
				"5. What-If Simulator\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewAlerts:
		return m.alertsView.View()
	case ViewForecast:
		return m.forecastView.View()
	case ViewUniverses:
		return m.universesView.View()
	case ViewWhatIf:
		return m.whatIfView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

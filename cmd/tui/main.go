package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/fintrack/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/fintrack/internal/app"
	"github.com/MrJamesThe3rd/fintrack/internal/config"
	"github.com/MrJamesThe3rd/fintrack/internal/database"
)

type model struct {
	services *app.Services

	currentView View
	screen      view.View
	size        tea.WindowSizeMsg
}

type View int

const (
	ViewMenu       View = 0
	ViewOperations View = 1
	ViewCategories View = 2
	ViewCurrencies View = 3
)

func (m model) open(v View) (tea.Model, tea.Cmd) {
	switch v {
	case ViewOperations:
		m.screen = view.NewOperationsModel(m.services.Operations)
	case ViewCategories:
		m.screen = view.NewCategoriesModel(m.services.Categories, m.services.Operations)
	case ViewCurrencies:
		m.screen = view.NewCurrenciesModel(m.services.Currencies)
	default:
		return m, nil
	}

	m.currentView = v

	if m.size.Width > 0 {
		next, _ := m.screen.Update(m.size)
		m.screen = next.(view.View)
	}

	return m, m.screen.Init()
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.open(ViewOperations)
			case "2":
				return m.open(ViewCategories)
			case "3":
				return m.open(ViewCurrencies)
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	if m.currentView == ViewMenu {
		return m, nil
	}

	next, cmd := m.screen.Update(msg)
	m.screen = next.(view.View)

	return m, cmd
}

func (m model) View() string {
	if m.currentView != ViewMenu {
		return m.screen.View()
	}

	return lipgloss.NewStyle().Padding(2).Render(
		"Fintrack admin console\n\n" +
			"1. Operations\n" +
			"2. Categories\n" +
			"3. Currencies\n\n" +
			"q. Quit",
	)
}

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

	return model{
		services:    app.NewServices(db, cfg.Session.BcryptCost),
		currentView: ViewMenu,
	}
}

func main() {
	p := tea.NewProgram(initialModel(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

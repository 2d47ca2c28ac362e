package main

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/stake-planner/internal/logger"
	"github.com/rovshanmuradov/stake-planner/internal/preset"
	"github.com/rovshanmuradov/stake-planner/internal/ui"
	"github.com/rovshanmuradov/stake-planner/internal/ui/router"
	"github.com/rovshanmuradov/stake-planner/internal/ui/screen"
)

// AppModel represents the main TUI application model
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// NewAppModel creates a new application model around the calculator screen
func NewAppModel(calculator *screen.CalculatorScreen, buffer *logger.LogBuffer) *AppModel {
	r := router.New(calculator, func(route ui.Route) router.Screen {
		switch route {
		case ui.RouteLogs:
			return screen.NewLogsScreen(buffer)
		default:
			// Unknown route, stay on current screen
			return nil
		}
	})

	return &AppModel{
		router: r,
	}
}

// Init initializes the application
func (m *AppModel) Init() tea.Cmd {
	return m.router.Init()
}

// Update handles application-level updates
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	_, cmd := m.router.Update(msg)
	return m, cmd
}

// View renders the application
func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	return m.router.View()
}

// presetStore holds the latest presets so a restarted UI starts with what
// the watcher last loaded
type presetStore struct {
	mu      sync.RWMutex
	presets []preset.Preset
}

func (ps *presetStore) Set(presets []preset.Preset) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.presets = presets
}

func (ps *presetStore) Get() []preset.Preset {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.presets
}

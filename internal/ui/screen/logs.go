package screen

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/stake-planner/internal/logger"
	"github.com/rovshanmuradov/stake-planner/internal/ui"
	"github.com/rovshanmuradov/stake-planner/internal/ui/component"
	"github.com/rovshanmuradov/stake-planner/internal/ui/router"
	"github.com/rovshanmuradov/stake-planner/internal/ui/style"
)

const (
	logsRefreshInterval = time.Second
	logsLimit           = 200
)

// logsTickMsg triggers a refresh of the screen that scheduled it
type logsTickMsg struct {
	screen *LogsScreen
}

// LogsScreen shows the most recent application logs held in memory
type LogsScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	buffer  *logger.LogBuffer
	viewer  *component.LogViewer
	helpBar *component.HelpBar
}

// NewLogsScreen creates a new logs screen over buffer; buffer may be nil
func NewLogsScreen(buffer *logger.LogBuffer) *LogsScreen {
	keyMap := ui.DefaultKeyMap()
	return &LogsScreen{
		keyMap:  keyMap,
		buffer:  buffer,
		viewer:  component.NewLogViewer(buffer, logsLimit),
		helpBar: component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(ui.RouteLogs)),
	}
}

// Init loads the logs and starts auto-refresh
func (s *LogsScreen) Init() tea.Cmd {
	s.viewer.Refresh()
	return s.tick()
}

func (s *LogsScreen) tick() tea.Cmd {
	return tea.Tick(logsRefreshInterval, func(time.Time) tea.Msg {
		return logsTickMsg{screen: s}
	})
}

// Update handles screen updates
func (s *LogsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case logsTickMsg:
		// ticks scheduled by an earlier logs screen die here
		if msg.screen != s {
			return s, nil
		}
		s.viewer.Refresh()
		return s, s.tick()

	case tea.KeyMsg:
		if key.Matches(msg, s.keyMap.Quit) {
			return s, tea.Quit
		}
	}

	var cmd tea.Cmd
	s.viewer, cmd = s.viewer.Update(msg)
	return s, cmd
}

// View renders the logs screen
func (s *LogsScreen) View() string {
	var b strings.Builder

	title := "Registro de la aplicación"
	if s.buffer != nil {
		total, spilled := s.buffer.GetStats()
		title += fmt.Sprintf(" (%d entradas, %d en disco)", total, spilled)
	}
	b.WriteString(style.TitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(s.viewer.View())
	b.WriteString("\n")
	b.WriteString(s.helpBar.SetWidth(s.width).View())

	return b.String()
}

// SetSize sets the screen dimensions
func (s *LogsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height

	// title and help bar take about six lines
	viewHeight := height - 6
	if viewHeight < 3 {
		viewHeight = 3
	}
	s.viewer.SetSize(width, viewHeight)
}

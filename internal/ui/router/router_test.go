package router

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/stake-planner/internal/ui"
	"github.com/stretchr/testify/assert"
)

type stubScreen struct {
	name   string
	width  int
	msgs   []tea.Msg
	inited int
}

func (s *stubScreen) Init() tea.Cmd { s.inited++; return nil }

func (s *stubScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	s.msgs = append(s.msgs, msg)
	return s, nil
}

func (s *stubScreen) View() string { return s.name }

func (s *stubScreen) SetSize(width, _ int) { s.width = width }

type pingMsg struct{}

func TestRouterNavigation(t *testing.T) {
	root := &stubScreen{name: "calculator"}
	logs := &stubScreen{name: "logs"}
	r := New(root, func(route ui.Route) Screen {
		if route == ui.RouteLogs {
			return logs
		}
		return nil
	})

	r.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	r.Update(ui.RouterMsg{To: ui.RouteLogs})

	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "logs", r.View())
	assert.Equal(t, 100, logs.width)
	assert.Equal(t, 1, logs.inited)

	r.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "calculator", r.View())

	// esc on the root screen belongs to the screen
	r.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, root.msgs, 1)

	r.Update(ui.RouterMsg{To: ui.RouteLogs})
	r.Update(ui.RouterMsg{To: ui.RouteCalculator})
	assert.Equal(t, 1, r.Depth())
	assert.False(t, r.CanGoBack())
}

func TestRouterDeliversBackgroundMessagesToWholeStack(t *testing.T) {
	root := &stubScreen{name: "calculator"}
	logs := &stubScreen{name: "logs"}
	r := New(root, func(ui.Route) Screen { return logs })
	r.Update(ui.RouterMsg{To: ui.RouteLogs})

	r.Update(pingMsg{})
	r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})

	assert.Equal(t, []tea.Msg{pingMsg{}}, root.msgs)
	assert.Len(t, logs.msgs, 2)
}

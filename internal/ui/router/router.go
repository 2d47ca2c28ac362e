package router

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/stake-planner/internal/ui"
)

// Screen represents a screen that can be navigated to
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Resolver builds the screen for a route
type Resolver func(route ui.Route) Screen

// Router manages navigation between screens using a stack-based approach.
// Input goes to the top screen only; every other message reaches the whole
// stack so covered screens stay current.
type Router struct {
	stack   []Screen
	resolve Resolver
	width   int
	height  int
}

// New creates a new router with the initial screen
func New(initialScreen Screen, resolve Resolver) *Router {
	return &Router{
		stack:   []Screen{initialScreen},
		resolve: resolve,
	}
}

// Init initializes the router
func (r *Router) Init() tea.Cmd {
	return r.Current().Init()
}

// Update processes messages and updates the screens
func (r *Router) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.RouterMsg:
		return r, r.navigate(msg.To)

	case tea.WindowSizeMsg:
		r.SetSize(msg.Width, msg.Height)
		return r, nil

	case tea.KeyMsg:
		if msg.String() == "esc" && r.CanGoBack() {
			return r, r.Pop()
		}
		return r, r.updateTop(msg)

	case tea.MouseMsg:
		return r, r.updateTop(msg)
	}

	cmds := make([]tea.Cmd, 0, len(r.stack))
	for i, s := range r.stack {
		updated, cmd := s.Update(msg)
		r.stack[i] = updated
		cmds = append(cmds, cmd)
	}
	return r, tea.Batch(cmds...)
}

func (r *Router) updateTop(msg tea.Msg) tea.Cmd {
	top := len(r.stack) - 1
	updated, cmd := r.stack[top].Update(msg)
	r.stack[top] = updated
	return cmd
}

func (r *Router) navigate(route ui.Route) tea.Cmd {
	if route == ui.RouteCalculator {
		return r.Clear()
	}
	if r.resolve == nil {
		return nil
	}
	if s := r.resolve(route); s != nil {
		return r.Push(s)
	}
	return nil
}

// View renders the current screen
func (r *Router) View() string {
	return r.Current().View()
}

// SetSize sets the size for the router and every screen on the stack
func (r *Router) SetSize(width, height int) {
	r.width = width
	r.height = height
	for _, s := range r.stack {
		s.SetSize(width, height)
	}
}

// Push adds a new screen to the navigation stack
func (r *Router) Push(screen Screen) tea.Cmd {
	screen.SetSize(r.width, r.height)
	r.stack = append(r.stack, screen)
	return screen.Init()
}

// Pop removes the current screen from the stack
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil // Can't pop the last screen
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Clear removes all screens except the first one
func (r *Router) Clear() tea.Cmd {
	r.stack = r.stack[:1]
	return nil
}

// Current returns the current screen
func (r *Router) Current() Screen {
	return r.stack[len(r.stack)-1]
}

// Depth returns the current navigation depth
func (r *Router) Depth() int {
	return len(r.stack)
}

// CanGoBack returns true if there are screens to go back to
func (r *Router) CanGoBack() bool {
	return len(r.stack) > 1
}

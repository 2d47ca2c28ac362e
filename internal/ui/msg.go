package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/stake-planner/internal/preset"
)

// Tea message types for UI communication

// RouterMsg represents navigation between screens
type RouterMsg struct {
	To Route
}

// PresetsLoadedMsg carries presets re-read from disk
type PresetsLoadedMsg struct {
	Presets []preset.Preset
	File    string
}

// ErrorMsg represents error conditions
type ErrorMsg struct {
	Error error
	Title string
}

// SuccessMsg represents success conditions
type SuccessMsg struct {
	Message string
	Title   string
}

// Bus carries messages from background goroutines into the tea program
type Bus struct {
	ch chan tea.Msg
}

// NewBus creates a bus holding up to size pending messages
func NewBus(size int) *Bus {
	return &Bus{ch: make(chan tea.Msg, size)}
}

// Publish queues msg without blocking. It reports false when the bus is full
// and the message was dropped.
func (b *Bus) Publish(msg tea.Msg) bool {
	select {
	case b.ch <- msg:
		return true
	default:
		return false
	}
}

// Pump hands every published message to deliver, one at a time, until ctx
// is cancelled. It is the only reader of the bus, so a message is never
// claimed by a program that has already exited.
func (b *Bus) Pump(ctx context.Context, deliver func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-b.ch:
			deliver(msg)
		}
	}
}

// Route represents different screens in the application
type Route int

const (
	RouteCalculator Route = iota
	RouteLogs
)

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RouteCalculator:
		return "calculator"
	case RouteLogs:
		return "logs"
	default:
		return "unknown"
	}
}

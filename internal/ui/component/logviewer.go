package component

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/stake-planner/internal/logger"
	"github.com/rovshanmuradov/stake-planner/internal/ui/style"
)

// LogViewer shows the tail of a LogBuffer in a scrollable viewport
type LogViewer struct {
	buffer   *logger.LogBuffer
	viewport viewport.Model
	limit    int
	follow   bool
}

// NewLogViewer creates a viewer that displays up to limit recent entries
func NewLogViewer(buffer *logger.LogBuffer, limit int) *LogViewer {
	return &LogViewer{
		buffer:   buffer,
		viewport: viewport.New(80, 20),
		limit:    limit,
		follow:   true,
	}
}

// SetSize resizes the viewport
func (lv *LogViewer) SetSize(width, height int) *LogViewer {
	lv.viewport.Width = width
	lv.viewport.Height = height
	return lv
}

// Refresh re-reads the buffer. While following, the view sticks to the newest entry.
func (lv *LogViewer) Refresh() {
	if lv.buffer == nil {
		lv.viewport.SetContent(style.MutedStyle.Render("Logging to buffer is disabled"))
		return
	}

	entries := lv.buffer.GetRecentLogs(lv.limit)
	if len(entries) == 0 {
		lv.viewport.SetContent(style.MutedStyle.Render("No log entries yet"))
		return
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, formatEntry(e))
	}
	lv.viewport.SetContent(strings.Join(lines, "\n"))
	if lv.follow {
		lv.viewport.GotoBottom()
	}
}

// Update scrolls the viewport. Scrolling up stops following new entries
// until the bottom is reached again.
func (lv *LogViewer) Update(msg tea.Msg) (*LogViewer, tea.Cmd) {
	var cmd tea.Cmd
	lv.viewport, cmd = lv.viewport.Update(msg)
	lv.follow = lv.viewport.AtBottom()
	return lv, cmd
}

// View renders the viewport
func (lv *LogViewer) View() string {
	return lv.viewport.View()
}

func formatEntry(e logger.LogEntry) string {
	levelStyle := style.MutedStyle
	switch e.Level {
	case "info":
		levelStyle = style.SuccessStyle
	case "warn":
		levelStyle = style.WarningStyle
	case "error", "dpanic", "panic", "fatal":
		levelStyle = style.ErrorStyle
	}

	line := fmt.Sprintf("%s %s %s",
		style.MutedStyle.Render(e.Timestamp.Format("15:04:05")),
		levelStyle.Render(fmt.Sprintf("%-5s", strings.ToUpper(e.Level))),
		e.Message)

	if len(e.Fields) == 0 {
		return line
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, e.Fields[k]))
	}
	return line + " " + lipgloss.NewStyle().Faint(true).Render(strings.Join(pairs, " "))
}

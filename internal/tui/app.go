// Package tui provides the interactive Bubble Tea demo session for tally.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/stats"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/popup"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

const (
	minContentHeight = 3
	maxEventLog      = 200
)

// App is the root Bubble Tea model: a simulated assistant session whose
// events feed one stats.Session, with the stats popup on `s`.
type App struct {
	session *stats.Session
	feed    *demoFeed
	events  []string

	statsPopup *popup.StatsView

	cfg      config.Config
	keys     KeyMap
	showHelp bool

	width  int
	height int
}

// NewApp creates the demo app model.
func NewApp(cfg config.Config) App {
	return App{
		session: stats.New(),
		feed:    newDemoFeed(),
		cfg:     cfg,
		keys:    DefaultKeyMap(),
	}
}

type tickMsg struct{}

func (a App) tickCmd() tea.Cmd {
	interval := time.Duration(a.cfg.Demo.TickMs) * time.Millisecond
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.tickCmd()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Global: quit
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// The popup consumes all keys while open.
		if a.statsPopup != nil {
			a.statsPopup.HandleKey(msg)
			if a.statsPopup.IsComplete() {
				a.statsPopup = nil
			}
			return a, nil
		}

		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.showHelp = true
		case key.Matches(msg, a.keys.Stats):
			// Snapshot once; the popup never re-reads live state.
			a.statsPopup = popup.New(a.session.Snapshot(), a.cfg.Popup.MaxRows)
		}
		return a, nil

	case tickMsg:
		line := a.feed.next(a.session)
		a.events = append(a.events, line)
		if len(a.events) > maxEventLog {
			a.events = a.events[len(a.events)-maxEventLog:]
		}
		return a, a.tickCmd()
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	t := theme.Active

	header := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render(" tally") +
		lipgloss.NewStyle().Foreground(t.TextMuted).Render(" · simulated session")

	right := fmt.Sprintf("turn %d · %s tokens · %s ",
		a.session.CurrentTurn(),
		cli.FormatTokens(a.session.TotalTokens()),
		cli.FormatDuration(a.session.SessionDuration()))
	statusBar := components.RenderStatusBar(a.width, " [s]tats  [?]help  [q]uit", right)

	contentH := a.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	if a.showHelp {
		content = a.viewHelp()
	} else {
		content = a.viewEventLog(contentH)
	}
	content = padHeight(truncateHeight(content, contentH), contentH)

	if a.statsPopup != nil {
		content = a.overlayPopup(content, contentH)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (a App) viewEventLog(contentH int) string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim)
	txt := lipgloss.NewStyle().Foreground(t.TextPrimary)

	events := a.events
	if len(events) > contentH {
		events = events[len(events)-contentH:]
	}

	var b strings.Builder
	for i, ev := range events {
		idx := strings.IndexByte(ev, ']')
		b.WriteString(" ")
		b.WriteString(dim.Render(ev[:idx+1]))
		b.WriteString(txt.Render(ev[idx+1:]))
		if i < len(events)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (a App) viewHelp() string {
	t := theme.Active
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	bindings := []struct{ key, desc string }{
		{"s", "Open session statistics"},
		{"↑/k ↓/j", "Scroll the stats popup"},
		{"Esc / Enter", "Close the stats popup"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-12s", bind.key)),
			descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(descStyle.Render("  Press any key to close"))
	return b.String()
}

// overlayPopup splices the popup over the bottom rows of the content area.
func (a App) overlayPopup(content string, contentH int) string {
	ph := a.statsPopup.DesiredHeight(a.width)
	if ph > contentH {
		ph = contentH
	}
	if ph <= 0 {
		return content
	}

	rendered := a.statsPopup.Render(a.width, ph)
	if rendered == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	popupLines := strings.Split(rendered, "\n")
	keep := len(lines) - len(popupLines)
	if keep < 0 {
		keep = 0
	}
	merged := append(lines[:keep], popupLines...)
	return strings.Join(merged, "\n")
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

package popup

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/stats"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

// DefaultMaxRows caps the visible list when config doesn't override it.
const DefaultMaxRows = 8

// KeyMap holds the popup key bindings. Letter shortcuts only fire
// unmodified; modified combinations fall through and are ignored.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Dismiss key.Binding
}

// DefaultKeyMap returns the default popup key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc", "enter"),
			key.WithHelp("esc", "close"),
		),
	}
}

// StatsView is a read-only scrollable popup over a session snapshot.
//
// It holds a committed scroll position (mutated only by key events) and a
// cached row budget (written only during Render). Key handling always uses
// the budget from the previous render pass; the first key after a resize
// therefore scrolls against the old budget, and the following render
// re-establishes the window invariant against the new one.
type StatsView struct {
	lines    []string
	state    ScrollState
	complete bool
	header   Renderable
	keys     KeyMap
	maxRows  int

	// lastVisibleRows is the row budget observed at the previous render.
	lastVisibleRows int
}

// New builds the popup from a snapshot. The line list is computed once
// here; the popup never re-reads live aggregator state.
func New(snap stats.Snapshot, maxRows int) *StatsView {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	t := theme.Active
	header := ColumnLines{
		lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Render("Session Statistics"),
		lipgloss.NewStyle().Foreground(t.TextDim).Render("Performance metrics for this session."),
	}

	v := &StatsView{
		lines:           BuildLines(snap),
		state:           NewScrollState(),
		header:          header,
		keys:            DefaultKeyMap(),
		maxRows:         maxRows,
		lastVisibleRows: maxRows,
	}
	if len(v.lines) > 0 {
		v.state.Selected = 0
	}
	return v
}

// HandleKey processes one key event. Unrecognized keys are ignored.
func (v *StatsView) HandleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, v.keys.Up):
		v.moveUp()
	case key.Matches(msg, v.keys.Down):
		v.moveDown()
	case key.Matches(msg, v.keys.Dismiss):
		v.complete = true
	}
}

// IsComplete reports whether the popup has been dismissed. Complete is
// terminal; there is no way back to Active.
func (v *StatsView) IsComplete() bool {
	return v.complete
}

// ScrollState exposes the committed scroll position for tests and callers
// that need to inspect where the window sits.
func (v *StatsView) ScrollState() ScrollState {
	return v.state
}

func (v *StatsView) visibleRowsForScroll() int {
	if len(v.lines) == 0 {
		return 0
	}
	return min(v.lastVisibleRows, len(v.lines))
}

func (v *StatsView) moveUp() {
	if len(v.lines) == 0 {
		return
	}
	v.state.MoveUpWrap(len(v.lines))
	v.state.EnsureVisible(len(v.lines), v.visibleRowsForScroll())
}

func (v *StatsView) moveDown() {
	if len(v.lines) == 0 {
		return
	}
	v.state.MoveDownWrap(len(v.lines))
	v.state.EnsureVisible(len(v.lines), v.visibleRowsForScroll())
}

// DesiredHeight declares the preferred total popup height for the given
// width: header, gap, up to maxRows list rows, footer, and vertical
// padding. The caller clamps to its available area.
func (v *StatsView) DesiredHeight(width int) int {
	headerH := v.header.DesiredHeight(width - 4)
	listH := min(v.maxRows, len(v.lines))
	return headerH + 1 + listH + 1 + 2
}

// Render draws the popup into a width x height cell area and returns it as
// newline-joined rows. A zero-area target renders nothing. Rendering also
// recomputes and caches the row budget used by subsequent key events.
func (v *StatsView) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	t := theme.Active

	// One footer row; the rest is the content box, inset by one row
	// vertically and two columns horizontally.
	contentH := height - 1
	innerW := max(0, width-4)
	innerH := max(0, contentH-2)

	headerH := v.header.DesiredHeight(innerW)
	available := max(0, innerH-headerH-1)
	listH := min(v.maxRows, min(len(v.lines), available))

	v.lastVisibleRows = listH

	scrollTop := 0
	if listH > 0 {
		// Window against the fresh budget without committing the scroll
		// position: only key events mutate v.state.
		st := v.state
		st.EnsureVisible(len(v.lines), listH)
		scrollTop = st.ScrollTop
	}

	var inner []string
	if innerH > 0 {
		if headerH > 0 {
			inner = append(inner, strings.Split(v.header.Render(innerW), "\n")...)
		}
		inner = append(inner, "")
		if listH > 0 {
			end := min(scrollTop+listH, len(v.lines))
			inner = append(inner, v.lines[scrollTop:end]...)
		}
		if len(inner) > innerH {
			inner = inner[:innerH]
		}
		for len(inner) < innerH {
			inner = append(inner, "")
		}
	}

	box := make([]string, 0, contentH)
	if contentH > 0 {
		box = append(box, "")
		for _, line := range inner {
			box = append(box, "  "+line)
		}
		if len(box) < contentH {
			box = append(box, "")
		}
		if len(box) > contentH {
			box = box[:contentH]
		}
	}
	for i := range box {
		box[i] = lipgloss.PlaceHorizontal(width, lipgloss.Left, box[i],
			lipgloss.WithWhitespaceBackground(t.Surface))
	}

	footer := "  " + lipgloss.NewStyle().Foreground(t.TextDim).
		Render("↑/↓ to scroll, esc to close")
	rows := append(box, footer)
	return strings.Join(rows, "\n")
}

package popup

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyJ     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}
	keyK     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	keyAltK  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}, Alt: true}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
)

func newTestView() *StatsView {
	return New(sampleSnapshot(), 0)
}

func TestNewInitialState(t *testing.T) {
	v := newTestView()
	if v.IsComplete() {
		t.Error("new view must start Active")
	}
	if got := v.ScrollState().Selected; got != 0 {
		t.Errorf("initial Selected = %d, want 0", got)
	}
	if v.maxRows != DefaultMaxRows {
		t.Errorf("maxRows = %d, want default %d", v.maxRows, DefaultMaxRows)
	}
}

func TestDismissKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{keyEsc, keyEnter} {
		v := newTestView()
		v.HandleKey(msg)
		if !v.IsComplete() {
			t.Errorf("key %q must dismiss the popup", msg.String())
		}
	}
}

func TestIgnoredKeys(t *testing.T) {
	v := newTestView()
	v.HandleKey(keySpace)
	v.HandleKey(keyAltK) // modified letter shortcuts must not fire
	if v.IsComplete() || v.ScrollState().Selected != 0 {
		t.Errorf("unrecognized keys changed state: complete=%v selected=%d",
			v.IsComplete(), v.ScrollState().Selected)
	}
}

func TestNavigationKeys(t *testing.T) {
	v := newTestView()

	v.HandleKey(keyDown)
	v.HandleKey(keyJ)
	if got := v.ScrollState().Selected; got != 2 {
		t.Errorf("Selected after two down moves = %d, want 2", got)
	}

	v.HandleKey(keyUp)
	v.HandleKey(keyK)
	if got := v.ScrollState().Selected; got != 0 {
		t.Errorf("Selected after moving back up = %d, want 0", got)
	}
}

func TestWrapToBottomAdjustsWindow(t *testing.T) {
	v := newTestView()
	n := len(v.lines)

	v.HandleKey(keyUp) // wraps from 0 to the last line
	st := v.ScrollState()
	if st.Selected != n-1 {
		t.Fatalf("Selected = %d, want %d", st.Selected, n-1)
	}
	wantTop := n - DefaultMaxRows
	if st.ScrollTop != wantTop {
		t.Errorf("ScrollTop = %d, want %d (window moved to show last line)", st.ScrollTop, wantTop)
	}
}

func TestRenderZeroArea(t *testing.T) {
	v := newTestView()
	if out := v.Render(0, 10); out != "" {
		t.Errorf("zero width rendered %q, want empty", out)
	}
	if out := v.Render(40, 0); out != "" {
		t.Errorf("zero height rendered %q, want empty", out)
	}
}

func TestRenderRowCountAndFooter(t *testing.T) {
	v := newTestView()
	out := v.Render(60, 14)

	rows := strings.Split(out, "\n")
	if len(rows) != 14 {
		t.Errorf("rendered %d rows, want exactly 14", len(rows))
	}
	if !strings.Contains(out, "to scroll, esc to close") {
		t.Error("footer hint missing")
	}
	if !strings.Contains(out, "Session Statistics") {
		t.Error("header missing")
	}
	if !strings.Contains(out, "── Commands ──") {
		t.Error("first visible line missing")
	}
}

func TestRenderUpdatesRowBudget(t *testing.T) {
	v := newTestView()
	if v.lastVisibleRows != DefaultMaxRows {
		t.Fatalf("initial budget = %d, want %d", v.lastVisibleRows, DefaultMaxRows)
	}

	// height 9: content 8, inner 6, header 2, gap 1 -> 3 list rows.
	v.Render(60, 9)
	if v.lastVisibleRows != 3 {
		t.Errorf("budget after small render = %d, want 3", v.lastVisibleRows)
	}

	// Plenty of room again: capped by maxRows.
	v.Render(60, 40)
	if v.lastVisibleRows != DefaultMaxRows {
		t.Errorf("budget after large render = %d, want %d", v.lastVisibleRows, DefaultMaxRows)
	}
}

// Render windows against the fresh budget but must not commit the scroll
// position: only key events move it. The first key after a resize scrolls
// against the stale budget; the next key uses the new one.
func TestSplitPhaseScrollCommit(t *testing.T) {
	v := newTestView()

	// Eight moves against the initial budget of 8: window slides to top 1.
	for i := 0; i < 8; i++ {
		v.HandleKey(keyDown)
	}
	st := v.ScrollState()
	if st.Selected != 8 || st.ScrollTop != 1 {
		t.Fatalf("after 8 moves: sel=%d top=%d, want sel=8 top=1", st.Selected, st.ScrollTop)
	}

	// Shrink to a 3-row budget. The committed position must survive the render.
	v.Render(60, 9)
	if got := v.ScrollState().ScrollTop; got != 1 {
		t.Errorf("render committed a scroll position: top = %d, want 1", got)
	}

	// The next key event re-windows against the new budget.
	v.HandleKey(keyDown)
	st = v.ScrollState()
	if st.Selected != 9 || st.ScrollTop != 7 {
		t.Errorf("after post-resize move: sel=%d top=%d, want sel=9 top=7", st.Selected, st.ScrollTop)
	}
}

func TestRenderScrolledWindow(t *testing.T) {
	v := newTestView()
	v.Render(60, 9) // 3-row budget

	// Move far enough that the first line scrolls out of the window.
	for i := 0; i < 5; i++ {
		v.HandleKey(keyDown)
	}
	out := v.Render(60, 9)
	if strings.Contains(out, "── Commands ──") {
		t.Error("first line still visible after scrolling past it")
	}
	if !strings.Contains(out, v.lines[v.ScrollState().Selected]) {
		t.Error("selected line not visible in the rendered window")
	}
}

func TestDesiredHeight(t *testing.T) {
	v := newTestView()
	// header 2 + gap 1 + list rows 8 + footer 1 + padding 2
	if got := v.DesiredHeight(60); got != 14 {
		t.Errorf("DesiredHeight = %d, want 14", got)
	}

	small := New(sampleSnapshot(), 4)
	if got := small.DesiredHeight(60); got != 10 {
		t.Errorf("DesiredHeight with maxRows 4 = %d, want 10", got)
	}
}

func TestEmptyLinesView(t *testing.T) {
	v := &StatsView{
		state:           NewScrollState(),
		header:          ColumnLines{"x"},
		keys:            DefaultKeyMap(),
		maxRows:         DefaultMaxRows,
		lastVisibleRows: DefaultMaxRows,
	}
	v.HandleKey(keyDown) // navigating an empty list is a no-op
	if got := v.ScrollState().Selected; got != -1 {
		t.Errorf("Selected on empty list = %d, want -1", got)
	}
	if out := v.Render(40, 6); out == "" {
		t.Error("empty list should still render the frame")
	}
}

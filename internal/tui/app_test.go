package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/tally/internal/config"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newSizedApp(t *testing.T) App {
	t.Helper()
	a := NewApp(config.DefaultConfig())
	m, _ := a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m.(App)
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestStatsKeyOpensAndClosesPopup(t *testing.T) {
	a := newSizedApp(t)

	m, _ := a.Update(keyRunes('s'))
	a = m.(App)
	if a.statsPopup == nil {
		t.Fatal("pressing s must open the stats popup")
	}

	// While open, the popup consumes navigation keys.
	m, _ = a.Update(keyRunes('j'))
	a = m.(App)
	if got := a.statsPopup.ScrollState().Selected; got != 1 {
		t.Errorf("popup Selected after j = %d, want 1", got)
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	a = m.(App)
	if a.statsPopup != nil {
		t.Error("esc must close the popup")
	}
}

func TestPopupBlocksAppKeys(t *testing.T) {
	a := newSizedApp(t)

	m, _ := a.Update(keyRunes('s'))
	a = m.(App)

	// q goes to the popup (ignored there), not to the app quit binding.
	m, cmd := a.Update(keyRunes('q'))
	a = m.(App)
	if cmd != nil {
		t.Error("q while popup open must not quit")
	}
	if a.statsPopup == nil {
		t.Error("popup should remain open after an ignored key")
	}
}

func TestTickFeedsSession(t *testing.T) {
	a := newSizedApp(t)

	m, cmd := a.Update(tickMsg{})
	a = m.(App)
	if cmd == nil {
		t.Error("tick must schedule the next tick")
	}
	if len(a.events) != 1 {
		t.Fatalf("event log has %d entries after one tick, want 1", len(a.events))
	}
	if got := a.session.CurrentTurn(); got != 1 {
		t.Errorf("CurrentTurn after first scripted event = %d, want 1", got)
	}
}

func TestPopupIsSnapshotNotLive(t *testing.T) {
	a := newSizedApp(t)

	m, _ := a.Update(tickMsg{})
	a = m.(App)
	m, _ = a.Update(keyRunes('s'))
	a = m.(App)

	before := a.View()

	// New session activity must not change the open popup's contents.
	for i := 0; i < 4; i++ {
		m, _ = a.Update(tickMsg{})
		a = m.(App)
	}
	after := a.View()

	if popupRegion(t, before) != popupRegion(t, after) {
		t.Error("popup content changed while open; it must render from the construction-time snapshot")
	}
}

// popupRegion extracts the rendered popup between its header and footer,
// excluding the live status bar below it.
func popupRegion(t *testing.T, view string) string {
	t.Helper()
	start := strings.Index(view, "Session Statistics")
	end := strings.Index(view, "to scroll, esc to close")
	if start < 0 || end < 0 || end < start {
		t.Fatalf("popup not rendered:\n%s", view)
	}
	return view[start:end]
}

func TestViewOverlaysPopup(t *testing.T) {
	a := newSizedApp(t)
	m, _ := a.Update(keyRunes('s'))
	a = m.(App)

	out := a.View()
	if !strings.Contains(out, "Session Statistics") {
		t.Error("popup header missing from view")
	}
	if !strings.Contains(out, "to scroll, esc to close") {
		t.Error("popup footer missing from view")
	}
}

func TestQuitKey(t *testing.T) {
	a := newSizedApp(t)
	_, cmd := a.Update(keyRunes('q'))
	if cmd == nil {
		t.Fatal("q must produce a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q command is not tea.Quit")
	}
}

package popup

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/stats"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

const (
	topAccessedShown = 3
	recentTurnsShown = 5
)

// BuildLines renders a stats snapshot into the popup's display lines.
// Four fixed sections — Commands, Files, Turns & Tokens, Timing — separated
// by blank lines. Pure: the same snapshot always yields the same lines.
func BuildLines(snap stats.Snapshot) []string {
	var lines []string

	// Section: Commands
	lines = append(lines, sectionHeader("Commands"))
	lines = append(lines, statLine("Total executed", fmt.Sprintf("%d", snap.TotalCommands)))
	lines = append(lines, statLine("Successful",
		fmt.Sprintf("%d (%s)", snap.SuccessfulCommands, cli.FormatPercent(snap.SuccessRate))))
	lines = append(lines, statLine("Failed", fmt.Sprintf("%d", snap.FailedCommands)))
	lines = append(lines, statLine("Total exec time", cli.FormatDuration(snap.TotalCommandTime)))
	lines = append(lines, "")

	// Section: Files
	lines = append(lines, sectionHeader("Files"))
	lines = append(lines, statLine("Files modified", fmt.Sprintf("%d", snap.FilesModified)))
	lines = append(lines, statLine("Files accessed", fmt.Sprintf("%d", snap.FilesAccessed)))

	if len(snap.TopAccessed) > 0 {
		lines = append(lines, subHeader("Top accessed:"))
		top := snap.TopAccessed
		if len(top) > topAccessedShown {
			top = top[:topAccessedShown]
		}
		for _, fc := range top {
			lines = append(lines, fileLine(fc))
		}
	}
	lines = append(lines, "")

	// Section: Turns & Tokens
	lines = append(lines, sectionHeader("Turns & Tokens"))
	lines = append(lines, statLine("Total turns", fmt.Sprintf("%d", snap.CurrentTurn)))
	lines = append(lines, statLine("Total tokens", cli.FormatTokens(snap.TotalTokens)))
	lines = append(lines, statLine("Input tokens", cli.FormatTokens(snap.InputTokens)))
	lines = append(lines, statLine("Output tokens", cli.FormatTokens(snap.OutputTokens)))

	if len(snap.Turns) > 0 {
		lines = append(lines, subHeader("Recent turns:"))
		turns := snap.Turns
		if len(turns) > recentTurnsShown {
			turns = turns[len(turns)-recentTurnsShown:]
		}
		for _, turn := range turns {
			lines = append(lines, turnLine(turn))
		}
	}
	lines = append(lines, "")

	// Section: Timing
	lines = append(lines, sectionHeader("Timing"))
	lines = append(lines, statLine("Session duration", cli.FormatDuration(snap.SessionDuration)))
	lines = append(lines, statLine("Model wait time",
		fmt.Sprintf("%s (%s)", cli.FormatDuration(snap.ModelWait), cli.FormatPercent(snap.ModelWaitPct))))
	lines = append(lines, statLine("Tool exec time",
		fmt.Sprintf("%s (%s)", cli.FormatDuration(snap.ToolExec), cli.FormatPercent(snap.ToolExecPct))))

	return lines
}

// sectionHeader renders a "── Title ──" section rule.
func sectionHeader(title string) string {
	t := theme.Active
	rule := lipgloss.NewStyle().Foreground(t.TextDim)
	name := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	return rule.Render("── ") + name.Render(title) + rule.Render(" ──")
}

// statLine renders an indented "label: value" line with the value accented.
func statLine(label, value string) string {
	t := theme.Active
	lbl := lipgloss.NewStyle().Foreground(t.TextMuted)
	val := lipgloss.NewStyle().Foreground(t.Cyan)
	return "  " + lbl.Render(label+": ") + val.Render(value)
}

// subHeader renders a dim sub-list heading.
func subHeader(text string) string {
	t := theme.Active
	return "  " + lipgloss.NewStyle().Foreground(t.TextDim).Render(text)
}

func fileLine(fc stats.FileCount) string {
	t := theme.Active
	name := lipgloss.NewStyle().Foreground(t.TextPrimary)
	count := lipgloss.NewStyle().Foreground(t.TextDim)
	return "    " + name.Render(displayName(fc.Path)) + count.Render(fmt.Sprintf(" (%dx)", fc.Count))
}

func turnLine(turn stats.TurnTokens) string {
	t := theme.Active
	lbl := lipgloss.NewStyle().Foreground(t.TextMuted)
	dim := lipgloss.NewStyle().Foreground(t.TextDim)
	return "    " + lbl.Render(fmt.Sprintf("Turn %d: ", turn.Turn)) +
		dim.Render(cli.FormatTokens(turn.Input)+" in, "+cli.FormatTokens(turn.Output)+" out")
}

// displayName shows a path by its basename, falling back to the full path
// string when no basename is extractable.
func displayName(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return path
	}
	return base
}

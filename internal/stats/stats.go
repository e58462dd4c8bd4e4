// Package stats tracks in-session metrics for a terminal assistant:
// command executions, file touches, per-turn token usage, and time split
// between waiting on the model and executing tools.
package stats

import (
	"sort"
	"sync"
	"time"
)

// CommandRecord holds the outcome of one completed command invocation.
type CommandRecord struct {
	ExitCode int
	Duration time.Duration
}

// Success reports whether the command exited cleanly.
func (c CommandRecord) Success() bool {
	return c.ExitCode == 0
}

// TokenUsage is the usage record the session runtime reports after a turn.
// Negative values are passed through uninterpreted.
type TokenUsage struct {
	InputTokens           int64
	OutputTokens          int64
	ReasoningOutputTokens int64
	CachedInputTokens     int64
}

// TurnTokens is token usage attributed to a single turn.
type TurnTokens struct {
	Turn      int
	Input     int64
	Output    int64
	Reasoning int64
	Cached    int64
}

// Total returns input + output tokens for the turn.
func (t TurnTokens) Total() int64 {
	return t.Input + t.Output
}

// FileCount pairs a file path with a touch count.
type FileCount struct {
	Path  string
	Count int
}

// Session accumulates metrics for one assistant session. It is the single
// source of truth; views read Snapshot values rather than live state.
//
// Events may arrive from a different goroutine than the render loop, so
// every operation takes the mutex. No operation fails or blocks.
type Session struct {
	mu  sync.Mutex
	now func() time.Time

	commands      []CommandRecord
	filesModified map[string]int
	filesAccessed map[string]int
	turnTokens    []TurnTokens
	currentTurn   int

	modelWait  time.Duration
	toolExec   time.Duration
	modelStart time.Time // zero = no model request in flight
	toolStart  time.Time // zero = no tool executing

	sessionStart time.Time
}

// New creates a Session anchored at the current time.
func New() *Session {
	return newSession(time.Now)
}

// newSession allows tests to inject a controllable clock.
func newSession(now func() time.Time) *Session {
	return &Session{
		now:           now,
		filesModified: make(map[string]int),
		filesAccessed: make(map[string]int),
		sessionStart:  now(),
	}
}

// ─── Command tracking ───────────────────────────────────────────

// RecordCommand appends a completed command execution.
func (s *Session) RecordCommand(exitCode int, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, CommandRecord{ExitCode: exitCode, Duration: duration})
}

// TotalCommands returns the number of commands executed.
func (s *Session) TotalCommands() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.commands)
}

// SuccessfulCommands returns the number of commands with exit code 0.
func (s *Session) SuccessfulCommands() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.successfulLocked()
}

// FailedCommands returns the number of commands with a non-zero exit code.
func (s *Session) FailedCommands() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.commands) - s.successfulLocked()
}

// SuccessRate returns the command success rate as a percentage. An empty
// log reads as 100% — no evidence of failure, and no division by zero.
func (s *Session) SuccessRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.successRateLocked()
}

// TotalCommandTime returns the summed duration of all recorded commands.
func (s *Session) TotalCommandTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalCommandTimeLocked()
}

func (s *Session) successfulLocked() int {
	n := 0
	for _, c := range s.commands {
		if c.Success() {
			n++
		}
	}
	return n
}

func (s *Session) successRateLocked() float64 {
	if len(s.commands) == 0 {
		return 100.0
	}
	return float64(s.successfulLocked()) / float64(len(s.commands)) * 100.0
}

func (s *Session) totalCommandTimeLocked() time.Duration {
	var total time.Duration
	for _, c := range s.commands {
		total += c.Duration
	}
	return total
}

// ─── File tracking ──────────────────────────────────────────────

// RecordFileModified increments the modification count for path.
func (s *Session) RecordFileModified(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filesModified[path]++
}

// RecordFileAccessed increments the access (read) count for path.
func (s *Session) RecordFileAccessed(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filesAccessed[path]++
}

// FilesModifiedCount returns the number of unique files modified.
func (s *Session) FilesModifiedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.filesModified)
}

// FilesAccessedCount returns the number of unique files accessed.
func (s *Session) FilesAccessedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.filesAccessed)
}

// TopAccessedFiles returns up to limit files ordered by descending access
// count. Equal counts order by ascending path so output is deterministic.
func (s *Session) TopAccessedFiles(limit int) []FileCount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return topFiles(s.filesAccessed, limit)
}

// TopModifiedFiles returns up to limit files ordered by descending
// modification count, ties broken by ascending path.
func (s *Session) TopModifiedFiles(limit int) []FileCount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return topFiles(s.filesModified, limit)
}

func topFiles(counts map[string]int, limit int) []FileCount {
	files := make([]FileCount, 0, len(counts))
	for path, count := range counts {
		files = append(files, FileCount{Path: path, Count: count})
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].Count != files[j].Count {
			return files[i].Count > files[j].Count
		}
		return files[i].Path < files[j].Path
	})
	if limit < len(files) {
		files = files[:limit]
	}
	return files
}

// ─── Turn and token tracking ────────────────────────────────────

// StartTurn advances the 1-indexed turn counter.
func (s *Session) StartTurn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentTurn++
}

// RecordTurnTokens appends a usage record tagged with the current turn.
func (s *Session) RecordTurnTokens(usage TokenUsage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turnTokens = append(s.turnTokens, TurnTokens{
		Turn:      s.currentTurn,
		Input:     usage.InputTokens,
		Output:    usage.OutputTokens,
		Reasoning: usage.ReasoningOutputTokens,
		Cached:    usage.CachedInputTokens,
	})
}

// CurrentTurn returns the current turn number (0 before the first turn).
func (s *Session) CurrentTurn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTurn
}

// TurnTokenBreakdown returns a copy of the per-turn usage log in order.
func (s *Session) TurnTokenBreakdown() []TurnTokens {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TurnTokens, len(s.turnTokens))
	copy(out, s.turnTokens)
	return out
}

// TotalTokens returns input + output tokens summed across all turns.
func (s *Session) TotalTokens() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, t := range s.turnTokens {
		total += t.Total()
	}
	return total
}

// TotalInputTokens returns input tokens summed across all turns.
func (s *Session) TotalInputTokens() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sumLocked(func(t TurnTokens) int64 { return t.Input })
}

// TotalOutputTokens returns output tokens summed across all turns.
func (s *Session) TotalOutputTokens() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sumLocked(func(t TurnTokens) int64 { return t.Output })
}

func (s *Session) sumLocked(f func(TurnTokens) int64) int64 {
	var total int64
	for _, t := range s.turnTokens {
		total += f(t)
	}
	return total
}

// ─── Timing ─────────────────────────────────────────────────────

// StartModelRequest marks the start of a model-wait interval.
func (s *Session) StartModelRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modelStart = s.now()
}

// EndModelRequest closes the model-wait interval and accumulates it.
// Closing an interval that was never opened is a no-op.
func (s *Session) EndModelRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.modelStart.IsZero() {
		s.modelWait += s.now().Sub(s.modelStart)
		s.modelStart = time.Time{}
	}
}

// StartToolExecution marks the start of a tool-execution interval.
func (s *Session) StartToolExecution() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toolStart = s.now()
}

// EndToolExecution closes the tool-execution interval and accumulates it.
// Closing an interval that was never opened is a no-op.
func (s *Session) EndToolExecution() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.toolStart.IsZero() {
		s.toolExec += s.now().Sub(s.toolStart)
		s.toolStart = time.Time{}
	}
}

// ModelWaitTime returns total time spent waiting on the model.
func (s *Session) ModelWaitTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modelWait
}

// ToolExecutionTime returns total time spent executing tools.
func (s *Session) ToolExecutionTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toolExec
}

// SessionDuration returns elapsed time since the session started.
func (s *Session) SessionDuration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionDurationLocked()
}

// ModelWaitPercentage returns model-wait time as a share of the session,
// 0.0 when no time has elapsed.
func (s *Session) ModelWaitPercentage() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return percentage(s.modelWait, s.sessionDurationLocked())
}

// ToolExecutionPercentage returns tool-execution time as a share of the
// session, 0.0 when no time has elapsed.
func (s *Session) ToolExecutionPercentage() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return percentage(s.toolExec, s.sessionDurationLocked())
}

func (s *Session) sessionDurationLocked() time.Duration {
	return s.now().Sub(s.sessionStart)
}

func percentage(part, total time.Duration) float64 {
	secs := total.Seconds()
	if secs == 0 {
		return 0.0
	}
	return part.Seconds() / secs * 100.0
}

package stats

import "time"

// Snapshot is an immutable copy of the aggregated session metrics taken at
// one point in time. Views render from snapshots so live mutation on other
// goroutines never races with the render loop.
type Snapshot struct {
	TotalCommands      int
	SuccessfulCommands int
	FailedCommands     int
	SuccessRate        float64
	TotalCommandTime   time.Duration

	FilesModified int
	FilesAccessed int
	// TopAccessed is every accessed file, ordered by descending count then
	// ascending path. Consumers apply their own display limit.
	TopAccessed []FileCount

	CurrentTurn  int
	Turns        []TurnTokens
	TotalTokens  int64
	InputTokens  int64
	OutputTokens int64

	SessionDuration time.Duration
	ModelWait       time.Duration
	ToolExec        time.Duration
	ModelWaitPct    float64
	ToolExecPct     float64
}

// Snapshot captures all metrics under a single lock hold, so the numbers
// within one snapshot are mutually consistent.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := make([]TurnTokens, len(s.turnTokens))
	copy(turns, s.turnTokens)

	elapsed := s.sessionDurationLocked()

	return Snapshot{
		TotalCommands:      len(s.commands),
		SuccessfulCommands: s.successfulLocked(),
		FailedCommands:     len(s.commands) - s.successfulLocked(),
		SuccessRate:        s.successRateLocked(),
		TotalCommandTime:   s.totalCommandTimeLocked(),

		FilesModified: len(s.filesModified),
		FilesAccessed: len(s.filesAccessed),
		TopAccessed:   topFiles(s.filesAccessed, len(s.filesAccessed)),

		CurrentTurn:  s.currentTurn,
		Turns:        turns,
		TotalTokens:  s.sumLocked(TurnTokens.Total),
		InputTokens:  s.sumLocked(func(t TurnTokens) int64 { return t.Input }),
		OutputTokens: s.sumLocked(func(t TurnTokens) int64 { return t.Output }),

		SessionDuration: elapsed,
		ModelWait:       s.modelWait,
		ToolExec:        s.toolExec,
		ModelWaitPct:    percentage(s.modelWait, elapsed),
		ToolExecPct:     percentage(s.toolExec, elapsed),
	}
}

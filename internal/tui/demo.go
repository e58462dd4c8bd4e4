package tui

import (
	"fmt"
	"time"

	"github.com/theirongolddev/tally/internal/stats"
)

// demoEvent is one scripted step of the simulated assistant session.
type demoEvent struct {
	describe string
	apply    func(s *stats.Session)
}

// demoScript returns the deterministic event loop the demo app replays.
// Together the steps exercise every recording operation: turns, model-wait
// and tool-exec intervals, command completions, and file touches.
func demoScript() []demoEvent {
	return []demoEvent{
		{"turn started", func(s *stats.Session) {
			s.StartTurn()
			s.StartModelRequest()
		}},
		{"model responded", func(s *stats.Session) {
			s.EndModelRequest()
			s.RecordTurnTokens(stats.TokenUsage{
				InputTokens:       1850,
				OutputTokens:      420,
				CachedInputTokens: 1200,
			})
		}},
		{"reading internal/server/router.go", func(s *stats.Session) {
			s.StartToolExecution()
			s.RecordFileAccessed("internal/server/router.go")
			s.EndToolExecution()
		}},
		{"ran `go vet ./...`", func(s *stats.Session) {
			s.StartToolExecution()
			s.RecordCommand(0, 1400*time.Millisecond)
			s.EndToolExecution()
		}},
		{"turn started", func(s *stats.Session) {
			s.StartTurn()
			s.StartModelRequest()
		}},
		{"model responded", func(s *stats.Session) {
			s.EndModelRequest()
			s.RecordTurnTokens(stats.TokenUsage{
				InputTokens:           2400,
				OutputTokens:          860,
				ReasoningOutputTokens: 300,
				CachedInputTokens:     2000,
			})
		}},
		{"editing internal/server/router.go", func(s *stats.Session) {
			s.StartToolExecution()
			s.RecordFileAccessed("internal/server/router.go")
			s.RecordFileModified("internal/server/router.go")
			s.EndToolExecution()
		}},
		{"editing internal/server/handler.go", func(s *stats.Session) {
			s.StartToolExecution()
			s.RecordFileAccessed("internal/server/handler.go")
			s.RecordFileModified("internal/server/handler.go")
			s.EndToolExecution()
		}},
		{"ran `go test ./internal/...` (failed)", func(s *stats.Session) {
			s.StartToolExecution()
			s.RecordCommand(1, 6200*time.Millisecond)
			s.EndToolExecution()
		}},
		{"turn started", func(s *stats.Session) {
			s.StartTurn()
			s.StartModelRequest()
		}},
		{"model responded", func(s *stats.Session) {
			s.EndModelRequest()
			s.RecordTurnTokens(stats.TokenUsage{
				InputTokens:       3100,
				OutputTokens:      540,
				CachedInputTokens: 2800,
			})
		}},
		{"fixing internal/server/handler.go", func(s *stats.Session) {
			s.StartToolExecution()
			s.RecordFileAccessed("internal/server/handler.go")
			s.RecordFileModified("internal/server/handler.go")
			s.EndToolExecution()
		}},
		{"ran `go test ./internal/...`", func(s *stats.Session) {
			s.StartToolExecution()
			s.RecordCommand(0, 5800*time.Millisecond)
			s.EndToolExecution()
		}},
	}
}

// demoFeed replays the script one event per tick, forever.
type demoFeed struct {
	script []demoEvent
	step   int
}

func newDemoFeed() *demoFeed {
	return &demoFeed{script: demoScript()}
}

// next applies the next scripted event and returns its log line.
func (f *demoFeed) next(s *stats.Session) string {
	ev := f.script[f.step%len(f.script)]
	ev.apply(s)
	line := fmt.Sprintf("[%03d] %s", f.step+1, ev.describe)
	f.step++
	return line
}

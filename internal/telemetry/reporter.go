package telemetry

import (
	"io"

	"github.com/charmbracelet/log"

	tetris "github.com/vovakirdan/tetris-gym/internal/games/tetris/core"
)

// Reporter forwards board snapshots to a Sink. Delivery failures are
// logged and never reach the game loop.
type Reporter struct {
	sink     Sink
	logger   *log.Logger
	sent     int
	failures int
	failing  bool
}

// NewReporter creates a reporter. A nil logger discards warnings.
func NewReporter(sink Sink, logger *log.Logger) *Reporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Reporter{sink: sink, logger: logger}
}

// Observe implements the board observer hook.
func (r *Reporter) Observe(s tetris.Snapshot) {
	if err := r.sink.Emit(s); err != nil {
		r.failures++
		// Warn once per outage rather than once per snapshot.
		if !r.failing {
			r.logger.Warn("telemetry delivery failed", "err", err)
		}
		r.failing = true
		return
	}
	if r.failing {
		r.logger.Info("telemetry delivery resumed", "failures", r.failures)
	}
	r.failing = false
	r.sent++
}

// Sent returns the number of snapshots delivered.
func (r *Reporter) Sent() int {
	return r.sent
}

// Failures returns the number of snapshots that could not be delivered.
func (r *Reporter) Failures() int {
	return r.failures
}

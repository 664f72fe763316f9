package engine

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger builds the ambient zerolog.Logger every CallingContext
// carries (§3, SPEC_FULL §1.1). Session-scoped, not per-cell: individual
// parse/eval failures are reported through EvalError/ParseError values,
// not logged directly, so the logger here only ever sees structural
// engine events (one line per completed recalc pass, fatal errors).
func NewLogger(w io.Writer, debug bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// LogRecalc emits one structured line per full Recalc pass (§4.3):
// generation reached, cell count touched, and traversal order, useful
// for diagnosing a runaway recalc without instrumenting the scheduler
// itself.
func LogRecalc(logger zerolog.Logger, ctx *CallingContext, cellsVisited int) {
	logger.Debug().
		Int64("generation", ctx.Generation).
		Int("cells_visited", cellsVisited).
		Bool("column_major", ctx.Sheet.CMajor).
		Bool("top_down", ctx.Sheet.TopDown).
		Bool("left_right", ctx.Sheet.LeftRight).
		Msg("recalc pass complete")
}

// LogFatal reports a FatalEngineError (§7 taxonomy item 5) at Fatal
// level before the host terminates the session, per SPEC_FULL §7.1. It
// does not exit the process itself; ending the session is left to the
// caller.
func LogFatal(logger zerolog.Logger, err *FatalEngineError) {
	logger.WithLevel(zerolog.FatalLevel).Str("reason", err.Reason).Msg("fatal engine error")
}

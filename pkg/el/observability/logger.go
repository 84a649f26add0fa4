// Package observability provides production-grade observability features
// for the expression language: structured logging, metrics, and
// distributed tracing around compilation and evaluation.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds expression-language context to a logger.
// Returns a new logger with expr_id and phase fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "proc-attr-1", "evaluate")
//	enriched.Info("evaluating") // includes expr_id, phase
func EnrichLogger(logger *slog.Logger, exprID, phase string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("expr_id", exprID),
		slog.String("phase", phase),
	)
}

// LogCompileStart logs the start of a template compilation.
func LogCompileStart(logger *slog.Logger, exprID string) {
	if logger == nil {
		return
	}
	logger.Debug("compiling expression",
		slog.String("expr_id", exprID),
	)
}

// LogCompileComplete logs successful compilation.
func LogCompileComplete(logger *slog.Logger, exprID string, durationMs float64, nodeCount int) {
	if logger == nil {
		return
	}
	logger.Debug("expression compiled",
		slog.String("expr_id", exprID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("node_count", nodeCount),
	)
}

// LogCompileError logs a compilation failure.
func LogCompileError(logger *slog.Logger, exprID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("expression compile failed",
		slog.String("expr_id", exprID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogEvaluateStart logs evaluation start.
func LogEvaluateStart(logger *slog.Logger, exprID string) {
	if logger == nil {
		return
	}
	logger.Debug("evaluating expression",
		slog.String("expr_id", exprID),
	)
}

// LogEvaluateComplete logs successful evaluation completion.
func LogEvaluateComplete(logger *slog.Logger, exprID string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("expression evaluated",
		slog.String("expr_id", exprID),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogEvaluateError logs an evaluation error. Evaluation errors are never
// fatal: the caller may substitute a default and keep using the Expression.
func LogEvaluateError(logger *slog.Logger, exprID string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("expression evaluation failed",
		slog.String("expr_id", exprID),
		slog.String("error", err.Error()),
	)
}

// LogFunctionCall logs a single function-call node's execution at trace
// granularity. Disabled by default (Debug level) since a template may
// invoke dozens of functions per evaluation.
func LogFunctionCall(logger *slog.Logger, name string, durationMs float64, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Debug("function call failed",
			slog.String("function", name),
			slog.Float64("duration_ms", durationMs),
			slog.String("error", err.Error()),
		)
		return
	}
	logger.Debug("function call",
		slog.String("function", name),
		slog.Float64("duration_ms", durationMs),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}

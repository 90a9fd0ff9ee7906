// Package observability provides structured logging, metrics and tracing
// for attrflow actions.
//
// Logging uses log/slog through nil-safe helpers; metrics and tracing use
// OpenTelemetry with no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds run context to a logger.
// Returns a new logger with run_id, operation and object_id fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "run-123", "execute", "4711")
//	enriched.Info("writing") // includes run_id, operation, object_id
func EnrichLogger(logger *slog.Logger, runID, operation, objectID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("run_id", runID),
		slog.String("operation", operation),
		slog.String("object_id", objectID),
	)
}

// LogRunStart logs the start of an action run.
func LogRunStart(logger *slog.Logger, languages []int) {
	if logger == nil {
		return
	}
	logger.Info("action run starting",
		slog.Any("languages", languages),
	)
}

// LogRunComplete logs successful action completion.
func LogRunComplete(logger *slog.Logger, durationMs float64, writes, scripts int) {
	if logger == nil {
		return
	}
	logger.Info("action run completed",
		slog.Float64("duration_ms", durationMs),
		slog.Int("writes", writes),
		slog.Int("scripts", scripts),
	)
}

// LogRunError logs action failure.
func LogRunError(logger *slog.Logger, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("action run failed",
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogGate logs the outcome of a precondition gate.
func LogGate(logger *slog.Logger, scope string, candidates int, allowed bool) {
	if logger == nil {
		return
	}
	logger.Debug("precondition gate",
		slog.String("scope", scope),
		slog.Int("candidates", candidates),
		slog.Bool("allowed", allowed),
	)
}

// LogObjectSkipped logs a related object left out of a run.
func LogObjectSkipped(logger *slog.Logger, objectID, reason string) {
	if logger == nil {
		return
	}
	logger.Debug("object skipped",
		slog.String("object_id", objectID),
		slog.String("reason", reason),
	)
}

// LogPreconditionFalse logs an attribute left unwritten by its precondition.
func LogPreconditionFalse(logger *slog.Logger, attributeID string) {
	if logger == nil {
		return
	}
	logger.Debug("attribute precondition false",
		slog.String("attribute", attributeID),
	)
}

// LogRetried logs a host call that needed more than one attempt.
func LogRetried(logger *slog.Logger, operation string, attempts int) {
	if logger == nil {
		return
	}
	logger.Warn("host call retried",
		slog.String("call", operation),
		slog.Int("attempts", attempts),
	)
}

// LogConfigProblem logs an action setting that cannot take effect.
func LogConfigProblem(logger *slog.Logger, key, problem string) {
	if logger == nil {
		return
	}
	logger.Warn("action misconfigured",
		slog.String("key", key),
		slog.String("problem", problem),
	)
}

// LogScripts logs triggered host scripts.
func LogScripts(logger *slog.Logger, ids []string, contextIDs string, background bool) {
	if logger == nil {
		return
	}
	logger.Info("scripts started",
		slog.Any("script_ids", ids),
		slog.String("context", contextIDs),
		slog.Bool("background", background),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}

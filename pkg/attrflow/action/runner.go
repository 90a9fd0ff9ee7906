package action

import (
	"context"
	"log/slog"

	"github.com/randalmurphal/attrflow/pkg/attrflow/dispatch"
	"github.com/randalmurphal/attrflow/pkg/attrflow/expr"
	"github.com/randalmurphal/attrflow/pkg/attrflow/observability"
	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
	"github.com/randalmurphal/attrflow/pkg/attrflow/retry"
	"github.com/randalmurphal/attrflow/pkg/attrflow/template"
)

// ScriptDispatcher starts host scripts after an action has executed.
type ScriptDispatcher interface {
	// StartScripts starts the scripts ids. contextIDs is empty when the
	// scripts run without context. background selects queued execution.
	StartScripts(ctx context.Context, ids []string, contextIDs string, background bool) error
}

// Runner checks and executes actions.
type Runner struct {
	resolver   *template.Resolver
	evaluator  *expr.Evaluator
	dispatcher *dispatch.Dispatcher
	scripts    ScriptDispatcher
	retry      retry.Config
	logger     *slog.Logger
	metrics    observability.MetricsRecorder
	spans      observability.SpanManager
}

// Option configures a Runner.
type Option func(*Runner)

// WithResolver sets the resolver for conditions and written templates.
// It is ignored by an evaluator or dispatcher set explicitly.
func WithResolver(r *template.Resolver) Option {
	return func(rn *Runner) {
		rn.resolver = r
	}
}

// WithEvaluator sets the condition evaluator.
func WithEvaluator(e *expr.Evaluator) Option {
	return func(rn *Runner) {
		rn.evaluator = e
	}
}

// WithDispatcher sets the dispatcher used for all writes.
func WithDispatcher(d *dispatch.Dispatcher) Option {
	return func(rn *Runner) {
		rn.dispatcher = d
	}
}

// WithScripts sets the dispatcher for ActiveScripts. Without one,
// configured scripts are logged and skipped.
func WithScripts(s ScriptDispatcher) Option {
	return func(rn *Runner) {
		rn.scripts = s
	}
}

// WithScriptRetry sets how failed StartScripts calls are retried.
// Default: retry.NoRetry.
func WithScriptRetry(cfg retry.Config) Option {
	return func(rn *Runner) {
		rn.retry = cfg
	}
}

// WithLogger sets the logger. Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(rn *Runner) {
		rn.logger = logger
	}
}

// WithMetrics sets the metrics recorder. Default: observability.NoopMetrics.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(rn *Runner) {
		if m != nil {
			rn.metrics = m
		}
	}
}

// WithSpanManager sets the span manager. Default: observability.NoopSpanManager.
func WithSpanManager(s observability.SpanManager) Option {
	return func(rn *Runner) {
		if s != nil {
			rn.spans = s
		}
	}
}

// NewRunner creates a Runner with the given options.
func NewRunner(opts ...Option) *Runner {
	rn := &Runner{
		retry:   retry.NoRetry,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(rn)
	}
	if rn.resolver == nil {
		rn.resolver = template.NewResolver(template.WithLogger(rn.logger))
	}
	if rn.evaluator == nil {
		rn.evaluator = expr.New(expr.WithResolver(rn.resolver), expr.WithLogger(rn.logger))
	}
	if rn.dispatcher == nil {
		rn.dispatcher = dispatch.New(dispatch.WithResolver(rn.resolver), dispatch.WithLogger(rn.logger))
	}
	return rn
}

// evaluate checks one condition and records the outcome.
func (rn *Runner) evaluate(ctx context.Context, rec record.Accessor, c Check) (bool, error) {
	ok, err := rn.evaluator.Evaluate(rec, c.AttributeID, c.Condition)
	rn.metrics.RecordEvaluation(ctx, c.AttributeID, ok, err)
	return ok, err
}

// write applies raw to one attribute and records the outcome.
func (rn *Runner) write(ctx context.Context, t record.Target, attributeID string, raw record.Raw, lang record.LanguageID) error {
	err := rn.dispatcher.Apply(t, attributeID, raw, lang)
	rn.metrics.RecordWrite(ctx, attributeID, err)
	return err
}

// ancestors walks up to n parents of obj, stopping at the root.
func ancestors(obj record.Object, n int) ([]record.Object, error) {
	var out []record.Object
	cur := obj
	for range n {
		p, err := cur.Parent()
		if err != nil {
			return out, err
		}
		if p == nil {
			break
		}
		out = append(out, p)
		cur = p
	}
	return out, nil
}

func languageInts(langs []record.LanguageID) []int {
	out := make([]int, len(langs))
	for i, l := range langs {
		out[i] = int(l)
	}
	return out
}

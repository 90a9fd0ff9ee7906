package attrflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/randalmurphal/attrflow/pkg/attrflow/action"
	"github.com/randalmurphal/attrflow/pkg/attrflow/dispatch"
	"github.com/randalmurphal/attrflow/pkg/attrflow/expr"
	"github.com/randalmurphal/attrflow/pkg/attrflow/observability"
	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
	"github.com/randalmurphal/attrflow/pkg/attrflow/template"
)

// Engine bundles a resolver, an evaluator and a dispatcher that share
// the same clock, value ranges and logger.
//
// Engine is safe for concurrent use when the records passed to it are.
type Engine struct {
	resolver   *template.Resolver
	evaluator  *expr.Evaluator
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
	metrics    observability.MetricsRecorder

	resolverOpts []template.Option
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source for {Today} placeholders.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.resolverOpts = append(e.resolverOpts, template.WithClock(now))
	}
}

// WithDateFormatter replaces the date formatter for {Today#fmt}.
func WithDateFormatter(f template.DateFormatter) Option {
	return func(e *Engine) {
		e.resolverOpts = append(e.resolverOpts, template.WithDateFormatter(f))
	}
}

// WithValueRanges sets the lookup for #entry# placeholders.
func WithValueRanges(vr record.ValueRanges) Option {
	return func(e *Engine) {
		e.resolverOpts = append(e.resolverOpts, template.WithValueRanges(vr))
	}
}

// WithLogger sets the logger. Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics sets the metrics recorder. Default: observability.NoopMetrics.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(e *Engine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{metrics: observability.NoopMetrics{}}
	for _, opt := range opts {
		opt(e)
	}
	e.resolver = template.NewResolver(append(e.resolverOpts, template.WithLogger(e.logger))...)
	e.evaluator = expr.New(expr.WithResolver(e.resolver), expr.WithLogger(e.logger))
	e.dispatcher = dispatch.New(dispatch.WithResolver(e.resolver), dispatch.WithLogger(e.logger))
	return e
}

// Resolve substitutes every placeholder in tmpl against rec in lang.
func (e *Engine) Resolve(ctx context.Context, rec record.Accessor, tmpl string, lang record.LanguageID) (string, error) {
	out, err := e.resolver.Resolve(rec, tmpl, lang)
	e.metrics.RecordResolution(ctx, err)
	return out, err
}

// Evaluate reports whether condition holds for attributeID of rec.
// An empty condition always holds.
func (e *Engine) Evaluate(ctx context.Context, rec record.Accessor, attributeID, condition string) (bool, error) {
	ok, err := e.evaluator.Evaluate(rec, attributeID, condition)
	e.metrics.RecordEvaluation(ctx, attributeID, ok, err)
	return ok, err
}

// Apply writes raw to attributeID of t in lang. A nil or empty raw
// clears the attribute.
func (e *Engine) Apply(ctx context.Context, t record.Target, attributeID string, raw record.Raw, lang record.LanguageID) error {
	err := e.dispatcher.Apply(t, attributeID, raw, lang)
	e.metrics.RecordWrite(ctx, attributeID, err)
	return err
}

// Runner returns an action.Runner sharing the engine's resolver,
// evaluator, dispatcher, logger and metrics. opts are applied last.
func (e *Engine) Runner(opts ...action.Option) *action.Runner {
	base := []action.Option{
		action.WithResolver(e.resolver),
		action.WithEvaluator(e.evaluator),
		action.WithDispatcher(e.dispatcher),
		action.WithLogger(e.logger),
		action.WithMetrics(e.metrics),
	}
	return action.NewRunner(append(base, opts...)...)
}

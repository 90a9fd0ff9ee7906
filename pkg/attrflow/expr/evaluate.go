package expr

import (
	"fmt"
	"log/slog"

	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
	"github.com/randalmurphal/attrflow/pkg/attrflow/template"
)

// Evaluator evaluates attribute preconditions against records.
type Evaluator struct {
	resolver *template.Resolver
	logger   *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithResolver sets the resolver used for placeholders in conditions.
func WithResolver(r *template.Resolver) Option {
	return func(e *Evaluator) {
		if r != nil {
			e.resolver = r
		}
	}
}

// WithLogger sets a logger for debug output of clause results.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// New creates a new Evaluator with the given options.
// Without WithResolver a default template.Resolver is used.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	if e.resolver == nil {
		e.resolver = template.NewResolver()
	}
	return e
}

// Evaluate reports whether condition holds for attribute attributeID of
// rec in the record's current language. An empty condition holds.
func (e *Evaluator) Evaluate(rec record.Accessor, attributeID, condition string) (bool, error) {
	if condition == "" {
		return true, nil
	}
	expression, current, err := e.prepare(rec, attributeID, condition)
	if err != nil {
		return false, err
	}
	ok := expression.Any(current)
	e.trace(attributeID, condition, current, ok)
	return ok, nil
}

// EvaluateAll is like Evaluate but requires every clause to hold.
func (e *Evaluator) EvaluateAll(rec record.Accessor, attributeID, condition string) (bool, error) {
	if condition == "" {
		return true, nil
	}
	expression, current, err := e.prepare(rec, attributeID, condition)
	if err != nil {
		return false, err
	}
	ok := expression.All(current)
	e.trace(attributeID, condition, current, ok)
	return ok, nil
}

// prepare resolves and parses the condition and reads the current value.
func (e *Evaluator) prepare(rec record.Accessor, attributeID, condition string) (Expression, string, error) {
	lang := rec.CurrentLanguage()
	resolved, err := e.resolver.Resolve(rec, condition, lang)
	if err != nil {
		return nil, "", fmt.Errorf("resolve condition of %s: %w", attributeID, err)
	}
	current, err := CurrentValue(rec, attributeID, lang)
	if err != nil {
		return nil, "", err
	}
	expression := Parse(resolved)
	if expression == nil {
		// The condition resolved to nothing: a single clause "== ''".
		expression = Expression{{Op: OpEqual}}
	}
	return expression, current, nil
}

// CurrentValue reads the value a condition compares against: the
// formatted value for string-function attributes, the raw value for all
// others. A missing attribute has the empty value.
func CurrentValue(rec record.Accessor, attributeID string, lang record.LanguageID) (string, error) {
	f, err := rec.Field(attributeID)
	if err != nil {
		if record.IsNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("field %s: %w", attributeID, err)
	}

	var v string
	switch f.Type() {
	case record.TypeStringFunction:
		v, err = rec.FormattedValue(attributeID, lang)
	case record.TypePlain, record.TypeValueRange, record.TypeReference, record.TypeFile, record.TypeTable:
		v, err = rec.Value(attributeID, lang)
	}
	if err != nil && !record.IsNotFound(err) {
		return "", fmt.Errorf("value of %s: %w", attributeID, err)
	}
	return v, nil
}

func (e *Evaluator) trace(attributeID, condition, current string, ok bool) {
	if e.logger == nil {
		return
	}
	e.logger.Debug("precondition evaluated",
		slog.String("attribute", attributeID),
		slog.String("condition", condition),
		slog.String("current", current),
		slog.Bool("result", ok),
	)
}

// defaultEvaluator evaluates with a default resolver.
var defaultEvaluator = New()

// Eval evaluates condition with the default evaluator.
func Eval(rec record.Accessor, attributeID, condition string) (bool, error) {
	return defaultEvaluator.Evaluate(rec, attributeID, condition)
}

package action

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/attrflow/pkg/attrflow/expr"
	"github.com/randalmurphal/attrflow/pkg/attrflow/observability"
	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
)

// MayExecute reports whether act may run on obj.
//
// Numeric check attributes that are not classified on obj are dropped
// first; when checks were configured and none is left the action is
// refused. Then, by scope:
//
//   - Context: every check must hold on obj
//   - Children, Parent: the candidates whose state is in CheckStates and
//     not in IgnoredStates are checked; with PolicyAll every check must
//     hold, otherwise at least the policy minimum of checks must hold
//
// Configuration the runner cannot act on (no check states, an unknown
// scope) refuses the action and is logged.
func (rn *Runner) MayExecute(ctx context.Context, act Action, obj record.Object) (allowed bool, err error) {
	runID := uuid.NewString()
	logger := observability.EnrichLogger(rn.logger, runID, "may_execute", obj.ID())
	ctx, span := rn.spans.StartActionSpan(ctx, "may_execute", runID, obj.ID())
	start := time.Now()
	defer func() {
		rn.spans.EndSpanWithError(span, err)
		rn.metrics.RecordActionRun(ctx, "may_execute", err == nil, time.Since(start))
	}()

	checks, err := classifiedChecks(act.Checks, obj)
	if err != nil {
		return false, &ObjectError{ObjectID: obj.ID(), Op: "classification", Err: err}
	}
	if len(act.Checks) > 0 && len(checks) == 0 {
		observability.LogObjectSkipped(logger, obj.ID(), "no check attribute is classified")
		return false, nil
	}

	switch act.Scope {
	case ScopeContext:
		for _, c := range checks {
			ok, err := rn.evaluate(ctx, obj, c)
			if err != nil {
				return false, &ObjectError{ObjectID: obj.ID(), Op: "check", Err: err}
			}
			if !ok {
				observability.LogGate(logger, act.Scope.String(), 1, false)
				return false, nil
			}
		}
		observability.LogGate(logger, act.Scope.String(), 1, true)
		return true, nil

	case ScopeChildren, ScopeParent:
		if len(act.CheckStates) == 0 {
			observability.LogConfigProblem(logger, KeyCheckState, "select at least one state")
			return false, nil
		}
		candidates, err := rn.candidates(act, obj)
		if err != nil {
			return false, &ObjectError{ObjectID: obj.ID(), Op: "candidates", Err: err}
		}
		allowed, err = rn.gate(ctx, logger, act, candidates, checks)
		if err != nil {
			return false, err
		}
		observability.LogGate(logger, act.Scope.String(), len(candidates), allowed)
		return allowed, nil

	case ScopeUnknown:
		observability.LogConfigProblem(logger, KeyCheckedObjects, "unknown checked objects")
	}
	return false, nil
}

// classifiedChecks drops numeric check attributes obj is not classified for.
func classifiedChecks(checks []Check, obj record.Object) ([]Check, error) {
	if len(checks) == 0 {
		return nil, nil
	}
	classified, err := obj.ClassifiedFieldIDs()
	if err != nil {
		return nil, err
	}
	out := make([]Check, 0, len(checks))
	for _, c := range checks {
		if expr.IsNumeric(c.AttributeID) && !slices.Contains(classified, c.AttributeID) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// candidates returns the related objects a Children or Parent check reads.
func (rn *Runner) candidates(act Action, obj record.Object) ([]record.Object, error) {
	if act.Scope == ScopeParent {
		return ancestors(obj, act.parentLevels())
	}
	children, err := obj.Children(act.candidateLevels())
	if err != nil {
		return nil, err
	}
	if act.Depth == DepthEndNodes {
		children = slices.DeleteFunc(children, record.Object.IsFolder)
	}
	return children, nil
}

// gate counts the holding checks over the relevant candidates.
func (rn *Runner) gate(ctx context.Context, logger *slog.Logger, act Action, candidates []record.Object, checks []Check) (bool, error) {
	holding := 0
	for _, c := range candidates {
		if !act.relevant(c.State()) {
			observability.LogObjectSkipped(logger, c.ID(), "state not checked")
			continue
		}
		for _, chk := range checks {
			ok, err := rn.evaluate(ctx, c, chk)
			if err != nil {
				return false, &ObjectError{ObjectID: c.ID(), Op: "check", Err: err}
			}
			if ok {
				holding++
			} else if act.Policy == PolicyAll {
				return false, nil
			}
		}
	}
	if act.Policy == PolicyAll {
		return true, nil
	}
	return holding >= act.minimum(), nil
}

package action

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/attrflow/pkg/attrflow/langcopy"
	"github.com/randalmurphal/attrflow/pkg/attrflow/observability"
	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
	"github.com/randalmurphal/attrflow/pkg/attrflow/retry"
)

// Result summarizes one Execute call.
type Result struct {
	// RunID identifies the call in logs and spans.
	RunID string
	// Languages are the languages processed, in order.
	Languages []record.LanguageID
	// Writes counts attribute writes and clears, copies excluded.
	Writes int
	// Copied counts attributes copied from the context language.
	Copied int
	// Touched lists the checked objects written to, in first-touch order.
	Touched []string
	// Scripts lists the scripts started.
	Scripts []string
	// ScriptContext is the context handed to the scripts.
	ScriptContext string
}

// run carries the state of one Execute call.
type run struct {
	act         Action
	obj         record.Object
	logger      *slog.Logger
	contextLang record.LanguageID
	copier      *langcopy.Copier
	copyFields  []string
	children    []record.Object
	result      *Result
}

// Execute runs act on obj. For each language it resets and sets the
// configured attributes of obj, copies the tagged attributes from the
// context language and writes the checked objects. Children written are
// stored and checked in once at the end; parents after every language.
// Finally the configured scripts are started.
//
// The returned Result is non-nil and reflects the work done, also when
// an error stops the run.
func (rn *Runner) Execute(ctx context.Context, act Action, obj record.Object) (result *Result, err error) {
	runID := uuid.NewString()
	logger := observability.EnrichLogger(rn.logger, runID, "execute", obj.ID())
	ctx, span := rn.spans.StartActionSpan(ctx, "execute", runID, obj.ID())
	elapsed := observability.TimedOperation()
	start := time.Now()

	contextLang := obj.CurrentLanguage()
	r := &run{
		act:         act,
		obj:         obj,
		logger:      logger,
		contextLang: contextLang,
		copier:      langcopy.New(langcopy.WithDispatcher(rn.dispatcher), langcopy.WithLogger(logger)),
		result:      &Result{RunID: runID, Languages: act.languages(contextLang)},
	}

	defer func() {
		rn.spans.EndSpanWithError(span, err)
		rn.metrics.RecordActionRun(ctx, "execute", err == nil, time.Since(start))
		if err != nil {
			observability.LogRunError(logger, err, elapsed())
		} else {
			observability.LogRunComplete(logger, elapsed(), r.result.Writes, len(r.result.Scripts))
		}
	}()

	observability.LogRunStart(logger, languageInts(r.result.Languages))

	if len(act.CopyTags) > 0 {
		r.copyFields, err = obj.FieldIDsByTags(act.CopyTags)
		if err != nil {
			return r.result, &ObjectError{ObjectID: obj.ID(), Op: "copy fields", Err: err}
		}
	}

	for _, lang := range r.result.Languages {
		if err := ctx.Err(); err != nil {
			return r.result, err
		}
		langCtx, langSpan := rn.spans.StartLanguageSpan(ctx, int(lang))
		err := rn.executeLanguage(langCtx, r, lang)
		rn.spans.EndSpanWithError(langSpan, err)
		if err != nil {
			return r.result, err
		}
	}

	for _, child := range r.children {
		if err := storeAndCheckin(child); err != nil {
			return r.result, err
		}
	}

	if err := rn.startScripts(ctx, r); err != nil {
		return r.result, err
	}
	return r.result, nil
}

func (rn *Runner) executeLanguage(ctx context.Context, r *run, lang record.LanguageID) error {
	for _, id := range r.act.Reset {
		if err := rn.write(ctx, r.obj, id, nil, lang); err != nil {
			return &ObjectError{ObjectID: r.obj.ID(), Op: "reset", Err: err}
		}
		r.result.Writes++
	}

	for _, a := range r.act.Set {
		if r.act.PreconditionSetAttributes && a.Precondition != "" {
			ok, err := rn.evaluate(ctx, r.obj, Check{AttributeID: a.AttributeID, Condition: a.Precondition})
			if err != nil {
				return &ObjectError{ObjectID: r.obj.ID(), Op: "precondition", Err: err}
			}
			if !ok {
				observability.LogPreconditionFalse(r.logger, a.AttributeID)
				continue
			}
		}
		if err := rn.write(ctx, r.obj, a.AttributeID, a.Value, lang); err != nil {
			return &ObjectError{ObjectID: r.obj.ID(), Op: "set", Err: err}
		}
		r.result.Writes++
	}

	if lang != r.contextLang && len(r.copyFields) > 0 {
		n, err := r.copier.Copy(ctx, r.obj, r.copyFields, r.contextLang, lang)
		r.result.Copied += n
		if err != nil {
			return &ObjectError{ObjectID: r.obj.ID(), Op: "copy", Err: err}
		}
		rn.spans.AddSpanEvent(ctx, "attributes.copied",
			attribute.Int("from", int(r.contextLang)),
			attribute.Int("count", n),
		)
	}

	switch r.act.Scope {
	case ScopeContext:
		return rn.writeObject(ctx, r, r.obj, lang)

	case ScopeChildren:
		children, err := r.obj.Children(r.act.Levels)
		if err != nil {
			return &ObjectError{ObjectID: r.obj.ID(), Op: "children", Err: err}
		}
		for _, child := range children {
			if !slices.Contains(r.act.CheckStates, child.State()) {
				observability.LogObjectSkipped(r.logger, child.ID(), "state not checked")
				continue
			}
			if err := rn.writeObject(ctx, r, child, lang); err != nil {
				return err
			}
			if !slices.ContainsFunc(r.children, func(o record.Object) bool { return o.ID() == child.ID() }) {
				r.children = append(r.children, child)
			}
		}

	case ScopeParent:
		parents, err := ancestors(r.obj, r.act.parentLevels())
		if err != nil {
			return &ObjectError{ObjectID: r.obj.ID(), Op: "parent", Err: err}
		}
		for _, parent := range parents {
			if !slices.Contains(r.act.CheckStates, parent.State()) {
				observability.LogObjectSkipped(r.logger, parent.ID(), "state not checked")
				continue
			}
			if err := rn.writeObject(ctx, r, parent, lang); err != nil {
				return err
			}
			if err := storeAndCheckin(parent); err != nil {
				return err
			}
		}

	case ScopeUnknown:
	}
	return nil
}

// writeObject applies the on-object assignments and resets to target.
func (rn *Runner) writeObject(ctx context.Context, r *run, target record.Object, lang record.LanguageID) error {
	if len(r.act.SetOnObjects) == 0 && len(r.act.ResetOnObjects) == 0 {
		return nil
	}
	for _, a := range r.act.SetOnObjects {
		if err := rn.write(ctx, target, a.AttributeID, a.Value, lang); err != nil {
			return &ObjectError{ObjectID: target.ID(), Op: "set on object", Err: err}
		}
		r.result.Writes++
	}
	for _, id := range r.act.ResetOnObjects {
		if err := rn.write(ctx, target, id, nil, lang); err != nil {
			return &ObjectError{ObjectID: target.ID(), Op: "reset on object", Err: err}
		}
		r.result.Writes++
	}
	if !slices.Contains(r.result.Touched, target.ID()) {
		r.result.Touched = append(r.result.Touched, target.ID())
	}
	return nil
}

func storeAndCheckin(obj record.Object) error {
	if err := obj.Store(); err != nil {
		return &ObjectError{ObjectID: obj.ID(), Op: "store", Err: err}
	}
	if err := obj.Checkin(); err != nil {
		return &ObjectError{ObjectID: obj.ID(), Op: "checkin", Err: err}
	}
	return nil
}

// startScripts hands the configured scripts to the script dispatcher.
func (rn *Runner) startScripts(ctx context.Context, r *run) error {
	if len(r.act.Scripts) == 0 {
		return nil
	}

	var contextIDs string
	switch r.act.ScriptContext {
	case ScriptContextNone:
	case ScriptContextObject:
		contextIDs = r.obj.ID()
	case ScriptContextStatic:
		contextIDs = r.act.ScriptContextValue
	case ScriptContextReference:
		ids, err := r.obj.References(r.act.ScriptContextValue)
		if err != nil && !record.IsNotFound(err) {
			return &ObjectError{ObjectID: r.obj.ID(), Op: "script context", Err: err}
		}
		contextIDs = strings.Join(ids, ",")
	}

	if rn.scripts == nil {
		observability.LogConfigProblem(r.logger, KeyActiveScripts, "no script dispatcher configured")
		return nil
	}

	res := retry.Do(ctx, rn.retry, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, rn.scripts.StartScripts(ctx, r.act.Scripts, contextIDs, r.act.Background)
	})
	if res.Err != nil {
		return &ObjectError{ObjectID: r.obj.ID(), Op: "start scripts", Err: res.Err}
	}
	if res.Attempts > 1 {
		observability.LogRetried(r.logger, "start scripts", res.Attempts)
	}

	observability.LogScripts(r.logger, r.act.Scripts, contextIDs, r.act.Background)
	r.result.Scripts = append([]string(nil), r.act.Scripts...)
	r.result.ScriptContext = contextIDs
	return nil
}

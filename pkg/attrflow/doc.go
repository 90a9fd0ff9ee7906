/*
Package attrflow resolves placeholder templates, evaluates attribute
conditions and writes attribute values on host records.

# Overview

Workflow actions in a product data system are configured as flat
settings: which attributes to check, which conditions must hold and
which values to write. attrflow evaluates those settings against an
abstract record model (package record), so any host that implements
record.Accessor and record.Writer can run them.

The building blocks are:
  - template.Resolver substitutes {Field}, {Today#fmt}, {^Ref} and
    #entry# placeholders in a template.
  - expr.Evaluator resolves a condition and compares it to an
    attribute's current value (=, !=, <, >, <=, >=, %contains%, ||).
  - dispatch.Dispatcher writes a template or structured parts to an
    attribute according to its field type.
  - action.Runner gates (MayExecute) and runs (Execute) configured
    workflow actions across languages and related objects.

# Basic Usage

	host := memhost.New()
	host.DefineField(memhost.FieldDef{ID: "Status", Type: record.TypePlain})
	obj := host.AddObject("42", "", 1)

	engine := attrflow.New(attrflow.WithValueRanges(host))

	ok, err := engine.Evaluate(ctx, obj, "Status", "approved||released")
	if err != nil {
	    return err
	}
	if !ok {
	    err = engine.Apply(ctx, obj, "Status", record.Template("in review"), 1)
	}

# Actions

Actions are decoded from host settings with action.FromConfig and run
with a Runner that shares the engine's resolver:

	cfg, err := config.FromFile("release.yaml")
	act, err := action.FromConfig(cfg)

	runner := engine.Runner(action.WithScripts(host))
	if ok, _ := runner.MayExecute(ctx, act, obj); ok {
	    result, err := runner.Execute(ctx, act, obj)
	}

# Observability

Pass a logger with WithLogger and an OpenTelemetry recorder with
WithMetrics (see package observability). Both default to no-ops.
*/
package attrflow

// Package action runs configured workflow actions against host objects.
//
// An Action is decoded from the flat key/value configuration the host
// stores for a workflow action:
//
//	CheckedObjects: Children
//	CheckState: "10,11"
//	CheckAttributeIDs: "Status"
//	Status_CheckAttribute: "approved||released"
//	AttributeIDs: "ReleaseDate"
//	ReleaseDate_Attribute: "{Today#d.m.Y}"
//
// A Runner answers MayExecute (is the action allowed for this object?)
// and performs Execute (reset, set and copy attributes per language,
// touch the checked objects and start host scripts).
//
// Basic usage:
//
//	act, err := action.FromConfig(cfg)
//	if err != nil {
//	    return err
//	}
//	runner := action.NewRunner(action.WithScripts(host))
//	ok, err := runner.MayExecute(ctx, act, obj)
//	if ok {
//	    result, err := runner.Execute(ctx, act, obj)
//	}
//
// A Catalog keeps actions by name, e.g. one file per action in a
// directory loaded with LoadDir.
package action

package action

import (
	"fmt"
	"slices"

	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
)

// Scope selects the objects an action checks and touches.
type Scope int

const (
	// ScopeContext is the object the action runs on.
	ScopeContext Scope = iota
	// ScopeChildren are descendants of the object.
	ScopeChildren
	// ScopeParent are ancestors of the object.
	ScopeParent
	// ScopeUnknown is a configured scope the runner does not know.
	// MayExecute refuses it and Execute touches no checked objects.
	ScopeUnknown
)

// String returns the configuration value of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeContext:
		return "Context"
	case ScopeChildren:
		return "Children"
	case ScopeParent:
		return "Parent"
	case ScopeUnknown:
		return "Unknown"
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

// ParseScope maps a CheckedObjects value to a Scope. An empty value is
// ScopeContext; unrecognized values are ScopeUnknown.
func ParseScope(v string) Scope {
	switch v {
	case "", "Context":
		return ScopeContext
	case "Children":
		return ScopeChildren
	case "Parent":
		return ScopeParent
	}
	return ScopeUnknown
}

// Depth selects which descendants are candidates of a Children check.
type Depth int

const (
	DepthAll Depth = iota
	DepthDirect
	DepthEndNodes
	DepthDynamic
)

// String returns the configuration value of the depth.
func (d Depth) String() string {
	switch d {
	case DepthAll:
		return "allLevels"
	case DepthDirect:
		return "directChildren"
	case DepthEndNodes:
		return "endNotes"
	case DepthDynamic:
		return "dynamicNumberOfLayers"
	}
	return fmt.Sprintf("Depth(%d)", int(d))
}

// ParseDepth maps a levelOfChildren value to a Depth. Unknown values
// fall back to DepthAll.
func ParseDepth(v string) Depth {
	switch v {
	case "directChildren":
		return DepthDirect
	case "endNotes", "endNodes":
		return DepthEndNodes
	case "dynamicNumberOfLayers":
		return DepthDynamic
	}
	return DepthAll
}

// Policy decides how many candidate checks must hold.
type Policy int

const (
	// PolicyAll requires every evaluated check to hold.
	PolicyAll Policy = iota
	// PolicyMinOne requires at least one check to hold.
	PolicyMinOne
	// PolicyMinimum requires at least Action.MinChildren checks to hold.
	PolicyMinimum
)

// String returns the configuration value of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyAll:
		return "allChildren"
	case PolicyMinOne:
		return "minOne"
	case PolicyMinimum:
		return "dynamicNumber"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy maps a NumberOfChildren value to a Policy. Unknown values
// fall back to PolicyAll.
func ParsePolicy(v string) Policy {
	switch v {
	case "minOne":
		return PolicyMinOne
	case "dynamicNumber":
		return PolicyMinimum
	}
	return PolicyAll
}

// ScriptContext selects the context ids handed to started scripts.
type ScriptContext int

const (
	// ScriptContextNone starts scripts without context.
	ScriptContextNone ScriptContext = iota
	// ScriptContextObject passes the id of the executed object.
	ScriptContextObject
	// ScriptContextStatic passes Action.ScriptContextValue as is.
	ScriptContextStatic
	// ScriptContextReference passes the ids referenced by the attribute
	// named in Action.ScriptContextValue.
	ScriptContextReference
)

// String returns a readable name of the mode.
func (m ScriptContext) String() string {
	switch m {
	case ScriptContextNone:
		return "none"
	case ScriptContextObject:
		return "object"
	case ScriptContextStatic:
		return "Static"
	case ScriptContextReference:
		return "RefAttr"
	}
	return fmt.Sprintf("ScriptContext(%d)", int(m))
}

// Check is one attribute condition tested by MayExecute.
type Check struct {
	AttributeID string
	Condition   string
}

// Assignment writes Value to an attribute. Precondition, when set, is
// evaluated against the attribute before writing.
type Assignment struct {
	AttributeID  string
	Value        record.Raw
	Precondition string
}

// Action is a decoded workflow action.
type Action struct {
	ID    string
	Scope Scope

	CheckStates   []string
	IgnoredStates []string
	Checks        []Check
	Depth         Depth
	// Levels is the configured numberOfLevels. Zero means unset.
	Levels      int
	Policy      Policy
	MinChildren int

	Set                       []Assignment
	PreconditionSetAttributes bool
	Reset                     []string
	SetOnObjects              []Assignment
	ResetOnObjects            []string
	CopyTags                  []string

	Languages          []record.LanguageID
	AddCurrentLanguage bool

	Scripts            []string
	Background         bool
	ScriptContext      ScriptContext
	ScriptContextValue string
}

// Validate reports configuration the runner can only degrade on.
// It returns ErrNoStates for Children and Parent actions without
// CheckStates.
func (a Action) Validate() error {
	switch a.Scope {
	case ScopeChildren, ScopeParent:
		if len(a.CheckStates) == 0 {
			return fmt.Errorf("%s action %q: %w", a.Scope, a.ID, ErrNoStates)
		}
	case ScopeUnknown:
		return fmt.Errorf("action %q: %w", a.ID, ErrUnknownScope)
	case ScopeContext:
	}
	return nil
}

// languages returns the languages Execute runs for. Without configured
// languages only the context language is used; AddCurrentLanguage
// appends it to configured ones. Duplicates are dropped.
func (a Action) languages(contextLang record.LanguageID) []record.LanguageID {
	if len(a.Languages) == 0 {
		return []record.LanguageID{contextLang}
	}
	langs := make([]record.LanguageID, 0, len(a.Languages)+1)
	for _, l := range a.Languages {
		if !slices.Contains(langs, l) {
			langs = append(langs, l)
		}
	}
	if a.AddCurrentLanguage && !slices.Contains(langs, contextLang) {
		langs = append(langs, contextLang)
	}
	return langs
}

// parentLevels is the number of ancestors a Parent action walks.
func (a Action) parentLevels() int {
	return max(1, a.Levels)
}

// candidateLevels is the depth of descendants a Children check reads.
func (a Action) candidateLevels() int {
	switch a.Depth {
	case DepthDirect:
		return 1
	case DepthDynamic:
		return a.Levels
	case DepthAll, DepthEndNodes:
	}
	return 0
}

// minimum is the number of holding checks a non-all policy requires.
func (a Action) minimum() int {
	switch a.Policy {
	case PolicyMinOne:
		return 1
	case PolicyMinimum:
		return a.MinChildren
	case PolicyAll:
	}
	return 0
}

// relevant reports whether state qualifies an object for checks.
func (a Action) relevant(state string) bool {
	return slices.Contains(a.CheckStates, state) && !slices.Contains(a.IgnoredStates, state)
}

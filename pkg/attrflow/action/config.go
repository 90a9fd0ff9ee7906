package action

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/randalmurphal/attrflow/pkg/attrflow/config"
	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
)

// Configuration keys of a workflow action.
const (
	KeyActionName         = "ActionName"
	KeyCheckedObjects     = "CheckedObjects"
	KeyCheckState         = "CheckState"
	KeyIgnoredStates      = "IgnoredStates"
	KeyCheckAttributeIDs  = "CheckAttributeIDs"
	KeyLevelOfChildren    = "levelOfChildren"
	KeyNumberOfLevels     = "numberOfLevels"
	KeyNumberOfChildren   = "NumberOfChildren"
	KeyMinimumChildren    = "minimumChildrenNumber"
	KeyAttributeIDs       = "AttributeIDs"
	KeyPreconditionSet    = "PreconditionSetAttributes"
	KeyResetAttributeIDs  = "ResetAttributeIDs"
	KeyAttributesOnObject = "AttributeIDsOnObject"
	KeyResetOnObjects     = "ResetAttributesIDsOnObjects"
	KeyCopyAttributeIDs   = "CopyAttributeIDs"
	KeyLanguageIDs        = "LanguageIDs"
	KeyAddCurrentLanguage = "AddCurrentLanguage"
	KeyActiveScripts      = "ActiveScripts"
	KeyRunInBackground    = "bRunInBackground"
	KeyAddContext         = "AddContext"
	KeyContextOptions     = "ContextOptions"
	KeyContextForScript   = "ContextForScript"
)

// Suffixes of per-attribute keys.
const (
	SuffixCheck         = "_CheckAttribute"
	SuffixValue         = "_Attribute"
	SuffixPrecondition  = "_Attribute_Preconditions"
	SuffixValueOnObject = "_AttributeOnObject"
)

// FromConfig decodes an action from its configuration.
//
// Values of <id>_Attribute and <id>_AttributeOnObject are templates when
// scalar and Parts when a map. A missing value clears the attribute.
// Keys that cannot be decoded are reported as ConfigErrors joined into
// the returned error; the returned Action is usable without them.
func FromConfig(cfg config.Config) (Action, error) {
	var errs []error

	act := Action{
		ID:                        cfg.String(KeyActionName, ""),
		Scope:                     ParseScope(cfg.String(KeyCheckedObjects, "")),
		CheckStates:               cfg.IDs(KeyCheckState),
		IgnoredStates:             cfg.IDs(KeyIgnoredStates),
		Depth:                     ParseDepth(cfg.String(KeyLevelOfChildren, "")),
		Levels:                    cfg.Int(KeyNumberOfLevels, 0),
		Policy:                    ParsePolicy(cfg.String(KeyNumberOfChildren, "")),
		MinChildren:               cfg.Int(KeyMinimumChildren, 0),
		PreconditionSetAttributes: cfg.Bool(KeyPreconditionSet, false),
		Reset:                     cfg.IDs(KeyResetAttributeIDs),
		ResetOnObjects:            cfg.IDs(KeyResetOnObjects),
		CopyTags:                  cfg.IDs(KeyCopyAttributeIDs),
		AddCurrentLanguage:        cfg.Bool(KeyAddCurrentLanguage, false),
		Scripts:                   cfg.IDs(KeyActiveScripts),
		Background:                cfg.Bool(KeyRunInBackground, false),
		ScriptContextValue:        cfg.String(KeyContextForScript, ""),
	}

	for _, id := range cfg.IDs(KeyCheckAttributeIDs) {
		act.Checks = append(act.Checks, Check{
			AttributeID: id,
			Condition:   cfg.String(id+SuffixCheck, ""),
		})
	}

	for _, id := range cfg.IDs(KeyAttributeIDs) {
		raw, err := rawValue(cfg, id+SuffixValue)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		act.Set = append(act.Set, Assignment{
			AttributeID:  id,
			Value:        raw,
			Precondition: cfg.String(id+SuffixPrecondition, ""),
		})
	}

	for _, id := range cfg.IDs(KeyAttributesOnObject) {
		raw, err := rawValue(cfg, id+SuffixValueOnObject)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		act.SetOnObjects = append(act.SetOnObjects, Assignment{AttributeID: id, Value: raw})
	}

	for _, s := range cfg.IDs(KeyLanguageIDs) {
		n, err := strconv.Atoi(s)
		if err != nil {
			errs = append(errs, &ConfigError{Key: KeyLanguageIDs, Err: fmt.Errorf("language id %q: %w", s, err)})
			continue
		}
		act.Languages = append(act.Languages, record.LanguageID(n))
	}

	act.ScriptContext = ScriptContextNone
	if cfg.Bool(KeyAddContext, false) {
		switch cfg.String(KeyContextOptions, "") {
		case "Static":
			act.ScriptContext = ScriptContextStatic
		case "RefAttr":
			act.ScriptContext = ScriptContextReference
		default:
			act.ScriptContext = ScriptContextObject
		}
	}

	return act, errors.Join(errs...)
}

// rawValue decodes the value stored under key into a record.Raw.
func rawValue(cfg config.Config, key string) (record.Raw, error) {
	v := cfg.Any(key, nil)
	if v == nil {
		return nil, nil
	}
	if m := cfg.Map(key); m != nil {
		sub := config.New(m)
		parts := make(record.Parts, len(m))
		for _, k := range sub.Keys() {
			parts[k] = sub.String(k, "")
		}
		return parts, nil
	}
	switch v.(type) {
	case string, int, int64, float64, bool:
		return record.Template(cfg.String(key, "")), nil
	}
	return nil, &ConfigError{Key: key, Err: fmt.Errorf("unsupported value type %T", v)}
}

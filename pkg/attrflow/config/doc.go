/*
Package config reads workflow action settings.

# Overview

Action settings come from the host's configuration layer as a flat map of
keys to values. Most values are stored as strings by the host editor, so
the typed accessors accept both native values and their string forms:

	cfg := config.New(map[string]any{
	    "numberOfLevels":   "2",
	    "bRunInBackground": "1",
	    "AttributeIDs":     "Name, Size",
	})

	levels := cfg.Int("numberOfLevels", 1)       // 2
	bg := cfg.Bool("bRunInBackground", false)     // true
	ids := cfg.IDs("AttributeIDs")                // [Name Size]

# Defaults

Every accessor takes or implies a default that is returned when the key is
missing or the value cannot be converted. Settings are end-user
configuration and never fail a workflow.

# File Loading

	cfg, err := config.FromFile("action.yaml")

	// Or load from bytes
	cfg, err = config.FromYAML(yamlBytes)
	cfg, err = config.FromJSON(jsonBytes)

Documents may be nested or use the host's flat export, where
"Dims_Attribute.Unformatted" is the Unformatted part of Dims_Attribute.
Keys that collide after folding fail with ErrKeyConflict.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config

/*
Package template resolves placeholders in user-authored attribute templates.

# Overview

Templates are configured by workflow authors and resolved against a record
in a given language. The result is the literal value that is written to an
attribute or compared by a precondition.

# Placeholder Syntax

Four kinds of placeholders are recognized:

	{=text}        escaped literal; emitted as "text", never substituted
	{Today}        current date as 2006-01-02 (case-insensitive)
	{Today#fmt}    current date in a PHP-style date format, e.g. {Today#d.m.Y}
	{null}         empty value (case-insensitive)
	{Attribute}    value of another attribute of the record
	#Entry#        display value of a value-range entry

# Resolution Order

Resolution runs five passes, each a single regexp pass over the output of
the previous one, so text produced by a pass is never rescanned by it:

 1. escapes are swapped for sentinels
 2. date and null placeholders
 3. attribute placeholders
 4. value-range placeholders
 5. sentinels are swapped back for the escaped text

Attribute placeholders of string-function and value-range attributes use
the formatted value, falling back to the raw value when that is empty.

# Missing Values

Templates are end-user configuration, so unknown attributes and unknown
value-range entries resolve to the empty string. Only failures of the record
accessor itself (anything not wrapping record.ErrNotFound) are returned.

# Basic Usage

	r := template.NewResolver(template.WithValueRanges(host))
	value, err := r.Resolve(rec, "{Name} ({Today#Y})", rec.CurrentLanguage())

# Thread Safety

Resolver is safe for concurrent use after construction.
*/
package template

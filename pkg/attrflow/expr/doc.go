/*
Package expr evaluates attribute preconditions.

# Overview

A precondition is a template (see package template) that, once resolved,
is a list of clauses separated by "||". Each clause compares the current
value of one attribute with a comparand. The condition holds if any clause
holds.

# Clause Syntax

	<clause>  := [<op>] <operand>
	<op>      := '<=' | '>=' | '<' | '>' | '!'
	<operand> := '%' <text> '%'     substring test
	           | <text>              comparison

Leading whitespace before the operator is skipped. Operators are matched
longest first, so "<=5" is never read as "<" followed by "=5".

# Operators

	(none)     current == operand (exact string equality)
	!          current != operand
	<  >       ordering; numeric when both sides look numeric
	<= >=      ordering; numeric when both sides look numeric
	%text%     current contains text
	!%text%    current does not contain text

Wrapping the operand in '%' always produces a substring test: "<%a%" is
the same as "%a%".

A value looks numeric when, after trimming blanks, it matches

	^[+-]?(\d+(\.\d*)?|\.\d+)$

Locale separators and exponents are not numbers; such values are compared
as strings byte by byte.

# Examples

	5              value is "5"
	3||5           value is "3" or "5"
	!5             value is not "5"
	<10            value is less than 10 ("9" holds)
	%ab%           value contains "ab"
	!%ab%          value does not contain "ab"
	{Other}        value equals the value of attribute Other

# Errors

Configuration mistakes never fail an evaluation: an unknown attribute has
the empty string as its value. Only failures of the record accessor are
returned.
*/
package expr

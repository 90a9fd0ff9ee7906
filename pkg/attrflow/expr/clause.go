package expr

import (
	"strings"
	"unicode"
)

// Separator splits a condition into alternative clauses.
const Separator = "||"

// Clause is one alternative of a condition.
type Clause struct {
	Op      Operator
	Operand string
}

// Holds reports whether the clause is true for the current value.
func (c Clause) Holds(current string) bool {
	return Compare(current, c.Operand, c.Op)
}

// String renders the clause back into condition syntax.
func (c Clause) String() string {
	switch c.Op {
	case OpEqual:
		return c.Operand
	case OpContains:
		return "%" + c.Operand + "%"
	case OpNotContains:
		return "!%" + c.Operand + "%"
	case OpLess, OpGreater, OpLessEqual, OpGreaterEqual, OpNotEqual:
	}
	return c.Op.String() + c.Operand
}

// ParseClause parses a resolved clause in two passes: the leading
// operator is stripped first, then a '%' wrapping of the rest is folded
// into a substring operator.
func ParseClause(text string) Clause {
	c := Clause{Op: OpEqual, Operand: text}

	trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)
	for _, p := range prefixes {
		if strings.HasPrefix(trimmed, p.text) {
			c.Op = p.op
			c.Operand = trimmed[len(p.text):]
			break
		}
	}

	if s := c.Operand; len(s) >= 2 && s[0] == '%' && s[len(s)-1] == '%' {
		c.Operand = s[1 : len(s)-1]
		if c.Op == OpNotEqual {
			c.Op = OpNotContains
		} else {
			c.Op = OpContains
		}
	}
	return c
}

// Expression is a parsed condition: alternatives in source order.
type Expression []Clause

// Parse splits a resolved condition on "||" and parses every clause.
// An empty condition yields an empty Expression.
func Parse(resolved string) Expression {
	if resolved == "" {
		return nil
	}
	parts := strings.Split(resolved, Separator)
	e := make(Expression, 0, len(parts))
	for _, p := range parts {
		e = append(e, ParseClause(p))
	}
	return e
}

// Any reports whether at least one clause holds. An empty Expression holds.
func (e Expression) Any(current string) bool {
	if len(e) == 0 {
		return true
	}
	for _, c := range e {
		if c.Holds(current) {
			return true
		}
	}
	return false
}

// All reports whether every clause holds.
func (e Expression) All(current string) bool {
	for _, c := range e {
		if !c.Holds(current) {
			return false
		}
	}
	return true
}

// String renders the expression back into condition syntax.
func (e Expression) String() string {
	parts := make([]string, len(e))
	for i, c := range e {
		parts[i] = c.String()
	}
	return strings.Join(parts, Separator)
}

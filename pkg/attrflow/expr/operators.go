package expr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Operator is the comparison of a Clause.
type Operator int

const (
	OpEqual Operator = iota
	OpLess
	OpGreater
	OpLessEqual
	OpGreaterEqual
	OpNotEqual
	OpContains
	OpNotContains
)

// String returns the operator symbol used in log output.
func (op Operator) String() string {
	switch op {
	case OpEqual:
		return "="
	case OpLess:
		return "<"
	case OpGreater:
		return ">"
	case OpLessEqual:
		return "<="
	case OpGreaterEqual:
		return ">="
	case OpNotEqual:
		return "!"
	case OpContains:
		return "contains"
	case OpNotContains:
		return "not contains"
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// prefixes in match order; two-character operators come first.
var prefixes = []struct {
	text string
	op   Operator
}{
	{"<=", OpLessEqual},
	{">=", OpGreaterEqual},
	{"<", OpLess},
	{">", OpGreater},
	{"!", OpNotEqual},
}

var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// IsNumeric reports whether s looks like a decimal number.
func IsNumeric(s string) bool {
	return numericPattern.MatchString(strings.TrimSpace(s))
}

// Compare applies op to the current value and the operand.
func Compare(current, operand string, op Operator) bool {
	switch op {
	case OpEqual:
		return current == operand
	case OpNotEqual:
		return current != operand
	case OpContains:
		return strings.Contains(current, operand)
	case OpNotContains:
		return !strings.Contains(current, operand)
	case OpLess:
		return order(current, operand) < 0
	case OpGreater:
		return order(current, operand) > 0
	case OpLessEqual:
		return order(current, operand) <= 0
	case OpGreaterEqual:
		return order(current, operand) >= 0
	}
	return false
}

// order compares numerically when both sides look numeric, by bytes otherwise.
func order(a, b string) int {
	if IsNumeric(a) && IsNumeric(b) {
		x, errX := strconv.ParseFloat(strings.TrimSpace(a), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(b), 64)
		if errX == nil && errY == nil {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(a, b)
}

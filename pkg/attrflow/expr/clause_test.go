package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClause(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Clause
	}{
		{name: "no operator", text: "5", want: Clause{Op: OpEqual, Operand: "5"}},
		{name: "empty", text: "", want: Clause{Op: OpEqual, Operand: ""}},
		{name: "less", text: "<10", want: Clause{Op: OpLess, Operand: "10"}},
		{name: "greater", text: ">10", want: Clause{Op: OpGreater, Operand: "10"}},
		{name: "less equal is not split", text: "<=10", want: Clause{Op: OpLessEqual, Operand: "10"}},
		{name: "greater equal is not split", text: ">=10", want: Clause{Op: OpGreaterEqual, Operand: "10"}},
		{name: "not equal", text: "!5", want: Clause{Op: OpNotEqual, Operand: "5"}},
		{name: "leading blanks before operator", text: "  <3", want: Clause{Op: OpLess, Operand: "3"}},
		{name: "leading blanks without operator kept", text: " 3", want: Clause{Op: OpEqual, Operand: " 3"}},
		{name: "contains", text: "%ab%", want: Clause{Op: OpContains, Operand: "ab"}},
		{name: "not contains", text: "!%ab%", want: Clause{Op: OpNotContains, Operand: "ab"}},
		{name: "wrapping overrides ordering", text: "<%ab%", want: Clause{Op: OpContains, Operand: "ab"}},
		{name: "bare percent pair", text: "%%", want: Clause{Op: OpContains, Operand: ""}},
		{name: "single percent", text: "%", want: Clause{Op: OpEqual, Operand: "%"}},
		{name: "open percent", text: "%ab", want: Clause{Op: OpEqual, Operand: "%ab"}},
		{name: "equals sign is literal", text: "=5", want: Clause{Op: OpEqual, Operand: "=5"}},
		{name: "not equal keeps equals sign", text: "!=x", want: Clause{Op: OpNotEqual, Operand: "=x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseClause(tt.text))
		})
	}
}

func TestParse(t *testing.T) {
	assert.Nil(t, Parse(""))

	e := Parse("3||!%x%||<=7")
	assert.Equal(t, Expression{
		{Op: OpEqual, Operand: "3"},
		{Op: OpNotContains, Operand: "x"},
		{Op: OpLessEqual, Operand: "7"},
	}, e)
	assert.Equal(t, "3||!%x%||<=7", e.String())

	// Empty alternatives compare against the empty value.
	assert.Equal(t, Expression{{Op: OpEqual, Operand: "a"}, {Op: OpEqual, Operand: ""}}, Parse("a||"))
}

func TestExpression_AnyAll(t *testing.T) {
	tests := []struct {
		cond    string
		current string
		any     bool
		all     bool
	}{
		{cond: "3||5", current: "3", any: true, all: false},
		{cond: "3||5", current: "5", any: true, all: false},
		{cond: "3||5", current: "4", any: false, all: false},
		{cond: ">1||<9", current: "4", any: true, all: true},
		{cond: "%a%||%b%", current: "ab", any: true, all: true},
		{cond: "!x||!y", current: "x", any: true, all: false},
	}

	for _, tt := range tests {
		t.Run(tt.cond+"/"+tt.current, func(t *testing.T) {
			e := Parse(tt.cond)
			assert.Equal(t, tt.any, e.Any(tt.current))
			assert.Equal(t, tt.all, e.All(tt.current))
		})
	}

	var empty Expression
	assert.True(t, empty.Any("x"))
	assert.True(t, empty.All("x"))
}

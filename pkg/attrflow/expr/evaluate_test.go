package expr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/attrflow/pkg/attrflow/expr"
	"github.com/randalmurphal/attrflow/pkg/attrflow/memhost"
	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
	"github.com/randalmurphal/attrflow/pkg/attrflow/template"
)

const lang record.LanguageID = 1

func newObject(t *testing.T, x string) *memhost.Object {
	t.Helper()
	h := memhost.New()
	h.DefineField(memhost.FieldDef{ID: "X", Type: record.TypePlain})
	h.DefineField(memhost.FieldDef{ID: "Limit", Type: record.TypePlain})
	h.DefineField(memhost.FieldDef{ID: "Label", Type: record.TypeStringFunction})
	o := h.AddObject("1", "", lang).Set("Limit", lang, "10")
	if x != "" {
		o.Set("X", lang, x)
	}
	return o
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		condition string
		want      bool
	}{
		{name: "empty condition", value: "anything", condition: "", want: true},
		{name: "empty condition on empty value", value: "", condition: "", want: true},
		{name: "equal", value: "5", condition: "5", want: true},
		{name: "equal miss", value: "6", condition: "5", want: false},
		{name: "not equal", value: "6", condition: "!5", want: true},
		{name: "not equal miss", value: "5", condition: "!5", want: false},
		{name: "contains", value: "cabin", condition: "%ab%", want: true},
		{name: "contains miss", value: "cbin", condition: "%ab%", want: false},
		{name: "not contains", value: "cbin", condition: "!%ab%", want: true},
		{name: "not contains miss", value: "cabin", condition: "!%ab%", want: false},
		{name: "or first", value: "3", condition: "3||5", want: true},
		{name: "or second", value: "5", condition: "3||5", want: true},
		{name: "or none", value: "4", condition: "3||5", want: false},
		{name: "numeric less", value: "9", condition: "<10", want: true},
		{name: "numeric not less", value: "11", condition: "<10", want: false},
		{name: "less equal", value: "10", condition: "<=10", want: true},
		{name: "greater equal", value: "9", condition: ">=10", want: false},
		{name: "placeholder operand", value: "9", condition: "<{Limit}", want: true},
		{name: "placeholder builds operator", value: "11", condition: "{=<}{Limit}", want: false},
		{name: "null operand matches empty", value: "", condition: "{null}", want: true},
		{name: "null operand on value", value: "x", condition: "{null}", want: false},
		{name: "unset value vs not equal", value: "", condition: "!5", want: true},
		{name: "unset value vs equal", value: "", condition: "5", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newObject(t, tt.value)
			got, err := expr.Eval(rec, "X", tt.condition)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_MissingAttribute(t *testing.T) {
	rec := newObject(t, "5")

	ok, err := expr.Eval(rec, "Unknown", "5")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = expr.Eval(rec, "Unknown", "!5")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluate_StringFunctionUsesFormatted(t *testing.T) {
	rec := newObject(t, "")
	rec.Set("Label", lang, "raw")
	rec.SetFormatted("Label", lang, "Pretty")

	ok, err := expr.Eval(rec, "Label", "Pretty")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = expr.Eval(rec, "Label", "raw")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluate_UsesCurrentLanguage(t *testing.T) {
	rec := newObject(t, "de")
	rec.Set("X", 2, "en")

	ok, err := expr.Eval(rec, "X", "de")
	require.NoError(t, err)
	assert.True(t, ok)

	rec.SetLanguage(2)
	ok, err = expr.Eval(rec, "X", "de")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvaluateAll(t *testing.T) {
	rec := newObject(t, "5")
	e := expr.New()

	ok, err := e.EvaluateAll(rec, "X", ">1||<9")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.EvaluateAll(rec, "X", ">1||<3")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = e.EvaluateAll(rec, "X", "")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluate_WithResolver(t *testing.T) {
	h := memhost.New()
	h.DefineField(memhost.FieldDef{ID: "X", Type: record.TypePlain})
	h.DefineValueRange("blue", lang, "Blau")
	rec := h.AddObject("1", "", lang).Set("X", lang, "Blau")

	e := expr.New(expr.WithResolver(template.NewResolver(template.WithValueRanges(h))))
	ok, err := e.Evaluate(rec, "X", "#blue#")
	require.NoError(t, err)
	assert.True(t, ok)
}

var errDown = errors.New("backend down")

type brokenRecord struct{}

func (brokenRecord) Field(string) (record.Field, error)                       { return nil, errDown }
func (brokenRecord) Value(string, record.LanguageID) (string, error)          { return "", errDown }
func (brokenRecord) FormattedValue(string, record.LanguageID) (string, error) { return "", errDown }
func (brokenRecord) CurrentLanguage() record.LanguageID                       { return lang }

func TestEvaluate_CollaboratorFailure(t *testing.T) {
	_, err := expr.Eval(brokenRecord{}, "X", "5")
	assert.ErrorIs(t, err, errDown)

	ok, err := expr.Eval(brokenRecord{}, "X", "")
	require.NoError(t, err)
	assert.True(t, ok)
}

package benchmarks

import (
	"context"
	"testing"

	"github.com/randalmurphal/attrflow/pkg/attrflow/action"
	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
)

func childrenAction() action.Action {
	return action.Action{
		Scope:       action.ScopeChildren,
		CheckStates: []string{"10"},
		Checks:      []action.Check{{AttributeID: "Status", Condition: "approved||released"}},
	}
}

// BenchmarkMayExecute_Children_10 gates over 110 descendants.
func BenchmarkMayExecute_Children_10(b *testing.B) {
	_, root := buildTree(10)
	rn := action.NewRunner()
	act := childrenAction()
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = rn.MayExecute(ctx, act, root)
	}
}

// BenchmarkMayExecute_Children_30 gates over 930 descendants.
func BenchmarkMayExecute_Children_30(b *testing.B) {
	_, root := buildTree(30)
	rn := action.NewRunner()
	act := childrenAction()
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = rn.MayExecute(ctx, act, root)
	}
}

// BenchmarkExecute_Children_10 writes to 110 descendants.
func BenchmarkExecute_Children_10(b *testing.B) {
	h, root := buildTree(10)
	act := childrenAction()
	act.SetOnObjects = []action.Assignment{{AttributeID: "Status", Value: record.Template("released")}}
	rn := action.NewRunner(action.WithScripts(h))
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = rn.Execute(ctx, act, root)
	}
}

// BenchmarkExecute_CopyLanguages copies plain and table attributes to two languages.
func BenchmarkExecute_CopyLanguages(b *testing.B) {
	_, root := buildTree(1)
	act := action.Action{
		CopyTags:  []string{"copy"},
		Languages: []record.LanguageID{2, 3},
	}
	rn := action.NewRunner()
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = rn.Execute(ctx, act, root)
	}
}

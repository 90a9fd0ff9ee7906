package benchmarks

import (
	"testing"

	"github.com/randalmurphal/attrflow/pkg/attrflow/dispatch"
	"github.com/randalmurphal/attrflow/pkg/attrflow/expr"
	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
	"github.com/randalmurphal/attrflow/pkg/attrflow/template"
)

// BenchmarkResolve_Plain measures a template without placeholders.
func BenchmarkResolve_Plain(b *testing.B) {
	_, root := buildTree(1)
	r := template.NewResolver()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Resolve(root, "no placeholders here", lang)
	}
}

// BenchmarkResolve_Mixed measures every placeholder kind in one template.
func BenchmarkResolve_Mixed(b *testing.B) {
	h, root := buildTree(1)
	r := template.NewResolver(template.WithValueRanges(h))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Resolve(root, "{Name} {Color} #red# {Today#d.m.Y} {=literal} {Missing}", lang)
	}
}

// BenchmarkFormatDate measures PHP-style date formatting.
func BenchmarkFormatDate(b *testing.B) {
	_, root := buildTree(1)
	r := template.NewResolver()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Resolve(root, "{Today#l, jS F Y H:i:s}", lang)
	}
}

// BenchmarkEvaluate_Alternatives measures a condition with several clauses.
func BenchmarkEvaluate_Alternatives(b *testing.B) {
	_, root := buildTree(1)
	e := expr.New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Evaluate(root, "Status", "draft||review||>=5||%prov%")
	}
}

// BenchmarkEvaluate_Numeric measures a numeric comparison.
func BenchmarkEvaluate_Numeric(b *testing.B) {
	_, root := buildTree(1)
	root.Set("Status", lang, "12.5")
	e := expr.New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = e.Evaluate(root, "Status", ">=10")
	}
}

// BenchmarkApply_Template measures resolving and writing a template.
func BenchmarkApply_Template(b *testing.B) {
	h, root := buildTree(1)
	d := dispatch.New(dispatch.WithResolver(template.NewResolver(template.WithValueRanges(h))))
	raw := record.Template("{Name} #red#")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = d.Apply(root, "Status", raw, lang)
	}
}

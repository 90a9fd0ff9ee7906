package benchmarks

import (
	"strconv"

	"github.com/randalmurphal/attrflow/pkg/attrflow/memhost"
	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
)

const lang record.LanguageID = 1

// buildTree creates a root with width children, each with width children.
func buildTree(width int) (*memhost.Host, *memhost.Object) {
	h := memhost.New()
	h.DefineField(memhost.FieldDef{ID: "Status", Type: record.TypePlain})
	h.DefineField(memhost.FieldDef{ID: "Name", Type: record.TypePlain, Tags: []string{"copy"}})
	h.DefineField(memhost.FieldDef{ID: "Color", Type: record.TypeValueRange})
	h.DefineField(memhost.FieldDef{ID: "Specs", Type: record.TypeTable, Tags: []string{"copy"}})
	h.DefineValueRange("red", lang, "Rot")
	h.DefineValueRange("red", 2, "Red")

	root := h.AddObject("root", "", lang).SetState("10")
	root.Set("Status", lang, "approved").Set("Name", lang, "Root").Set("Color", lang, "red")
	for r := range 10 {
		if _, err := root.AppendRow("Specs", lang, map[string]string{"Key": strconv.Itoa(r), "Value": "v"}); err != nil {
			panic(err)
		}
	}

	for i := range width {
		id := "c" + strconv.Itoa(i)
		h.AddObject(id, "root", lang).SetState("10").Set("Status", lang, "approved")
		for j := range width {
			h.AddObject(id+"-"+strconv.Itoa(j), id, lang).SetState("10").Set("Status", lang, "approved")
		}
	}
	return h, root
}

func nodeID(n int) string {
	return "snap-" + strconv.Itoa(n)
}

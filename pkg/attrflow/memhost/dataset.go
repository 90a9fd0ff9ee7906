package memhost

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
)

// Dataset is the serialized form of a Host.
type Dataset struct {
	Fields      []FieldDef                              `yaml:"fields" json:"fields"`
	ValueRanges map[string]map[record.LanguageID]string `yaml:"value_ranges,omitempty" json:"value_ranges,omitempty"`
	Objects     []ObjectDef                             `yaml:"objects" json:"objects"`
}

// ObjectDef is the serialized form of an Object.
type ObjectDef struct {
	ID         string                                          `yaml:"id" json:"id"`
	Parent     string                                          `yaml:"parent,omitempty" json:"parent,omitempty"`
	State      string                                          `yaml:"state,omitempty" json:"state,omitempty"`
	Folder     bool                                            `yaml:"folder,omitempty" json:"folder,omitempty"`
	Language   record.LanguageID                               `yaml:"language" json:"language"`
	Classified []string                                        `yaml:"classified,omitempty" json:"classified,omitempty"`
	Classes    []string                                        `yaml:"classes,omitempty" json:"classes,omitempty"`
	Values     map[string]map[record.LanguageID]record.Parts   `yaml:"values,omitempty" json:"values,omitempty"`
	Formatted  map[string]map[record.LanguageID]string         `yaml:"formatted,omitempty" json:"formatted,omitempty"`
	References map[string]map[record.LanguageID][]string       `yaml:"references,omitempty" json:"references,omitempty"`
	Tables     map[string]map[record.LanguageID][]record.Parts `yaml:"tables,omitempty" json:"tables,omitempty"`
}

// Load builds a Host from a dataset.
func Load(ds Dataset) *Host {
	h := New()
	for _, f := range ds.Fields {
		h.DefineField(f)
	}
	for entry, byLang := range ds.ValueRanges {
		for lang, display := range byLang {
			h.DefineValueRange(entry, lang, display)
		}
	}
	for _, od := range ds.Objects {
		o := h.AddObject(od.ID, od.Parent, od.Language)
		o.state = od.State
		o.folder = od.Folder
		o.classified = od.Classified
		o.classes = od.Classes
		for id, byLang := range od.Values {
			for lang, parts := range byLang {
				o.values[valueKey{id, lang}] = copyParts(parts)
			}
		}
		for id, byLang := range od.Formatted {
			for lang, v := range byLang {
				o.SetFormatted(id, lang, v)
			}
		}
		for id, byLang := range od.References {
			for lang, ids := range byLang {
				k := valueKey{id, lang}
				o.refs[k] = append([]string(nil), ids...)
				setPart(o.values, k, record.PartUnformatted, strings.Join(ids, ","))
			}
		}
		for id, byLang := range od.Tables {
			for lang, rows := range byLang {
				t := o.table(id, lang)
				for _, cells := range rows {
					r := t.addRow(lang)
					for _, col := range sortedKeys(cells) {
						r.columns = append(r.columns, col)
						r.values[valueKey{col, lang}] = record.Parts{record.PartUnformatted: cells[col]}
					}
				}
			}
		}
	}
	return h
}

// Dataset exports the current state of the host.
// Table cells are exported with their main value only.
func (h *Host) Dataset() Dataset {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var ds Dataset
	for _, id := range sortedKeys(h.fields) {
		ds.Fields = append(ds.Fields, h.fields[id])
	}
	if len(h.ranges) > 0 {
		ds.ValueRanges = make(map[string]map[record.LanguageID]string, len(h.ranges))
		for entry, byLang := range h.ranges {
			m := make(map[record.LanguageID]string, len(byLang))
			for lang, v := range byLang {
				m[lang] = v
			}
			ds.ValueRanges[entry] = m
		}
	}
	for _, oid := range h.order {
		ds.Objects = append(ds.Objects, h.objects[oid].defLocked())
	}
	return ds
}

func (o *Object) defLocked() ObjectDef {
	od := ObjectDef{
		ID:         o.id,
		Parent:     o.parentID,
		State:      o.state,
		Folder:     o.folder,
		Language:   o.lang,
		Classified: o.classified,
		Classes:    o.classes,
	}
	for k, p := range o.values {
		if od.Values == nil {
			od.Values = make(map[string]map[record.LanguageID]record.Parts)
		}
		if od.Values[k.id] == nil {
			od.Values[k.id] = make(map[record.LanguageID]record.Parts)
		}
		od.Values[k.id][k.lang] = copyParts(p)
	}
	for k, v := range o.formatted {
		if od.Formatted == nil {
			od.Formatted = make(map[string]map[record.LanguageID]string)
		}
		if od.Formatted[k.id] == nil {
			od.Formatted[k.id] = make(map[record.LanguageID]string)
		}
		od.Formatted[k.id][k.lang] = v
	}
	for k, ids := range o.refs {
		if od.References == nil {
			od.References = make(map[string]map[record.LanguageID][]string)
		}
		if od.References[k.id] == nil {
			od.References[k.id] = make(map[record.LanguageID][]string)
		}
		od.References[k.id][k.lang] = append([]string(nil), ids...)
	}
	for k, t := range o.tables {
		if len(t.rows) == 0 {
			continue
		}
		if od.Tables == nil {
			od.Tables = make(map[string]map[record.LanguageID][]record.Parts)
		}
		if od.Tables[k.id] == nil {
			od.Tables[k.id] = make(map[record.LanguageID][]record.Parts)
		}
		rows := make([]record.Parts, 0, len(t.rows))
		for _, r := range t.rows {
			cells := make(record.Parts, len(r.columns))
			for _, col := range r.columns {
				cells[col] = r.values[valueKey{col, r.lang}][record.PartUnformatted]
			}
			rows = append(rows, cells)
		}
		od.Tables[k.id][k.lang] = rows
	}
	return od
}

// LoadFile reads a dataset from a .yaml, .yml or .json file.
func LoadFile(path string) (*Host, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var ds Dataset
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &ds)
	case ".json":
		err = json.Unmarshal(data, &ds)
	default:
		return nil, fmt.Errorf("unsupported dataset file extension: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return Load(ds), nil
}

// MarshalJSON encodes the host as a JSON dataset.
func (h *Host) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Dataset())
}

// UnmarshalJSONDataset decodes a JSON dataset into a new Host.
func UnmarshalJSONDataset(data []byte) (*Host, error) {
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return Load(ds), nil
}

// Package memhost is an in-memory host for the attrflow engine.
//
// It implements every capability in package record and a script
// dispatcher, keeps all data in maps guarded by one RWMutex and can be
// loaded from and exported to a Dataset. Tests, the example programs and the CLI
// run against it.
package memhost

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
)

// FieldDef declares an attribute of the host schema.
type FieldDef struct {
	ID   string           `yaml:"id" json:"id"`
	Type record.FieldType `yaml:"type" json:"type"`
	Tags []string         `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// ScriptRun records one StartScripts call.
type ScriptRun struct {
	IDs        []string
	ContextIDs string
	Background bool
}

// Host holds the schema, the value ranges and all objects.
type Host struct {
	mu      sync.RWMutex
	fields  map[string]FieldDef
	ranges  map[string]map[record.LanguageID]string
	objects map[string]*Object
	order   []string
	scripts []ScriptRun
}

// New creates an empty host.
func New() *Host {
	return &Host{
		fields:  make(map[string]FieldDef),
		ranges:  make(map[string]map[record.LanguageID]string),
		objects: make(map[string]*Object),
	}
}

// DefineField adds or replaces a schema attribute.
func (h *Host) DefineField(def FieldDef) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fields[def.ID] = def
}

// DefineValueRange sets the display value of a value-range entry.
func (h *Host) DefineValueRange(entryID string, lang record.LanguageID, display string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	m, ok := h.ranges[entryID]
	if !ok {
		m = make(map[record.LanguageID]string)
		h.ranges[entryID] = m
	}
	m[lang] = display
}

// DisplayValue implements record.ValueRanges.
func (h *Host) DisplayValue(entryID string, lang record.LanguageID) (string, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.displayValueLocked(entryID, lang)
}

func (h *Host) displayValueLocked(entryID string, lang record.LanguageID) (string, error) {
	m, ok := h.ranges[entryID]
	if !ok {
		return "", fmt.Errorf("value range entry %q: %w", entryID, record.ErrNotFound)
	}
	return m[lang], nil
}

// AddObject creates an object. parentID may be empty for a root object.
func (h *Host) AddObject(id, parentID string, lang record.LanguageID) *Object {
	h.mu.Lock()
	defer h.mu.Unlock()
	o := &Object{
		host:     h,
		id:       id,
		parentID: parentID,
		lang:     lang,
		values:   make(map[valueKey]record.Parts),
		refs:     make(map[valueKey][]string),
		tables:   make(map[valueKey]*Table),
	}
	if _, exists := h.objects[id]; !exists {
		h.order = append(h.order, id)
	}
	h.objects[id] = o
	return o
}

// Object returns an object by id.
func (h *Host) Object(id string) (*Object, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	o, ok := h.objects[id]
	if !ok {
		return nil, fmt.Errorf("object %q: %w", id, record.ErrNotFound)
	}
	return o, nil
}

// ObjectIDs returns all object ids in creation order.
func (h *Host) ObjectIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]string(nil), h.order...)
}

// StartScripts records the call. It satisfies action.ScriptDispatcher.
func (h *Host) StartScripts(_ context.Context, ids []string, contextIDs string, background bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.scripts = append(h.scripts, ScriptRun{
		IDs:        append([]string(nil), ids...),
		ContextIDs: contextIDs,
		Background: background,
	})
	return nil
}

// ScriptRuns returns all recorded StartScripts calls.
func (h *Host) ScriptRuns() []ScriptRun {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]ScriptRun(nil), h.scripts...)
}

func (h *Host) fieldLocked(id string) (FieldDef, error) {
	def, ok := h.fields[id]
	if !ok {
		return FieldDef{}, fmt.Errorf("field %q: %w", id, record.ErrNotFound)
	}
	return def, nil
}

// childrenLocked walks the tree breadth first in creation order.
func (h *Host) childrenLocked(id string, levels int) []record.Object {
	var out []record.Object
	frontier := []string{id}
	for depth := 1; len(frontier) > 0 && (levels <= 0 || depth <= levels); depth++ {
		var next []string
		for _, oid := range h.order {
			o := h.objects[oid]
			for _, parent := range frontier {
				if o.parentID == parent {
					out = append(out, o)
					next = append(next, o.id)
					break
				}
			}
		}
		frontier = next
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

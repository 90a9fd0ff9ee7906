package action_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/attrflow/pkg/attrflow/memhost"
	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
)

const (
	langDE record.LanguageID = 1
	langEN record.LanguageID = 2
	langFR record.LanguageID = 3
)

var errStorage = errors.New("storage unavailable")

// newTree builds
//
//	1 (folder, state 30)
//	├── 2 (folder, state 10)
//	│   ├── 4 (state 20)
//	│   └── 5 (state 10)
//	└── 3 (state 10)
func newTree(t *testing.T) *memhost.Host {
	t.Helper()
	h := memhost.New()
	h.DefineField(memhost.FieldDef{ID: "Status", Type: record.TypePlain})
	h.DefineField(memhost.FieldDef{ID: "Note", Type: record.TypePlain})
	h.DefineField(memhost.FieldDef{ID: "Title", Type: record.TypePlain, Tags: []string{"copy"}})
	h.DefineField(memhost.FieldDef{ID: "Specs", Type: record.TypeTable, Tags: []string{"copy"}})
	h.DefineField(memhost.FieldDef{ID: "Related", Type: record.TypeReference})
	h.DefineField(memhost.FieldDef{ID: "100", Type: record.TypePlain})

	h.AddObject("1", "", langDE).SetFolder(true).SetState("30")
	h.AddObject("2", "1", langDE).SetFolder(true).SetState("10")
	h.AddObject("3", "1", langDE).SetState("10")
	h.AddObject("4", "2", langDE).SetState("20")
	h.AddObject("5", "2", langDE).SetState("10")
	return h
}

func object(t *testing.T, h *memhost.Host, id string) *memhost.Object {
	t.Helper()
	o, err := h.Object(id)
	require.NoError(t, err)
	return o
}

func value(t *testing.T, o *memhost.Object, id string, lang record.LanguageID) string {
	t.Helper()
	v, err := o.Value(id, lang)
	require.NoError(t, err)
	return v
}

func appendRow(t *testing.T, o *memhost.Object, fieldID string, lang record.LanguageID, cells map[string]string) {
	t.Helper()
	_, err := o.AppendRow(fieldID, lang, cells)
	require.NoError(t, err)
}

// setStatus sets Status in the context language of each object.
func setStatus(t *testing.T, h *memhost.Host, status string, ids ...string) {
	t.Helper()
	for _, id := range ids {
		object(t, h, id).Set("Status", langDE, status)
	}
}

// brokenObject fails every field lookup.
type brokenObject struct {
	*memhost.Object
}

func (brokenObject) Field(string) (record.Field, error) { return nil, errStorage }

// readOnlyObject rejects every write of a main value.
type readOnlyObject struct {
	*memhost.Object
}

func (readOnlyObject) SetValue(string, record.LanguageID, string) error { return errStorage }

// flakyScripts fails the first failures calls with err.
type flakyScripts struct {
	mu       sync.Mutex
	failures int
	err      error
	calls    int
}

func (f *flakyScripts) StartScripts(context.Context, []string, string, bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return f.err
	}
	return nil
}

// countingMetrics counts recorder calls.
type countingMetrics struct {
	mu          sync.Mutex
	evaluations int
	writes      int
	runs        map[string]int
}

func (m *countingMetrics) RecordEvaluation(context.Context, string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evaluations++
}

func (m *countingMetrics) RecordResolution(context.Context, error) {}

func (m *countingMetrics) RecordWrite(context.Context, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
}

func (m *countingMetrics) RecordActionRun(_ context.Context, operation string, _ bool, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.runs == nil {
		m.runs = make(map[string]int)
	}
	m.runs[operation]++
}

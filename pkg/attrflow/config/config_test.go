package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/attrflow/pkg/attrflow/config"
)

// TestNew verifies Config creation from maps.
func TestNew(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{"nil map", nil},
		{"empty map", map[string]any{}},
		{"with values", map[string]any{"key": "value"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(tt.data)
			assert.NotNil(t, cfg.Raw())
		})
	}
}

// TestString verifies string extraction with defaults.
func TestString(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		key        string
		defaultVal string
		want       string
	}{
		{"key exists", map[string]any{"CheckedObjects": "Children"}, "CheckedObjects", "Context", "Children"},
		{"key missing", map[string]any{"other": "value"}, "CheckedObjects", "Context", "Context"},
		{"empty string", map[string]any{"CheckedObjects": ""}, "CheckedObjects", "Context", ""},
		{"int formatted", map[string]any{"n": 12}, "n", "", "12"},
		{"float formatted", map[string]any{"n": 1.5}, "n", "", "1.5"},
		{"bool formatted", map[string]any{"n": true}, "n", "", "1"},
		{"null", map[string]any{"n": nil}, "n", "d", "d"},
		{"slice", map[string]any{"n": []any{"a"}}, "n", "d", "d"},
		{"nil map", nil, "n", "d", "d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, config.New(tt.data).String(tt.key, tt.defaultVal))
		})
	}
}

// TestInt verifies integer extraction with type coercion.
func TestInt(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]any
		defaultVal int
		want       int
	}{
		{"int value", map[string]any{"numberOfLevels": 3}, 1, 3},
		{"int64 value", map[string]any{"numberOfLevels": int64(4)}, 1, 4},
		{"float64 whole", map[string]any{"numberOfLevels": 5.0}, 1, 5},
		{"float64 fractional", map[string]any{"numberOfLevels": 5.5}, 1, 1},
		{"string", map[string]any{"numberOfLevels": " 2 "}, 1, 2},
		{"bad string", map[string]any{"numberOfLevels": "two"}, 1, 1},
		{"empty string", map[string]any{"numberOfLevels": ""}, 1, 1},
		{"bool", map[string]any{"numberOfLevels": true}, 1, 1},
		{"missing", nil, 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, config.New(tt.data).Int("numberOfLevels", tt.defaultVal))
		})
	}
}

// TestBool verifies boolean extraction from native and string values.
func TestBool(t *testing.T) {
	tests := []struct {
		name       string
		value      any
		defaultVal bool
		want       bool
	}{
		{"true", true, false, true},
		{"false", false, true, false},
		{"string one", "1", false, true},
		{"string zero", "0", true, false},
		{"string true", "TRUE", false, true},
		{"string on", "on", false, true},
		{"string empty", "", true, false},
		{"string garbage", "maybe", true, true},
		{"int", 1, false, true},
		{"float zero", 0.0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(map[string]any{"bRunInBackground": tt.value})
			assert.Equal(t, tt.want, cfg.Bool("bRunInBackground", tt.defaultVal))
		})
	}

	assert.True(t, config.New(nil).Bool("missing", true))
}

// TestIDs verifies id list extraction.
func TestIDs(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{"comma string", "Name, Size,,Color ", []string{"Name", "Size", "Color"}},
		{"single number", 42, []string{"42"}},
		{"any list", []any{"a", 2, "b,c"}, []string{"a", "2", "b", "c"}},
		{"string list", []string{" a", "b "}, []string{"a", "b"}},
		{"empty string", "", []string{}},
		{"map", map[string]any{"a": 1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New(map[string]any{"AttributeIDs": tt.value})
			assert.Equal(t, tt.want, cfg.IDs("AttributeIDs"))
		})
	}

	assert.Nil(t, config.New(nil).IDs("AttributeIDs"))
}

func TestMap(t *testing.T) {
	cfg := config.New(map[string]any{
		"str":    map[string]any{"Unformatted_1": "1"},
		"yamlv2": map[any]any{1: "x"},
		"scalar": "x",
	})

	assert.Equal(t, map[string]any{"Unformatted_1": "1"}, cfg.Map("str"))
	assert.Equal(t, map[string]any{"1": "x"}, cfg.Map("yamlv2"))
	assert.Nil(t, cfg.Map("scalar"))
	assert.Nil(t, cfg.Map("missing"))
}

func TestKeysHasAny(t *testing.T) {
	cfg := config.New(map[string]any{"b": 1, "a": nil})

	assert.Equal(t, []string{"a", "b"}, cfg.Keys())
	assert.True(t, cfg.Has("a"))
	assert.False(t, cfg.Has("c"))
	assert.Equal(t, 1, cfg.Any("b", 0))
	assert.Equal(t, "d", cfg.Any("c", "d"))
}

// TestFromYAML verifies YAML parsing.
func TestFromYAML(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
CheckedObjects: Children
numberOfLevels: 2
AttributeIDs: Name,Size
Name_Attribute: "{Today}"
Size_Attribute:
  Unformatted_1: "10"
`))
	require.NoError(t, err)

	assert.Equal(t, "Children", cfg.String("CheckedObjects", ""))
	assert.Equal(t, 2, cfg.Int("numberOfLevels", 1))
	assert.Equal(t, []string{"Name", "Size"}, cfg.IDs("AttributeIDs"))
	assert.Equal(t, "{Today}", cfg.String("Name_Attribute", ""))
	assert.Equal(t, map[string]any{"Unformatted_1": "10"}, cfg.Map("Size_Attribute"))

	_, err = config.FromYAML([]byte("a: [unclosed"))
	assert.Error(t, err)
}

// TestFromJSON verifies JSON parsing.
func TestFromJSON(t *testing.T) {
	cfg, err := config.FromJSON([]byte(`{"numberOfLevels": 3, "bRunInBackground": true}`))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Int("numberOfLevels", 1))
	assert.True(t, cfg.Bool("bRunInBackground", false))

	_, err = config.FromJSON([]byte("{"))
	assert.Error(t, err)
}

// TestFromFile verifies loading by extension.
func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "action.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("CheckState: a,b\n"), 0o600))
	cfg, err := config.FromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cfg.IDs("CheckState"))

	jsonPath := filepath.Join(dir, "action.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"CheckState": "c"}`), 0o600))
	cfg, err = config.FromFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, cfg.IDs("CheckState"))

	txtPath := filepath.Join(dir, "action.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("x"), 0o600))
	_, err = config.FromFile(txtPath)
	assert.ErrorIs(t, err, config.ErrUnsupportedFormat)

	_, err = config.FromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

// TestFromYAML_FlatKeys verifies that the host's flat export reads like a
// nested document.
func TestFromYAML_FlatKeys(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
" AttributeIDs ": Dims
Dims_Attribute.Unformatted: "10"
Dims_Attribute.Unformatted_1: 20
Note_Attribute.Unformatted: x
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"Dims"}, cfg.IDs("AttributeIDs"))
	assert.Equal(t, map[string]any{"Unformatted": "10", "Unformatted_1": 20}, cfg.Map("Dims_Attribute"))
	assert.Equal(t, map[string]any{"Unformatted": "x"}, cfg.Map("Note_Attribute"))
	assert.False(t, cfg.Has("Dims_Attribute.Unformatted"))
}

// TestFromYAML_FlatKeysMerge verifies that flat parts extend a nested value.
func TestFromYAML_FlatKeysMerge(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
Dims_Attribute:
  Unformatted: "10"
Dims_Attribute.Unformatted_1: "20"
`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Unformatted": "10", "Unformatted_1": "20"}, cfg.Map("Dims_Attribute"))
}

func TestFromYAML_KeyConflicts(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "scalar and flat parts",
			doc:  "Dims_Attribute: \"10\"\nDims_Attribute.Unformatted: \"20\"\n",
		},
		{
			name: "nested and flat part",
			doc:  "Dims_Attribute:\n  Unformatted: \"10\"\nDims_Attribute.Unformatted: \"20\"\n",
		},
		{
			name: "keys equal after trimming",
			doc:  "CheckState: a\n\" CheckState\": b\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.FromYAML([]byte(tt.doc))
			assert.ErrorIs(t, err, config.ErrKeyConflict)
		})
	}
}

// TestFromJSON_FlatKeys verifies flat keys in JSON documents.
func TestFromJSON_FlatKeys(t *testing.T) {
	cfg, err := config.FromJSON([]byte(`{"Dims_Attribute.Unformatted": 10, "Empty": ""}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Unformatted": float64(10)}, cfg.Map("Dims_Attribute"))
	assert.Equal(t, "", cfg.String("Empty", "x"))
}

func TestFromYAML_Empty(t *testing.T) {
	cfg, err := config.FromYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Keys())
}

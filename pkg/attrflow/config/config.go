package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
)

// Config wraps a map[string]any of action settings.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map.
// If data is nil, an empty Config is returned.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// String returns the value for key as a string, or defaultVal if missing.
// Numbers and booleans are formatted; maps and lists return defaultVal.
func (c Config) String(key, defaultVal string) string {
	v, ok := c.data[key]
	if !ok || v == nil {
		return defaultVal
	}
	if s, ok := scalarString(v); ok {
		return s
	}
	return defaultVal
}

// Int returns the integer value for key, or defaultVal if missing or not
// convertible.
//
// Accepts:
//   - int, int64: used directly
//   - float64: only without fractional part
//   - string: parsed with strconv.Atoi after trimming blanks
func (c Config) Int(key string, defaultVal int) int {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		if val == float64(int(val)) {
			return int(val)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return n
		}
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not
// convertible.
//
// Accepts:
//   - bool: used directly
//   - int, int64, float64: true when non-zero
//   - string: "1", "true", "yes", "on" are true; "0", "false", "no",
//     "off" and "" are false (case-insensitive)
func (c Config) Bool(key string, defaultVal bool) bool {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	switch val := v.(type) {
	case bool:
		return val
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off", "":
			return false
		}
	}
	return defaultVal
}

// IDs returns the id list stored under key. A string is split on commas;
// a list contributes each scalar element. Blanks are trimmed and empty
// ids dropped. A missing key yields nil.
func (c Config) IDs(key string) []string {
	v, ok := c.data[key]
	if !ok || v == nil {
		return nil
	}
	switch val := v.(type) {
	case []string:
		return record.SplitIDs(strings.Join(val, ","))
	case []any:
		var ids []string
		for _, item := range val {
			if s, ok := scalarString(item); ok {
				ids = append(ids, record.SplitIDs(s)...)
			}
		}
		return ids
	}
	if s, ok := scalarString(v); ok {
		return record.SplitIDs(s)
	}
	return nil
}

// Map returns the nested map stored under key, or nil.
func (c Config) Map(key string) map[string]any {
	switch val := c.data[key].(type) {
	case map[string]any:
		return val
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = v
		}
		return m
	}
	return nil
}

// Any returns the raw value for key, or defaultVal if missing.
func (c Config) Any(key string, defaultVal any) any {
	v, ok := c.data[key]
	if !ok {
		return defaultVal
	}
	return v
}

// Has returns true if the key exists in the config.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Keys returns all keys in sorted order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Raw returns the underlying map.
// The returned map should not be modified.
func (c Config) Raw() map[string]any {
	return c.data
}

func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		if val {
			return "1", true
		}
		return "0", true
	}
	return "", false
}

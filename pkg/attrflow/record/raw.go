package record

import "strings"

// Keys of the sub-values carried by Parts.
const (
	PartUnformatted  = "Unformatted"
	PartUnformatted1 = "Unformatted_1"
	PartUnformatted2 = "Unformatted_2"
)

// ClassMapping is the synthetic attribute id that reconfigures the
// classification membership of a record instead of storing a value.
const ClassMapping = "ClassMapping"

// Raw is a value handed to the write path: a Template or Parts.
type Raw interface {
	raw()
}

// Template is a string that is resolved before being written.
type Template string

// Parts carries the unformatted sub-values of a multi-part attribute.
type Parts map[string]string

func (Template) raw() {}
func (Parts) raw()    {}

// IsEmptyRaw reports whether r clears the attribute it is written to.
func IsEmptyRaw(r Raw) bool {
	switch v := r.(type) {
	case nil:
		return true
	case Template:
		return v == ""
	case Parts:
		return len(v) == 0
	}
	return false
}

// SplitIDs cuts a comma-separated id list, trimming blanks and dropping
// empty entries.
func SplitIDs(s string) []string {
	ids := make([]string, 0, strings.Count(s, ",")+1)
	for _, id := range strings.Split(s, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

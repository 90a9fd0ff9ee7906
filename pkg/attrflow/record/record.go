package record

import (
	"errors"
	"fmt"
	"strings"
)

// LanguageID identifies a data language of the host.
type LanguageID int

// ErrNotFound is returned (possibly wrapped) when a field, record or
// value-range entry does not exist.
var ErrNotFound = errors.New("not found")

// FieldType tags how a field stores and renders its value.
type FieldType int

const (
	TypePlain FieldType = iota
	TypeStringFunction
	TypeValueRange
	TypeReference
	TypeFile
	TypeTable
)

// String returns the host tag for the type.
func (t FieldType) String() string {
	switch t {
	case TypePlain:
		return "plain"
	case TypeStringFunction:
		return "stringfunction"
	case TypeValueRange:
		return "valuerange"
	case TypeReference:
		return "articlereference"
	case TypeFile:
		return "file"
	case TypeTable:
		return "table"
	}
	return fmt.Sprintf("FieldType(%d)", int(t))
}

// ParseFieldType maps a host type tag to a FieldType.
// Unknown tags are an error.
func ParseFieldType(tag string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "", "plain", "text", "string":
		return TypePlain, nil
	case "stringfunction":
		return TypeStringFunction, nil
	case "valuerange":
		return TypeValueRange, nil
	case "articlereference", "reference":
		return TypeReference, nil
	case "file":
		return TypeFile, nil
	case "table":
		return TypeTable, nil
	}
	return TypePlain, fmt.Errorf("unknown field type %q", tag)
}

// MarshalText implements encoding.TextMarshaler.
func (t FieldType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *FieldType) UnmarshalText(b []byte) error {
	parsed, err := ParseFieldType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Field is a handle to one attribute of a record.
type Field interface {
	ID() string
	Type() FieldType
	Value(lang LanguageID) (string, error)
	FormattedValue(lang LanguageID) (string, error)
}

// Accessor reads attribute values of a record.
// Lookups of unknown ids return an error wrapping ErrNotFound.
type Accessor interface {
	Field(id string) (Field, error)
	Value(id string, lang LanguageID) (string, error)
	FormattedValue(id string, lang LanguageID) (string, error)
	CurrentLanguage() LanguageID
}

// Writer mutates attribute values of a record.
type Writer interface {
	// SetValue writes the main value of an attribute.
	SetValue(id string, lang LanguageID, value string) error
	// SetSlot writes sub-slot 1 or 2 of a multi-part attribute.
	SetSlot(id string, lang LanguageID, slot int, value string) error
	// Clear removes the attribute value for lang only.
	Clear(id string, lang LanguageID) error
	// SetReferences replaces the referenced ids of a reference or file attribute.
	SetReferences(id string, lang LanguageID, ids []string) error
	// SetClassifications replaces the classification membership of the record.
	SetClassifications(ids []string) error
}

// Target is something the write path can both read and write.
type Target interface {
	Accessor
	Writer
}

// ValueRanges looks up display values of value-range entries.
type ValueRanges interface {
	DisplayValue(entryID string, lang LanguageID) (string, error)
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Package dispatch writes raw attribute values to records.
//
// A raw value is either a record.Template, which is resolved and then
// written according to the type of the target attribute, or record.Parts,
// whose sub-values go to the matching value slots. An empty raw value
// clears the attribute in one language.
package dispatch

import (
	"fmt"
	"log/slog"

	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
	"github.com/randalmurphal/attrflow/pkg/attrflow/template"
)

// Dispatcher writes raw values through a record.Writer.
type Dispatcher struct {
	resolver *template.Resolver
	logger   *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithResolver sets the resolver used for template values.
func WithResolver(r *template.Resolver) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.resolver = r
		}
	}
}

// WithLogger sets a logger for debug output of writes.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// New creates a Dispatcher with the given options.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{}
	for _, opt := range opts {
		opt(d)
	}
	if d.resolver == nil {
		d.resolver = template.NewResolver()
	}
	return d
}

// Apply writes raw to attribute attributeID of t in lang.
//
//   - nil, an empty Template or empty Parts clear the attribute in lang only
//   - a Template is resolved; ClassMapping sets the classifications,
//     reference and file attributes get the comma-separated id list,
//     every other attribute gets the resolved text
//   - Parts write Unformatted, Unformatted_1 and Unformatted_2 when present
func (d *Dispatcher) Apply(t record.Target, attributeID string, raw record.Raw, lang record.LanguageID) error {
	if record.IsEmptyRaw(raw) {
		d.debug("clear attribute", attributeID, lang)
		if err := t.Clear(attributeID, lang); err != nil {
			return fmt.Errorf("clear %s: %w", attributeID, err)
		}
		return nil
	}

	switch v := raw.(type) {
	case record.Template:
		return d.applyTemplate(t, attributeID, string(v), lang)
	case record.Parts:
		return d.applyParts(t, attributeID, v, lang)
	}
	return fmt.Errorf("apply %s: unsupported raw value %T", attributeID, raw)
}

func (d *Dispatcher) applyTemplate(t record.Target, attributeID, tmpl string, lang record.LanguageID) error {
	value, err := d.resolver.Resolve(t, tmpl, lang)
	if err != nil {
		return fmt.Errorf("apply %s: %w", attributeID, err)
	}

	if attributeID == record.ClassMapping {
		d.debug("set classifications", attributeID, lang, slog.String("value", value))
		if err := t.SetClassifications(record.SplitIDs(value)); err != nil {
			return fmt.Errorf("set classifications: %w", err)
		}
		return nil
	}

	typ, err := fieldType(t, attributeID)
	if err != nil {
		return err
	}

	d.debug("set attribute", attributeID, lang, slog.String("type", typ.String()), slog.String("value", value))
	switch typ {
	case record.TypeReference, record.TypeFile:
		err = t.SetReferences(attributeID, lang, record.SplitIDs(value))
	case record.TypePlain, record.TypeStringFunction, record.TypeValueRange, record.TypeTable:
		err = t.SetValue(attributeID, lang, value)
	}
	if err != nil {
		return fmt.Errorf("set %s: %w", attributeID, err)
	}
	return nil
}

// slots maps Parts keys to writer sub-slots.
var slots = []struct {
	key  string
	slot int
}{
	{record.PartUnformatted1, 1},
	{record.PartUnformatted2, 2},
}

func (d *Dispatcher) applyParts(t record.Target, attributeID string, parts record.Parts, lang record.LanguageID) error {
	if v, ok := parts[record.PartUnformatted]; ok {
		if err := t.SetValue(attributeID, lang, v); err != nil {
			return fmt.Errorf("set %s: %w", attributeID, err)
		}
	}
	for _, s := range slots {
		if v, ok := parts[s.key]; ok {
			if err := t.SetSlot(attributeID, lang, s.slot, v); err != nil {
				return fmt.Errorf("set %s slot %d: %w", attributeID, s.slot, err)
			}
		}
	}
	d.debug("set attribute parts", attributeID, lang, slog.Int("parts", len(parts)))
	return nil
}

// fieldType returns the type of an attribute; unknown attributes are plain.
func fieldType(t record.Accessor, attributeID string) (record.FieldType, error) {
	f, err := t.Field(attributeID)
	switch {
	case record.IsNotFound(err):
		return record.TypePlain, nil
	case err != nil:
		return record.TypePlain, fmt.Errorf("field %s: %w", attributeID, err)
	}
	return f.Type(), nil
}

func (d *Dispatcher) debug(msg, attributeID string, lang record.LanguageID, attrs ...any) {
	if d.logger == nil {
		return
	}
	d.logger.Debug(msg, append([]any{slog.String("attribute", attributeID), slog.Int("language", int(lang))}, attrs...)...)
}

// defaultDispatcher writes with a default resolver.
var defaultDispatcher = New()

// Apply writes raw with the default dispatcher.
func Apply(t record.Target, attributeID string, raw record.Raw, lang record.LanguageID) error {
	return defaultDispatcher.Apply(t, attributeID, raw, lang)
}

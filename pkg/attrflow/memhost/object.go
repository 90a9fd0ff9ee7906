package memhost

import (
	"fmt"
	"slices"
	"strings"

	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
)

type valueKey struct {
	id   string
	lang record.LanguageID
}

// Compile-time interface checks.
var (
	_ record.Object      = (*Object)(nil)
	_ record.ValueRanges = (*Host)(nil)
)

// Object is an in-memory record.Object.
type Object struct {
	host       *Host
	id         string
	parentID   string
	state      string
	folder     bool
	lang       record.LanguageID
	classified []string
	classes    []string
	values     map[valueKey]record.Parts
	formatted  map[valueKey]string
	refs       map[valueKey][]string
	tables     map[valueKey]*Table
	stores     int
	checkins   int
}

// ID implements record.Object.
func (o *Object) ID() string { return o.id }

// State implements record.Object.
func (o *Object) State() string {
	o.host.mu.RLock()
	defer o.host.mu.RUnlock()
	return o.state
}

// SetState moves the object to a workflow state.
func (o *Object) SetState(state string) *Object {
	o.host.mu.Lock()
	defer o.host.mu.Unlock()
	o.state = state
	return o
}

// IsFolder implements record.Object.
func (o *Object) IsFolder() bool {
	o.host.mu.RLock()
	defer o.host.mu.RUnlock()
	return o.folder
}

// SetFolder marks the object as a folder (a non-leaf node).
func (o *Object) SetFolder(folder bool) *Object {
	o.host.mu.Lock()
	defer o.host.mu.Unlock()
	o.folder = folder
	return o
}

// CurrentLanguage implements record.Accessor.
func (o *Object) CurrentLanguage() record.LanguageID {
	o.host.mu.RLock()
	defer o.host.mu.RUnlock()
	return o.lang
}

// SetLanguage switches the context language.
func (o *Object) SetLanguage(lang record.LanguageID) *Object {
	o.host.mu.Lock()
	defer o.host.mu.Unlock()
	o.lang = lang
	return o
}

// Classify restricts the attributes classified on the object.
// Without a call every schema attribute counts as classified.
func (o *Object) Classify(ids ...string) *Object {
	o.host.mu.Lock()
	defer o.host.mu.Unlock()
	o.classified = append([]string(nil), ids...)
	return o
}

// Set writes a main value without going through the Writer error path.
func (o *Object) Set(id string, lang record.LanguageID, value string) *Object {
	_ = o.SetValue(id, lang, value)
	return o
}

// SetFormatted stores the rendered value of a string-function attribute.
func (o *Object) SetFormatted(id string, lang record.LanguageID, value string) *Object {
	o.host.mu.Lock()
	defer o.host.mu.Unlock()
	if o.formatted == nil {
		o.formatted = make(map[valueKey]string)
	}
	o.formatted[valueKey{id, lang}] = value
	return o
}

// Classes returns the classification ids last set on the object.
func (o *Object) Classes() []string {
	o.host.mu.RLock()
	defer o.host.mu.RUnlock()
	return append([]string(nil), o.classes...)
}

// StoreCount returns how often Store was called.
func (o *Object) StoreCount() int {
	o.host.mu.RLock()
	defer o.host.mu.RUnlock()
	return o.stores
}

// CheckinCount returns how often Checkin was called.
func (o *Object) CheckinCount() int {
	o.host.mu.RLock()
	defer o.host.mu.RUnlock()
	return o.checkins
}

// Field implements record.Accessor.
func (o *Object) Field(id string) (record.Field, error) {
	o.host.mu.RLock()
	def, err := o.host.fieldLocked(id)
	o.host.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	return &field{def: def, owner: o}, nil
}

// Value implements record.Accessor.
func (o *Object) Value(id string, lang record.LanguageID) (string, error) {
	o.host.mu.RLock()
	defer o.host.mu.RUnlock()
	return o.valueLocked(id, lang)
}

func (o *Object) valueLocked(id string, lang record.LanguageID) (string, error) {
	parts, stored := o.values[valueKey{id, lang}]
	if _, err := o.host.fieldLocked(id); err != nil && !stored {
		return "", err
	}
	return parts[record.PartUnformatted], nil
}

// FormattedValue implements record.Accessor.
func (o *Object) FormattedValue(id string, lang record.LanguageID) (string, error) {
	o.host.mu.RLock()
	defer o.host.mu.RUnlock()

	def, err := o.host.fieldLocked(id)
	if err != nil {
		return "", err
	}
	raw := o.values[valueKey{id, lang}][record.PartUnformatted]

	switch def.Type {
	case record.TypeStringFunction:
		return o.formatted[valueKey{id, lang}], nil
	case record.TypeValueRange:
		if raw == "" {
			return "", nil
		}
		display, err := o.host.displayValueLocked(raw, lang)
		if record.IsNotFound(err) {
			return "", nil
		}
		return display, err
	case record.TypeReference, record.TypeFile:
		return strings.Join(o.refs[valueKey{id, lang}], ","), nil
	case record.TypePlain, record.TypeTable:
		return raw, nil
	}
	return raw, nil
}

// SetValue implements record.Writer.
func (o *Object) SetValue(id string, lang record.LanguageID, value string) error {
	o.host.mu.Lock()
	defer o.host.mu.Unlock()
	setPart(o.values, valueKey{id, lang}, record.PartUnformatted, value)
	return nil
}

// SetSlot implements record.Writer.
func (o *Object) SetSlot(id string, lang record.LanguageID, slot int, value string) error {
	key, err := slotKey(slot)
	if err != nil {
		return err
	}
	o.host.mu.Lock()
	defer o.host.mu.Unlock()
	setPart(o.values, valueKey{id, lang}, key, value)
	return nil
}

// Clear implements record.Writer.
func (o *Object) Clear(id string, lang record.LanguageID) error {
	o.host.mu.Lock()
	defer o.host.mu.Unlock()
	k := valueKey{id, lang}
	delete(o.values, k)
	delete(o.refs, k)
	delete(o.formatted, k)
	return nil
}

// SetReferences implements record.Writer.
func (o *Object) SetReferences(id string, lang record.LanguageID, ids []string) error {
	o.host.mu.Lock()
	defer o.host.mu.Unlock()
	k := valueKey{id, lang}
	o.refs[k] = append([]string(nil), ids...)
	setPart(o.values, k, record.PartUnformatted, strings.Join(ids, ","))
	return nil
}

// SetClassifications implements record.Writer.
func (o *Object) SetClassifications(ids []string) error {
	o.host.mu.Lock()
	defer o.host.mu.Unlock()
	o.classes = append([]string(nil), ids...)
	return nil
}

// ClassifiedFieldIDs implements record.Object.
func (o *Object) ClassifiedFieldIDs() ([]string, error) {
	o.host.mu.RLock()
	defer o.host.mu.RUnlock()
	if o.classified != nil {
		return append([]string(nil), o.classified...), nil
	}
	return sortedKeys(o.host.fields), nil
}

// FieldIDsByTags implements record.Object.
func (o *Object) FieldIDsByTags(tags []string) ([]string, error) {
	o.host.mu.RLock()
	defer o.host.mu.RUnlock()
	var ids []string
	for _, id := range sortedKeys(o.host.fields) {
		if o.classified != nil && !slices.Contains(o.classified, id) {
			continue
		}
		for _, tag := range o.host.fields[id].Tags {
			if slices.Contains(tags, tag) {
				ids = append(ids, id)
				break
			}
		}
	}
	return ids, nil
}

// Parts implements record.Object.
func (o *Object) Parts(id string, lang record.LanguageID) (record.Parts, error) {
	o.host.mu.RLock()
	defer o.host.mu.RUnlock()
	return copyParts(o.values[valueKey{id, lang}]), nil
}

// References implements record.Object.
func (o *Object) References(id string) ([]string, error) {
	o.host.mu.RLock()
	defer o.host.mu.RUnlock()
	return append([]string(nil), o.refs[valueKey{id, o.lang}]...), nil
}

// Table implements record.Object.
func (o *Object) Table(fieldID string, lang record.LanguageID) (record.Table, error) {
	return o.table(fieldID, lang), nil
}

func (o *Object) table(fieldID string, lang record.LanguageID) *Table {
	o.host.mu.Lock()
	defer o.host.mu.Unlock()
	k := valueKey{fieldID, lang}
	t, ok := o.tables[k]
	if !ok {
		t = &Table{host: o.host, lang: lang}
		o.tables[k] = t
	}
	return t
}

// Children implements record.Object.
func (o *Object) Children(levels int) ([]record.Object, error) {
	o.host.mu.RLock()
	defer o.host.mu.RUnlock()
	return o.host.childrenLocked(o.id, levels), nil
}

// Parent implements record.Object.
func (o *Object) Parent() (record.Object, error) {
	o.host.mu.RLock()
	defer o.host.mu.RUnlock()
	if o.parentID == "" {
		return nil, nil
	}
	p, ok := o.host.objects[o.parentID]
	if !ok {
		return nil, fmt.Errorf("parent %q of %q: %w", o.parentID, o.id, record.ErrNotFound)
	}
	return p, nil
}

// Store implements record.Object.
func (o *Object) Store() error {
	o.host.mu.Lock()
	defer o.host.mu.Unlock()
	o.stores++
	return nil
}

// Checkin implements record.Object.
func (o *Object) Checkin() error {
	o.host.mu.Lock()
	defer o.host.mu.Unlock()
	o.checkins++
	return nil
}

// field is the record.Field handle of Objects and Rows.
type field struct {
	def   FieldDef
	owner record.Accessor
}

func (f *field) ID() string             { return f.def.ID }
func (f *field) Type() record.FieldType { return f.def.Type }
func (f *field) Value(lang record.LanguageID) (string, error) {
	return f.owner.Value(f.def.ID, lang)
}
func (f *field) FormattedValue(lang record.LanguageID) (string, error) {
	return f.owner.FormattedValue(f.def.ID, lang)
}

func setPart(values map[valueKey]record.Parts, k valueKey, part, value string) {
	p := values[k]
	if p == nil {
		p = make(record.Parts, 1)
		values[k] = p
	}
	p[part] = value
}

func slotKey(slot int) (string, error) {
	switch slot {
	case 1:
		return record.PartUnformatted1, nil
	case 2:
		return record.PartUnformatted2, nil
	}
	return "", fmt.Errorf("invalid value slot %d", slot)
}

func copyParts(p record.Parts) record.Parts {
	if len(p) == 0 {
		return nil
	}
	out := make(record.Parts, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

package memhost

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
)

// Compile-time interface checks.
var (
	_ record.Table = (*Table)(nil)
	_ record.Row   = (*Row)(nil)
)

// Table is an in-memory record.Table.
type Table struct {
	host   *Host
	lang   record.LanguageID
	rows   []*Row
	nextID int
}

// RowIDs implements record.Table.
func (t *Table) RowIDs() []string {
	t.host.mu.RLock()
	defer t.host.mu.RUnlock()
	ids := make([]string, 0, len(t.rows))
	for _, r := range t.rows {
		ids = append(ids, r.id)
	}
	return ids
}

// Rows implements record.Table.
func (t *Table) Rows() []record.Row {
	t.host.mu.RLock()
	defer t.host.mu.RUnlock()
	rows := make([]record.Row, 0, len(t.rows))
	for _, r := range t.rows {
		rows = append(rows, r)
	}
	return rows
}

// DeleteRows implements record.Table.
func (t *Table) DeleteRows(ids []string) error {
	t.host.mu.Lock()
	defer t.host.mu.Unlock()
	t.rows = slices.DeleteFunc(t.rows, func(r *Row) bool {
		return slices.Contains(ids, r.id)
	})
	return nil
}

// AddRow implements record.Table.
func (t *Table) AddRow(lang record.LanguageID) (record.Row, error) {
	return t.addRow(lang), nil
}

func (t *Table) addRow(lang record.LanguageID) *Row {
	t.host.mu.Lock()
	defer t.host.mu.Unlock()
	t.nextID++
	r := &Row{
		host:   t.host,
		id:     strconv.Itoa(t.nextID),
		lang:   lang,
		values: make(map[valueKey]record.Parts),
	}
	t.rows = append(t.rows, r)
	return r
}

// Row is an in-memory record.Row.
type Row struct {
	host    *Host
	id      string
	lang    record.LanguageID
	columns []string
	values  map[valueKey]record.Parts
	stores  int
}

// ID returns the row id.
func (r *Row) ID() string { return r.id }

// StoreCount returns how often Store was called.
func (r *Row) StoreCount() int {
	r.host.mu.RLock()
	defer r.host.mu.RUnlock()
	return r.stores
}

// FieldIDs implements record.Row.
func (r *Row) FieldIDs() []string {
	r.host.mu.RLock()
	defer r.host.mu.RUnlock()
	return append([]string(nil), r.columns...)
}

// Parts implements record.Row.
func (r *Row) Parts(id string, lang record.LanguageID) (record.Parts, error) {
	r.host.mu.RLock()
	defer r.host.mu.RUnlock()
	p, ok := r.values[valueKey{id, lang}]
	if !ok {
		// Rows carry one language; cells are readable under any.
		p = r.values[valueKey{id, r.lang}]
	}
	return copyParts(p), nil
}

// CurrentLanguage implements record.Accessor.
func (r *Row) CurrentLanguage() record.LanguageID { return r.lang }

// Field implements record.Accessor. Columns unknown to the schema are plain.
func (r *Row) Field(id string) (record.Field, error) {
	r.host.mu.RLock()
	def, err := r.host.fieldLocked(id)
	r.host.mu.RUnlock()
	if err != nil {
		def = FieldDef{ID: id, Type: record.TypePlain}
	}
	return &field{def: def, owner: r}, nil
}

// Value implements record.Accessor.
func (r *Row) Value(id string, lang record.LanguageID) (string, error) {
	p, err := r.Parts(id, lang)
	if err != nil {
		return "", err
	}
	return p[record.PartUnformatted], nil
}

// FormattedValue implements record.Accessor.
func (r *Row) FormattedValue(id string, lang record.LanguageID) (string, error) {
	return r.Value(id, lang)
}

// SetValue implements record.Writer.
func (r *Row) SetValue(id string, lang record.LanguageID, value string) error {
	r.host.mu.Lock()
	defer r.host.mu.Unlock()
	r.touch(id)
	setPart(r.values, valueKey{id, lang}, record.PartUnformatted, value)
	return nil
}

// SetSlot implements record.Writer.
func (r *Row) SetSlot(id string, lang record.LanguageID, slot int, value string) error {
	key, err := slotKey(slot)
	if err != nil {
		return err
	}
	r.host.mu.Lock()
	defer r.host.mu.Unlock()
	r.touch(id)
	setPart(r.values, valueKey{id, lang}, key, value)
	return nil
}

// Clear implements record.Writer.
func (r *Row) Clear(id string, lang record.LanguageID) error {
	r.host.mu.Lock()
	defer r.host.mu.Unlock()
	delete(r.values, valueKey{id, lang})
	return nil
}

// SetReferences implements record.Writer.
func (r *Row) SetReferences(id string, lang record.LanguageID, ids []string) error {
	return r.SetValue(id, lang, strings.Join(ids, ","))
}

// SetClassifications implements record.Writer. Rows have no classes.
func (r *Row) SetClassifications([]string) error {
	return fmt.Errorf("row %s: classifications are not supported", r.id)
}

// Store implements record.Row.
func (r *Row) Store() error {
	r.host.mu.Lock()
	defer r.host.mu.Unlock()
	r.stores++
	return nil
}

func (r *Row) touch(id string) {
	if !slices.Contains(r.columns, id) {
		r.columns = append(r.columns, id)
	}
}

// AppendRow adds a row with the given cell values to the table of fieldID.
// The row is kept when a cell fails to write.
func (o *Object) AppendRow(fieldID string, lang record.LanguageID, cells map[string]string) (*Row, error) {
	r := o.table(fieldID, lang).addRow(lang)
	for _, id := range sortedKeys(cells) {
		if err := r.SetValue(id, lang, cells[id]); err != nil {
			return r, fmt.Errorf("append row to %q: %w", fieldID, err)
		}
	}
	return r, nil
}

// TableRows returns the rows of the table of fieldID.
func (o *Object) TableRows(fieldID string, lang record.LanguageID) []*Row {
	t := o.table(fieldID, lang)
	t.host.mu.RLock()
	defer t.host.mu.RUnlock()
	return append([]*Row(nil), t.rows...)
}

package langcopy

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/randalmurphal/attrflow/pkg/attrflow/dispatch"
	"github.com/randalmurphal/attrflow/pkg/attrflow/record"
)

// Copier copies attributes between languages for one operation.
type Copier struct {
	cache      *Cache
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

// Option configures a Copier.
type Option func(*Copier)

// WithCache sets the cache. Default: a new empty Cache.
func WithCache(c *Cache) Option {
	return func(cp *Copier) {
		if c != nil {
			cp.cache = c
		}
	}
}

// WithDispatcher sets the dispatcher used to write copied values.
func WithDispatcher(d *dispatch.Dispatcher) Option {
	return func(cp *Copier) {
		if d != nil {
			cp.dispatcher = d
		}
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(cp *Copier) {
		cp.logger = logger
	}
}

// New creates a Copier with the given options.
func New(opts ...Option) *Copier {
	cp := &Copier{}
	for _, opt := range opts {
		opt(cp)
	}
	if cp.cache == nil {
		cp.cache = NewCache()
	}
	if cp.dispatcher == nil {
		cp.dispatcher = dispatch.New()
	}
	return cp
}

// Cache returns the cache of the copier.
func (cp *Copier) Cache() *Cache {
	return cp.cache
}

// Copy copies the attributes fieldIDs of obj from language from to
// language to and returns the number of attributes written. Attributes
// unknown to obj are skipped. Duplicate ids are copied once.
func (cp *Copier) Copy(ctx context.Context, obj record.Object, fieldIDs []string, from, to record.LanguageID) (int, error) {
	if from == to {
		return 0, nil
	}

	written := 0
	seen := make(map[string]bool, len(fieldIDs))
	for _, id := range fieldIDs {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if seen[id] {
			continue
		}
		seen[id] = true

		f, err := obj.Field(id)
		if record.IsNotFound(err) {
			cp.debug("copy skipped unknown attribute", slog.String("attribute", id))
			continue
		}
		if err != nil {
			return written, fmt.Errorf("copy %s: %w", id, err)
		}

		switch f.Type() {
		case record.TypeTable:
			err = cp.copyTable(obj, id, from, to)
		case record.TypeReference, record.TypeFile:
			err = cp.copyReferences(obj, id, from, to)
		case record.TypePlain, record.TypeStringFunction, record.TypeValueRange:
			err = cp.copyParts(obj, id, from, to)
		}
		if err != nil {
			return written, fmt.Errorf("copy %s from %d to %d: %w", id, from, to, err)
		}
		written++
	}
	return written, nil
}

func (cp *Copier) copyParts(obj record.Object, id string, from, to record.LanguageID) error {
	parts, err := obj.Parts(id, from)
	if err != nil {
		return err
	}
	cp.debug("copy attribute", slog.String("attribute", id), slog.Int("to", int(to)))
	return cp.dispatcher.Apply(obj, id, parts, to)
}

func (cp *Copier) copyReferences(obj record.Object, id string, from, to record.LanguageID) error {
	parts, err := obj.Parts(id, from)
	if err != nil {
		return err
	}
	ids := record.SplitIDs(parts[record.PartUnformatted])
	if len(ids) == 0 {
		return obj.Clear(id, to)
	}
	return obj.SetReferences(id, to, ids)
}

func (cp *Copier) copyTable(obj record.Object, fieldID string, from, to record.LanguageID) error {
	masterKey := Key{RecordID: obj.ID(), FieldID: fieldID, Language: from}
	targetKey := Key{RecordID: obj.ID(), FieldID: fieldID, Language: to}

	// Source rows are read before anything is written to the target.
	_, masterRows, err := cp.cache.Table(obj, masterKey)
	if err != nil {
		return err
	}
	target, _, err := cp.cache.Table(obj, targetKey)
	if err != nil {
		return err
	}

	if cp.cache.MarkCleared(targetKey) {
		if ids := target.RowIDs(); len(ids) > 0 {
			if err := target.DeleteRows(ids); err != nil {
				return fmt.Errorf("delete rows of %s: %w", targetKey, err)
			}
		}
	}

	for _, master := range masterRows {
		row, err := target.AddRow(to)
		if err != nil {
			return fmt.Errorf("add row to %s: %w", targetKey, err)
		}
		for _, col := range slices.Sorted(slices.Values(master.FieldIDs())) {
			parts, err := master.Parts(col, from)
			if err != nil {
				return fmt.Errorf("read cell %s: %w", col, err)
			}
			if len(parts) == 0 {
				continue
			}
			if err := cp.dispatcher.Apply(row, col, parts, to); err != nil {
				return err
			}
		}
		if err := row.Store(); err != nil {
			return fmt.Errorf("store row of %s: %w", targetKey, err)
		}
	}
	cp.debug("copy table", slog.String("table", targetKey.String()), slog.Int("rows", len(masterRows)))
	return nil
}

func (cp *Copier) debug(msg string, attrs ...any) {
	if cp.logger == nil {
		return
	}
	cp.logger.Debug(msg, attrs...)
}

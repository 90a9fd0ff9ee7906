package action

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/randalmurphal/attrflow/pkg/attrflow/config"
)

// ErrUnknownAction is returned by Catalog.Get for an unregistered name.
var ErrUnknownAction = errors.New("unknown action")

// Catalog holds actions by name. It is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	actions map[string]Action
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{actions: make(map[string]Action)}
}

// Register adds or replaces act under its ID.
func (c *Catalog) Register(act Action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.actions[act.ID] = act
}

// Get returns the action registered under name.
func (c *Catalog) Get(name string) (Action, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	act, ok := c.actions[name]
	if !ok {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return act, nil
}

// Names returns the registered names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.actions))
	for name := range c.actions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered actions.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.actions)
}

// LoadDir registers every .yaml, .yml and .json action file in dir.
// An action without ActionName is registered under its file name
// without extension.
//
// Files that fail to decode are skipped; decoding problems of the
// files that load are reported too. All of them are joined in the
// returned error.
func (c *Catalog) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read action dir: %w", err)
	}

	var errs []error
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".yaml" && ext != ".yml" && ext != ".json" {
			continue
		}

		path := filepath.Join(dir, e.Name())
		cfg, err := config.FromFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
			continue
		}
		act, err := FromConfig(cfg)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
		}
		if act.ID == "" {
			act.ID = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		}
		c.Register(act)
	}
	return errors.Join(errs...)
}

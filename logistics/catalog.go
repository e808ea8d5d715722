/*
catalog.go - The aggregate owning all stores and delivery schedules

LIFECYCLE:
  The catalog follows an explicit init/freeze discipline: it is populated
  through the builder methods during an exclusive startup phase, then frozen.
  After Freeze every mutation returns ErrCatalogFrozen, and the read-only
  accessors are safe for concurrent request serving without coordination.

SEE ALSO:
  - planner.go: the only consumer during request serving
  - store/sqlite: persists and restores catalog snapshots at startup
*/
package logistics

import (
	"sort"
	"sync"
)

// Catalog holds every Store and DeliverySchedule, keyed by store code.
// Process-wide, populated at startup, read-only once frozen.
type Catalog struct {
	mu        sync.RWMutex
	frozen    bool
	stores    map[string]*Store
	schedules map[string][]DeliverySchedule
}

func NewCatalog() *Catalog {
	return &Catalog{
		stores:    make(map[string]*Store),
		schedules: make(map[string][]DeliverySchedule),
	}
}

// AddStore registers a store. Re-adding a code replaces the previous store.
func (c *Catalog) AddStore(store *Store) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return ErrCatalogFrozen
	}
	c.stores[store.Code()] = store
	return nil
}

// AddSchedule registers a recurring delivery schedule for its store.
func (c *Catalog) AddSchedule(schedule DeliverySchedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return ErrCatalogFrozen
	}
	c.schedules[schedule.StoreCode] = append(c.schedules[schedule.StoreCode], schedule)
	return nil
}

// Freeze ends the setup phase. Idempotent.
func (c *Catalog) Freeze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frozen = true
}

// Frozen reports whether the setup phase has ended.
func (c *Catalog) Frozen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frozen
}

// Store looks up a store by code.
func (c *Catalog) Store(code string) (*Store, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	store, ok := c.stores[code]
	return store, ok
}

// Stores returns all stores ordered by code.
func (c *Catalog) Stores() []*Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Store, 0, len(c.stores))
	for _, store := range c.stores {
		out = append(out, store)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code() < out[j].Code() })
	return out
}

// Schedules returns a copy of the store's delivery schedules. Empty when the
// store has none registered.
func (c *Catalog) Schedules(code string) []DeliverySchedule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	schedules := c.schedules[code]
	out := make([]DeliverySchedule, len(schedules))
	copy(out, schedules)
	return out
}

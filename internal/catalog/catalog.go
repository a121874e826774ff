package catalog

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"FishSentinel/internal/model"
)

// SpotIndex receives the spot catalog after every successful reload.
type SpotIndex interface {
	Reload(spots []model.Spot)
}

// Snapshot describes the outcome of one reload.
type Snapshot struct {
	Source   string
	Fish     int
	Spots    int
	LoadedAt time.Time
}

// Catalog holds the current fish and spot lists.
type Catalog struct {
	loader Loader
	index  SpotIndex

	mu       sync.RWMutex
	fish     []model.Fish
	spots    []model.Spot
	loadedAt time.Time
}

// New creates an empty catalog. index may be nil.
func New(loader Loader, index SpotIndex) *Catalog {
	return &Catalog{loader: loader, index: index}
}

// Reload fetches both catalogs. A failed fish fetch keeps the previous
// data; a failed spot fetch keeps the previous spots.
func (c *Catalog) Reload() (Snapshot, error) {
	fish, err := c.loader.LoadFish()
	if err != nil {
		return Snapshot{Source: c.loader.Name()}, fmt.Errorf("load fish: %w", err)
	}
	if len(fish) == 0 {
		return Snapshot{Source: c.loader.Name()}, fmt.Errorf("load fish: empty catalog from %s", c.loader.Name())
	}

	spots, err := c.loader.LoadSpots()
	if err != nil {
		log.Printf("[WARN] load spots from %s: %v, keeping previous spots", c.loader.Name(), err)
		c.mu.RLock()
		spots = c.spots
		c.mu.RUnlock()
	}

	c.mu.Lock()
	c.fish = fish
	c.spots = spots
	c.loadedAt = time.Now()
	snap := Snapshot{Source: c.loader.Name(), Fish: len(fish), Spots: len(spots), LoadedAt: c.loadedAt}
	c.mu.Unlock()

	if c.index != nil {
		c.index.Reload(spots)
	}
	return snap, nil
}

// Fish returns the current fish list. The slice must not be modified.
func (c *Catalog) Fish() []model.Fish {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fish
}

// Spots returns the current spot list. The slice must not be modified.
func (c *Catalog) Spots() []model.Spot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.spots
}

// LoadedAt returns the time of the last successful reload.
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// Find looks a fish up by id or exact name, then by the first name
// containing the query.
func (c *Catalog) Find(query string) (model.Fish, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return model.Fish{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.fish {
		if f.Name == q || (f.ID != "" && f.ID == q) {
			return f, true
		}
	}
	for _, f := range c.fish {
		if strings.Contains(f.Name, q) {
			return f, true
		}
	}
	return model.Fish{}, false
}

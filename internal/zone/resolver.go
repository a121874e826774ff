package zone

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"FishSentinel/internal/model"

	"github.com/agnivade/levenshtein"
)

// prefixRunes is how many leading runes of a map name the last fuzzy tier
// looks for inside a spot's map name.
const prefixRunes = 3

// Checker reports whether a zone key has a weather table.
type Checker interface {
	HasZone(zone string) bool
}

// Zone is a named weather region.
type Zone struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type cacheEntry struct {
	zone string
	ok   bool
}

// Resolver maps fish names to weather zone keys.
//
// Results are cached per fish name. The cache is dropped whenever the spot
// catalog is replaced through Reload; nothing else invalidates it.
type Resolver struct {
	known     Checker
	mapNames  map[string]string
	overrides map[string]string
	names     []string // map names, longest first

	mu    sync.Mutex
	spots []model.Spot
	cache map[string]cacheEntry
}

// NewResolver creates a resolver over the given map-name and override tables.
func NewResolver(known Checker, mapNames, overrides map[string]string) *Resolver {
	names := make([]string, 0, len(mapNames))
	for n := range mapNames {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(names[i]), utf8.RuneCountInString(names[j])
		if li != lj {
			return li > lj
		}
		return names[i] < names[j]
	})
	return &Resolver{
		known:     known,
		mapNames:  mapNames,
		overrides: overrides,
		names:     names,
		cache:     make(map[string]cacheEntry),
	}
}

// Reload replaces the spot catalog and clears every cached resolution.
func (r *Resolver) Reload(spots []model.Spot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spots = spots
	r.cache = make(map[string]cacheEntry)
}

// Cached returns the number of memoized fish names.
func (r *Resolver) Cached() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

// Resolve returns the weather zone for a fish. ok is false when no zone can
// be determined, which callers treat as "evaluate the time window only".
func (r *Resolver) Resolve(fishName string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, hit := r.cache[fishName]; hit {
		return e.zone, e.ok
	}
	zone, ok := r.resolve(fishName)
	r.cache[fishName] = cacheEntry{zone: zone, ok: ok}
	return zone, ok
}

// Zones lists the map names that resolve to a known zone, one per key.
func (r *Resolver) Zones() []Zone {
	seen := make(map[string]bool)
	var out []Zone
	for _, n := range r.names {
		key := r.mapNames[n]
		if seen[key] || !r.known.HasZone(key) {
			continue
		}
		seen[key] = true
		out = append(out, Zone{Key: key, Name: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Lookup resolves a zone key or map name typed by a user.
func (r *Resolver) Lookup(query string) (string, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", false
	}
	if r.known.HasZone(q) {
		return q, true
	}
	return r.match(q)
}

func (r *Resolver) resolve(fishName string) (string, bool) {
	if z, ok := r.overrides[fishName]; ok {
		return z, true
	}

	var spots []model.Spot
	for i := range r.spots {
		if r.spots[i].Has(fishName) {
			spots = append(spots, r.spots[i])
		}
	}
	if len(spots) == 0 {
		return "", false
	}

	for _, s := range spots {
		for _, name := range []string{s.Level2, s.Level1} {
			if z, ok := r.mapNames[name]; ok && r.known.HasZone(z) {
				return z, true
			}
		}
	}
	for _, s := range spots {
		for _, name := range []string{s.Level2, s.Level1} {
			if z, ok := r.match(name); ok {
				return z, true
			}
		}
	}
	return "", false
}

// match tolerates naming drift between catalogs: containment first, then
// the closest name by edit distance, then a shared leading prefix.
func (r *Resolver) match(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if z, ok := r.mapNames[name]; ok && r.known.HasZone(z) {
		return z, true
	}

	for _, n := range r.names {
		if strings.Contains(name, n) && r.known.HasZone(r.mapNames[n]) {
			return r.mapNames[n], true
		}
	}

	best, bestDist := "", -1
	for _, n := range r.names {
		if !r.known.HasZone(r.mapNames[n]) {
			continue
		}
		dist := levenshtein.ComputeDistance(name, n)
		if dist > distanceLimit(utf8.RuneCountInString(n)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = n, dist
		}
	}
	if bestDist >= 0 {
		return r.mapNames[best], true
	}

	for _, n := range r.names {
		p := prefix(n, prefixRunes)
		if utf8.RuneCountInString(p) < prefixRunes {
			continue
		}
		if strings.Contains(name, p) && r.known.HasZone(r.mapNames[n]) {
			return r.mapNames[n], true
		}
	}
	return "", false
}

func distanceLimit(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}

func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

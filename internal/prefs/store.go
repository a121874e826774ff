package prefs

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"FishSentinel/internal/model"
)

var (
	ErrLootFull      = fmt.Errorf("loot slots full (%d)", model.LootCapacity)
	ErrLootDuplicate = errors.New("fish already in loot slots")
)

// Store holds user preferences with concurrency safety. Every mutation is
// written through to the state file; a failed write leaves the previous
// preferences in place.
type Store struct {
	mu       sync.Mutex
	state    *model.Prefs
	filePath string
}

// NewStore creates a Store, loading state from disk when present.
func NewStore(filePath string) (*Store, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, fmt.Errorf("load prefs: %w", err)
	}
	if len(state.Loot) > model.LootCapacity {
		log.Printf("[WARN] prefs file has %d loot slots, truncating to %d", len(state.Loot), model.LootCapacity)
		state.Loot = state.Loot[:model.LootCapacity]
	}
	return &Store{state: state, filePath: filePath}, nil
}

func (s *Store) IsCompleted(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.state.Completed, key)
}

func (s *Store) IsPinned(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.state.Pinned, key)
}

// Pinned returns the pinned fish keys in pin order.
func (s *Store) Pinned() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Pinned)
}

// ToggleCompleted flips the completed mark and returns the new value.
func (s *Store) ToggleCompleted(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var on bool
	err := s.update(func(p *model.Prefs) { p.Completed, on = toggle(p.Completed, key) })
	return on, err
}

// TogglePinned flips the pinned mark and returns the new value.
func (s *Store) TogglePinned(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var on bool
	err := s.update(func(p *model.Prefs) { p.Pinned, on = toggle(p.Pinned, key) })
	return on, err
}

// Loot returns the filled loot slots in order.
func (s *Store) Loot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.Loot)
}

// AddLoot appends a fish to the next free loot slot.
func (s *Store) AddLoot(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.state.Loot, name) {
		return ErrLootDuplicate
	}
	if len(s.state.Loot) >= model.LootCapacity {
		return ErrLootFull
	}
	return s.update(func(p *model.Prefs) { p.Loot = append(p.Loot, name) })
}

// RemoveLoot clears a fish from the loot slots, closing the gap. It reports
// whether the fish was present.
func (s *Store) RemoveLoot(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.Index(s.state.Loot, name)
	if i < 0 {
		return false, nil
	}
	return true, s.update(func(p *model.Prefs) { p.Loot = slices.Delete(p.Loot, i, i+1) })
}

// update applies change and saves it. Callers hold s.mu.
func (s *Store) update(change func(p *model.Prefs)) error {
	prev := s.snapshot()
	change(s.state)
	if err := SaveState(s.filePath, s.state); err != nil {
		*s.state = prev
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}

func (s *Store) snapshot() model.Prefs {
	return model.Prefs{
		Completed: slices.Clone(s.state.Completed),
		Pinned:    slices.Clone(s.state.Pinned),
		Loot:      slices.Clone(s.state.Loot),
		UpdatedAt: s.state.UpdatedAt,
	}
}

func toggle(list []string, key string) ([]string, bool) {
	if i := slices.Index(list, key); i >= 0 {
		return slices.Delete(list, i, i+1), false
	}
	return append(list, key), true
}

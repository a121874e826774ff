package model

import "time"

// LootCapacity is the number of loot slots a user can fill.
const LootCapacity = 14

// Prefs is the persisted per-user state: completed and pinned fish keys and
// the ordered loot slots.
type Prefs struct {
	Completed []string  `json:"completed"`
	Pinned    []string  `json:"pinned"`
	Loot      []string  `json:"loot"`
	UpdatedAt time.Time `json:"updated_at"`
}

package recorder

import (
	"time"

	"FishSentinel/internal/model"
)

// TransitionEvent records a pinned fish changing availability state.
type TransitionEvent struct {
	Fish       string        `json:"fish"`
	Zone       string        `json:"zone,omitempty"`
	From       model.State   `json:"from"`
	To         model.State   `json:"to"`
	Remaining  time.Duration `json:"remaining"`   // zero when unbounded
	EorzeaTime string        `json:"eorzea_time"` // "HH:MM" at the moment of the change
}

// TransitionRecord is a stored TransitionEvent.
type TransitionRecord struct {
	TransitionEvent
	Timestamp time.Time `json:"timestamp"`
}

// ReloadEvent records one catalog reload attempt.
type ReloadEvent struct {
	Source string
	Fish   int
	Spots  int
	Err    string // empty on success
}

// Recorder persists availability history for later analysis.
type Recorder interface {
	RecordTransition(evt *TransitionEvent) error
	RecordReload(evt *ReloadEvent) error
	RecentTransitions(limit int) ([]TransitionRecord, error)
	Close() error
}

package availability

import (
	"time"

	"FishSentinel/internal/eorzea"
	"FishSentinel/internal/model"
)

// Options bounds the forward searches. The defaults are empirical guards
// against unbounded loops; widen them if longer dry spells turn up.
type Options struct {
	// MergeLimit caps how many following intervals are merged into an
	// active weather run.
	MergeLimit int
	// WeatherSearchDays caps the search for a weather-only window.
	WeatherSearchDays int
	// CombinedSearchDays caps the search for a time+weather overlap.
	CombinedSearchDays int
}

// DefaultOptions returns the default search bounds.
func DefaultOptions() Options {
	return Options{MergeLimit: 10, WeatherSearchDays: 7, CombinedSearchDays: 7}
}

// ZoneResolver maps a fish name to a weather zone key.
type ZoneResolver interface {
	Resolve(fishName string) (string, bool)
}

// Engine computes availability countdowns. It holds no mutable state of its
// own; the only shared state is the resolver's cache.
type Engine struct {
	oracle *eorzea.Oracle
	zones  ZoneResolver
	opts   Options
}

// NewEngine creates an engine. Non-positive option fields fall back to the
// defaults.
func NewEngine(oracle *eorzea.Oracle, zones ZoneResolver, opts Options) *Engine {
	def := DefaultOptions()
	if opts.MergeLimit <= 0 {
		opts.MergeLimit = def.MergeLimit
	}
	if opts.WeatherSearchDays <= 0 {
		opts.WeatherSearchDays = def.WeatherSearchDays
	}
	if opts.CombinedSearchDays <= 0 {
		opts.CombinedSearchDays = def.CombinedSearchDays
	}
	return &Engine{oracle: oracle, zones: zones, opts: opts}
}

// Oracle returns the weather oracle the engine evaluates against.
func (e *Engine) Oracle() *eorzea.Oracle {
	return e.oracle
}

// Evaluate computes the countdown for a fish at now.
func (e *Engine) Evaluate(f model.Fish, now time.Time) model.Countdown {
	return e.EvaluateAt(f, now.UnixMilli())
}

// EvaluateAt computes the countdown for a fish at a real Unix millisecond.
//
// A fish without a weather requirement, or whose zone cannot be resolved,
// is judged on its time window alone.
func (e *Engine) EvaluateAt(f model.Fish, realMs int64) model.Countdown {
	label := f.TimeLabel()
	requirement := f.WeatherLabel()
	if requirement == "" {
		return e.TimeWindow(label, realMs)
	}

	zone, ok := e.zones.Resolve(f.Name)
	if !ok {
		return e.TimeWindow(label, realMs)
	}

	var c model.Countdown
	if model.IsAllDayLabel(label) {
		c = e.Weather(zone, requirement, realMs)
	} else {
		c = e.Combined(zone, requirement, label, realMs)
	}
	c.Zone = zone
	return c
}

package availability

import (
	"strings"

	"FishSentinel/internal/eorzea"
	"FishSentinel/internal/model"
)

// eorzeaInterval is one weather interval in Eorzea milliseconds.
const eorzeaInterval = eorzea.IntervalBells * eorzea.HourMs

// Requirement is the parsed set of accepted weather keys.
type Requirement struct {
	keys map[string]bool
	// Named is true when the label listed at least one weather name,
	// recognized or not.
	Named bool
}

// ParseRequirement splits "碧空;晴朗" or "碧空|晴朗" into weather keys.
// Names missing from the table are dropped.
func ParseRequirement(label string, names eorzea.Names) Requirement {
	req := Requirement{keys: make(map[string]bool)}
	parts := strings.FieldsFunc(label, func(r rune) bool { return r == ';' || r == '|' || r == '；' })
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == model.NoneLabel {
			continue
		}
		req.Named = true
		if key, ok := names.Key(p); ok {
			req.keys[key] = true
		}
	}
	return req
}

// Accepts reports whether a weather key satisfies the requirement.
func (r Requirement) Accepts(weather string) bool {
	return r.keys[weather]
}

// Empty reports whether no recognized weather is accepted.
func (r Requirement) Empty() bool {
	return len(r.keys) == 0
}

// Keys returns the number of accepted weather keys.
func (r Requirement) Keys() int {
	return len(r.keys)
}

func (e *Engine) qualifies(zone string, req Requirement, realMs int64) bool {
	w, ok := e.oracle.WeatherAt(zone, realMs)
	return ok && req.Accepts(w)
}

// runEnd returns the real end of the qualifying run that starts with the
// interval at start, merging at most MergeLimit following intervals.
func (e *Engine) runEnd(zone string, req Requirement, start int64) int64 {
	end := start + eorzea.RealIntervalMs
	for i := 0; i < e.opts.MergeLimit; i++ {
		if !e.qualifies(zone, req, end) {
			break
		}
		end += eorzea.RealIntervalMs
	}
	return end
}

// Weather evaluates a weather-only requirement in zone.
func (e *Engine) Weather(zone, label string, realMs int64) model.Countdown {
	if !e.oracle.HasZone(zone) {
		return unknown()
	}
	req := ParseRequirement(label, e.oracle.Names())
	if !req.Named {
		return allDay()
	}
	if req.Empty() {
		return noUpcoming()
	}

	cur := eorzea.IntervalStart(realMs)
	if e.qualifies(zone, req, cur) {
		end := e.runEnd(zone, req, cur)
		return active(end-realMs, percent(realMs-cur, eorzea.RealIntervalMs))
	}

	steps := e.opts.WeatherSearchDays * 24 / eorzea.IntervalBells
	for k := 1; k <= steps; k++ {
		t := cur + int64(k)*eorzea.RealIntervalMs
		if e.qualifies(zone, req, t) {
			return pending(t - realMs)
		}
	}
	return noUpcoming()
}

// Combined evaluates a fish that needs both its time window and its weather.
// It walks weather runs forward from the current interval and intersects
// each run with the next occurrence of the window.
func (e *Engine) Combined(zone, weather, label string, realMs int64) model.Countdown {
	if !e.oracle.HasZone(zone) {
		return e.TimeWindow(label, realMs)
	}
	w, ok := ParseWindow(label)
	if !ok {
		return unknown()
	}
	req := ParseRequirement(weather, e.oracle.Names())
	if !req.Named {
		return e.TimeWindow(label, realMs)
	}
	if req.Empty() {
		return noUpcoming()
	}

	now := eorzea.ToEorzeaMs(realMs)
	basis := w.Span()
	if basis > eorzeaInterval {
		basis = eorzeaInterval
	}

	cursor := eorzea.IntervalStart(realMs)
	limit := cursor + int64(e.opts.CombinedSearchDays)*eorzea.RealDayMs
	for cursor < limit {
		if !e.qualifies(zone, req, cursor) {
			cursor += eorzea.RealIntervalMs
			continue
		}
		end := e.runEnd(zone, req, cursor)
		runStart, runEnd := eorzea.ToEorzeaMs(cursor), eorzea.ToEorzeaMs(end)

		// Later occurrences of the window start later still, so only the
		// first one ending inside the run can overlap it.
		t := max(runStart, now)
		s, wEnd := w.Occurrence(t)
		from, to := max(s, t), min(wEnd, runEnd)
		if from < to {
			if from <= now {
				left := to - now
				return active(eorzea.ToRealMs(to)-realMs, percent(basis-min(left, basis), basis))
			}
			return pending(eorzea.ToRealMs(from) - realMs)
		}
		cursor = end
	}
	return noUpcoming()
}

package availability

import (
	"regexp"
	"strconv"
	"strings"

	"FishSentinel/internal/eorzea"
	"FishSentinel/internal/model"
)

var (
	etPrefix   = regexp.MustCompile(`(?i)^ET\s*`)
	rangeLabel = regexp.MustCompile(`^(\d{1,2}):(\d{1,2})(?:\s*[-–—~]\s*(\d{1,2}):(\d{1,2}))?$`)
)

// Window is a daily Eorzea time window in minutes of day. End is greater
// than Start; a window crossing midnight has End past 1440.
type Window struct {
	Start int
	End   int
}

// ParseWindow parses "ET H:MM-H:MM" (prefix and end optional). A missing
// end means the window runs until midnight.
func ParseWindow(label string) (Window, bool) {
	s := strings.TrimSpace(label)
	s = strings.ReplaceAll(s, "：", ":")
	s = etPrefix.ReplaceAllString(s, "")
	m := rangeLabel.FindStringSubmatch(s)
	if m == nil {
		return Window{}, false
	}

	start := clockMinutes(m[1], m[2])
	end := eorzea.MinutesPerDay
	if m[3] != "" {
		end = clockMinutes(m[3], m[4])
	}
	if end <= start {
		end += eorzea.MinutesPerDay
	}
	return Window{Start: start, End: end}, true
}

func clockMinutes(h, m string) int {
	hour, _ := strconv.Atoi(h)
	minute, _ := strconv.Atoi(m)
	return clamp(hour, 0, 23)*60 + clamp(minute, 0, 59)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Span returns the window length in Eorzea milliseconds.
func (w Window) Span() int64 {
	return int64(w.End-w.Start) * eorzea.MinuteMs
}

// Occurrence returns the first occurrence [start, end) of the window, in
// absolute Eorzea milliseconds, that ends after t.
func (w Window) Occurrence(t int64) (int64, int64) {
	day := t - mod(t, eorzea.DayMs) - eorzea.DayMs
	for {
		s := day + int64(w.Start)*eorzea.MinuteMs
		e := day + int64(w.End)*eorzea.MinuteMs
		if e > t {
			return s, e
		}
		day += eorzea.DayMs
	}
}

func mod(a, b int64) int64 {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// TimeWindow evaluates a fish that only carries a time requirement.
func (e *Engine) TimeWindow(label string, realMs int64) model.Countdown {
	if model.IsAllDayLabel(label) {
		return allDay()
	}
	w, ok := ParseWindow(label)
	if !ok {
		return unknown()
	}

	now := eorzea.ToEorzeaMs(realMs)
	s, end := w.Occurrence(now)
	if s <= now {
		progress := percent(now-s, w.Span())
		return active(eorzea.ToRealMs(end)-realMs, progress)
	}
	return pending(eorzea.ToRealMs(s) - realMs)
}

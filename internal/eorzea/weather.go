package eorzea

import (
	"sort"
	"time"
)

// IntervalBells is the number of bells a weather roll stays in effect.
const IntervalBells = 8

// RealIntervalMs is the real-time length of one weather interval.
const RealIntervalMs = IntervalBells * RealHourMs

// Rate is one bucket of a zone's weather distribution.
type Rate struct {
	Weather string `yaml:"weather"`
	Chance  int    `yaml:"chance"`
}

// Table maps a zone key to its ordered weather distribution.
type Table map[string][]Rate

// Value returns the weather roll in [0,100) for the interval containing realMs.
func Value(realMs int64) int {
	em := ToEorzeaMs(realMs)
	bell := floorMod(floorDiv(em, HourMs), 24)
	increment := (bell + IntervalBells - bell%IntervalBells) % 24
	days := floorDiv(em, DayMs)

	base := uint32(days*100 + increment)
	step1 := (base << 11) ^ base
	step2 := (step1 >> 8) ^ step1
	return int(step2 % 100)
}

// IntervalStart aligns realMs down to the start of its 8-bell weather interval.
func IntervalStart(realMs int64) int64 {
	return floorDiv(realMs, RealIntervalMs) * RealIntervalMs
}

// Forecast is the weather of one interval.
type Forecast struct {
	Start   time.Time
	Weather string
	Name    string
}

// Oracle answers weather questions against a fixed table.
type Oracle struct {
	table Table
	names Names
}

// NewOracle builds an oracle over the given zone table and weather names.
func NewOracle(table Table, names Names) *Oracle {
	return &Oracle{table: table, names: names}
}

// Default returns an oracle over the built-in tables.
func Default() *Oracle {
	return NewOracle(DefaultTable(), DefaultNames())
}

// HasZone reports whether zone has a weather distribution.
func (o *Oracle) HasZone(zone string) bool {
	_, ok := o.table[zone]
	return ok
}

// Zones lists the known zone keys in sorted order.
func (o *Oracle) Zones() []string {
	keys := make([]string, 0, len(o.table))
	for k := range o.table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Names returns the weather-name table used by this oracle.
func (o *Oracle) Names() Names {
	return o.names
}

// Pick selects the weather key for a roll from the zone's distribution.
// The last bucket absorbs rolls past a table that sums to less than 100.
func (o *Oracle) Pick(zone string, value int) (string, bool) {
	rates, ok := o.table[zone]
	if !ok || len(rates) == 0 {
		return "", false
	}
	cursor := 0
	for _, r := range rates {
		cursor += r.Chance
		if value < cursor {
			return r.Weather, true
		}
	}
	return rates[len(rates)-1].Weather, true
}

// WeatherAt returns the weather key of zone at realMs.
func (o *Oracle) WeatherAt(zone string, realMs int64) (string, bool) {
	return o.Pick(zone, Value(realMs))
}

// Forecast lists the weather of n consecutive intervals starting with the
// one containing realMs.
func (o *Oracle) Forecast(zone string, realMs int64, n int) []Forecast {
	if !o.HasZone(zone) || n <= 0 {
		return nil
	}
	out := make([]Forecast, 0, n)
	start := IntervalStart(realMs)
	for i := 0; i < n; i++ {
		t := start + int64(i)*RealIntervalMs
		w, _ := o.WeatherAt(zone, t)
		out = append(out, Forecast{
			Start:   time.UnixMilli(t),
			Weather: w,
			Name:    o.names.Display(w),
		})
	}
	return out
}

package eorzea

import (
	"fmt"
	"time"
)

// Eorzea time runs 3600/175 times faster than real time: one real
// millisecond is 144/7 (20.571428571428573) Eorzea milliseconds. Every
// conversion in this package goes through that single ratio in integer
// arithmetic, so bells derived here always agree with weather intervals.
const (
	ratioNum int64 = 144
	ratioDen int64 = 7

	MinuteMs int64 = 60_000
	HourMs         = 60 * MinuteMs
	DayMs          = 24 * HourMs
	MinutesPerDay  = 24 * 60

	// Real-time lengths of the same units.
	RealHourMs int64 = 175_000
	RealDayMs        = 24 * RealHourMs
)

// Timestamp is the Eorzea clock reading for one real-world instant.
type Timestamp struct {
	Bell   int // 0..23
	Minute int // 0..59
	// MsIntoMinute and MsIntoDay are real milliseconds elapsed since the
	// current Eorzea minute and Eorzea day began.
	MsIntoMinute int64
	MsIntoDay    int64
	// EorzeaMs is the absolute Eorzea millisecond count since the epoch.
	EorzeaMs int64
}

// Now reads the Eorzea clock at t.
func Now(t time.Time) Timestamp {
	return At(t.UnixMilli())
}

// At reads the Eorzea clock at a real Unix millisecond timestamp.
func At(realMs int64) Timestamp {
	em := ToEorzeaMs(realMs)
	inDay := floorMod(em, DayMs)
	minuteOfDay := inDay / MinuteMs

	realInDay := floorMod(realMs, RealDayMs)
	minuteStart := ToRealMs(minuteOfDay * MinuteMs)

	return Timestamp{
		Bell:         int(inDay / HourMs),
		Minute:       int((inDay % HourMs) / MinuteMs),
		MsIntoMinute: realInDay - minuteStart,
		MsIntoDay:    realInDay,
		EorzeaMs:     em,
	}
}

// MinuteOfDay returns bell*60 + minute.
func (ts Timestamp) MinuteOfDay() int {
	return ts.Bell*60 + ts.Minute
}

// Day returns the number of whole Eorzea days since the epoch.
func (ts Timestamp) Day() int64 {
	return floorDiv(ts.EorzeaMs, DayMs)
}

func (ts Timestamp) String() string {
	return fmt.Sprintf("%02d:%02d", ts.Bell, ts.Minute)
}

// ToEorzeaMs scales a real millisecond value into Eorzea milliseconds.
func ToEorzeaMs(realMs int64) int64 {
	return floorDiv(realMs*ratioNum, ratioDen)
}

// ToRealMs converts an Eorzea millisecond value back to real milliseconds,
// rounding up so a converted boundary never lands before the Eorzea instant.
func ToRealMs(eorzeaMs int64) int64 {
	return -floorDiv(-eorzeaMs*ratioDen, ratioNum)
}

// RealMsAt returns the real Unix millisecond at which Eorzea day `day`
// reaches bell:minute.
func RealMsAt(day int64, bell, minute int) int64 {
	return ToRealMs(day*DayMs + int64(bell)*HourMs + int64(minute)*MinuteMs)
}

// FormatDuration renders a real-time duration as Eorzea HH:MM.
func FormatDuration(realMs int64) string {
	if realMs < 0 {
		realMs = 0
	}
	total := ToEorzeaMs(realMs) / MinuteMs
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

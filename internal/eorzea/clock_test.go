package eorzea

import (
	"testing"
	"time"
)

func TestAt_KnownReadings(t *testing.T) {
	tests := []struct {
		realMs       int64
		bell, minute int
		msIntoMinute int64
	}{
		{0, 0, 0, 0},
		{175_000, 1, 0, 0},
		{2_916, 0, 0, 2_916},
		{2_917, 0, 1, 0},
		{1735689600000, 10, 17, 416}, // 2025-01-01 00:00:00 UTC
	}
	for _, tt := range tests {
		ts := At(tt.realMs)
		if ts.Bell != tt.bell || ts.Minute != tt.minute {
			t.Errorf("At(%d): expected %02d:%02d, got %s", tt.realMs, tt.bell, tt.minute, ts)
		}
		if ts.MsIntoMinute != tt.msIntoMinute {
			t.Errorf("At(%d): expected %dms into minute, got %d", tt.realMs, tt.msIntoMinute, ts.MsIntoMinute)
		}
	}
}

func TestAt_RangesHoldForAllInstants(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	for i := int64(0); i < 20000; i++ {
		ms := start + i*7_919
		ts := At(ms)
		if ts.Bell < 0 || ts.Bell > 23 {
			t.Fatalf("bell out of range at %d: %d", ms, ts.Bell)
		}
		if ts.Minute < 0 || ts.Minute > 59 {
			t.Fatalf("minute out of range at %d: %d", ms, ts.Minute)
		}
		if ts.MsIntoMinute < 0 || ts.MsIntoMinute > 2_917 {
			t.Fatalf("ms into minute out of range at %d: %d", ms, ts.MsIntoMinute)
		}
		// The minute start plus the offset gives back the day-relative real time.
		if got := ToRealMs(int64(ts.MinuteOfDay())*MinuteMs) + ts.MsIntoMinute; got != ts.MsIntoDay {
			t.Fatalf("day offset mismatch at %d: %d != %d", ms, got, ts.MsIntoDay)
		}
	}
}

func TestAt_BellMatchesFlatHourLength(t *testing.T) {
	start := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC).UnixMilli()
	for i := int64(0); i < 5000; i++ {
		ms := start + i*13_337
		flat := int((ms / RealHourMs) % 24)
		if got := At(ms).Bell; got != flat {
			t.Fatalf("bell at %d: scaled %d, flat %d", ms, got, flat)
		}
	}
}

func TestRealMsAt_RoundTrips(t *testing.T) {
	day := At(1735689600000).Day()
	for bell := 0; bell < 24; bell++ {
		for _, minute := range []int{0, 1, 29, 59} {
			ts := At(RealMsAt(day, bell, minute))
			if ts.Bell != bell || ts.Minute != minute {
				t.Fatalf("RealMsAt(%d, %d, %d) reads back as %s", day, bell, minute, ts)
			}
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		realMs int64
		want   string
	}{
		{0, "00:00"},
		{-5, "00:00"},
		{175_000, "01:00"},
		{1_000_000, "05:42"},
		{RealIntervalMs, "08:00"},
		{25 * RealHourMs, "25:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.realMs); got != tt.want {
			t.Errorf("FormatDuration(%d): expected %s, got %s", tt.realMs, tt.want, got)
		}
	}
}

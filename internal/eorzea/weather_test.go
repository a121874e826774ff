package eorzea

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValue_ReferenceVectors(t *testing.T) {
	tests := []struct {
		realMs int64
		want   int
	}{
		{0, 56},
		{1, 56},
		{1_400_000, 12},
		{1609459200000, 53},
		{1700000000000, 53},
		{1735689600000, 33},
		{1735690600000, 9},
		{1735692000000, 25},
	}
	for _, tt := range tests {
		if got := Value(tt.realMs); got != tt.want {
			t.Errorf("Value(%d): expected %d, got %d", tt.realMs, tt.want, got)
		}
		if again := Value(tt.realMs); again != Value(tt.realMs) {
			t.Errorf("Value(%d) not deterministic", tt.realMs)
		}
	}
}

func TestValue_ConstantWithinInterval(t *testing.T) {
	start := IntervalStart(1735689600000)
	want := Value(start)
	for off := int64(0); off < RealIntervalMs; off += 9_973 {
		if got := Value(start + off); got != want {
			t.Fatalf("value changed inside interval at +%d: %d != %d", off, got, want)
		}
	}
	if got := Value(start + RealIntervalMs - 1); got != want {
		t.Fatalf("value changed at last ms of interval: %d != %d", got, want)
	}
}

func TestIntervalStart(t *testing.T) {
	tests := []struct {
		realMs, want int64
	}{
		{0, 0},
		{1_399_999, 0},
		{1_400_000, 1_400_000},
		{1735689600000, 1735689200000},
		{-1, -1_400_000},
	}
	for _, tt := range tests {
		if got := IntervalStart(tt.realMs); got != tt.want {
			t.Errorf("IntervalStart(%d): expected %d, got %d", tt.realMs, tt.want, got)
		}
	}
}

func TestOracle_WeatherAt(t *testing.T) {
	o := Default()

	w, ok := o.WeatherAt("limsaLominsa", 1735689600000)
	if !ok || w != "clearSkies" {
		t.Fatalf("expected limsaLominsa clearSkies, got %q (ok=%v)", w, ok)
	}
	if name := o.Names().Display(w); name != "碧空" {
		t.Errorf("expected display name 碧空, got %s", name)
	}

	if _, ok := o.WeatherAt("nowhere", 1735689600000); ok {
		t.Error("expected unknown zone to report no weather")
	}
}

func TestOracle_PickLastBucketAbsorbsShortTables(t *testing.T) {
	o := NewOracle(Table{"short": {{"rain", 30}, {"fog", 30}}}, DefaultNames())
	if w, _ := o.Pick("short", 10); w != "rain" {
		t.Errorf("value 10: expected rain, got %s", w)
	}
	if w, _ := o.Pick("short", 59); w != "fog" {
		t.Errorf("value 59: expected fog, got %s", w)
	}
	if w, _ := o.Pick("short", 99); w != "fog" {
		t.Errorf("value 99: expected fog, got %s", w)
	}
}

func TestOracle_Forecast(t *testing.T) {
	o := Default()
	fc := o.Forecast("limsaLominsa", 1735689600000, 4)
	if len(fc) != 4 {
		t.Fatalf("expected 4 intervals, got %d", len(fc))
	}
	want := []string{"clearSkies", "clouds", "clearSkies", "fairSkies"}
	for i, f := range fc {
		if f.Weather != want[i] {
			t.Errorf("interval %d: expected %s, got %s", i, want[i], f.Weather)
		}
		if f.Start.UnixMilli() != 1735689200000+int64(i)*RealIntervalMs {
			t.Errorf("interval %d: unexpected start %d", i, f.Start.UnixMilli())
		}
	}
	if o.Forecast("nowhere", 0, 3) != nil {
		t.Error("expected nil forecast for unknown zone")
	}
}

func TestNames_KeyAcceptsDisplayAndKey(t *testing.T) {
	n := DefaultNames()
	if k, ok := n.Key("碧空"); !ok || k != "clearSkies" {
		t.Errorf("expected 碧空 -> clearSkies, got %q", k)
	}
	if k, ok := n.Key("fog"); !ok || k != "fog" {
		t.Errorf("expected fog -> fog, got %q", k)
	}
	if _, ok := n.Key("极光"); ok {
		t.Error("expected unknown display name to miss")
	}
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weather.yaml")
	content := `zones:
  testZone:
    - weather: fog
      chance: 60
    - weather: aurora
      chance: 40
names:
  aurora: 极光
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	table, names, err := LoadTable(path)
	if err != nil {
		t.Fatalf("load table: %v", err)
	}
	if len(table["testZone"]) != 2 {
		t.Fatalf("expected 2 rates, got %+v", table["testZone"])
	}
	if k, ok := names.Key("极光"); !ok || k != "aurora" {
		t.Errorf("expected custom name to resolve, got %q", k)
	}
	if k, ok := names.Key("薄雾"); !ok || k != "fog" {
		t.Errorf("expected built-in names to survive, got %q", k)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("zones:\n  z:\n    - weather: fog\n      chance: 120\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadTable(bad); err == nil {
		t.Error("expected error for chances above 100")
	}
}

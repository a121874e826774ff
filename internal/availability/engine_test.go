package availability

import (
	"math"
	"testing"
	"time"

	"FishSentinel/internal/eorzea"
	"FishSentinel/internal/model"
)

// 2025-01-01T00:00:00Z, ET 10:17. Limsa Lominsa is under clear skies until
// 1735690600000, then clouds.
const newYear int64 = 1735689600000

type stubZones map[string]string

func (s stubZones) Resolve(name string) (string, bool) {
	z, ok := s[name]
	return z, ok
}

func newTestEngine(zones stubZones) *Engine {
	return NewEngine(eorzea.Default(), zones, DefaultOptions())
}

func newFogEngine(opts Options) *Engine {
	table := eorzea.DefaultTable()
	table["testZone"] = []eorzea.Rate{{Weather: "fog", Chance: 100}}
	return NewEngine(eorzea.NewOracle(table, eorzea.DefaultNames()), stubZones{}, opts)
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		label string
		want  Window
		ok    bool
	}{
		{"ET 4:00-6:00", Window{240, 360}, true},
		{"ET22:00-2:00", Window{1320, 1560}, true},
		{"et 9：30 - 10:15", Window{570, 615}, true},
		{"ET 18:00", Window{1080, 1440}, true},
		{"ET 0:00-0:00", Window{0, 1440}, true},
		{"ET 25:99-1:00", Window{1439, 1500}, true},
		{"sometimes", Window{}, false},
		{"", Window{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseWindow(tt.label)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseWindow(%q): expected %+v/%v, got %+v/%v", tt.label, tt.want, tt.ok, got, ok)
		}
	}
}

func TestTimeWindow_AllDay(t *testing.T) {
	e := newTestEngine(nil)
	for _, label := range []string{"", "全天可钓", "无", "all day"} {
		c := e.TimeWindow(label, newYear)
		if c.State != model.StateAllDay || !c.Active() {
			t.Errorf("%q: expected all-day active, got %s", label, c.State)
		}
		if !math.IsInf(c.MsLeft(), 1) {
			t.Errorf("%q: expected +Inf remaining, got %v", label, c.MsLeft())
		}
	}
}

func TestTimeWindow_CrossesMidnight(t *testing.T) {
	e := newTestEngine(nil)
	const day = 20000
	tests := []struct {
		name     string
		realMs   int64
		state    model.State
		left     int64
		text     string
		progress float64
	}{
		{"late evening", eorzea.RealMsAt(day, 23, 30), model.StateActive, 437_500, "remaining 02:30", 37.5},
		{"after midnight", eorzea.RealMsAt(day, 1, 0), model.StateActive, 175_000, "remaining 01:00", 75},
		{"morning", eorzea.RealMsAt(day, 10, 0), model.StatePending, 2_100_000, "12:00 until available", 0},
		{"exactly at end", eorzea.RealMsAt(day, 2, 0), model.StatePending, 3_500_000, "20:00 until available", 0},
		{"last ms", eorzea.RealMsAt(day, 2, 0) - 1, model.StateActive, 1, "remaining 00:00", 0},
	}
	for _, tt := range tests {
		c := e.TimeWindow("ET 22:00-2:00", tt.realMs)
		if c.State != tt.state {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.state, c.State)
			continue
		}
		if c.Remaining != time.Duration(tt.left)*time.Millisecond {
			t.Errorf("%s: expected %dms left, got %v", tt.name, tt.left, c.Remaining)
		}
		if c.Text != tt.text {
			t.Errorf("%s: expected text %q, got %q", tt.name, tt.text, c.Text)
		}
		if tt.progress > 0 && math.Abs(c.Progress-tt.progress) > 1e-9 {
			t.Errorf("%s: expected progress %v, got %v", tt.name, tt.progress, c.Progress)
		}
	}
}

func TestTimeWindow_ActiveNeverZero(t *testing.T) {
	e := newTestEngine(nil)
	end := eorzea.RealMsAt(20000, 6, 0)
	for ms := end - 30; ms < end; ms++ {
		c := e.TimeWindow("ET 4:00-6:00", ms)
		if c.State == model.StateActive && c.Remaining < time.Millisecond {
			t.Fatalf("active window reported %v left at %d", c.Remaining, ms)
		}
		if c.Progress < 0 || c.Progress > 100 {
			t.Fatalf("progress out of range: %v", c.Progress)
		}
	}
}

func TestPending_EndsWhenWindowOpens(t *testing.T) {
	e := newTestEngine(nil)
	tests := []struct {
		name string
		eval func(realMs int64) model.Countdown
		wait int64
	}{
		{"time window", func(ms int64) model.Countdown { return e.TimeWindow("ET 16:00-18:00", ms) }, 1_000_000},
		{"combined", func(ms int64) model.Countdown {
			return e.Combined("limsaLominsa", "碧空", "ET 16:00-18:00", ms)
		}, 5_200_000},
	}
	for _, tt := range tests {
		c := tt.eval(newYear)
		if c.State != model.StatePending || c.Remaining != time.Duration(tt.wait)*time.Millisecond {
			t.Errorf("%s: expected pending %dms, got %s %v", tt.name, tt.wait, c.State, c.Remaining)
			continue
		}
		if c := tt.eval(newYear + tt.wait - 1); c.State != model.StatePending || c.Remaining != time.Millisecond {
			t.Errorf("%s: expected 1ms left just before opening, got %s %v", tt.name, c.State, c.Remaining)
		}
		if c := tt.eval(newYear + tt.wait); c.State != model.StateActive {
			t.Errorf("%s: expected active once the wait elapses, got %s", tt.name, c.State)
		}
	}
}

func TestTimeWindow_Unparsable(t *testing.T) {
	c := newTestEngine(nil).TimeWindow("whenever", newYear)
	if c.State != model.StateUnknown || c.Text != "unknown" || c.Progress != 0 {
		t.Errorf("expected unknown countdown, got %+v", c)
	}
}

func TestWeather_ActiveLimsa(t *testing.T) {
	c := newTestEngine(nil).Weather("limsaLominsa", "碧空", newYear)
	if c.State != model.StateActive {
		t.Fatalf("expected active, got %s", c.State)
	}
	if c.Remaining != 1_000_000*time.Millisecond {
		t.Errorf("expected 1000000ms left, got %v", c.Remaining)
	}
	if c.Text != "remaining 05:42" {
		t.Errorf("unexpected text %q", c.Text)
	}
	if math.Abs(c.Progress-400_000.0/1_400_000*100) > 1e-9 {
		t.Errorf("unexpected progress %v", c.Progress)
	}
}

func TestWeather_MergesConsecutiveIntervals(t *testing.T) {
	e := newTestEngine(nil)

	// Two clear intervals start at 1735703200000.
	c := e.Weather("limsaLominsa", "碧空", 1735703300000)
	if c.State != model.StateActive || c.Remaining != 2_700_000*time.Millisecond {
		t.Errorf("expected 2700000ms merged run, got %s %v", c.State, c.Remaining)
	}

	// Clouds or fair skies hold for five intervals from 1735696200000.
	c = e.Weather("limsaLominsa", "阴云|晴朗", 1735696200000)
	if c.Remaining != 7_000_000*time.Millisecond {
		t.Errorf("expected 7000000ms merged run, got %v", c.Remaining)
	}

	capped := NewEngine(eorzea.Default(), stubZones{}, Options{MergeLimit: 2})
	c = capped.Weather("limsaLominsa", "阴云|晴朗", 1735696200000)
	if c.Remaining != 4_200_000*time.Millisecond {
		t.Errorf("expected merge capped at 4200000ms, got %v", c.Remaining)
	}
}

func TestWeather_Pending(t *testing.T) {
	c := newTestEngine(nil).Weather("limsaLominsa", "碧空", 1735690700000)
	if c.State != model.StatePending {
		t.Fatalf("expected pending, got %s", c.State)
	}
	if c.Remaining != 1_300_000*time.Millisecond || c.Text != "07:25 until available" {
		t.Errorf("unexpected pending countdown %+v", c)
	}
	if c.Progress != 0 {
		t.Errorf("expected 0 progress while pending, got %v", c.Progress)
	}
}

func TestWeather_NoUpcoming(t *testing.T) {
	e := newFogEngine(DefaultOptions())
	c := e.Weather("testZone", "碧空", newYear)
	if c.State != model.StateNoUpcoming || !c.Unbounded() || c.Text != "no upcoming window" {
		t.Errorf("expected no upcoming window, got %+v", c)
	}

	c = newTestEngine(nil).Weather("limsaLominsa", "极光", newYear)
	if c.State != model.StateNoUpcoming {
		t.Errorf("expected unknown weather names to yield no upcoming, got %s", c.State)
	}
}

func TestCombined(t *testing.T) {
	e := newTestEngine(nil)
	tests := []struct {
		name    string
		weather string
		label   string
		state   model.State
		left    int64
	}{
		{"both hold, window ends first", "碧空", "ET 10:00-12:00", model.StateActive, 300_000},
		{"window already passed today", "碧空", "ET 8:00-9:00", model.StatePending, 20_600_000},
		{"weather later in the day", "碧空", "ET 16:00-18:00", model.StatePending, 5_200_000},
		{"fair skies overnight", "晴朗", "ET 0:00-4:00", model.StatePending, 19_200_000},
	}
	for _, tt := range tests {
		c := e.Combined("limsaLominsa", tt.weather, tt.label, newYear)
		if c.State != tt.state {
			t.Errorf("%s: expected %s, got %s", tt.name, tt.state, c.State)
			continue
		}
		if c.Remaining != time.Duration(tt.left)*time.Millisecond {
			t.Errorf("%s: expected %dms, got %v", tt.name, tt.left, c.Remaining)
		}
	}

	c := e.Combined("limsaLominsa", "碧空", "ET 10:00-12:00", newYear)
	if math.Abs(c.Progress-14.285708333333332) > 1e-6 {
		t.Errorf("unexpected combined progress %v", c.Progress)
	}
}

func TestCombined_NeverOverlaps(t *testing.T) {
	e := newFogEngine(DefaultOptions())
	c := e.Combined("testZone", "碧空", "ET 10:00-12:00", newYear)
	if c.State != model.StateNoUpcoming || !math.IsInf(c.MsLeft(), 1) {
		t.Errorf("expected no upcoming window, got %+v", c)
	}
}

func TestEvaluate_Dispatch(t *testing.T) {
	e := newTestEngine(stubZones{"巨鲨": "limsaLominsa", "雾鱼": "limsaLominsa"})
	now := time.UnixMilli(newYear)

	tests := []struct {
		name  string
		fish  model.Fish
		state model.State
		zone  string
	}{
		{"no requirements", model.Fish{Name: "a", Time: "全天可钓", Weather: "无"}, model.StateAllDay, ""},
		{"weather only", model.Fish{Name: "巨鲨", Time: "全天可钓", Weather: "碧空"}, model.StateActive, "limsaLominsa"},
		{"unresolved zone falls back to time", model.Fish{Name: "lost", Time: "ET 0:00-1:00", Weather: "碧空"}, model.StatePending, ""},
		{"combined", model.Fish{Name: "巨鲨", Time: "ET 10:00-12:00", Weather: "碧空"}, model.StateActive, "limsaLominsa"},
		{"unparsable label with weather", model.Fish{Name: "雾鱼", Time: "rarely", Weather: "薄雾"}, model.StateUnknown, "limsaLominsa"},
	}
	for _, tt := range tests {
		c := e.Evaluate(tt.fish, now)
		if c.State != tt.state || c.Zone != tt.zone {
			t.Errorf("%s: expected %s in %q, got %s in %q", tt.name, tt.state, tt.zone, c.State, c.Zone)
		}
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	e := newTestEngine(stubZones{"巨鲨": "limsaLominsa"})
	f := model.Fish{Name: "巨鲨", Time: "ET 16:00-18:00", Weather: "碧空"}
	first := e.EvaluateAt(f, newYear)
	for i := 0; i < 3; i++ {
		if again := e.EvaluateAt(f, newYear); again != first {
			t.Fatalf("evaluation not deterministic: %+v vs %+v", first, again)
		}
	}
}

func TestParseRequirement(t *testing.T) {
	names := eorzea.DefaultNames()
	req := ParseRequirement(" 碧空 ; 晴朗|无|极光 ", names)
	if !req.Named || req.Keys() != 2 {
		t.Fatalf("expected 2 recognized keys, got %d (named=%v)", req.Keys(), req.Named)
	}
	if !req.Accepts("clearSkies") || !req.Accepts("fairSkies") || req.Accepts("fog") {
		t.Error("unexpected accepted set")
	}
	if empty := ParseRequirement("无", names); empty.Named {
		t.Error("expected none sentinel to carry no names")
	}
}

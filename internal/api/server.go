package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"FishSentinel/internal/availability"
	"FishSentinel/internal/catalog"
	"FishSentinel/internal/clock"
	"FishSentinel/internal/eorzea"
	"FishSentinel/internal/filter"
	"FishSentinel/internal/model"
	"FishSentinel/internal/recorder"
	"FishSentinel/internal/zone"

	"github.com/go-chi/chi/v5"
)

const (
	defaultForecast = 6
	maxForecast     = 48
	defaultHistory  = 20
	maxHistory      = 500
)

type Server struct {
	catalog  *catalog.Catalog
	engine   *availability.Engine
	zones    *zone.Resolver
	marks    filter.Marks
	recorder recorder.Recorder
	clock    clock.Clock
}

// New constructs the HTTP router over the availability core.
func New(cat *catalog.Catalog, eng *availability.Engine, zones *zone.Resolver, marks filter.Marks,
	rec recorder.Recorder, clk clock.Clock) http.Handler {
	s := &Server{catalog: cat, engine: eng, zones: zones, marks: marks, recorder: rec, clock: clk}
	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/clock", s.handleClock)
	r.Get("/fish", s.handleFishList)
	r.Get("/fish/{name}", s.handleFish)
	r.Get("/zones", s.handleZones)
	r.Get("/weather/{zone}", s.handleWeather)
	r.Get("/history", s.handleHistory)

	return r
}

type clockJSON struct {
	Bell         int    `json:"bell"`
	Minute       int    `json:"minute"`
	Text         string `json:"text"`
	MsIntoMinute int64  `json:"ms_into_minute"`
	MsIntoDay    int64  `json:"ms_into_day"`
	EorzeaMs     int64  `json:"eorzea_ms"`
	UnixMs       int64  `json:"unix_ms"`
}

type countdownJSON struct {
	State       model.State `json:"state"`
	RemainingMs *int64      `json:"remaining_ms"` // null when unbounded
	Text        string      `json:"text"`
	Progress    float64     `json:"progress"`
	Zone        string      `json:"zone,omitempty"`
}

type entryJSON struct {
	Fish      model.Fish    `json:"fish"`
	Countdown countdownJSON `json:"countdown"`
	Pinned    bool          `json:"pinned"`
	Completed bool          `json:"completed"`
}

type forecastJSON struct {
	StartMs int64  `json:"start_ms"`
	ET      string `json:"et"`
	Weather string `json:"weather"`
	Name    string `json:"name"`
}

func (s *Server) handleClock(w http.ResponseWriter, r *http.Request) {
	now := s.clock.Now()
	ts := eorzea.Now(now)
	writeJSON(w, clockJSON{
		Bell:         ts.Bell,
		Minute:       ts.Minute,
		Text:         ts.String(),
		MsIntoMinute: ts.MsIntoMinute,
		MsIntoDay:    ts.MsIntoDay,
		EorzeaMs:     ts.EorzeaMs,
		UnixMs:       now.UnixMilli(),
	})
}

func (s *Server) handleFishList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c := filter.Criteria{
		Query:      q.Get("q"),
		Versions:   listParam(q, "version"),
		Rarity:     listParam(q, "rarity"),
		Condition:  listParam(q, "condition"),
		Completion: listParam(q, "completion"),
		Collect:    listParam(q, "collect"),
	}
	fish := s.catalog.Fish()
	entries := filter.Apply(fish, s.engine, s.marks, c, s.clock.Now().UnixMilli())

	out := make([]entryJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntry(e))
	}
	writeJSON(w, map[string]any{
		"progress": filter.Summarize(fish, s.marks),
		"fish":     out,
	})
}

func (s *Server) handleFish(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")
	f, ok := s.catalog.Find(name)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "fish not found")
		return
	}
	now := s.clock.Now()
	cd := s.engine.Evaluate(f, now)
	key := f.Key()
	resp := struct {
		entryJSON
		Forecast []forecastJSON `json:"forecast,omitempty"`
	}{
		entryJSON: toEntry(filter.Entry{
			Fish:      f,
			Countdown: cd,
			Pinned:    s.marks != nil && s.marks.IsPinned(key),
			Completed: s.marks != nil && s.marks.IsCompleted(key),
		}),
	}
	if cd.Zone != "" {
		resp.Forecast = toForecast(s.engine.Oracle().Forecast(cd.Zone, now.UnixMilli(), 4))
	}
	writeJSON(w, resp)
}

func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.zones.Zones())
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	key, ok := s.zones.Lookup(pathParam(r, "zone"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "zone not found")
		return
	}
	n, err := intParam(r, "n", defaultForecast, maxForecast)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	fc := s.engine.Oracle().Forecast(key, s.clock.Now().UnixMilli(), n)
	writeJSON(w, map[string]any{"zone": key, "forecast": toForecast(fc)})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit", defaultHistory, maxHistory)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	recs, err := s.recorder.RecentTransitions(limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	if recs == nil {
		recs = []recorder.TransitionRecord{}
	}
	writeJSON(w, recs)
}

func toEntry(e filter.Entry) entryJSON {
	cd := countdownJSON{
		State:    e.Countdown.State,
		Text:     e.Countdown.Text,
		Progress: e.Countdown.Progress,
		Zone:     e.Countdown.Zone,
	}
	if !e.Countdown.Unbounded() {
		ms := e.Countdown.Remaining.Milliseconds()
		cd.RemainingMs = &ms
	}
	return entryJSON{Fish: e.Fish, Countdown: cd, Pinned: e.Pinned, Completed: e.Completed}
}

func toForecast(fc []eorzea.Forecast) []forecastJSON {
	out := make([]forecastJSON, 0, len(fc))
	for _, f := range fc {
		out = append(out, forecastJSON{
			StartMs: f.Start.UnixMilli(),
			ET:      eorzea.At(f.Start.UnixMilli()).String(),
			Weather: f.Weather,
			Name:    f.Name,
		})
	}
	return out
}

// listParam accepts both repeated and comma-separated values.
func listParam(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

// intParam reads a positive integer query parameter, capped at limit.
func intParam(r *http.Request, key string, def, limit int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return min(n, limit), nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package filter

import (
	"sort"
	"strings"
	"time"

	"FishSentinel/internal/model"
)

// Facet values as shown to users.
const (
	ConditionPermanent = "常驻"
	ConditionLimited   = "限时"
	StatusDone         = "已完成"
	StatusOpen         = "未完成"
	CollectYes         = "收藏品"
	CollectNo          = "普通鱼"
)

// Evaluator computes the countdown of a fish.
type Evaluator interface {
	EvaluateAt(f model.Fish, realMs int64) model.Countdown
}

// Marks exposes the user's per-fish flags.
type Marks interface {
	IsCompleted(key string) bool
	IsPinned(key string) bool
}

// Criteria selects catalog entries. An empty facet set does not restrict.
type Criteria struct {
	Query      string
	Versions   []string
	Rarity     []string
	Condition  []string
	Completion []string
	Collect    []string
}

// Entry is one fish with its countdown and user flags.
type Entry struct {
	Fish      model.Fish
	Countdown model.Countdown
	Pinned    bool
	Completed bool
}

// Apply evaluates every fish at realMs, drops the ones the criteria reject
// and returns the rest in display order.
func Apply(fish []model.Fish, eval Evaluator, marks Marks, c Criteria, realMs int64) []Entry {
	query := strings.ToLower(strings.TrimSpace(c.Query))
	versions := set(c.Versions)
	rarity := set(c.Rarity)
	condition := set(c.Condition)
	completion := set(c.Completion)
	collect := set(c.Collect)

	var out []Entry
	for _, f := range fish {
		cd := eval.EvaluateAt(f, realMs)
		if cd.State == model.StateUnknown {
			continue
		}
		if query != "" && !strings.Contains(haystack(f), query) {
			continue
		}
		if len(versions) > 0 && f.Version != "" && !versions[f.Version] {
			continue
		}
		if !allows(rarity, f.RarityOrDefault()) {
			continue
		}
		if !allows(condition, Condition(f)) {
			continue
		}

		key := f.Key()
		done := marks != nil && marks.IsCompleted(key)
		status := StatusOpen
		if done {
			status = StatusDone
		}
		if !allows(completion, status) {
			continue
		}
		coll := CollectNo
		if f.IsCollectable() {
			coll = CollectYes
		}
		if !allows(collect, coll) {
			continue
		}

		out = append(out, Entry{
			Fish:      f,
			Countdown: cd,
			Pinned:    marks != nil && marks.IsPinned(key),
			Completed: done,
		})
	}
	Sort(out)
	return out
}

// Condition returns 常驻 for fish without a time window and 限时 otherwise.
func Condition(f model.Fish) string {
	if f.IsAllDay() {
		return ConditionPermanent
	}
	return ConditionLimited
}

// Sort orders entries: pinned, then not completed, then active, then by
// whole seconds remaining with unbounded countdowns last, then by name.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Pinned != b.Pinned {
			return a.Pinned
		}
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if a.Countdown.Active() != b.Countdown.Active() {
			return a.Countdown.Active()
		}
		ua, ub := a.Countdown.Unbounded(), b.Countdown.Unbounded()
		if ua != ub {
			return ub
		}
		if !ua {
			sa, sb := a.Countdown.Remaining/time.Second, b.Countdown.Remaining/time.Second
			if sa != sb {
				return sa < sb
			}
		}
		return a.Fish.Name < b.Fish.Name
	})
}

// Tally is the completion count of one rarity category.
type Tally struct {
	Rarity string `json:"rarity"`
	Done   int    `json:"done"`
	Total  int    `json:"total"`
}

// Summarize counts completed fish per rarity category. Categories without
// any fish are omitted; unrecognized rarities count as common.
func Summarize(fish []model.Fish, marks Marks) []Tally {
	order := []string{model.RarityEmperor, model.RarityKing, model.RarityCommon}
	tallies := make(map[string]*Tally, len(order))
	for _, r := range order {
		tallies[r] = &Tally{Rarity: r}
	}
	for _, f := range fish {
		t, ok := tallies[f.RarityOrDefault()]
		if !ok {
			t = tallies[model.RarityCommon]
		}
		t.Total++
		if marks != nil && marks.IsCompleted(f.Key()) {
			t.Done++
		}
	}

	var out []Tally
	for _, r := range order {
		if tallies[r].Total > 0 {
			out = append(out, *tallies[r])
		}
	}
	return out
}

func haystack(f model.Fish) string {
	parts := []string{f.Name, f.Weather}
	for _, m := range f.Methods {
		parts = append(parts, m.Bait, m.SmallFish, m.Value)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func set(values []string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			m[v] = true
		}
	}
	return m
}

func allows(s map[string]bool, v string) bool {
	return len(s) == 0 || s[v]
}

package scheduler

import (
	"errors"
	"fmt"
	"html"
	"log"

	"FishSentinel/internal/eorzea"
	"FishSentinel/internal/filter"
	"FishSentinel/internal/notifier"
	"FishSentinel/internal/prefs"
)

// Reply limits for chat output.
const (
	listLimit         = 20
	fishForecastCount = 4
	zoneForecastCount = 6
)

func (s *Scheduler) clockReply() string {
	now := s.Clock.Now()
	return notifier.FormatClock(eorzea.Now(now), now)
}

func (s *Scheduler) listReply() string {
	fish := s.Catalog.Fish()
	entries := filter.Apply(fish, s.Engine, s.Prefs, filter.Criteria{}, s.Clock.Now().UnixMilli())
	return notifier.FormatCountdownList(entries, filter.Summarize(fish, s.Prefs), listLimit)
}

func (s *Scheduler) fishReply(name string) string {
	if name == "" {
		return "用法: /fish &lt;名称&gt;"
	}
	f, ok := s.Catalog.Find(name)
	if !ok {
		return fmt.Sprintf("❓ 未找到鱼类: %s", html.EscapeString(name))
	}
	now := s.Clock.Now()
	cd := s.Engine.Evaluate(f, now)
	var fc []eorzea.Forecast
	if cd.Zone != "" {
		fc = s.Engine.Oracle().Forecast(cd.Zone, now.UnixMilli(), fishForecastCount)
	}
	return notifier.FormatFishDetail(f, cd, fc)
}

func (s *Scheduler) weatherReply(query string) string {
	if query == "" {
		return "用法: /weather &lt;地图&gt;"
	}
	key, ok := s.Zones.Lookup(query)
	if !ok {
		return fmt.Sprintf("❓ 未找到地图: %s", html.EscapeString(query))
	}
	fc := s.Engine.Oracle().Forecast(key, s.Clock.Now().UnixMilli(), zoneForecastCount)
	return notifier.FormatForecast(key, fc)
}

func (s *Scheduler) pinReply(name string) string {
	f, ok := s.Catalog.Find(name)
	if !ok {
		return fmt.Sprintf("❓ 未找到鱼类: %s", html.EscapeString(name))
	}
	on, err := s.Prefs.TogglePinned(f.Key())
	if err != nil {
		log.Printf("[ERROR] toggle pin: %v", err)
		return "❌ 保存失败"
	}
	if on {
		return fmt.Sprintf("📌 已置顶 %s", html.EscapeString(f.Name))
	}
	return fmt.Sprintf("已取消置顶 %s", html.EscapeString(f.Name))
}

func (s *Scheduler) doneReply(name string) string {
	f, ok := s.Catalog.Find(name)
	if !ok {
		return fmt.Sprintf("❓ 未找到鱼类: %s", html.EscapeString(name))
	}
	on, err := s.Prefs.ToggleCompleted(f.Key())
	if err != nil {
		log.Printf("[ERROR] toggle completed: %v", err)
		return "❌ 保存失败"
	}
	if on {
		return fmt.Sprintf("✅ 已完成 %s", html.EscapeString(f.Name))
	}
	return fmt.Sprintf("已标记未完成 %s", html.EscapeString(f.Name))
}

// lootReply adds a fish to the loot slots, or removes it when already there.
// Without a name it lists the slots.
func (s *Scheduler) lootReply(name string) string {
	if name == "" {
		return notifier.FormatLoot(s.Prefs.Loot())
	}
	f, ok := s.Catalog.Find(name)
	if !ok {
		return fmt.Sprintf("❓ 未找到鱼类: %s", html.EscapeString(name))
	}

	removed, err := s.Prefs.RemoveLoot(f.Name)
	if err == nil && !removed {
		err = s.Prefs.AddLoot(f.Name)
	}
	switch {
	case errors.Is(err, prefs.ErrLootFull):
		return "⚠️ 战利品已满"
	case err != nil:
		log.Printf("[ERROR] update loot: %v", err)
		return "❌ 保存失败"
	}
	return notifier.FormatLoot(s.Prefs.Loot())
}

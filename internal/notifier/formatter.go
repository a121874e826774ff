package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"FishSentinel/internal/eorzea"
	"FishSentinel/internal/filter"
	"FishSentinel/internal/model"
)

// stateIcon marks a countdown state in list output.
func stateIcon(s model.State) string {
	switch s {
	case model.StateActive:
		return "🟢"
	case model.StateAllDay:
		return "🔵"
	case model.StatePending:
		return "🟡"
	case model.StateNoUpcoming:
		return "⚫"
	default:
		return "❔"
	}
}

// FormatClock formats the current Eorzea time.
func FormatClock(ts eorzea.Timestamp, now time.Time) string {
	return fmt.Sprintf("🕐 <b>艾欧泽亚时间</b> ET %s\n本地时间: %s", ts, now.Format("2006-01-02 15:04:05"))
}

// FormatCountdownList formats the first limit entries and the progress
// summary. limit <= 0 lists everything.
func FormatCountdownList(entries []filter.Entry, tallies []filter.Tally, limit int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🎣 <b>鱼类倒计时</b> | %d 条\n\n", len(entries)))
	if len(entries) == 0 {
		b.WriteString("没有找到符合条件的鱼类\n")
	}
	for i, e := range entries {
		if limit > 0 && i >= limit {
			b.WriteString(fmt.Sprintf("… 另有 %d 条\n", len(entries)-limit))
			break
		}
		marks := ""
		if e.Pinned {
			marks += "📌"
		}
		if e.Completed {
			marks += "✅"
		}
		b.WriteString(fmt.Sprintf("%s %s%s  %s\n", stateIcon(e.Countdown.State), html.EscapeString(e.Fish.Name), marks, e.Countdown.Text))
	}
	if s := FormatProgress(tallies); s != "" {
		b.WriteString("\n" + s)
	}
	return b.String()
}

// FormatProgress renders "鱼皇 1/3 鱼王 2/10" style completion counts.
func FormatProgress(tallies []filter.Tally) string {
	parts := make([]string, 0, len(tallies))
	for _, t := range tallies {
		parts = append(parts, fmt.Sprintf("%s %d/%d", t.Rarity, t.Done, t.Total))
	}
	if len(parts) == 0 {
		return ""
	}
	return "📊 进度: " + strings.Join(parts, " ")
}

// FormatFishDetail formats one fish with its countdown and, when the fish
// is tied to a weather zone, the upcoming weather.
func FormatFishDetail(f model.Fish, cd model.Countdown, forecast []eorzea.Forecast) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🐟 <b>%s</b>\n\n", html.EscapeString(f.Name)))
	b.WriteString(fmt.Sprintf("状态: %s %s\n", stateIcon(cd.State), cd.Text))
	if cd.State == model.StateActive {
		b.WriteString(fmt.Sprintf("进度: %.0f%%\n", cd.Progress))
	}
	b.WriteString(fmt.Sprintf("时间: %s\n", orNone(f.TimeLabel())))
	b.WriteString(fmt.Sprintf("天气: %s\n", orNone(f.WeatherLabel())))
	if f.Rarity != "" {
		b.WriteString(fmt.Sprintf("种类: %s\n", f.Rarity))
	}
	if f.Version != "" {
		b.WriteString(fmt.Sprintf("版本: %s\n", f.Version))
	}
	if f.IsCollectable() {
		b.WriteString(fmt.Sprintf("收藏品: %s\n", html.EscapeString(f.Collectable)))
	}
	for _, m := range f.Methods {
		chain := []string{}
		for _, s := range []string{m.Bait, m.SmallFish} {
			if s != "" {
				chain = append(chain, html.EscapeString(s))
			}
		}
		if len(chain) > 0 {
			b.WriteString("钓法: " + strings.Join(chain, " → ") + "\n")
		}
	}
	if len(forecast) > 0 {
		b.WriteString("\n" + FormatForecast(cd.Zone, forecast))
	}
	return b.String()
}

// FormatForecast formats the weather of consecutive intervals in a zone.
func FormatForecast(zone string, forecast []eorzea.Forecast) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🌤 <b>天气预报</b> | %s\n", html.EscapeString(zone)))
	for _, fc := range forecast {
		et := eorzea.At(fc.Start.UnixMilli())
		b.WriteString(fmt.Sprintf("  ET %s (%s) %s\n", et, fc.Start.Format("15:04"), fc.Name))
	}
	return b.String()
}

// FormatWindowOpened formats the alert for a pinned fish becoming catchable.
func FormatWindowOpened(f model.Fish, cd model.Countdown) string {
	return fmt.Sprintf("🔔 <b>%s</b> 可以钓了\n%s", html.EscapeString(f.Name), cd.Text)
}

// FormatLoot lists the filled loot slots.
func FormatLoot(slots []string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🎒 <b>战利品</b> %d/%d\n", len(slots), model.LootCapacity))
	for i, s := range slots {
		b.WriteString(fmt.Sprintf("%2d. %s\n", i+1, html.EscapeString(s)))
	}
	return b.String()
}

// FormatHelp lists the bot commands.
func FormatHelp() string {
	return "🤖 <b>FishSentinel</b>\n\n" +
		"/now - 艾欧泽亚时间\n" +
		"/list - 可钓鱼类倒计时\n" +
		"/fish &lt;名称&gt; - 鱼类详情\n" +
		"/weather &lt;地图&gt; - 天气预报\n" +
		"/pin &lt;名称&gt; - 置顶/取消置顶\n" +
		"/done &lt;名称&gt; - 标记完成/未完成\n" +
		"/loot &lt;名称&gt; - 加入/移出战利品\n"
}

func orNone(s string) string {
	if s == "" {
		return model.NoneLabel
	}
	return html.EscapeString(s)
}

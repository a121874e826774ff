package eorzea

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultTable returns the built-in zone weather distributions.
func DefaultTable() Table {
	return Table{
		"uldah":                    {{"clearSkies", 40}, {"fairSkies", 20}, {"clouds", 25}, {"fog", 10}, {"rain", 5}},
		"westernThanalan":          {{"clearSkies", 40}, {"fairSkies", 20}, {"clouds", 25}, {"fog", 10}, {"rain", 5}},
		"centralThanalan":          {{"dustStorms", 15}, {"clearSkies", 40}, {"fairSkies", 20}, {"clouds", 10}, {"fog", 10}, {"rain", 5}},
		"easternThanalan":          {{"clearSkies", 40}, {"fairSkies", 20}, {"clouds", 10}, {"fog", 10}, {"rain", 5}, {"showers", 15}},
		"southernThanalan":         {{"heatWaves", 20}, {"clearSkies", 40}, {"fairSkies", 20}, {"clouds", 10}, {"fog", 10}},
		"northernThanalan":         {{"clearSkies", 5}, {"fairSkies", 15}, {"clouds", 30}, {"fog", 50}},
		"gridania":                 {{"rain", 20}, {"fog", 10}, {"clouds", 10}, {"fairSkies", 15}, {"clearSkies", 30}, {"fairSkies", 15}},
		"centralShroud":            {{"thunder", 5}, {"rain", 15}, {"fog", 10}, {"clouds", 10}, {"fairSkies", 15}, {"clearSkies", 30}, {"fairSkies", 15}},
		"eastShroud":               {{"thunder", 5}, {"rain", 15}, {"fog", 10}, {"clouds", 10}, {"fairSkies", 15}, {"clearSkies", 30}, {"fairSkies", 15}},
		"southShroud":              {{"fog", 5}, {"thunderstorms", 5}, {"thunder", 15}, {"fog", 5}, {"clouds", 10}, {"fairSkies", 30}, {"clearSkies", 30}},
		"northShroud":              {{"fog", 5}, {"showers", 5}, {"rain", 15}, {"fog", 5}, {"clouds", 10}, {"fairSkies", 30}, {"clearSkies", 30}},
		"limsaLominsa":             {{"clouds", 20}, {"clearSkies", 30}, {"fairSkies", 30}, {"fog", 10}, {"rain", 10}},
		"middleLaNoscea":           {{"clouds", 20}, {"clearSkies", 30}, {"fairSkies", 20}, {"wind", 10}, {"fog", 10}, {"rain", 10}},
		"lowerLaNoscea":            {{"clouds", 20}, {"clearSkies", 30}, {"fairSkies", 20}, {"wind", 10}, {"fog", 10}, {"rain", 10}},
		"easternLaNoscea":          {{"fog", 5}, {"clearSkies", 45}, {"fairSkies", 30}, {"clouds", 10}, {"rain", 5}, {"showers", 5}},
		"westernLaNoscea":          {{"fog", 10}, {"clearSkies", 30}, {"fairSkies", 20}, {"clouds", 20}, {"wind", 10}, {"gales", 10}},
		"upperLaNoscea":            {{"clearSkies", 30}, {"fairSkies", 20}, {"clouds", 20}, {"fog", 10}, {"thunder", 10}, {"thunderstorms", 10}},
		"outerLaNoscea":            {{"clearSkies", 30}, {"fairSkies", 20}, {"clouds", 20}, {"fog", 15}, {"rain", 15}},
		"coerthasCentralHighlands": {{"blizzard", 20}, {"snow", 40}, {"fairSkies", 10}, {"clearSkies", 5}, {"clouds", 15}, {"fog", 10}},
		"morDhona":                 {{"clouds", 15}, {"fog", 15}, {"gloom", 30}, {"clearSkies", 15}, {"fairSkies", 25}},
	}
}

// Names translates between weather keys and their display names.
type Names struct {
	display map[string]string
	keys    map[string]string
}

// NewNames builds a name table from key -> display name pairs.
func NewNames(display map[string]string) Names {
	n := Names{
		display: make(map[string]string, len(display)),
		keys:    make(map[string]string, len(display)*2),
	}
	for k, v := range display {
		n.display[k] = v
		n.keys[v] = k
		n.keys[k] = k
	}
	return n
}

// DefaultNames returns the built-in weather names.
func DefaultNames() Names {
	return NewNames(map[string]string{
		"clearSkies":    "碧空",
		"fairSkies":     "晴朗",
		"clouds":        "阴云",
		"fog":           "薄雾",
		"rain":          "小雨",
		"showers":       "暴雨",
		"wind":          "微风",
		"gales":         "强风",
		"thunder":       "打雷",
		"thunderstorms": "雷雨",
		"snow":          "小雪",
		"blizzard":      "暴雪",
		"gloom":         "妖雾",
		"heatWaves":     "热浪",
		"dustStorms":    "扬沙",
	})
}

// Key resolves a display name (or a key) to its weather key.
func (n Names) Key(name string) (string, bool) {
	k, ok := n.keys[name]
	return k, ok
}

// Display returns the display name for a key, or the key itself.
func (n Names) Display(key string) string {
	if v, ok := n.display[key]; ok {
		return v
	}
	return key
}

// DefaultMapNames maps in-game map names to weather zone keys.
func DefaultMapNames() map[string]string {
	return map[string]string{
		"西萨纳兰":     "westernThanalan",
		"中萨纳兰":     "centralThanalan",
		"东萨纳兰":     "easternThanalan",
		"南萨纳兰":     "southernThanalan",
		"北萨纳兰":     "northernThanalan",
		"乌尔达哈":     "uldah",
		"黑衣森林中部林区": "centralShroud",
		"黑衣森林东部林区": "eastShroud",
		"黑衣森林南部林区": "southShroud",
		"黑衣森林北部林区": "northShroud",
		"格里达尼亚":    "gridania",
		"格里达尼亚旧街":  "gridania",
		"格里达尼亚新街":  "gridania",
		"中拉诺西亚":    "middleLaNoscea",
		"拉诺西亚低地":   "lowerLaNoscea",
		"东拉诺西亚":    "easternLaNoscea",
		"西拉诺西亚":    "westernLaNoscea",
		"拉诺西亚高地":   "upperLaNoscea",
		"拉诺西亚外地":   "outerLaNoscea",
		"利姆萨·罗敏萨":  "limsaLominsa",
		"库尔札斯中央高地": "coerthasCentralHighlands",
		"摩杜纳":      "morDhona",
	}
}

// DefaultOverrides pins fish whose zone the spot catalog cannot resolve.
func DefaultOverrides() map[string]string {
	return map[string]string{
		"巨鲨":   "limsaLominsa",
		"水晶刺鱼": "morDhona",
		"求雨鱼":  "lowerLaNoscea",
	}
}

// tableFile is the YAML shape accepted by LoadTable.
type tableFile struct {
	Zones map[string][]Rate `yaml:"zones"`
	Names map[string]string `yaml:"names"`
}

// LoadTable reads a weather table and optional weather names from a YAML
// file. Names missing from the file fall back to the built-in ones.
func LoadTable(path string) (Table, Names, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Names{}, fmt.Errorf("read weather table: %w", err)
	}
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, Names{}, fmt.Errorf("parse weather table: %w", err)
	}
	if len(f.Zones) == 0 {
		return nil, Names{}, fmt.Errorf("weather table %s has no zones", path)
	}
	for zone, rates := range f.Zones {
		sum := 0
		for _, r := range rates {
			if r.Chance < 0 {
				return nil, Names{}, fmt.Errorf("zone %s: negative chance for %s", zone, r.Weather)
			}
			sum += r.Chance
		}
		if sum > 100 {
			return nil, Names{}, fmt.Errorf("zone %s: chances sum to %d", zone, sum)
		}
	}

	display := make(map[string]string)
	for k, v := range DefaultNames().display {
		display[k] = v
	}
	for k, v := range f.Names {
		display[k] = v
	}
	return Table(f.Zones), NewNames(display), nil
}

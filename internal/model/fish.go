package model

import "strings"

// Sentinels used by the catalog data.
const (
	AllDayLabel = "全天可钓"
	NoneLabel   = "无"
)

// Method is one bait / mooch chain entry for a fish.
type Method struct {
	Bait      string `json:"bait,omitempty"`
	SmallFish string `json:"smallFish,omitempty"`
	Value     string `json:"value,omitempty"`
}

// Fish is one catalog record.
type Fish struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Time        string   `json:"time,omitempty"`    // "全天可钓", "ET H:MM-H:MM" or empty
	Weather     string   `json:"weather,omitempty"` // "碧空;晴朗", "无" or empty
	Rarity      string   `json:"rarity,omitempty"`
	Version     string   `json:"version,omitempty"`
	Collectable string   `json:"collectable,omitempty"`
	Methods     []Method `json:"methods,omitempty"`
}

// Key returns the identity used for user marks: the id, or the name.
func (f *Fish) Key() string {
	if f.ID != "" {
		return f.ID
	}
	return f.Name
}

// TimeLabel returns the time requirement with the "none" sentinel removed.
func (f *Fish) TimeLabel() string {
	s := strings.TrimSpace(f.Time)
	if s == NoneLabel {
		return ""
	}
	return s
}

// WeatherLabel returns the weather requirement with the "none" sentinel removed.
func (f *Fish) WeatherLabel() string {
	s := strings.TrimSpace(f.Weather)
	if s == NoneLabel {
		return ""
	}
	return s
}

// IsAllDay reports whether the fish carries no time restriction.
func (f *Fish) IsAllDay() bool {
	return IsAllDayLabel(f.TimeLabel())
}

// IsCollectable reports whether the fish can be turned in as a collectable.
func (f *Fish) IsCollectable() bool {
	s := strings.TrimSpace(f.Collectable)
	return s != "" && s != NoneLabel
}

// RarityOrDefault returns the rarity, defaulting to the common category.
func (f *Fish) RarityOrDefault() string {
	if f.Rarity == "" {
		return RarityCommon
	}
	return f.Rarity
}

// IsAllDayLabel reports whether a time label means "no time window".
func IsAllDayLabel(label string) bool {
	s := strings.TrimSpace(label)
	return s == "" || s == NoneLabel || strings.Contains(s, AllDayLabel) || strings.EqualFold(s, "all day")
}

// Spot is a fishing spot from the spot catalog.
type Spot struct {
	Name   string   `json:"name,omitempty"`
	Level1 string   `json:"level1,omitempty"` // region map name
	Level2 string   `json:"level2,omitempty"` // sub-map name
	Fish   []string `json:"fish"`
}

// Has reports whether the spot lists the named fish.
func (s *Spot) Has(name string) bool {
	for _, f := range s.Fish {
		if f == name {
			return true
		}
	}
	return false
}

// Rarity categories.
const (
	RarityEmperor = "鱼皇"
	RarityKing    = "鱼王"
	RarityCommon  = "普通鱼"
)

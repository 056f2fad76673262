// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Phase is the current stage of a single round.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseWaiting
	PhaseActive
	PhaseResult
	PhaseTooSoon
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWaiting:
		return "waiting"
	case PhaseActive:
		return "active"
	case PhaseResult:
		return "result"
	case PhaseTooSoon:
		return "too-soon"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Difficulty selects the stimulus delay range.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists levels in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty accepts a case-insensitive level name.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
	}
}

// SoundPack names a table of feedback tones.
type SoundPack string

const (
	SoundPackClassic SoundPack = "Classic"
	SoundPackArcade  SoundPack = "Arcade"
	SoundPackTech    SoundPack = "Tech"
)

// SoundPacks lists packs in display order.
var SoundPacks = []SoundPack{SoundPackClassic, SoundPackArcade, SoundPackTech}

// Valid reports whether p is a known pack.
func (p SoundPack) Valid() bool {
	for _, known := range SoundPacks {
		if p == known {
			return true
		}
	}
	return false
}

// Description is the one-line blurb shown in the settings form.
func (p SoundPack) Description() string {
	switch p {
	case SoundPackArcade:
		return "Retro 8-bit game effects"
	case SoundPackTech:
		return "Minimalist high-freq blips"
	default:
		return "Original sine wave tones"
	}
}

// ThemeColor is the cosmetic accent used for the stimulus.
type ThemeColor string

const (
	ThemeIndigo  ThemeColor = "indigo"
	ThemeRose    ThemeColor = "rose"
	ThemeEmerald ThemeColor = "emerald"
	ThemeAmber   ThemeColor = "amber"
)

// ThemeColors lists colors in display order.
var ThemeColors = []ThemeColor{ThemeIndigo, ThemeRose, ThemeEmerald, ThemeAmber}

// ParseThemeColor accepts a case-insensitive color name.
func ParseThemeColor(s string) (ThemeColor, error) {
	c := ThemeColor(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ThemeColors {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown theme color %q", s)
}

// Settings holds persisted audio preferences.
type Settings struct {
	Volume    float64   `json:"volume"`
	SoundPack SoundPack `json:"soundPack"`
}

// DefaultSettings returns the settings used when nothing is persisted.
func DefaultSettings() Settings {
	return Settings{Volume: 0.5, SoundPack: SoundPackClassic}
}

// Attempt records a completed round.
type Attempt struct {
	Timestamp int64 // epoch milliseconds
	Time      int   // reaction in milliseconds
}

// ArchivedAttempt is an attempt as stored for cross-session reporting.
type ArchivedAttempt struct {
	ID         int64
	SessionID  string
	RecordedAt time.Time
	ReactionMs int
	Difficulty Difficulty
}

// AttemptFilter narrows archive queries.
type AttemptFilter struct {
	Difficulty Difficulty
	Since      *time.Time
	Last       int
}

// NewsItem is a single headline.
type NewsItem struct {
	Title string
	URL   string
}

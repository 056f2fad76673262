// Package prefs loads and saves the small set of persisted user preferences.
//
// Loading never fails: every malformed or missing value falls back to its
// default on its own, and the reasons are reported alongside the result so
// callers may log them. Saving is fire-and-forget.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/reflex/internal/model"
)

// Persisted keys.
const (
	KeyBestTime = "best-time"
	KeyTheme    = "theme-color"
	KeySettings = "settings"
)

// KV is the keyed storage the preferences live in.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Prefs are the persisted values with defaults applied.
type Prefs struct {
	BestTime *int
	Theme    model.ThemeColor
	Settings model.Settings
}

// Defaults returns the preferences used when nothing is stored.
func Defaults() Prefs {
	return Prefs{
		Theme:    model.ThemeIndigo,
		Settings: model.DefaultSettings(),
	}
}

// Result is the outcome of Load.
type Result struct {
	Prefs
	// Ignored lists stored values that were unreadable and replaced by defaults.
	Ignored []error
}

// Load reads preferences from kv, falling back to defaults per value.
func Load(ctx context.Context, kv KV) Result {
	res := Result{Prefs: Defaults()}
	if kv == nil {
		return res
	}

	if raw, ok := res.read(ctx, kv, KeyBestTime); ok {
		if best, err := parseBestTime(raw); err != nil {
			res.Ignored = append(res.Ignored, err)
		} else {
			res.BestTime = &best
		}
	}
	if raw, ok := res.read(ctx, kv, KeyTheme); ok {
		if theme, err := model.ParseThemeColor(raw); err != nil {
			res.Ignored = append(res.Ignored, err)
		} else {
			res.Theme = theme
		}
	}
	if raw, ok := res.read(ctx, kv, KeySettings); ok {
		if settings, err := parseSettings(raw); err != nil {
			res.Ignored = append(res.Ignored, err)
		} else {
			res.Settings = settings
		}
	}
	return res
}

func (r *Result) read(ctx context.Context, kv KV, key string) (string, bool) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		r.Ignored = append(r.Ignored, fmt.Errorf("read %s: %w", key, err))
		return "", false
	}
	return raw, ok
}

func parseBestTime(raw string) (int, error) {
	best, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", KeyBestTime, err)
	}
	if best < 0 {
		return 0, fmt.Errorf("parse %s: negative value %d", KeyBestTime, best)
	}
	return best, nil
}

func parseSettings(raw string) (model.Settings, error) {
	var settings model.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return model.Settings{}, fmt.Errorf("parse %s: %w", KeySettings, err)
	}
	if settings.Volume < 0 || settings.Volume > 1 {
		return model.Settings{}, fmt.Errorf("parse %s: volume %v out of range", KeySettings, settings.Volume)
	}
	if !settings.SoundPack.Valid() {
		return model.Settings{}, fmt.Errorf("parse %s: unknown sound pack %q", KeySettings, settings.SoundPack)
	}
	return settings, nil
}

// Saver writes preferences without reporting failures to the caller.
type Saver struct {
	kv KV
}

// NewSaver returns a Saver backed by kv. A nil kv discards writes.
func NewSaver(kv KV) *Saver {
	return &Saver{kv: kv}
}

// SaveBestTime persists best, deleting the entry when best is nil.
func (s *Saver) SaveBestTime(best *int) {
	if best == nil {
		s.apply(KeyBestTime, func(ctx context.Context) error {
			return s.kv.Delete(ctx, KeyBestTime)
		})
		return
	}
	s.put(KeyBestTime, strconv.Itoa(*best))
}

// SaveTheme persists the theme color.
func (s *Saver) SaveTheme(theme model.ThemeColor) {
	s.put(KeyTheme, string(theme))
}

// SaveSettings persists the audio settings.
func (s *Saver) SaveSettings(settings model.Settings) {
	data, err := json.Marshal(settings)
	if err != nil {
		log.Warn().Err(err).Str("key", KeySettings).Msg("failed to encode preference")
		return
	}
	s.put(KeySettings, string(data))
}

func (s *Saver) put(key, value string) {
	s.apply(key, func(ctx context.Context) error {
		return s.kv.Put(ctx, key, value)
	})
}

func (s *Saver) apply(key string, write func(ctx context.Context) error) {
	if s == nil || s.kv == nil {
		return
	}
	if err := write(context.Background()); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to save preference")
	}
}

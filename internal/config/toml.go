package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Game  GameConfig  `toml:"game"`
	Audio AudioConfig `toml:"audio"`
	News  NewsConfig  `toml:"news"`
	Log   LogConfig   `toml:"log"`
}

// GameConfig maps round-related settings.
type GameConfig struct {
	Difficulty *string `toml:"difficulty"`
	Theme      *string `toml:"theme"`
	Intro      *bool   `toml:"intro"`
}

// AudioConfig maps feedback tone settings.
type AudioConfig struct {
	Mute       *bool `toml:"mute"`
	SampleRate *int  `toml:"sample-rate"`
}

// NewsConfig maps the headline service settings.
type NewsConfig struct {
	APIKeyEnv *string   `toml:"api-key-env"`
	Endpoint  *string   `toml:"endpoint"`
	Model     *string   `toml:"model"`
	Timeout   *Duration `toml:"timeout"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// Duration decodes TOML strings such as "15s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	if v < 0 {
		return fmt.Errorf("duration %q must not be negative", string(text))
	}
	d.Duration = v
	return nil
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

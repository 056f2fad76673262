package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Game.Difficulty != nil || cfg.News.Timeout != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[game]
difficulty = "hard"
theme = "rose"
intro = false

[audio]
mute = true

[news]
api-key-env = "MY_KEY"
timeout = "15s"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Game.Difficulty == nil || *cfg.Game.Difficulty != "hard" {
		t.Fatalf("unexpected difficulty: %v", cfg.Game.Difficulty)
	}
	if cfg.Game.Theme == nil || *cfg.Game.Theme != "rose" {
		t.Fatalf("unexpected theme: %v", cfg.Game.Theme)
	}
	if cfg.Game.Intro == nil || *cfg.Game.Intro {
		t.Fatalf("expected intro=false, got %v", cfg.Game.Intro)
	}
	if cfg.Audio.Mute == nil || !*cfg.Audio.Mute {
		t.Fatalf("expected mute=true")
	}
	if cfg.Audio.SampleRate != nil {
		t.Fatalf("expected unset sample rate")
	}
	if cfg.News.APIKeyEnv == nil || *cfg.News.APIKeyEnv != "MY_KEY" {
		t.Fatalf("unexpected api-key-env: %v", cfg.News.APIKeyEnv)
	}
	if cfg.News.Timeout == nil || cfg.News.Timeout.Duration != 15*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.News.Timeout)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %v", cfg.Log.Level)
	}
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"bad duration": "[news]\ntimeout = \"soon\"\n",
		"unknown key":  "[game]\nspeed = 3\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "cfg"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv(DBEnv, "")

	if got, want := DefaultConfigPath(), filepath.Join(dir, "cfg", "reflex", "config.toml"); got != want {
		t.Fatalf("config path = %q, want %q", got, want)
	}
	if got, want := DefaultDBPath(), filepath.Join(dir, "data", "reflex", "reflex.db"); got != want {
		t.Fatalf("db path = %q, want %q", got, want)
	}
	if got, want := DefaultLogPath(), filepath.Join(dir, "state", "reflex", "reflex.log"); got != want {
		t.Fatalf("log path = %q, want %q", got, want)
	}

	t.Setenv(DBEnv, "/tmp/custom.db")
	if got := DefaultDBPath(); got != "/tmp/custom.db" {
		t.Fatalf("expected %s override, got %q", DBEnv, got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	if err := os.WriteFile(first, []byte("REFLEX_TEST_A=from-first\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	if err := os.WriteFile(second, []byte("REFLEX_TEST_A=from-second\nREFLEX_TEST_B=b\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("REFLEX_TEST_A", "")
	t.Setenv("REFLEX_TEST_B", "")
	os.Unsetenv("REFLEX_TEST_A")
	os.Unsetenv("REFLEX_TEST_B")

	loaded, err := LoadDotEnv(first, filepath.Join(dir, "missing.env"), second)
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 loaded files, got %v", loaded)
	}
	if got := os.Getenv("REFLEX_TEST_A"); got != "from-first" {
		t.Fatalf("REFLEX_TEST_A = %q, want from-first", got)
	}
	if got := os.Getenv("REFLEX_TEST_B"); got != "b" {
		t.Fatalf("REFLEX_TEST_B = %q, want b", got)
	}
}

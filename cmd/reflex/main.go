// Package main provides the CLI entrypoint for reflex.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/reflex/internal/config"
	"github.com/verte-zerg/reflex/internal/logging"
	"github.com/verte-zerg/reflex/internal/model"
	"github.com/verte-zerg/reflex/internal/news"
	"github.com/verte-zerg/reflex/internal/store"
)

const (
	defaultDifficulty  = string(model.DifficultyMedium)
	defaultStatsWindow = 10
	defaultRecentRows  = 10
)

var (
	playDifficulty string
	playTheme      string
	playMute       bool
	playNoIntro    bool

	statsDifficulty string
	statsSince      string
	statsLast       int
	statsWindow     int

	fileCfg config.FileConfig
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "reflex",
		Short:             "Terminal reaction-time trainer",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setup,
		RunE:              runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playDifficulty, "difficulty", defaultDifficulty, "stimulus delay range: easy, medium or hard")
	rootCmd.Flags().StringVar(&playTheme, "theme", "", "accent color: indigo, rose, emerald or amber (default: last used)")
	rootCmd.Flags().BoolVar(&playMute, "mute", false, "start with sound muted")
	rootCmd.Flags().BoolVar(&playNoIntro, "no-intro", false, "skip the entrance sequence")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newNewsCmd())
	rootCmd.AddCommand(newResetBestCmd())

	return rootCmd
}

// setup loads .env files and the config file, then routes logs to stderr.
// The play command later moves logging to a file.
func setup(_ *cobra.Command, _ []string) error {
	loaded, envErr := config.LoadDotEnv(config.DotEnvPaths()...)

	cfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	fileCfg = cfg

	level, err := logging.ParseLevel(deref(fileCfg.Log.Level))
	if err != nil {
		return err
	}
	logging.Console(os.Stderr, level)

	if envErr != nil {
		log.Warn().Err(envErr).Msg("failed to load .env")
	}
	if len(loaded) > 0 {
		log.Debug().Strs("files", loaded).Msg("loaded environment files")
	}
	return nil
}

func openStore() (*store.Store, func(), error) {
	path := config.DefaultDBPath()
	st, err := store.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	closeFn := func() {
		if cerr := st.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close db")
		}
	}
	return st, closeFn, nil
}

func newsConfig() news.Config {
	cfg := news.DefaultConfig()
	if v := fileCfg.News.APIKeyEnv; v != nil && strings.TrimSpace(*v) != "" {
		cfg.KeyEnv = strings.TrimSpace(*v)
	}
	if v := fileCfg.News.Endpoint; v != nil {
		cfg.Endpoint = *v
	}
	if v := fileCfg.News.Model; v != nil {
		cfg.Model = *v
	}
	if v := fileCfg.News.Timeout; v != nil {
		cfg.Timeout = v.Duration
	}
	cfg.APIKey = os.Getenv(cfg.KeyEnv)
	return cfg
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		// A broken config file must still be editable.
		PersistentPreRunE: setupConsole,
		RunE:              runConfigCmd,
	}
}

func setupConsole(_ *cobra.Command, _ []string) error {
	logging.Console(os.Stderr, logging.DefaultLevel)
	return nil
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# reflex configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# difficulty = %q      # easy, medium or hard
# theme = "indigo"          # indigo, rose, emerald or amber (default: last used)
# intro = true              # Play the entrance sequence

[audio]
# mute = false              # Start with sound muted
# sample-rate = %d       # Speaker output rate in Hz

[news]
# api-key-env = %q   # Environment variable holding the API key
# model = %q
# timeout = "15s"           # Give up on slow headline requests (default: wait indefinitely)

[log]
# level = "info"            # trace, debug, info, warn or error
# file = ""                 # Log file used while playing (default: %s)
`,
		defaultDifficulty,
		44100,
		news.DefaultKeyEnv,
		news.DefaultModel,
		config.DefaultLogPath(),
	)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

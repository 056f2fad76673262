package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/faiface/beep"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/reflex/internal/audio"
	"github.com/verte-zerg/reflex/internal/config"
	"github.com/verte-zerg/reflex/internal/game"
	"github.com/verte-zerg/reflex/internal/logging"
	"github.com/verte-zerg/reflex/internal/model"
	"github.com/verte-zerg/reflex/internal/news"
	"github.com/verte-zerg/reflex/internal/prefs"
	"github.com/verte-zerg/reflex/internal/store"
	"github.com/verte-zerg/reflex/internal/tui"
)

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	applyStringConfig(cmd, "difficulty", &playDifficulty, fileCfg.Game.Difficulty)
	applyStringConfig(cmd, "theme", &playTheme, fileCfg.Game.Theme)
	applyBoolConfig(cmd, "mute", &playMute, fileCfg.Audio.Mute)
	if fileCfg.Game.Intro != nil && !cmd.Flags().Changed("no-intro") {
		playNoIntro = !*fileCfg.Game.Intro
	}

	difficulty, err := model.ParseDifficulty(playDifficulty)
	if err != nil {
		return fmt.Errorf("invalid --difficulty: %w", err)
	}
	var themeOverride model.ThemeColor
	if playTheme != "" {
		themeOverride, err = model.ParseThemeColor(playTheme)
		if err != nil {
			return fmt.Errorf("invalid --theme: %w", err)
		}
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("reflex needs an interactive terminal; see 'reflex stats' for a plain report")
	}

	level, err := logging.ParseLevel(deref(fileCfg.Log.Level))
	if err != nil {
		return err
	}
	logPath := config.DefaultLogPath()
	if p := deref(fileCfg.Log.File); p != "" {
		logPath = p
	}
	logFile, err := logging.File(logPath, level)
	if err != nil {
		logErrf("logging disabled: %v\n", err)
		logging.Discard()
	} else {
		defer func() {
			if cerr := logFile.Close(); cerr != nil {
				// Best-effort close of the log file.
				_ = cerr
			}
		}()
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	ctx := context.Background()
	loaded := prefs.Load(ctx, st)
	for _, ignored := range loaded.Ignored {
		log.Debug().Err(ignored).Msg("ignoring stored preference")
	}
	theme := loaded.Theme
	if themeOverride != "" {
		theme = themeOverride
	}

	player := audio.NewPlayer(audio.SpeakerBackend{}, loaded.Settings)
	if sr := fileCfg.Audio.SampleRate; sr != nil {
		player.SetSampleRate(beep.SampleRate(*sr))
	}
	player.SetMuted(playMute)

	archive := store.NewArchive(st)
	engine := game.New(game.Options{
		Tones:      player,
		Best:       prefs.NewSaver(st),
		Attempts:   archive,
		BestTime:   loaded.BestTime,
		Difficulty: difficulty,
	})
	defer engine.Close()

	log.Info().
		Str("session", archive.SessionID()).
		Str("difficulty", string(difficulty)).
		Str("theme", string(theme)).
		Bool("muted", playMute).
		Msg("session started")

	ui := tui.NewModel(tui.Options{
		Engine:    engine,
		Player:    player,
		Prefs:     prefs.NewSaver(st),
		News:      news.NewService(newsConfig(), nil),
		Theme:     theme,
		SkipIntro: playNoIntro,
	})
	program := tea.NewProgram(ui, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	log.Info().Str("session", archive.SessionID()).Int("attempts", len(engine.History())).Msg("session ended")
	return nil
}

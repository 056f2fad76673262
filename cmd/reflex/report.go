package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/reflex/internal/model"
	"github.com/verte-zerg/reflex/internal/news"
	"github.com/verte-zerg/reflex/internal/prefs"
	"github.com/verte-zerg/reflex/internal/stats"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show archived reaction stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsDifficulty, "difficulty", "", "difficulty filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N attempts")
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "moving average window")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	filter := model.AttemptFilter{Last: statsLast}
	if statsDifficulty != "" {
		d, err := model.ParseDifficulty(statsDifficulty)
		if err != nil {
			return fmt.Errorf("invalid --difficulty: %w", err)
		}
		filter.Difficulty = d
	}
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if statsWindow <= 0 {
		return fmt.Errorf("--window must be > 0")
	}

	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	report, err := stats.BuildReport(cmd.Context(), st, filter)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderTrend(out, report.Attempts, statsWindow, stats.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderRecent(out, report.Attempts, defaultRecentRows); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	loaded := prefs.Load(cmd.Context(), st)
	if loaded.BestTime != nil {
		if _, err := fmt.Fprintf(out, "\nAll-time best: %dms\n", *loaded.BestTime); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newNewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "news",
		Short: "Fetch the latest headlines once",
		Args:  cobra.NoArgs,
		RunE:  runNewsCmd,
	}
}

func runNewsCmd(cmd *cobra.Command, _ []string) error {
	svc := news.NewService(newsConfig(), nil)
	items, err := svc.Fetch(cmd.Context())
	if err != nil {
		logErrf("%s\n", svc.Describe(err))
		if errors.Is(err, news.ErrMissingConfig) {
			return fmt.Errorf("news is not configured")
		}
		return err
	}
	out := cmd.OutOrStdout()
	for i, item := range items {
		if _, err := fmt.Fprintf(out, "%d. %s\n   %s\n", i+1, item.Title, item.URL); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newResetBestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-best",
		Short: "Clear the all-time best time (session history is unaffected)",
		Args:  cobra.NoArgs,
		RunE:  runResetBestCmd,
	}
}

func runResetBestCmd(cmd *cobra.Command, _ []string) error {
	st, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	loaded := prefs.Load(cmd.Context(), st)
	if loaded.BestTime == nil {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "No best time recorded.")
		return err
	}
	if err := st.Delete(cmd.Context(), prefs.KeyBestTime); err != nil {
		return fmt.Errorf("failed to clear best time: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Cleared best time (%dms).\n", *loaded.BestTime)
	return err
}

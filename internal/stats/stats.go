// Package stats contains reaction statistics and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/reflex/internal/model"
)

const (
	sparkChars          = " .:-=+*#%@"
	terminalWidthBackup = 80
	trendLabel          = "Trend: "
)

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// TerminalWidth returns the stdout width, or 80 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderSummary prints aggregate figures for archived attempts.
func RenderSummary(w io.Writer, report Report) error {
	if len(report.Attempts) == 0 {
		_, err := fmt.Fprintln(w, "No attempts found.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Attempts: %d", len(report.Attempts)),
		fmt.Sprintf("Sessions: %d", report.Sessions),
		fmt.Sprintf("Best: %dms", report.Best),
		fmt.Sprintf("Average: %dms", report.Average),
		fmt.Sprintf("Rating: %s", Rating(report.Average)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderTrend prints a sparkline of the moving average, oldest on the left.
// Higher marks mean slower reactions.
func RenderTrend(w io.Writer, attempts []model.ArchivedAttempt, window, width int) error {
	if len(attempts) < 2 {
		return nil
	}
	values := make([]float64, len(attempts))
	for i, a := range attempts {
		values[i] = float64(a.ReactionMs)
	}
	values = MovingAverage(values, window)
	if room := width - len(trendLabel); room > 0 && len(values) > room {
		values = values[len(values)-room:]
	}
	_, err := fmt.Fprintf(w, "%s%s\n\n", trendLabel, Sparkline(values))
	return err
}

// RenderRecent prints the newest n attempts as a table.
func RenderRecent(w io.Writer, attempts []model.ArchivedAttempt, n int) error {
	if len(attempts) == 0 {
		return nil
	}
	if n > 0 && len(attempts) > n {
		attempts = attempts[len(attempts)-n:]
	}
	if _, err := fmt.Fprintln(w, "Recent Attempts"); err != nil {
		return err
	}
	headers := []string{"When", "Difficulty", "Reaction (ms)"}
	rows := make([][]string, 0, len(attempts))
	for i := len(attempts) - 1; i >= 0; i-- {
		a := attempts[i]
		rows = append(rows, []string{
			a.RecordedAt.Local().Format("2006-01-02 15:04:05"),
			string(a.Difficulty),
			fmt.Sprintf("%d", a.ReactionMs),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

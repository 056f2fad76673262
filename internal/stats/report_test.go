package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/reflex/internal/model"
	"github.com/verte-zerg/reflex/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "reflex.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	times := []int{320, 250, 180, 300}
	for i, ms := range times {
		session := "first"
		if i >= 2 {
			session = "second"
		}
		_, err := st.InsertAttempt(ctx, model.ArchivedAttempt{
			SessionID:  session,
			RecordedAt: time.Unix(0, 0).Add(time.Duration(i) * time.Minute),
			ReactionMs: ms,
			Difficulty: model.DifficultyMedium,
		})
		if err != nil {
			t.Fatalf("insert attempt: %v", err)
		}
	}

	report, err := BuildReport(ctx, st, model.AttemptFilter{Last: 3})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Attempts) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(report.Attempts))
	}
	if report.Attempts[0].ReactionMs != 250 {
		t.Fatalf("expected window to start at second attempt, got %+v", report.Attempts[0])
	}
	if report.Best != 180 {
		t.Fatalf("expected best 180, got %d", report.Best)
	}
	if report.Average != 243 {
		t.Fatalf("expected average 243, got %d", report.Average)
	}
	if report.Sessions != 2 {
		t.Fatalf("expected 2 sessions, got %d", report.Sessions)
	}

	var buf bytes.Buffer
	if err := RenderSummary(&buf, report); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if err := RenderTrend(&buf, report.Attempts, 2, 80); err != nil {
		t.Fatalf("render trend: %v", err)
	}
	if err := RenderRecent(&buf, report.Attempts, 2); err != nil {
		t.Fatalf("render recent: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Attempts: 3", "Best: 180ms", "Average: 243ms", "Trend: ", "Recent Attempts"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, Report{}); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No attempts found." {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestSparklineAndMovingAverage(t *testing.T) {
	avg := MovingAverage([]float64{100, 200, 300}, 2)
	want := []float64{100, 150, 250}
	for i := range want {
		if avg[i] != want[i] {
			t.Fatalf("moving average[%d] = %v, want %v", i, avg[i], want[i])
		}
	}
	line := Sparkline([]float64{1, 5, 9})
	if len(line) != 3 || line[0] != ' ' || line[2] != '@' {
		t.Fatalf("unexpected sparkline %q", line)
	}
	if flat := Sparkline([]float64{4, 4}); flat != "++" {
		t.Fatalf("unexpected flat sparkline %q", flat)
	}
}

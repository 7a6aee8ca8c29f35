package stats

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smarterGerman/diktat/internal/model"
	"github.com/smarterGerman/diktat/internal/store"
)

func seedSessions(t *testing.T, st *store.Store, n int) []int64 {
	t.Helper()
	ctx := context.Background()
	var ids []int64
	for i := 0; i < n; i++ {
		start := time.Unix(0, 0).Add(time.Duration(i) * time.Minute)
		end := start.Add(30 * time.Second)
		stats := model.SessionStats{
			StartedAt:      start,
			EndedAt:        end,
			Lesson:         "kapitel1",
			TotalWords:     10,
			AttemptedWords: 10,
			CorrectWords:   9,
			IncorrectWords: 1,
			AccuracyPct:    90,
			CompletionPct:  100,
			DurationMs:     end.Sub(start).Milliseconds(),
		}
		sentences := []model.SentenceResult{
			{Index: 0, Reference: "Es regnet heute", Transcript: "Es regnet heute", Attempted: true, RefWords: 3, Correct: 3},
		}
		id, err := st.InsertSession(ctx, stats, sentences)
		if err != nil {
			t.Fatalf("insert session: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "diktat.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	ids := seedSessions(t, st, 3)

	cfg := model.StatsConfig{Lesson: "kapitel1", Last: 2, CurveWindow: 2}
	report, err := BuildReport(context.Background(), st, cfg)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(report.Sessions))
	}
	if report.Sessions[0].SessionID != ids[1] || report.Sessions[1].SessionID != ids[2] {
		t.Fatalf("unexpected session ids: %+v", report.Sessions)
	}
}

func TestRenderReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "diktat.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	seedSessions(t, st, 2)

	report, err := BuildReport(context.Background(), st, model.StatsConfig{CurveWindow: 2})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	var buf bytes.Buffer
	if err := RenderReport(&buf, report); err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Summary", "Sessions: 2", "Avg Accuracy: 90.0%", "Recent Sessions", "kapitel1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderReport(&buf, Report{}); err != nil {
		t.Fatalf("render report: %v", err)
	}
	if !strings.Contains(buf.String(), "No sessions found.") {
		t.Fatalf("empty report output = %q", buf.String())
	}
}

func TestStoreSentencesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "diktat.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	ids := seedSessions(t, st, 1)

	sentences, err := st.ListSentences(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("list sentences: %v", err)
	}
	if len(sentences) != 1 {
		t.Fatalf("sentences = %+v", sentences)
	}
	if sentences[0].Reference != "Es regnet heute" || !sentences[0].Attempted {
		t.Fatalf("sentence = %+v", sentences[0])
	}
}

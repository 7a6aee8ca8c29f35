// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/smarterGerman/diktat/internal/model"
	"github.com/smarterGerman/diktat/internal/store"
)

const fallbackTermWidth = 80

// Report bundles the session data behind a stats view.
type Report struct {
	Sessions []model.SessionAggregate
	Window   int
}

// BuildReport loads sessions matching the stats config, applying the Last
// limit after the store-side filters.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list sessions: %w", err)
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	window := cfg.CurveWindow
	if window <= 0 {
		window = 1
	}
	return Report{Sessions: sessions, Window: window}, nil
}

// RenderReport writes a plain-text report: summary, accuracy curve, and a
// table of recent sessions.
func RenderReport(w io.Writer, r Report) error {
	if len(r.Sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}

	var sumAcc, sumCompl, sumWPM, bestAcc float64
	accs := make([]float64, len(r.Sessions))
	for i, s := range r.Sessions {
		acc, compl, wpm := SessionMetrics(s)
		sumAcc += acc
		sumCompl += compl
		sumWPM += wpm
		if acc > bestAcc {
			bestAcc = acc
		}
		accs[i] = acc
	}
	count := float64(len(r.Sessions))

	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", len(r.Sessions)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %.1f%%\n", sumAcc/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best Accuracy: %.1f%%\n", bestAcc); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Completion: %.1f%%\n", sumCompl/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg WPM: %.1f\n", sumWPM/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	curve := MovingAverage(accs, r.Window)
	if len(curve) > 1 {
		if _, err := fmt.Fprintln(w, "Accuracy Curve"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, Sparkline(clampToWidth(curve, terminalWidth()))); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "Recent Sessions"); err != nil {
		return err
	}
	headers := []string{"Date", "Lesson", "Accuracy", "Completion", "WPM"}
	rows := make([][]string, 0, len(r.Sessions))
	for _, s := range r.Sessions {
		acc, compl, wpm := SessionMetrics(s)
		rows = append(rows, []string{
			s.EndedAt.Format("2006-01-02 15:04"),
			s.Lesson,
			fmt.Sprintf("%.1f%%", acc),
			fmt.Sprintf("%.1f%%", compl),
			fmt.Sprintf("%.1f", wpm),
		})
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// clampToWidth downsamples a series so the sparkline fits the terminal.
func clampToWidth(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return values
	}
	out := make([]float64, width)
	for i := range out {
		out[i] = values[i*len(values)/width]
	}
	return out
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackTermWidth
	}
	return width
}

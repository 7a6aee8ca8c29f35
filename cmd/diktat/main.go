// Package main provides the CLI entrypoint for diktat.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/smarterGerman/diktat/internal/align"
	"github.com/smarterGerman/diktat/internal/config"
	"github.com/smarterGerman/diktat/internal/lesson"
	"github.com/smarterGerman/diktat/internal/model"
	"github.com/smarterGerman/diktat/internal/score"
	"github.com/smarterGerman/diktat/internal/stats"
	"github.com/smarterGerman/diktat/internal/statsui"
	"github.com/smarterGerman/diktat/internal/store"
	"github.com/smarterGerman/diktat/internal/tui"
)

const defaultCurveWindow = 20

var (
	practiceLesson       string
	practiceLessonDir    string
	practicePreserveCase bool

	checkPreserveCase bool

	statsLesson      string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsPlain       bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "diktat",
		Short:         "German dictation trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceLesson, "lesson", "", "lesson name or path to a lesson file")
	rootCmd.Flags().StringVar(&practiceLessonDir, "lesson-dir", "", "directory containing lesson files")
	rootCmd.Flags().BoolVar(&practicePreserveCase, "preserve-case", false, "treat letter case as significant")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLessonsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lesson", &practiceLesson, fileCfg.Practice.Lesson)
	applyStringConfig(cmd, "lesson-dir", &practiceLessonDir, fileCfg.Practice.LessonDir)
	applyBoolConfig(cmd, "preserve-case", &practicePreserveCase, fileCfg.Practice.PreserveCase)

	cfg := model.Config{
		Lesson:       practiceLesson,
		LessonDir:    practiceLessonDir,
		PreserveCase: practicePreserveCase,
	}
	if cfg.LessonDir == "" {
		cfg.LessonDir = config.DefaultLessonDir()
	}
	if cfg.Lesson == "" {
		return fmt.Errorf("no lesson selected\nRun: diktat lessons\nThen: diktat --lesson <name>")
	}

	lessonPath := resolveLessonPath(cfg)
	l, err := lesson.Load(lessonPath)
	if err != nil {
		return lessonLoadError(cfg.Lesson, lessonPath, err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	m := tui.NewModel(cfg, st, l)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check REFERENCE TRANSCRIPT",
		Short: "Compare a transcript file against a reference file",
		Args:  cobra.ExactArgs(2),
		RunE:  runCheckCmd,
	}
	cmd.Flags().BoolVar(&checkPreserveCase, "preserve-case", false, "treat letter case as significant")
	return cmd
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	ref, err := lesson.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load reference: %w", err)
	}
	transcript, err := loadTranscript(args[1])
	if err != nil {
		return fmt.Errorf("failed to load transcript: %w", err)
	}

	out := cmd.OutOrStdout()
	refSentences := ref.WordSentences()
	candSentences := make([][]string, len(refSentences))
	for i := range refSentences {
		if i < len(transcript) && transcript[i] != "" {
			candSentences[i] = lesson.Words(transcript[i])
		}
	}

	for i, refWords := range refSentences {
		if _, err := fmt.Fprintf(out, "%d: %s\n", i+1, renderCheckLine(refWords, candSentences[i], checkPreserveCase)); err != nil {
			return err
		}
	}

	agg := score.Aggregate(refSentences, candSentences, checkPreserveCase)
	if _, err := fmt.Fprintf(out, "\nWords: %d  Attempted: %d  Correct: %d  Incorrect: %d\n",
		agg.TotalWords, agg.AttemptedWords, agg.CorrectWords, agg.IncorrectWords); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(out, "Accuracy: %.1f%%  Completion: %.1f%%  (%d sub, %d ins, %d del)\n",
		agg.AccuracyPct, agg.CompletionPct, agg.Substitutions, agg.Insertions, agg.Deletions); err != nil {
		return err
	}
	return nil
}

// renderCheckLine renders one sentence's alignment with plain-text markers:
// correct words verbatim, substitutions as ref→typed, missing words in
// brackets, extra words with a plus.
func renderCheckLine(refWords, candWords []string, preserveCase bool) string {
	if candWords == nil {
		return "(not attempted)"
	}
	parts := make([]string, 0, len(refWords)+len(candWords))
	for _, op := range align.Align(refWords, candWords, preserveCase) {
		switch op.Kind {
		case align.Match:
			parts = append(parts, candWords[op.CandIndex])
		case align.Substitute:
			parts = append(parts, refWords[op.RefIndex]+"→"+candWords[op.CandIndex])
		case align.Delete:
			parts = append(parts, "["+refWords[op.RefIndex]+"]")
		case align.Insert:
			parts = append(parts, "+"+candWords[op.CandIndex])
		}
	}
	return strings.Join(parts, " ")
}

// loadTranscript reads a transcript file line by line, keeping blank lines
// so sentence indexes stay aligned with the reference.
func loadTranscript(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, strings.TrimSpace(line))
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out, nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLesson, "lesson", "", "lesson filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print the report instead of opening the pager")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Lesson:      statsLesson,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		report, err := stats.BuildReport(cmd.Context(), st, cfg)
		if err != nil {
			return err
		}
		return stats.RenderReport(cmd.OutOrStdout(), report)
	}

	m := statsui.NewModel(st, cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
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

func newLessonsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lessons",
		Short: "List lesson files",
		Args:  cobra.NoArgs,
		RunE:  runLessonsCmd,
	}
}

func runLessonsCmd(cmd *cobra.Command, _ []string) error {
	dir := practiceLessonDir
	if dir == "" {
		dir = config.DefaultLessonDir()
	}
	names, err := lesson.List(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logErrf("No lessons found. Put lesson files (*.txt, one sentence per line) in %s\n", dir)
			return fmt.Errorf("lesson directory does not exist")
		}
		return fmt.Errorf("failed to read lesson directory: %w", err)
	}
	if len(names) == 0 {
		logErrf("No lessons found. Put lesson files (*.txt, one sentence per line) in %s\n", dir)
		return fmt.Errorf("no lessons found")
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// resolveLessonPath accepts either a lesson name in the lesson dir or a
// direct path to a lesson file.
func resolveLessonPath(cfg model.Config) string {
	if strings.ContainsRune(cfg.Lesson, os.PathSeparator) || strings.HasSuffix(cfg.Lesson, ".txt") {
		return cfg.Lesson
	}
	return filepath.Join(cfg.LessonDir, cfg.Lesson+".txt")
}

func lessonLoadError(name, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load lesson: %v", err),
		fmt.Sprintf("expected lesson at: %s", path),
		fmt.Sprintf("lesson %q not found", name),
		"Run: diktat lessons",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
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

func defaultConfigTemplate() string {
	return `# diktat configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lesson = "kapitel1"     # Lesson name (file in the lesson dir, without .txt)
# lesson-dir = ""         # Directory containing lesson files
# preserve-case = false   # Treat letter case as significant
`
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

// Package tui provides the Bubble Tea dictation interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smarterGerman/diktat/internal/align"
	"github.com/smarterGerman/diktat/internal/lesson"
	"github.com/smarterGerman/diktat/internal/model"
	"github.com/smarterGerman/diktat/internal/score"
	"github.com/smarterGerman/diktat/internal/store"
)

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	extraStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Strikethrough(true)
	revealStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	inputStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// Model implements the Bubble Tea dictation UI.
type Model struct {
	config model.Config
	store  *store.Store
	lesson *lesson.Lesson

	width  int
	height int

	sentence    int
	input       string
	transcripts []string
	attempted   []bool
	reveal      bool

	started   bool
	startedAt time.Time

	finished bool
	saved    bool
	saveErr  string
	final    score.ExerciseStats
}

// NewModel constructs a dictation TUI model.
func NewModel(cfg model.Config, st *store.Store, l *lesson.Lesson) *Model {
	return &Model{
		config:      cfg,
		store:       st,
		lesson:      l,
		transcripts: make([]string, len(l.Sentences)),
		attempted:   make([]bool, len(l.Sentences)),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.finished {
			switch msg.Type {
			case tea.KeyCtrlC, tea.KeyEnter, tea.KeyEsc:
				return m, tea.Quit
			}
			if msg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyCtrlR:
			m.reveal = !m.reveal
			return m, nil
		case tea.KeyEnter:
			m.commitSentence()
			return m, nil
		case tea.KeyBackspace, tea.KeyDelete:
			m.handleBackspace()
			return m, nil
		case tea.KeySpace:
			m.handleRunes([]rune{' '})
			return m, nil
		case tea.KeyRunes:
			m.handleRunes(msg.Runes)
			return m, nil
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.finished {
		return m.viewResults()
	}
	return m.viewSentence()
}

func (m *Model) viewSentence() string {
	ref := lesson.Words(m.lesson.Sentences[m.sentence])
	cand := lesson.Words(m.input)
	judgments := align.MatchLive(ref, cand, m.config.PreserveCase)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s — Satz %d/%d", m.lesson.Name, m.sentence+1, len(m.lesson.Sentences))))
	b.WriteString("\n\n")

	contentWidth := m.contentWidth()
	b.WriteString(wrapCells(buildCells(judgments), contentWidth))
	b.WriteString("\n\n")

	if m.reveal {
		b.WriteString(revealStyle.Render(m.lesson.Sentences[m.sentence]))
		b.WriteString("\n\n")
	}

	b.WriteString(inputStyle.Render("> " + m.input))
	b.WriteString("\n")

	footer := footerStyle.Render("enter: next · ctrl+r: reveal · ctrl+c: abort")
	if m.width == 0 || m.height == 0 {
		return b.String() + "\n" + footer
	}
	content := lipgloss.NewStyle().Width(contentWidth).Render(b.String())
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) viewResults() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Ergebnis — " + m.lesson.Name))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Words:       %d\n", m.final.TotalWords))
	b.WriteString(fmt.Sprintf("Attempted:   %d\n", m.final.AttemptedWords))
	b.WriteString(fmt.Sprintf("Correct:     %d\n", m.final.CorrectWords))
	b.WriteString(fmt.Sprintf("Incorrect:   %d\n", m.final.IncorrectWords))
	b.WriteString(fmt.Sprintf("Accuracy:    %.1f%%\n", m.final.AccuracyPct))
	b.WriteString(fmt.Sprintf("Completion:  %.1f%%\n", m.final.CompletionPct))
	b.WriteString(fmt.Sprintf("Ops:         %d sub · %d ins · %d del\n", m.final.Substitutions, m.final.Insertions, m.final.Deletions))
	if m.saveErr != "" {
		b.WriteString("\n")
		b.WriteString(incorrectStyle.Render("save failed: " + m.saveErr))
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("q: quit"))
	if m.width == 0 || m.height == 0 {
		return b.String()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	return contentWidth
}

func (m *Model) handleBackspace() {
	if m.input == "" {
		return
	}
	runes := []rune(m.input)
	m.input = string(runes[:len(runes)-1])
}

func (m *Model) handleRunes(runes []rune) {
	if !m.started {
		m.started = true
		m.startedAt = time.Now()
	}
	m.input += string(runes)
}

// commitSentence freezes the current transcript and advances; after the
// last sentence the exercise is scored and saved.
func (m *Model) commitSentence() {
	m.transcripts[m.sentence] = strings.TrimSpace(m.input)
	m.attempted[m.sentence] = strings.TrimSpace(m.input) != ""
	m.input = ""
	m.reveal = false
	if m.sentence+1 < len(m.lesson.Sentences) {
		m.sentence++
		return
	}
	m.finishExercise()
}

func (m *Model) finishExercise() {
	refSentences := m.lesson.WordSentences()
	candSentences := make([][]string, len(refSentences))
	for i := range refSentences {
		if m.attempted[i] {
			candSentences[i] = lesson.Words(m.transcripts[i])
		}
	}
	m.final = score.Aggregate(refSentences, candSentences, m.config.PreserveCase)
	m.finished = true
	m.saveSession(refSentences, candSentences)
}

func (m *Model) saveSession(refSentences, candSentences [][]string) {
	if m.saved || !m.started {
		return
	}
	endedAt := time.Now()
	stats := model.SessionStats{
		StartedAt:      m.startedAt,
		EndedAt:        endedAt,
		Lesson:         m.lesson.Name,
		PreserveCase:   m.config.PreserveCase,
		TotalWords:     m.final.TotalWords,
		AttemptedWords: m.final.AttemptedWords,
		CorrectWords:   m.final.CorrectWords,
		IncorrectWords: m.final.IncorrectWords,
		AccuracyPct:    m.final.AccuracyPct,
		CompletionPct:  m.final.CompletionPct,
		Substitutions:  m.final.Substitutions,
		Insertions:     m.final.Insertions,
		Deletions:      m.final.Deletions,
		DurationMs:     endedAt.Sub(m.startedAt).Milliseconds(),
	}

	sentences := make([]model.SentenceResult, 0, len(refSentences))
	for i, ref := range refSentences {
		correct := 0
		attemptedWords := 0
		if candSentences[i] != nil {
			correct = score.CountCorrect(ref, candSentences[i], m.config.PreserveCase)
			attemptedWords = len(candSentences[i])
		}
		sentences = append(sentences, model.SentenceResult{
			Index:      i,
			Reference:  m.lesson.Sentences[i],
			Transcript: m.transcripts[i],
			Attempted:  m.attempted[i],
			RefWords:   len(ref),
			Correct:    correct,
			Incorrect:  attemptedWords - correct,
		})
	}

	ctx := context.Background()
	if _, err := m.store.InsertSession(ctx, stats, sentences); err != nil {
		m.saveErr = err.Error()
		logErrf("failed to save session: %v\n", err)
		return
	}
	m.saved = true
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

// Package lesson loads dictation lessons from text files.
package lesson

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Lesson holds the reference sentences of one exercise.
type Lesson struct {
	Name      string
	Path      string
	Sentences []string
}

// Load reads a lesson file: one sentence per line, blank lines and lines
// starting with '#' are skipped.
func Load(path string) (*Lesson, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only lesson file.
			_ = cerr
		}
	}()

	var sentences []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sentences = append(sentences, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(sentences) == 0 {
		return nil, fmt.Errorf("lesson is empty")
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Lesson{Name: name, Path: path, Sentences: sentences}, nil
}

// Words splits a sentence into its words.
func Words(sentence string) []string {
	return strings.Fields(sentence)
}

// WordSentences returns every sentence as a word slice.
func (l *Lesson) WordSentences() [][]string {
	out := make([][]string, len(l.Sentences))
	for i, s := range l.Sentences {
		out[i] = Words(s)
	}
	return out
}

// TotalWords counts the reference words of the whole lesson.
func (l *Lesson) TotalWords() int {
	total := 0
	for _, s := range l.Sentences {
		total += len(Words(s))
	}
	return total
}

// List returns the lesson names (without extension) found in dir.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".txt"))
	}
	sort.Strings(names)
	return names, nil
}

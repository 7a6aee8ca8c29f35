package lesson

import (
	"os"
	"path/filepath"
	"testing"
)

func writeLesson(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write lesson: %v", err)
	}
	return path
}

func TestLoadSkipsCommentsAndBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := writeLesson(t, dir, "kapitel1.txt", "# Kapitel 1\n\nEs regnet heute.\n  Der Hund bellt.  \n\n")
	l, err := Load(path)
	if err != nil {
		t.Fatalf("load lesson: %v", err)
	}
	if l.Name != "kapitel1" {
		t.Fatalf("name = %q", l.Name)
	}
	if len(l.Sentences) != 2 {
		t.Fatalf("sentences = %v", l.Sentences)
	}
	if l.Sentences[1] != "Der Hund bellt." {
		t.Fatalf("sentence not trimmed: %q", l.Sentences[1])
	}
	if l.TotalWords() != 6 {
		t.Fatalf("total words = %d, want 6", l.TotalWords())
	}
}

func TestLoadEmptyLessonFails(t *testing.T) {
	dir := t.TempDir()
	path := writeLesson(t, dir, "leer.txt", "# nur Kommentare\n\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for empty lesson")
	}
}

func TestWordSentences(t *testing.T) {
	l := &Lesson{Sentences: []string{"Es ist schön", "Hallo"}}
	ws := l.WordSentences()
	if len(ws) != 2 || len(ws[0]) != 3 || len(ws[1]) != 1 {
		t.Fatalf("word sentences = %v", ws)
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeLesson(t, dir, "b.txt", "x\n")
	writeLesson(t, dir, "a.txt", "x\n")
	writeLesson(t, dir, "notes.md", "x\n")
	names, err := List(dir)
	if err != nil {
		t.Fatalf("list lessons: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("names = %v", names)
	}
}

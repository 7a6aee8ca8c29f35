package chardiff

import (
	"strings"
	"testing"
)

func kinds(segs []Segment) []Kind {
	out := make([]Kind, len(segs))
	for i, s := range segs {
		out[i] = s.Kind
	}
	return out
}

func joinText(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestDiffEqualWords(t *testing.T) {
	segs := Diff("Hund", "Hund", true)
	if len(segs) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(segs))
	}
	for _, s := range segs {
		if s.Kind != Correct {
			t.Fatalf("expected all correct, got %+v", segs)
		}
	}
	if joinText(segs) != "Hund" {
		t.Fatalf("segments must spell the candidate, got %q", joinText(segs))
	}
}

func TestDiffCaseOnlyFirstLetter(t *testing.T) {
	segs := Diff("Berlin", "berlin", true)
	if len(segs) != 6 {
		t.Fatalf("expected 6 segments, got %d", len(segs))
	}
	if segs[0].Kind != Incorrect {
		t.Fatalf("first-letter case mismatch must be incorrect, got %v", segs[0].Kind)
	}
	for _, s := range segs[1:] {
		if s.Kind != Correct {
			t.Fatalf("expected rest correct, got %+v", segs)
		}
	}
	if !CaseOnly("Berlin", "berlin") {
		t.Fatalf("CaseOnly must report a capitalization-only mismatch")
	}
}

func TestDiffCaseOnlyIgnoredWhenCaseInsensitive(t *testing.T) {
	segs := Diff("Berlin", "berlin", false)
	for _, s := range segs {
		if s.Kind != Correct {
			t.Fatalf("case-insensitive mode must mark case slips correct, got %+v", segs)
		}
	}
}

func TestDiffCompoundContainment(t *testing.T) {
	segs := Diff("Montagmorgen", "morgen", false)
	if len(segs) != 12 {
		t.Fatalf("expected 12 segments, got %d", len(segs))
	}
	for i, s := range segs[:6] {
		if s.Kind != Placeholder {
			t.Fatalf("segment %d: expected placeholder, got %v", i, s.Kind)
		}
		if s.Text != PlaceholderGlyph {
			t.Fatalf("segment %d: expected glyph, got %q", i, s.Text)
		}
	}
	for i, s := range segs[6:] {
		if s.Kind != Correct {
			t.Fatalf("segment %d: expected correct, got %v", 6+i, s.Kind)
		}
	}
	if joinText(segs[6:]) != "morgen" {
		t.Fatalf("overlap must spell the candidate, got %q", joinText(segs[6:]))
	}
}

func TestDiffCompoundContainmentReversed(t *testing.T) {
	segs := Diff("morgen", "Montagmorgen", false)
	if len(segs) != 12 {
		t.Fatalf("expected 12 segments, got %d", len(segs))
	}
	for i, s := range segs[:6] {
		if s.Kind != Extra {
			t.Fatalf("segment %d: expected extra, got %v", i, s.Kind)
		}
	}
	for i, s := range segs[6:] {
		if s.Kind != Correct {
			t.Fatalf("segment %d: expected correct, got %v", 6+i, s.Kind)
		}
	}
}

func TestDiffUntypedWord(t *testing.T) {
	segs := Diff("Hund!", "", false)
	want := []Kind{Placeholder, Placeholder, Placeholder, Placeholder, Placeholder}
	got := kinds(segs)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v", got)
		}
	}
	// Punctuation renders literally, never as the glyph.
	if segs[4].Text != "!" {
		t.Fatalf("expected literal punctuation, got %q", segs[4].Text)
	}
	if segs[0].Text != PlaceholderGlyph {
		t.Fatalf("expected glyph for letter, got %q", segs[0].Text)
	}
}

func TestDiffScanInsertedCharacter(t *testing.T) {
	// Learner typed a stray 'x' before the right character.
	segs := Diff("Haus", "Hxaus", false)
	want := []Kind{Correct, Incorrect, Correct, Correct, Correct}
	got := kinds(segs)
	if len(got) != len(want) {
		t.Fatalf("got %d segments: %+v", len(got), segs)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

func TestDiffScanOmittedCharacter(t *testing.T) {
	// Learner skipped the 'a'; it shows as a placeholder.
	segs := Diff("Haus", "Hus", false)
	want := []Kind{Correct, Placeholder, Correct, Correct}
	got := kinds(segs)
	if len(got) != len(want) {
		t.Fatalf("got %d segments: %+v", len(got), segs)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

func TestDiffScanSubstitution(t *testing.T) {
	segs := Diff("Maus", "Haus", false)
	want := []Kind{Incorrect, Correct, Correct, Correct}
	got := kinds(segs)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

func TestDiffTrailingExtra(t *testing.T) {
	segs := Diff("Hund", "Hunden", false)
	got := kinds(segs)
	want := []Kind{Correct, Correct, Correct, Correct, Extra, Extra}
	if len(got) != len(want) {
		t.Fatalf("got %d segments: %+v", len(got), segs)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

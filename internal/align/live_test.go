package align

import (
	"testing"

	"github.com/smarterGerman/diktat/internal/chardiff"
)

func judgmentKinds(js []WordJudgment) []JudgmentKind {
	out := make([]JudgmentKind, len(js))
	for i, j := range js {
		out[i] = j.Kind
	}
	return out
}

func TestMatchLiveAllCorrect(t *testing.T) {
	ref := []string{"Es", "ist", "schön"}
	js := MatchLive(ref, []string{"Es", "ist", "schön"}, false)
	if len(js) != 3 {
		t.Fatalf("expected 3 judgments, got %d", len(js))
	}
	for i, j := range js {
		if j.Kind != JudgeCorrect {
			t.Fatalf("judgment %d: expected correct, got %v", i, j.Kind)
		}
	}
}

func TestMatchLiveNotationVariant(t *testing.T) {
	js := MatchLive([]string{"schön"}, []string{"schoen"}, false)
	if len(js) != 1 || js[0].Kind != JudgeCorrect {
		t.Fatalf("notation variant must judge correct, got %+v", js)
	}
}

func TestMatchLivePartialInput(t *testing.T) {
	ref := []string{"Es", "ist", "schön"}
	js := MatchLive(ref, []string{"Es", "ist"}, false)
	want := []JudgmentKind{JudgeCorrect, JudgeCorrect, JudgeMissing}
	got := judgmentKinds(js)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

// Judgments for already-matched words must not change when later words
// arrive.
func TestMatchLiveCausal(t *testing.T) {
	ref := []string{"Es", "ist", "schön"}
	before := MatchLive(ref, []string{"Es", "ist"}, false)
	after := MatchLive(ref, []string{"Es", "ist", "schoen"}, false)
	for i := 0; i < 2; i++ {
		if before[i].Kind != after[i].Kind || before[i].CandIndex != after[i].CandIndex {
			t.Fatalf("judgment %d changed retroactively: %+v vs %+v", i, before[i], after[i])
		}
	}
	if after[2].Kind != JudgeCorrect {
		t.Fatalf("expected final word correct, got %+v", after[2])
	}
}

func TestMatchLiveSkippedWord(t *testing.T) {
	// The learner dropped "kleine"; the next reference word still matches.
	ref := []string{"Der", "kleine", "Hund", "bellt"}
	js := MatchLive(ref, []string{"Der", "Hund", "bellt"}, false)
	want := []JudgmentKind{JudgeCorrect, JudgeMissing, JudgeCorrect, JudgeCorrect}
	got := judgmentKinds(js)
	if len(got) != len(want) {
		t.Fatalf("got %d judgments: %v", len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
	if js[2].CandWord != "Hund" {
		t.Fatalf("expected Hund to be claimed, got %+v", js[2])
	}
}

func TestMatchLiveExtraWordBeforeMatch(t *testing.T) {
	ref := []string{"Der", "Hund"}
	js := MatchLive(ref, []string{"Der", "ganz", "Hund"}, false)
	want := []JudgmentKind{JudgeCorrect, JudgeExtra, JudgeCorrect}
	got := judgmentKinds(js)
	if len(got) != len(want) {
		t.Fatalf("got %d judgments: %v", len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
	if js[1].CandWord != "ganz" || js[1].RefIndex != -1 {
		t.Fatalf("extra judgment malformed: %+v", js[1])
	}
}

func TestMatchLiveTrailingExtras(t *testing.T) {
	ref := []string{"Hallo"}
	js := MatchLive(ref, []string{"Hallo", "und", "tschüss"}, false)
	want := []JudgmentKind{JudgeCorrect, JudgeExtra, JudgeExtra}
	got := judgmentKinds(js)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

func TestMatchLiveCompoundPrefixIsPartial(t *testing.T) {
	// A half-typed compound should already register against its reference.
	js := MatchLive([]string{"Montagmorgen"}, []string{"Montag"}, false)
	if len(js) != 1 || js[0].Kind != JudgePartial {
		t.Fatalf("expected partial for compound prefix, got %+v", js)
	}
	if len(js[0].Segments) == 0 {
		t.Fatalf("partial judgment must carry char segments")
	}
}

func TestMatchLiveCaseOnlyFlag(t *testing.T) {
	js := MatchLive([]string{"Berlin"}, []string{"berlin"}, true)
	if len(js) != 1 || js[0].Kind != JudgePartial {
		t.Fatalf("expected partial for case slip, got %+v", js)
	}
	if !js[0].CaseOnly {
		t.Fatalf("expected CaseOnly flag, got %+v", js[0])
	}
	if js[0].Segments[0].Kind != chardiff.Incorrect {
		t.Fatalf("first letter must render incorrect, got %+v", js[0].Segments[0])
	}
}

func TestMatchLiveDissimilarWordNotConsumed(t *testing.T) {
	ref := []string{"Blume"}
	js := MatchLive(ref, []string{"Fahrrad"}, false)
	want := []JudgmentKind{JudgeMissing, JudgeExtra}
	got := judgmentKinds(js)
	if len(got) != len(want) {
		t.Fatalf("got %d judgments: %v", len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", got, want)
		}
	}
}

func TestMatchLivePositionPenaltyPrefersCloserWord(t *testing.T) {
	// Both candidates score 1.0 raw; the penalty must pick the nearer one.
	ref := []string{"da", "da"}
	js := MatchLive(ref, []string{"da", "da"}, false)
	if js[0].CandIndex != 0 || js[1].CandIndex != 1 {
		t.Fatalf("expected in-order claims, got %+v", js)
	}
}

func TestMatchLiveEmptyInputs(t *testing.T) {
	if js := MatchLive(nil, nil, false); len(js) != 0 {
		t.Fatalf("empty inputs must yield no judgments, got %v", js)
	}
	js := MatchLive([]string{"Wort"}, nil, false)
	if len(js) != 1 || js[0].Kind != JudgeMissing {
		t.Fatalf("empty candidate must yield missing, got %+v", js)
	}
}

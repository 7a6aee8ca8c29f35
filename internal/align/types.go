// Package align matches candidate word sequences against reference word
// sequences, globally for final scoring and incrementally for live typing.
package align

import "github.com/smarterGerman/diktat/internal/chardiff"

// OpKind classifies one step of an edit script.
type OpKind int

// Edit script operations.
const (
	Match OpKind = iota
	Substitute
	Insert
	Delete
)

// Op relates one reference and/or candidate position. RefIndex is -1 for
// Insert, CandIndex is -1 for Delete.
type Op struct {
	Kind      OpKind
	RefIndex  int
	CandIndex int
}

// JudgmentKind classifies a word for rendering.
type JudgmentKind int

// Word judgments.
const (
	JudgeCorrect JudgmentKind = iota
	JudgePartial
	JudgeMissing
	JudgeExtra
)

// WordJudgment is the per-word unit consumed by rendering. Segments always
// cover the word: the typed characters for correct/partial/extra words,
// placeholders for missing ones. CaseOnly marks a partial judgment whose
// only flaw is first-letter capitalization.
type WordJudgment struct {
	Kind      JudgmentKind
	RefIndex  int
	CandIndex int
	RefWord   string
	CandWord  string
	Segments  []chardiff.Segment
	CaseOnly  bool
}

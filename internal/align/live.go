package align

import (
	"github.com/smarterGerman/diktat/internal/chardiff"
	"github.com/smarterGerman/diktat/internal/similarity"
	"github.com/smarterGerman/diktat/internal/textnorm"
)

// LiveParams bundles the tuning constants of the streaming matcher. The
// values are empirically tuned; treat them as opaque.
type LiveParams struct {
	// Window is the number of unconsumed candidate words searched ahead.
	Window int
	// AcceptThreshold is the minimum score a match must exceed.
	AcceptThreshold float64
	// CompoundScore is assigned when one word contains the other.
	CompoundScore float64
	// FunctionWordFloor is the minimum score for near-miss function words.
	FunctionWordFloor float64
	// PenaltyLoose and PenaltyStrict are subtracted per lookahead position,
	// in case-insensitive and case-sensitive mode respectively.
	PenaltyLoose  float64
	PenaltyStrict float64
}

// DefaultLiveParams returns the tuning used by the application.
func DefaultLiveParams() LiveParams {
	return LiveParams{
		Window:            5,
		AcceptThreshold:   0.38,
		CompoundScore:     0.85,
		FunctionWordFloor: 0.75,
		PenaltyLoose:      0.01,
		PenaltyStrict:     0.03,
	}
}

// functionWords are short, common words that learners mistype in ways edit
// distance punishes too hard for their length.
var functionWords = map[string]struct{}{
	"der": {}, "die": {}, "das": {}, "den": {}, "dem": {}, "des": {},
	"ein": {}, "eine": {}, "er": {}, "sie": {}, "es": {}, "ich": {},
	"du": {}, "wir": {}, "ihr": {}, "ist": {}, "und": {}, "in": {},
	"im": {}, "an": {}, "am": {}, "auf": {}, "zu": {}, "von": {},
	"mit": {}, "für": {}, "als": {}, "wie": {}, "nicht": {}, "ja": {},
}

// MatchLive judges a growing transcript against reference words using the
// default tuning.
func MatchLive(ref, cand []string, preserveCase bool) []WordJudgment {
	return MatchLiveWith(ref, cand, preserveCase, DefaultLiveParams())
}

// MatchLiveWith walks the reference words left to right and greedily claims
// the best-scoring candidate inside a bounded forward window. The walk is
// causal: judgments for matched words never change as more candidate words
// arrive, so it can run on every keystroke.
func MatchLiveWith(ref, cand []string, preserveCase bool, p LiveParams) []WordJudgment {
	penalty := p.PenaltyLoose
	if preserveCase {
		penalty = p.PenaltyStrict
	}

	out := make([]WordJudgment, 0, len(ref)+len(cand))
	next := 0
	for ri, rw := range ref {
		best := -1
		bestScore := 0.0
		limit := next + p.Window
		if limit > len(cand) {
			limit = len(cand)
		}
		for ci := next; ci < limit; ci++ {
			score := wordScore(rw, cand[ci], p) - penalty*float64(ci-next)
			if score > bestScore {
				bestScore = score
				best = ci
			}
		}
		if best < 0 || bestScore <= p.AcceptThreshold {
			out = append(out, missingJudgment(rw, ri, preserveCase))
			continue
		}
		for ci := next; ci < best; ci++ {
			out = append(out, extraJudgment(cand[ci], ci))
		}
		out = append(out, matchedJudgment(rw, ri, cand[best], best, preserveCase))
		next = best + 1
	}
	for ci := next; ci < len(cand); ci++ {
		out = append(out, extraJudgment(cand[ci], ci))
	}
	return out
}

// wordScore rates one candidate word against one reference word, before the
// position penalty. Checked in order: normalized equality, function-word
// leniency, compound containment, plain similarity.
func wordScore(ref, cand string, p LiveParams) float64 {
	if similarity.AreExactlyEqual(ref, cand, false) {
		return 1.0
	}
	if isFunctionWord(ref) && similarity.AreSimilar(ref, cand) {
		score := similarity.Similarity(ref, cand)
		if score < p.FunctionWordFloor {
			score = p.FunctionWordFloor
		}
		return score
	}
	if similarity.IsCompoundSubstring(ref, cand) {
		return p.CompoundScore
	}
	return similarity.Similarity(ref, cand)
}

func isFunctionWord(w string) bool {
	_, ok := functionWords[textnorm.Word(w, false)]
	return ok
}

func matchedJudgment(rw string, ri int, cw string, ci int, preserveCase bool) WordJudgment {
	if similarity.AreExactlyEqual(rw, cw, preserveCase) {
		return WordJudgment{
			Kind:      JudgeCorrect,
			RefIndex:  ri,
			CandIndex: ci,
			RefWord:   rw,
			CandWord:  cw,
			Segments:  correctSegments(cw),
		}
	}
	return WordJudgment{
		Kind:      JudgePartial,
		RefIndex:  ri,
		CandIndex: ci,
		RefWord:   rw,
		CandWord:  cw,
		Segments:  chardiff.Diff(rw, cw, preserveCase),
		CaseOnly:  chardiff.CaseOnly(rw, cw),
	}
}

func missingJudgment(rw string, ri int, preserveCase bool) WordJudgment {
	return WordJudgment{
		Kind:      JudgeMissing,
		RefIndex:  ri,
		CandIndex: -1,
		RefWord:   rw,
		Segments:  chardiff.Diff(rw, "", preserveCase),
	}
}

func extraJudgment(cw string, ci int) WordJudgment {
	runes := []rune(cw)
	segs := make([]chardiff.Segment, 0, len(runes))
	for _, r := range runes {
		segs = append(segs, chardiff.Segment{Kind: chardiff.Extra, Text: string(r)})
	}
	return WordJudgment{
		Kind:      JudgeExtra,
		RefIndex:  -1,
		CandIndex: ci,
		CandWord:  cw,
		Segments:  segs,
	}
}

func correctSegments(cw string) []chardiff.Segment {
	runes := []rune(cw)
	segs := make([]chardiff.Segment, 0, len(runes))
	for _, r := range runes {
		segs = append(segs, chardiff.Segment{Kind: chardiff.Correct, Text: string(r)})
	}
	return segs
}

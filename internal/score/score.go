// Package score folds per-sentence dictation results into exercise-level
// statistics.
package score

import (
	"github.com/smarterGerman/diktat/internal/align"
	"github.com/smarterGerman/diktat/internal/similarity"
)

// ExerciseStats aggregates an exercise. Derived data only; recompute it
// whenever a sentence result changes.
type ExerciseStats struct {
	TotalWords     int
	AttemptedWords int
	CorrectWords   int
	IncorrectWords int
	CompletionPct  float64
	AccuracyPct    float64

	Matches       int
	Substitutions int
	Insertions    int
	Deletions     int
}

// Aggregate computes exercise statistics from reference sentences and the
// corresponding typed sentences. A nil entry in candSentences marks an
// unattempted sentence; an empty non-nil entry is an attempt with no words.
// Strictly-correct words are counted by greedy one-to-one claims: each typed
// word may claim at most one unclaimed, exactly-equal reference word of its
// sentence. Op counts come from a global alignment over the concatenation of
// all attempted material.
func Aggregate(refSentences, candSentences [][]string, preserveCase bool) ExerciseStats {
	var stats ExerciseStats
	var refAll, candAll []string

	for i, ref := range refSentences {
		stats.TotalWords += len(ref)
		refAll = append(refAll, ref...)
		if i >= len(candSentences) || candSentences[i] == nil {
			continue
		}
		cand := candSentences[i]
		stats.AttemptedWords += len(cand)
		stats.CorrectWords += CountCorrect(ref, cand, preserveCase)
		candAll = append(candAll, cand...)
	}
	stats.IncorrectWords = stats.AttemptedWords - stats.CorrectWords

	if stats.TotalWords > 0 {
		stats.CompletionPct = float64(stats.AttemptedWords) / float64(stats.TotalWords) * 100
		stats.AccuracyPct = float64(stats.CorrectWords) / float64(stats.TotalWords) * 100
	}

	for _, op := range align.Align(refAll, candAll, preserveCase) {
		switch op.Kind {
		case align.Match:
			stats.Matches++
		case align.Substitute:
			stats.Substitutions++
		case align.Insert:
			stats.Insertions++
		case align.Delete:
			stats.Deletions++
		}
	}
	return stats
}

// CountCorrect counts strictly-correct words in one sentence: each typed
// word claims at most one not-yet-claimed reference word it exactly equals.
func CountCorrect(ref, cand []string, preserveCase bool) int {
	claimed := make([]bool, len(ref))
	correct := 0
	for _, cw := range cand {
		for ri, rw := range ref {
			if claimed[ri] {
				continue
			}
			if similarity.AreExactlyEqual(rw, cw, preserveCase) {
				claimed[ri] = true
				correct++
				break
			}
		}
	}
	return correct
}

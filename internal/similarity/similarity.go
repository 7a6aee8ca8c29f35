// Package similarity scores how close a typed word is to a reference word.
package similarity

import (
	"strings"

	"github.com/smarterGerman/diktat/internal/textnorm"
)

// umlautBoost softens the penalty for words where alternate umlaut
// notations are in play; typos there are expected.
const umlautBoost = 1.2

// Distance is the minimum number of single-rune insertions, deletions, and
// substitutions needed to turn a into b.
func Distance(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}
	// Keep the shorter sequence in the DP row.
	if len(br) > len(ar) {
		ar, br = br, ar
	}
	row := make([]int, len(br)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(ar); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(br); j++ {
			cost := 1
			if ar[i-1] == br[j-1] {
				cost = 0
			}
			ins := row[j-1] + 1
			del := row[j] + 1
			sub := prev + cost
			prev = row[j]
			row[j] = min3(ins, del, sub)
		}
	}
	return row[len(br)]
}

// Similarity returns a score in [0,1] for two words, compared
// case-insensitively after normalization. Words touching umlauts or their
// alternate notations get a boosted score, capped at 1.
func Similarity(a, b string) float64 {
	na := textnorm.Word(a, false)
	nb := textnorm.Word(b, false)
	if na == nb {
		return 1.0
	}
	maxLen := len([]rune(na))
	if l := len([]rune(nb)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	score := 1.0 - float64(Distance(na, nb))/float64(maxLen)
	if textnorm.HasUmlautNotation(a) || textnorm.HasUmlautNotation(b) {
		score *= umlautBoost
	}
	if score > 1.0 {
		score = 1.0
	}
	if score < 0 {
		score = 0
	}
	return score
}

// AreSimilar reports whether two words are close enough to count as a
// variant of each other: identical after normalization, or within a
// length-scaled edit tolerance (1 edit for words of up to three runes,
// 2 edits for longer words).
func AreSimilar(a, b string) bool {
	na := textnorm.Word(a, false)
	nb := textnorm.Word(b, false)
	if na == nb {
		return true
	}
	longer := len([]rune(na))
	if l := len([]rune(nb)); l > longer {
		longer = l
	}
	tolerance := 2
	if longer <= 3 {
		tolerance = 1
	}
	return Distance(na, nb) <= tolerance
}

// AreExactlyEqual reports equality after normalization only, with no edit
// leniency. This is the comparison behind "strictly correct" counts.
func AreExactlyEqual(a, b string, preserveCase bool) bool {
	return textnorm.Word(a, preserveCase) == textnorm.Word(b, preserveCase)
}

// IsCompoundSubstring reports whether one word's normalized form appears as
// a contiguous substring of the other's, in either direction. This catches a
// typed word matching part of a longer reference compound.
func IsCompoundSubstring(a, b string) bool {
	na := textnorm.Word(a, false)
	nb := textnorm.Word(b, false)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(nb, na) || strings.Contains(na, nb)
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

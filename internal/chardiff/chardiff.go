// Package chardiff explains, character by character, why a matched but
// imperfect word pair differs.
package chardiff

import (
	"strings"
	"unicode"
)

// Kind classifies one diff segment.
type Kind int

// Segment kinds.
const (
	Correct Kind = iota
	Incorrect
	Placeholder
	Extra
)

// PlaceholderGlyph stands in for an un-typed reference character.
const PlaceholderGlyph = "_"

// Segment is one character of diff output. Text holds the character to
// render: the typed character for Correct/Incorrect/Extra, the placeholder
// glyph (or a literal punctuation character) for Placeholder.
type Segment struct {
	Kind Kind
	Text string
}

// lookahead bounds the resynchronization scan in the general case.
const lookahead = 3

// CaseOnly reports whether ref and cand differ by letter case alone with a
// mismatch on the first letter, the "forgot to capitalize" situation callers
// may want to call out separately.
func CaseOnly(ref, cand string) bool {
	if ref == cand || !strings.EqualFold(ref, cand) {
		return false
	}
	rr := []rune(ref)
	cr := []rune(cand)
	return len(rr) > 0 && len(cr) > 0 && rr[0] != cr[0]
}

// Diff compares a candidate word against a reference word and returns one
// segment per rendered character.
func Diff(ref, cand string, preserveCase bool) []Segment {
	rr := []rune(ref)
	cr := []rune(cand)

	if len(cr) == 0 {
		out := make([]Segment, 0, len(rr))
		for _, r := range rr {
			out = append(out, placeholderFor(r))
		}
		return out
	}
	if len(rr) == 0 {
		out := make([]Segment, 0, len(cr))
		for _, r := range cr {
			out = append(out, Segment{Kind: Extra, Text: string(r)})
		}
		return out
	}

	if strings.EqualFold(ref, cand) {
		return diffCaseOnly(rr, cr, preserveCase)
	}
	if idx := foldIndex(rr, cr); idx >= 0 {
		return diffContained(rr, cr, idx, preserveCase)
	}
	if idx := foldIndex(cr, rr); idx >= 0 {
		return diffContaining(rr, cr, idx, preserveCase)
	}
	return diffScan(rr, cr, preserveCase)
}

// diffCaseOnly handles words equal up to letter case. Only a first-letter
// case mismatch is surfaced, and only when case matters.
func diffCaseOnly(rr, cr []rune, preserveCase bool) []Segment {
	out := make([]Segment, 0, len(cr))
	for i, r := range cr {
		kind := Correct
		if preserveCase && i == 0 && r != rr[0] {
			kind = Incorrect
		}
		out = append(out, Segment{Kind: kind, Text: string(r)})
	}
	return out
}

// diffContained handles a candidate that is a substring of the reference
// compound: the un-typed parts become placeholders.
func diffContained(rr, cr []rune, idx int, preserveCase bool) []Segment {
	out := make([]Segment, 0, len(rr))
	for _, r := range rr[:idx] {
		out = append(out, placeholderFor(r))
	}
	for i, c := range cr {
		out = append(out, compareRune(rr[idx+i], c, preserveCase))
	}
	for _, r := range rr[idx+len(cr):] {
		out = append(out, placeholderFor(r))
	}
	return out
}

// diffContaining handles a reference that is a substring of the candidate:
// the surplus typed parts are extra.
func diffContaining(rr, cr []rune, idx int, preserveCase bool) []Segment {
	out := make([]Segment, 0, len(cr))
	for _, c := range cr[:idx] {
		out = append(out, Segment{Kind: Extra, Text: string(c)})
	}
	for i, r := range rr {
		out = append(out, compareRune(r, cr[idx+i], preserveCase))
	}
	for _, c := range cr[idx+len(rr):] {
		out = append(out, Segment{Kind: Extra, Text: string(c)})
	}
	return out
}

// diffScan walks both words once, resynchronizing with a bounded lookahead
// on either side before falling back to a plain substitution.
func diffScan(rr, cr []rune, preserveCase bool) []Segment {
	out := make([]Segment, 0, len(rr)+len(cr))
	i, j := 0, 0
	for i < len(rr) && j < len(cr) {
		if runesMatch(rr[i], cr[j], preserveCase) {
			out = append(out, Segment{Kind: Correct, Text: string(cr[j])})
			i++
			j++
			continue
		}
		if k := findAhead(cr, j, rr[i], preserveCase); k >= 0 {
			// The learner inserted garbage before the right character.
			for ; j < k; j++ {
				out = append(out, Segment{Kind: Incorrect, Text: string(cr[j])})
			}
			continue
		}
		if k := findAhead(rr, i, cr[j], preserveCase); k >= 0 {
			// The learner skipped reference characters.
			for ; i < k; i++ {
				out = append(out, placeholderFor(rr[i]))
			}
			continue
		}
		out = append(out, Segment{Kind: Incorrect, Text: string(cr[j])})
		i++
		j++
	}
	for ; i < len(rr); i++ {
		out = append(out, placeholderFor(rr[i]))
	}
	for ; j < len(cr); j++ {
		out = append(out, Segment{Kind: Extra, Text: string(cr[j])})
	}
	return out
}

// findAhead searches runes (pos, pos+lookahead] for want.
func findAhead(runes []rune, pos int, want rune, preserveCase bool) int {
	for k := pos + 1; k <= pos+lookahead && k < len(runes); k++ {
		if runesMatch(runes[k], want, preserveCase) {
			return k
		}
	}
	return -1
}

func compareRune(ref, cand rune, preserveCase bool) Segment {
	if runesMatch(ref, cand, preserveCase) {
		return Segment{Kind: Correct, Text: string(cand)}
	}
	return Segment{Kind: Incorrect, Text: string(cand)}
}

func runesMatch(a, b rune, preserveCase bool) bool {
	if a == b {
		return true
	}
	if preserveCase {
		return false
	}
	return unicode.ToLower(a) == unicode.ToLower(b)
}

// placeholderFor renders an un-typed reference character. Punctuation is
// always shown literally, never as the placeholder glyph.
func placeholderFor(r rune) Segment {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return Segment{Kind: Placeholder, Text: PlaceholderGlyph}
	}
	return Segment{Kind: Placeholder, Text: string(r)}
}

// foldIndex returns the rune index of the first case-insensitive occurrence
// of needle in haystack, or -1. An empty needle never matches.
func foldIndex(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		ok := true
		for k := range needle {
			if unicode.ToLower(haystack[i+k]) != unicode.ToLower(needle[k]) {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}

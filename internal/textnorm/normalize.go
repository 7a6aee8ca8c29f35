// Package textnorm canonicalizes German text for comparison.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Options controls normalization behavior.
type Options struct {
	// PreserveCase keeps letter case verbatim; otherwise text is lowercased.
	PreserveCase bool
	// KeepPunct keeps characters that are not letters, digits, or whitespace.
	KeepPunct bool
}

// Normalize canonicalizes alternate ASCII notations for umlauts and the
// sharp-s (ae/a:/a- style pairs), optionally strips punctuation, collapses
// whitespace runs, and case-folds unless Options.PreserveCase is set.
// The result is stable: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string, opts Options) string {
	if text == "" {
		return ""
	}
	s := norm.NFC.String(text)
	s = replaceNotations(s)
	if !opts.KeepPunct {
		s = stripPunct(s)
		// Stripping can join letters into a fresh notation pair
		// ("a.e" -> "ae"); replace once more so the result is stable.
		s = replaceNotations(s)
	}
	s = collapseSpace(s)
	if !opts.PreserveCase {
		s = strings.ToLower(s)
	}
	return s
}

// Word normalizes a single word for comparison: notation replacement,
// punctuation stripped, whitespace collapsed.
func Word(text string, preserveCase bool) string {
	return Normalize(text, Options{PreserveCase: preserveCase})
}

// umlautFor maps a base vowel to its umlaut form, case preserved.
func umlautFor(base rune) (rune, bool) {
	switch base {
	case 'a':
		return 'ä', true
	case 'A':
		return 'Ä', true
	case 'o':
		return 'ö', true
	case 'O':
		return 'Ö', true
	case 'u':
		return 'ü', true
	case 'U':
		return 'Ü', true
	}
	return 0, false
}

func isNotationSuffix(r rune) bool {
	switch unicode.ToLower(r) {
	case 'e', ':', '/':
		return true
	}
	return false
}

// replaceNotations rewrites two-character umlaut and sharp-s notations to
// their single-character forms. Pairs are matched case-insensitively,
// left to right, non-overlapping; the first character decides the case of
// the replacement.
func replaceNotations(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if i+1 < len(runes) {
			next := runes[i+1]
			if u, ok := umlautFor(r); ok && isNotationSuffix(next) {
				b.WriteRune(u)
				i++
				continue
			}
			if unicode.ToLower(r) == 's' {
				if n := unicode.ToLower(next); n == 's' || n == 'z' {
					b.WriteRune('ß')
					i++
					continue
				}
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func stripPunct(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// HasUmlautNotation reports whether text contains an umlaut, the sharp-s,
// or one of their alternate ASCII notations.
func HasUmlautNotation(text string) bool {
	runes := []rune(norm.NFC.String(text))
	for i, r := range runes {
		switch unicode.ToLower(r) {
		case 'ä', 'ö', 'ü', 'ß':
			return true
		}
		if i+1 < len(runes) {
			next := runes[i+1]
			if _, ok := umlautFor(r); ok && isNotationSuffix(next) {
				return true
			}
			if unicode.ToLower(r) == 's' {
				if n := unicode.ToLower(next); n == 's' || n == 'z' {
					return true
				}
			}
		}
	}
	return false
}

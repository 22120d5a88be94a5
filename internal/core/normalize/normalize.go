// Package normalize provides the deterministic review cleaner that runs before tokenization
// Pipeline order
// 1 Strip html-like tags
// 2 Collapse whitespace runs to one space and trim
// 3 Replace leftover newline, carriage return and tab runs with a space
// 4 Replace ASCII control runs (0x00-0x1F, 0x7F) with a space
// 5 Collapse 3+ repeats of the same punctuation or symbol down to 2
// 6 Replace runs of characters outside the allowed set with a space
// 7 Collapse 3+ repeats of any character down to 1
// 8 Replace a lowercase n with its surrounding whitespace by one space
//
// Steps 5, 7 and 8 rely on backreferences or lookahead in their regex form, which RE2
// does not support, so they are rune scanners with the same match semantics
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reTags     = regexp.MustCompile(`<[^>]+>`)
	reLineTabs = regexp.MustCompile(`[\n\r\t]+`)
	reControls = regexp.MustCompile(`[\x00-\x1F\x7F]+`)
)

// allowedPunct is the punctuation kept by step 6
const allowedPunct = `.,!?:;"'()-…/`

// Normalizer is stateless and safe for concurrent use
type Normalizer struct{}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the cleaned form of s following the pipeline described above
func (n *Normalizer) Normalize(s string) string { return Clean(s) }

// Clean is the package level form of Normalizer.Normalize
func Clean(s string) string {
	if s == "" {
		return ""
	}

	// invalid bytes cannot be represented downstream
	s = strings.ToValidUTF8(s, "")

	s = reTags.ReplaceAllString(s, "")      // 1
	s = collapseSpaces(s)                   // 2
	s = reLineTabs.ReplaceAllString(s, " ") // 3
	s = reControls.ReplaceAllString(s, " ") // 4
	s = squeezeSymbols(s)                   // 5
	s = replaceDisallowed(s)                // 6
	s = squeezeRuns(s)                      // 7
	s = dropLoneN(s)                        // 8
	return s
}

// isSpace matches the unicode whitespace class used by the cleaner,
// which also counts the ASCII file, group, record and unit separators
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1C && r <= 0x1F)
}

// isWord matches letters, numbers and underscore
func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isAllowed(r rune) bool {
	return isWord(r) || isSpace(r) || strings.ContainsRune(allowedPunct, r)
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims both ends
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if isSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}

// runs walks s as maximal runs of the same rune and lets emit decide what to write
func runs(s string, emit func(b *strings.Builder, r rune, n int)) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(rs); {
		j := i + 1
		for j < len(rs) && rs[j] == rs[i] {
			j++
		}
		emit(&b, rs[i], j-i)
		i = j
	}
	return b.String()
}

func writeN(b *strings.Builder, r rune, n int) {
	for k := 0; k < n; k++ {
		b.WriteRune(r)
	}
}

// squeezeSymbols keeps at most two copies of a repeated punctuation or symbol
func squeezeSymbols(s string) string {
	return runs(s, func(b *strings.Builder, r rune, n int) {
		if n >= 3 && !isWord(r) && !isSpace(r) {
			n = 2
		}
		writeN(b, r, n)
	})
}

// replaceDisallowed turns each run of characters outside the allowed set into one space
func replaceDisallowed(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inBad := false
	for _, r := range s {
		if isAllowed(r) {
			inBad = false
			b.WriteRune(r)
			continue
		}
		if !inBad {
			b.WriteByte(' ')
		}
		inBad = true
	}
	return b.String()
}

// squeezeRuns keeps one copy of any character repeated three or more times
// newlines are exempt, matching a dot that does not cross lines
func squeezeRuns(s string) string {
	return runs(s, func(b *strings.Builder, r rune, n int) {
		if n >= 3 && r != '\n' {
			n = 1
		}
		writeN(b, r, n)
	})
}

// dropLoneN replaces every lowercase n, together with the whitespace on both sides, by one space
// A whitespace run only belongs to a match when an n follows it
func dropLoneN(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(rs); {
		r := rs[i]
		if isSpace(r) {
			j := i
			for j < len(rs) && isSpace(rs[j]) {
				j++
			}
			if j < len(rs) && rs[j] == 'n' {
				i = skipSpaces(rs, j+1)
				b.WriteByte(' ')
				continue
			}
			for k := i; k < j; k++ {
				b.WriteRune(rs[k])
			}
			i = j
			continue
		}
		if r == 'n' {
			i = skipSpaces(rs, i+1)
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
		i++
	}
	return b.String()
}

func skipSpaces(rs []rune, i int) int {
	for i < len(rs) && isSpace(rs[i]) {
		i++
	}
	return i
}

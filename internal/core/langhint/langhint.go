// Package langhint guesses the writing system of a review
package langhint

import "unicode"

// Script names returned by Script
const (
	Latin    = "Latin"
	Cyrillic = "Cyrillic"
	Greek    = "Greek"
	Arabic   = "Arabic"
	Hebrew   = "Hebrew"
	Han      = "Han"
	Kana     = "Kana"
	Hangul   = "Hangul"
	Other    = "Other"
)

var tables = []struct {
	name string
	rt   *unicode.RangeTable
}{
	{Cyrillic, unicode.Cyrillic},
	{Latin, unicode.Latin},
	{Greek, unicode.Greek},
	{Arabic, unicode.Arabic},
	{Hebrew, unicode.Hebrew},
	{Kana, unicode.Hiragana},
	{Kana, unicode.Katakana},
	{Hangul, unicode.Hangul},
	{Han, unicode.Han},
}

// Script returns the script with the most letters in s, or "" when s has none
// ties go to the script listed first, so mixed ru/en text reports Cyrillic
func Script(s string) string {
	counts := map[string]int{}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		name := Other
		for _, t := range tables {
			if unicode.Is(t.rt, r) {
				name = t.name
				break
			}
		}
		counts[name]++
	}

	best, n := "", 0
	for _, t := range tables {
		if c := counts[t.name]; c > n {
			best, n = t.name, c
		}
	}
	if c := counts[Other]; c > n {
		best = Other
	}
	return best
}

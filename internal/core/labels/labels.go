// Package labels defines the fixed sentiment enumeration and the logits decoding rules
package labels

import (
	"fmt"
	"math"
	"strings"
)

// Label is the order significant class index produced by the model
type Label uint8

const (
	// Neutral is class 0
	Neutral Label = iota
	// Positive is class 1
	Positive
	// Negative is class 2
	Negative
)

// Count is the number of classes the model emits
const Count = 3

// Locale selects a display name table
type Locale string

const (
	// LocaleEN uses English names
	LocaleEN Locale = "en"
	// LocaleRU uses the Russian names the model was trained with
	LocaleRU Locale = "ru"
)

var names = map[Locale][Count]string{
	LocaleEN: {"Neutral", "Positive", "Negative"},
	LocaleRU: {"Нейтральный", "Положительный", "Отрицательный"},
}

// All returns every label in index order
func All() []Label { return []Label{Neutral, Positive, Negative} }

// Valid reports whether l is one of the three classes
func (l Label) Valid() bool { return l < Count }

// Name returns the display name in the given locale, falling back to English
func (l Label) Name(loc Locale) string {
	if !l.Valid() {
		return fmt.Sprintf("Label(%d)", uint8(l))
	}
	tbl, ok := names[loc]
	if !ok {
		tbl = names[LocaleEN]
	}
	return tbl[l]
}

// String implements fmt.Stringer with English names
func (l Label) String() string { return l.Name(LocaleEN) }

// ParseLocale returns a known locale or English
func ParseLocale(s string) Locale {
	loc := Locale(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := names[loc]; ok {
		return loc
	}
	return LocaleEN
}

// Prediction is the decoded result for one row
type Prediction struct {
	Label      Label
	Confidence float64
}

// Argmax returns the index of the largest logit, first wins on ties
func Argmax(logits []float32) int {
	best := 0
	for i := 1; i < len(logits); i++ {
		if logits[i] > logits[best] {
			best = i
		}
	}
	return best
}

// Softmax returns numerically stable probabilities for logits
func Softmax(logits []float32) []float64 {
	out := make([]float64, len(logits))
	if len(logits) == 0 {
		return out
	}
	maxv := float64(logits[Argmax(logits)])
	var sum float64
	for i, v := range logits {
		e := math.Exp(float64(v) - maxv)
		out[i] = e
		sum += e
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// Decide picks the argmax label and its softmax probability
// logits must hold exactly Count values
func Decide(logits []float32) (Prediction, error) {
	if len(logits) != Count {
		return Prediction{}, fmt.Errorf("labels: want %d logits, got %d", Count, len(logits))
	}
	idx := Argmax(logits)
	probs := Softmax(logits)
	return Prediction{Label: Label(idx), Confidence: probs[idx]}, nil
}

// DecideAll decodes a batch of logit rows
func DecideAll(rows [][]float32) ([]Prediction, error) {
	out := make([]Prediction, 0, len(rows))
	for i, row := range rows {
		p, err := Decide(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Package hf adapts a HuggingFace tokenizer.json to the batcher Tokenizer seam
package hf

import (
	"fmt"
	"strings"

	"reviewsense/internal/core/batcher"
	"reviewsense/internal/platform/logger"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// Special token strings used by BERT style vocabularies
const (
	TokenCLS = "[CLS]"
	TokenSEP = "[SEP]"
	TokenPAD = "[PAD]"
)

// Config locates the tokenizer artifact
type Config struct {
	// Path is a tokenizer.json file or a directory holding one
	Path string
}

// encoder is the part of *tokenizer.Tokenizer we call, kept narrow for tests
type encoder interface {
	EncodeSingle(input string, addSpecialTokensOpt ...bool) (*tokenizer.Encoding, error)
}

// Tokenizer implements batcher.Tokenizer over sugarme/tokenizer
type Tokenizer struct {
	enc      encoder
	specials batcher.Specials
}

var _ batcher.Tokenizer = (*Tokenizer)(nil)

// seam for tests
var fromFile = pretrained.FromFile

// Load reads tokenizer.json and resolves the special token ids
func Load(cfg Config) (*Tokenizer, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		return nil, fmt.Errorf("tokenizer path is empty")
	}
	if !strings.HasSuffix(path, ".json") {
		path = strings.TrimRight(path, "/") + "/tokenizer.json"
	}

	tk, err := fromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %s: %w", path, err)
	}
	// batcher owns truncation and padding
	tk.WithTruncation(nil)
	tk.WithPadding(nil)

	sp, err := resolveSpecials(tk.TokenToId)
	if err != nil {
		return nil, err
	}

	logger.Named("tokenizer").Info().
		Str("path", path).
		Int64("cls", sp.CLS).
		Int64("sep", sp.SEP).
		Int64("pad", sp.PAD).
		Msg("tokenizer loaded")

	return &Tokenizer{enc: tk, specials: sp}, nil
}

// resolveSpecials looks up CLS, SEP and PAD ids through lookup
func resolveSpecials(lookup func(string) (int, bool)) (batcher.Specials, error) {
	var sp batcher.Specials
	for _, t := range []struct {
		tok string
		dst *int64
	}{
		{TokenCLS, &sp.CLS},
		{TokenSEP, &sp.SEP},
		{TokenPAD, &sp.PAD},
	} {
		id, ok := lookup(t.tok)
		if !ok {
			return sp, fmt.Errorf("tokenizer vocabulary lacks %s", t.tok)
		}
		*t.dst = int64(id)
	}
	return sp, nil
}

// Encode returns ids without special tokens
// encoding failures are logged and yield an empty sequence
func (t *Tokenizer) Encode(text string) []int64 {
	en, err := t.enc.EncodeSingle(text, false)
	if err != nil {
		logger.Named("tokenizer").Warn().Err(err).Int("text_len", len(text)).Msg("encode failed")
		return nil
	}
	ids := en.Ids
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

// Specials returns the resolved special token ids
func (t *Tokenizer) Specials() batcher.Specials { return t.specials }

// Package batcher turns cleaned texts into fixed length model inputs using head and tail truncation
package batcher

// Defaults used when a Batcher field is left at zero
const (
	DefaultHead      = 100
	DefaultTail      = 100
	DefaultMaxLength = 300

	// slack is how far past head+tail a text may run before the middle is cut
	slack = 10
)

// Specials are the tokenizer ids used for wrapping and padding
type Specials struct {
	CLS int64
	SEP int64
	PAD int64
}

// Tokenizer is the narrow seam over a pretrained tokenizer
// Encode returns ids without special tokens and never fails; unusable input yields no ids
type Tokenizer interface {
	Encode(text string) []int64
	Specials() Specials
}

// Batch holds two rectangular arrays of identical shape rows x MaxLength
type Batch struct {
	InputIDs      [][]int64
	AttentionMask [][]int64
}

// Len returns the number of rows
func (b Batch) Len() int { return len(b.InputIDs) }

// Batcher applies head/tail truncation, special token wrapping and right padding
type Batcher struct {
	Tok       Tokenizer
	Head      int
	Tail      int
	MaxLength int
}

// New constructs a Batcher with default budgets
func New(tok Tokenizer) *Batcher {
	return &Batcher{Tok: tok, Head: DefaultHead, Tail: DefaultTail, MaxLength: DefaultMaxLength}
}

func (b *Batcher) budgets() (head, tail, maxLen int) {
	head, tail, maxLen = b.Head, b.Tail, b.MaxLength
	if head <= 0 {
		head = DefaultHead
	}
	if tail <= 0 {
		tail = DefaultTail
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}
	return head, tail, maxLen
}

// PrepareBatch encodes every text into one row, keeping input order
func (b *Batcher) PrepareBatch(texts []string) Batch {
	out := Batch{
		InputIDs:      make([][]int64, 0, len(texts)),
		AttentionMask: make([][]int64, 0, len(texts)),
	}
	for _, t := range texts {
		ids, mask := b.Row(t)
		out.InputIDs = append(out.InputIDs, ids)
		out.AttentionMask = append(out.AttentionMask, mask)
	}
	return out
}

// Row encodes a single text into input ids and attention mask of length MaxLength
func (b *Batcher) Row(text string) (ids, mask []int64) {
	head, tail, maxLen := b.budgets()
	sp := b.Tok.Specials()
	content := Truncate(b.Tok.Encode(text), head, tail, sp.SEP)
	return Wrap(content, sp, maxLen)
}

// Truncate keeps ids unchanged unless they exceed head+tail+slack,
// in which case the result is the first head ids, sep, then the last tail ids
func Truncate(ids []int64, head, tail int, sep int64) []int64 {
	if len(ids) <= head+tail+slack {
		return ids
	}
	out := make([]int64, 0, head+1+tail)
	out = append(out, ids[:head]...)
	out = append(out, sep)
	out = append(out, ids[len(ids)-tail:]...)
	return out
}

// Wrap adds CLS and SEP around content, cuts content from the right so the
// wrapped row fits maxLen, then right pads with PAD
// Mask is 1 for content and special tokens and 0 for padding
func Wrap(content []int64, sp Specials, maxLen int) (ids, mask []int64) {
	ids = make([]int64, maxLen)
	mask = make([]int64, maxLen)
	if maxLen <= 0 {
		return ids, mask
	}

	room := maxLen - 2
	if room < 0 {
		room = 0
	}
	if len(content) > room {
		content = content[:room]
	}

	row := make([]int64, 0, len(content)+2)
	row = append(row, sp.CLS)
	row = append(row, content...)
	row = append(row, sp.SEP)
	if len(row) > maxLen {
		row = row[:maxLen]
	}

	n := copy(ids, row)
	for i := 0; i < n; i++ {
		mask[i] = 1
	}
	for i := n; i < maxLen; i++ {
		ids[i] = sp.PAD
	}
	return ids, mask
}

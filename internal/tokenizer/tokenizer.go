package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the BPE encoding used when the config does not
// name one.
const DefaultEncoding = "cl100k_base"

// Codec converts text to a sequence of token ids and back. Implementations
// must be deterministic for a given model version and safe for concurrent
// use after construction.
type Codec interface {
	Encode(text string) []int
	Decode(ids []int) string
}

// Tiktoken wraps a pretrained BPE encoding. The vocabulary is loaded once
// at construction and is read-only afterwards.
type Tiktoken struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func New(encoding string) (*Tiktoken, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}

	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer encoding '%s': %w", encoding, err)
	}

	return &Tiktoken{
		encoding: enc,
		name:     encoding,
	}, nil
}

func (t *Tiktoken) Encode(text string) []int {
	return t.encoding.Encode(text, nil, nil)
}

// Decode reconstructs text from token ids. Special tokens are never
// produced by Encode, so the output contains ordinary text only.
func (t *Tiktoken) Decode(ids []int) string {
	return t.encoding.Decode(ids)
}

func (t *Tiktoken) Name() string {
	return t.name
}

// Copyright 2025 Lexia
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

// Package chunker splits token sequences into overlapping windows bounded
// by a maximum token count per chunk.
package chunker

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lexia/lexbrain/internal/tokenizer"
)

// windowMargin is subtracted from the requested chunk size to guard
// against boundary token growth when the window is decoded back to text.
const windowMargin = 5

var ErrStepTooSmall = errors.New("chunk step must advance at least one token")

// Splitter produces ordered, possibly overlapping chunks of a document.
type Splitter struct {
	codec tokenizer.Codec
}

func NewSplitter(codec tokenizer.Codec) *Splitter {
	return &Splitter{codec: codec}
}

// Split encodes text and materializes one decoded chunk per token window
// of at most maxTokens-5 tokens, advancing by step = window - floor(window*overlap).
// Chunks that are empty after trimming surrounding whitespace are dropped.
// A (maxTokens, overlap) pair whose step would not advance the window is
// rejected with ErrStepTooSmall.
func (s *Splitter) Split(text string, maxTokens int, overlap float64) ([]string, error) {
	window := maxTokens - windowMargin
	step := window - int(float64(window)*overlap)
	if step < 1 {
		return nil, fmt.Errorf("%w: max_tokens=%d overlap=%g", ErrStepTooSmall, maxTokens, overlap)
	}

	ids := s.codec.Encode(text)

	chunks := make([]string, 0, len(ids)/step+1)
	for i := 0; i < len(ids); i += step {
		end := i + window
		if end > len(ids) {
			end = len(ids)
		}

		chunk := strings.TrimSpace(s.codec.Decode(ids[i:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	return chunks, nil
}

// LimitDetector decides whether a document's token count requires chunking.
type LimitDetector struct {
	codec tokenizer.Codec
}

func NewLimitDetector(codec tokenizer.Codec) *LimitDetector {
	return &LimitDetector{codec: codec}
}

// ExceedsLimit reports whether text encodes to strictly more than
// tokenLimit tokens.
func (d *LimitDetector) ExceedsLimit(text string, tokenLimit int) bool {
	count := len(d.codec.Encode(text))
	if count > tokenLimit {
		slog.Info("document exceeds token limit", "tokens", count, "limit", tokenLimit)
		return true
	}
	return false
}

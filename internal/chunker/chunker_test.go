package chunker_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lexia/lexbrain/internal/chunker"
)

// fakeCodec maps every whitespace-separated word to one token id, so token
// offsets can be checked exactly without loading a real vocabulary.
type fakeCodec struct {
	vocab map[string]int
	words []string
}

func newFakeCodec() *fakeCodec {
	return &fakeCodec{vocab: make(map[string]int)}
}

func (c *fakeCodec) Encode(text string) []int {
	fields := strings.Fields(text)
	ids := make([]int, 0, len(fields))
	for _, w := range fields {
		id, ok := c.vocab[w]
		if !ok {
			id = len(c.words)
			c.vocab[w] = id
			c.words = append(c.words, w)
		}
		ids = append(ids, id)
	}
	return ids
}

func (c *fakeCodec) Decode(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, c.words[id])
	}
	return strings.Join(parts, " ")
}

func wordText(n int) string {
	words := make([]string, 0, n)
	for i := range n {
		words = append(words, fmt.Sprintf("w%d", i))
	}
	return strings.Join(words, " ")
}

func TestSplitSingleChunk(t *testing.T) {
	s := chunker.NewSplitter(newFakeCodec())
	text := "  " + wordText(100) + "  "

	chunks, err := s.Split(text, 512, 0.2)
	if err != nil {
		t.Fatalf("expected nil error, got '%v'", err)
	}

	if len(chunks) != 1 {
		t.Fatalf("expected exactly 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != strings.TrimSpace(text) {
		t.Errorf("expected chunk to equal trimmed input, got '%s'", chunks[0])
	}
}

func TestSplitWindowOffsets(t *testing.T) {
	// 2000 tokens at max_tokens=512, overlap=0.2: effective window 507,
	// step 507 - floor(507*0.2) = 406, starts 0, 406, 812, 1218, 1624.
	s := chunker.NewSplitter(newFakeCodec())
	text := wordText(2000)

	chunks, err := s.Split(text, 512, 0.2)
	if err != nil {
		t.Fatalf("expected nil error, got '%v'", err)
	}

	if len(chunks) != 5 {
		t.Fatalf("expected 5 chunks, got %d", len(chunks))
	}

	wantStarts := []int{0, 406, 812, 1218, 1624}
	wantLens := []int{507, 507, 507, 507, 376}
	for i, chunk := range chunks {
		words := strings.Fields(chunk)
		if words[0] != fmt.Sprintf("w%d", wantStarts[i]) {
			t.Errorf("chunk %d: expected start token w%d, got '%s'", i, wantStarts[i], words[0])
		}
		if len(words) != wantLens[i] {
			t.Errorf("chunk %d: expected %d tokens, got %d", i, wantLens[i], len(words))
		}
	}
}

func TestSplitEmptyText(t *testing.T) {
	s := chunker.NewSplitter(newFakeCodec())

	chunks, err := s.Split("", 512, 0.2)
	if err != nil {
		t.Fatalf("expected nil error, got '%v'", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks for empty text, got %d", len(chunks))
	}
}

func TestSplitNoOverlapIsContiguous(t *testing.T) {
	s := chunker.NewSplitter(newFakeCodec())
	text := wordText(300)

	chunks, err := s.Split(text, 55, 0)
	if err != nil {
		t.Fatalf("expected nil error, got '%v'", err)
	}

	if joined := strings.Join(chunks, " "); joined != text {
		t.Errorf("expected contiguous chunks to reconstruct input, got '%s'", joined)
	}
}

func TestSplitOverlapMonotonic(t *testing.T) {
	s := chunker.NewSplitter(newFakeCodec())
	text := wordText(300)

	prev := 0
	for _, overlap := range []float64{0, 0.2, 0.4, 0.6, 0.8} {
		chunks, err := s.Split(text, 55, overlap)
		if err != nil {
			t.Fatalf("overlap %g: expected nil error, got '%v'", overlap, err)
		}
		if len(chunks) < prev {
			t.Errorf("overlap %g: chunk count decreased from %d to %d", overlap, prev, len(chunks))
		}
		prev = len(chunks)
	}
}

func TestSplitStepTooSmall(t *testing.T) {
	s := chunker.NewSplitter(newFakeCodec())

	for _, overlap := range []float64{1.0, 1.5} {
		_, err := s.Split(wordText(100), 512, overlap)
		if !errors.Is(err, chunker.ErrStepTooSmall) {
			t.Errorf("overlap %g: expected ErrStepTooSmall, got '%v'", overlap, err)
		}
	}

	// a window of zero tokens can never advance
	if _, err := s.Split(wordText(100), 5, 0); !errors.Is(err, chunker.ErrStepTooSmall) {
		t.Errorf("expected ErrStepTooSmall for max_tokens=5, got '%v'", err)
	}
}

func TestExceedsLimit(t *testing.T) {
	d := chunker.NewLimitDetector(newFakeCodec())
	text := wordText(10)

	if d.ExceedsLimit(text, 10) {
		t.Error("expected text at exactly the limit not to exceed it")
	}
	if !d.ExceedsLimit(text, 9) {
		t.Error("expected text above the limit to exceed it")
	}
}

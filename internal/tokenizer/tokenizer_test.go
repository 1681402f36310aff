package tokenizer_test

import (
	"testing"

	"github.com/lexia/lexbrain/internal/tokenizer"
)

func newCodec(t *testing.T) *tokenizer.Tiktoken {
	t.Helper()
	codec, err := tokenizer.New("")
	if err != nil {
		// GetEncoding fetches the vocabulary on first use
		t.Skipf("tokenizer encoding unavailable: %v", err)
	}
	return codec
}

func TestRoundtrip(t *testing.T) {
	codec := newCodec(t)

	text := "Apruebase la Rendicion de Cuentas y Balance de Ejecucion Presupuestal."
	ids := codec.Encode(text)
	if len(ids) == 0 {
		t.Fatal("expected at least one token")
	}

	if got := codec.Decode(ids); got != text {
		t.Errorf("roundtrip mismatch: got '%s'", got)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	codec := newCodec(t)

	text := "los mismos tokens cada vez"
	first := codec.Encode(text)
	second := codec.Encode(text)

	if len(first) != len(second) {
		t.Fatalf("token counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("token %d differs: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestDefaultEncodingName(t *testing.T) {
	codec := newCodec(t)
	if codec.Name() != tokenizer.DefaultEncoding {
		t.Errorf("expected encoding '%s', got '%s'", tokenizer.DefaultEncoding, codec.Name())
	}
}

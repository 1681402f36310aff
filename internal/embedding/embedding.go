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

package embedding

import (
	"context"
	"errors"

	"github.com/lexia/lexbrain/internal/embedding/cohere"
	"github.com/lexia/lexbrain/internal/embedding/gemini"
	"github.com/lexia/lexbrain/internal/embedding/novita"
	"github.com/lexia/lexbrain/internal/embedding/openai"
)

var ErrInvalidProviderType = errors.New("no embedding provider found for given type")

const (
	ProviderTypeNovita = iota
	ProviderTypeOpenAI
	ProviderTypeCohere
	ProviderTypeGemini
)

var providerTypeMap = map[string]ProviderType{
	"novita": ProviderTypeNovita,
	"openai": ProviderTypeOpenAI,
	"cohere": ProviderTypeCohere,
	"gemini": ProviderTypeGemini,
}

type ProviderType int

// Embedder turns a batch of text chunks into one vector per chunk.
// Implementations issue a single batched request, preserve input order
// and fail as a whole: a partial batch is never returned.
type Embedder interface {
	Embed(ctx context.Context, chunks []string) ([][]float32, error)
	Dimensions() uint
}

type Config struct {
	Endpoint   string
	Model      string
	Dimensions uint
}

func NewEmbedder(providerName string, conf Config) (Embedder, error) {
	providerType, ok := providerTypeMap[providerName]
	if !ok {
		return nil, ErrInvalidProviderType
	}

	switch providerType {
	case ProviderTypeNovita:
		return novita.New(conf.Endpoint, conf.Model, conf.Dimensions), nil
	case ProviderTypeOpenAI:
		return openai.New(conf.Model, conf.Dimensions), nil
	case ProviderTypeCohere:
		return cohere.New(conf.Model, conf.Dimensions), nil
	case ProviderTypeGemini:
		return gemini.New(conf.Model, conf.Dimensions)
	default:
		return nil, ErrInvalidProviderType
	}
}

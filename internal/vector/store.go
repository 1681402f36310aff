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

// Package vector mirrors chunk embeddings into a vector database so
// ingested records are immediately available for semantic search.
package vector

import (
	"context"

	"github.com/google/uuid"

	"github.com/lexia/lexbrain/internal/record"
)

type Store interface {
	EnsureCollection(ctx context.Context, name string, dimensions uint) error

	Upsert(ctx context.Context, collectionName string, points []*Point) error

	Query(ctx context.Context, params *QueryParams) ([]*ScoredChunk, error)

	Close() error
}

type Point struct {
	ID      string
	Vector  []float32
	Payload map[string]any
}

// RecordRef identifies the source record a set of points belongs to.
type RecordRef struct {
	ID   string
	Type string
}

// CreatePoints builds one point per embedding attribute, tagged with the
// owning record so search hits can be traced back.
func CreatePoints(ref RecordRef, attrs []record.EmbeddingAttribute) []*Point {
	points := make([]*Point, 0, len(attrs))
	for _, attr := range attrs {
		points = append(points, &Point{
			ID:     uuid.NewString(),
			Vector: attr.Vector,
			Payload: map[string]any{
				"record_id":      ref.ID,
				"record_type":    ref.Type,
				"chunk":          attr.Chunk,
				"embedding_type": attr.EmbeddingType,
			},
		})
	}
	return points
}

type ScoredChunk struct {
	ID      string
	Score   float32
	Payload map[string]string
}

type QueryMatch struct {
	Key   string
	Value string
}

type QueryParams struct {
	collection  string
	query       []float32
	withPayload bool
	limit       uint
	filters     []*QueryMatch
}

type QueryParamsOption func(*QueryParams)

func NewQueryParams(collection string, query []float32, opts ...QueryParamsOption) *QueryParams {
	qp := &QueryParams{
		collection:  collection,
		query:       query,
		withPayload: false,
		limit:       0,
		filters:     make([]*QueryMatch, 0),
	}

	for _, opt := range opts {
		opt(qp)
	}
	return qp
}

func WithPayload(w bool) QueryParamsOption {
	return func(qp *QueryParams) {
		qp.withPayload = w
	}
}

func WithLimit(limit uint) QueryParamsOption {
	return func(qp *QueryParams) {
		qp.limit = limit
	}
}

func WithFilter(filter *QueryMatch) QueryParamsOption {
	return func(qp *QueryParams) {
		qp.filters = append(qp.filters, filter)
	}
}

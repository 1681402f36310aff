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

package transport

import (
	"context"
	"time"
)

var TraceExpiry = time.Hour * 24

type Transport interface {
	SetTrace(ctx context.Context, trace *JobTrace) error
	GetTrace(ctx context.Context, traceId string) (*JobTrace, error)
}

// JobTrace records the lifecycle of one batch ingestion job so operators
// can inspect outcomes after the fact.
type JobTrace struct {
	ID          string `redis:"id"`
	Kind        string `redis:"kind"`
	Status      int    `redis:"status"`
	StartedAt   int64  `redis:"started_at"`
	CompletedAt int64  `redis:"completed_at"`
	Processed   int    `redis:"processed"`
	Failed      int    `redis:"failed"`
	Detail      string `redis:"detail"`
}

type TraceStatus int

const (
	TraceStatusUnspecified = iota
	TraceStatusRunning
	TraceStatusCompleted
	TraceStatusFailed
)

func NewJobTrace(id string, kind string) *JobTrace {
	return &JobTrace{
		ID:        id,
		Kind:      kind,
		Status:    TraceStatusRunning,
		StartedAt: time.Now().UnixNano(),
	}
}

func (t *JobTrace) Complete() {
	if t.Status != TraceStatusRunning {
		return
	}
	t.CompletedAt = time.Now().UnixNano()
	t.Status = TraceStatusCompleted
}

func (t *JobTrace) Fail(detail string) {
	if t.Status != TraceStatusRunning {
		return
	}
	t.CompletedAt = time.Now().UnixNano()
	t.Status = TraceStatusFailed
	t.Detail = detail
}

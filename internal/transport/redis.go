package transport

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const traceKeyPrefix = "lexbrain:trace:"

type RedisTransport struct {
	rdb *redis.Client
}

func NewRedisTransport(rdb *redis.Client) *RedisTransport {
	return &RedisTransport{
		rdb: rdb,
	}
}

func (t *RedisTransport) SetTrace(ctx context.Context, trace *JobTrace) error {
	if trace.ID == "" {
		return fmt.Errorf("invalid trace ID")
	}

	key := traceKeyPrefix + trace.ID
	if err := t.rdb.HSet(ctx, key, trace).Err(); err != nil {
		return err
	}

	if err := t.rdb.Expire(ctx, key, TraceExpiry).Err(); err != nil {
		slog.Debug("failed to set trace expiry", "id", trace.ID, "err", err)
	}
	return nil
}

func (t *RedisTransport) GetTrace(ctx context.Context, traceId string) (*JobTrace, error) {
	res := t.rdb.HGetAll(ctx, traceKeyPrefix+traceId)
	if err := res.Err(); err != nil {
		return nil, err
	}

	if len(res.Val()) == 0 {
		return nil, fmt.Errorf("trace with id '%s' does not exist", traceId)
	}

	var trace JobTrace
	if err := res.Scan(&trace); err != nil {
		return nil, fmt.Errorf("failed to deserialize trace: %w", err)
	}

	return &trace, nil
}

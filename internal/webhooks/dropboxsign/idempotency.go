package dropboxsign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/obitflow/obitflow-backend/pkg/redis"
)

// IdempotencyGuard suppresses duplicate provider deliveries. The provider
// retries callbacks until acknowledged, so the same event hash can arrive
// more than once.
type IdempotencyGuard struct {
	store redis.IdempotencyStore
	ttl   time.Duration
	scope string
}

func NewIdempotencyGuard(store redis.IdempotencyStore, ttl time.Duration, scope string) (*IdempotencyGuard, error) {
	if store == nil {
		return nil, errors.New("idempotency store is required")
	}
	if ttl < 0 {
		return nil, errors.New("ttl must be non-negative")
	}
	if scope == "" {
		return nil, errors.New("scope is required")
	}
	return &IdempotencyGuard{
		store: store,
		ttl:   ttl,
		scope: scope,
	}, nil
}

// CheckAndMark returns true when the event hash was already processed.
func (g *IdempotencyGuard) CheckAndMark(ctx context.Context, eventHash string) (bool, error) {
	if eventHash == "" {
		return false, errors.New("event hash is required")
	}
	key := g.store.IdempotencyKey(g.scope, eventHash)
	set, err := g.store.SetNX(ctx, key, "1", g.ttl)
	if err != nil {
		return false, fmt.Errorf("set idempotency key: %w", err)
	}
	return !set, nil
}

// Delete releases the mark so a delivery can be reprocessed.
func (g *IdempotencyGuard) Delete(ctx context.Context, eventHash string) error {
	if eventHash == "" {
		return errors.New("event hash is required")
	}
	key := g.store.IdempotencyKey(g.scope, eventHash)
	return g.store.Del(ctx, key)
}

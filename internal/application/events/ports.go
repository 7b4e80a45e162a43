package events

import (
	"context"
	"time"

	"github.com/openshelf/branch-events/internal/opendata"
)

type Clock interface {
	Now() time.Time
}

// PageSource is the catalogue-facing contract: one page of raw records
// at a time, in stable order for a given offset/limit.
type PageSource interface {
	FetchPage(ctx context.Context, resourceID string, offset, limit int) (opendata.Page, error)
}

// Cache is the response-cache port (Redis in production, a fake in
// tests). Nil disables response caching.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

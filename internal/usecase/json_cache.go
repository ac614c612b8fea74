package usecase

import (
	"context"
	"time"
)

// JSONCache is the shared cache surface the usecases depend on; the
// redis adapter satisfies it, tests swap in fakes.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	InvalidatePostings(ctx context.Context) error
}

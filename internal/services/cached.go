package services

import (
	"context"
	"time"

	"github.com/yoockh/languageclub/internal/cache"
)

// cachedList serves key from c when present, otherwise loads and stores it.
// Cache failures fall through to the loader.
func cachedList[T any](ctx context.Context, c cache.Cache, ttl time.Duration, key string, load func() ([]T, error)) ([]T, error) {
	var out []T
	if hit, err := c.GetJSON(ctx, key, &out); err == nil && hit {
		return out, nil
	}

	out, err := load()
	if err != nil {
		return nil, err
	}
	_ = c.SetJSON(ctx, key, out, ttl)
	return out, nil
}

func orNop(c cache.Cache) cache.Cache {
	if c == nil {
		return cache.Nop{}
	}
	return c
}

package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Service is the cache contract used by the collector.
// Values are stored as JSON, so Get always fills dest with a private copy.
type Service interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string, dest any) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// BarsKey is the cache key of a symbol's daily history for one lookback period.
func BarsKey(symbol, period string) string {
	return fmt.Sprintf("bars:%s:%s", strings.ToUpper(symbol), period)
}

// InfoKey is the cache key of a symbol's company metadata.
func InfoKey(symbol string) string {
	return "info:" + strings.ToUpper(symbol)
}

// NoopCache never stores anything; every Get is a miss.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (NoopCache) Set(context.Context, string, any, time.Duration) error { return nil }
func (NoopCache) Get(context.Context, string, any) error                { return ErrCacheMiss }
func (NoopCache) Delete(context.Context, ...string) error               { return nil }
func (NoopCache) Close() error                                          { return nil }

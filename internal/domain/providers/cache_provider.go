package providers

import (
	"context"
	"errors"
	"strings"
)

// ErrCacheMiss is returned by Get when the key is absent
var ErrCacheMiss = errors.New("cache miss")

// CacheProvider defines the interface for caching operations
type CacheProvider interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in cache with expiration
	Set(ctx context.Context, key string, value []byte, expirationSeconds int) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// DeletePattern removes every key matching a glob pattern
	DeletePattern(ctx context.Context, pattern string) error

	// Exists checks if a key exists in cache
	Exists(ctx context.Context, key string) (bool, error)
}

// HTTPCachePrefix starts every cached HTTP response key. Keys have the form
// http:cache:<scope>:<hash> so one scope can be dropped with DeletePattern.
const HTTPCachePrefix = "http:cache:"

// MemberCacheScope is the HTTP cache scope of one member's routes
func MemberCacheScope(memberID string) string {
	return "member:" + memberID
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// HTTPCachePattern matches every cached response in a scope. Glob
// metacharacters in the scope match literally.
func HTTPCachePattern(scope string) string {
	return HTTPCachePrefix + globEscaper.Replace(scope) + ":*"
}

package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/txlens/txlens/internal/abiresolve"

	redis "github.com/redis/go-redis/v9"
)

// abiCachePrefix is the base key prefix for cached contract interfaces.
const abiCachePrefix = "abi"

// abiCacheKey returns the Redis key for one (chain id, address) pair.
//
// Format: "abi:{chainID}:{address}"
func abiCacheKey(chainID uint64, address string) string {
	return fmt.Sprintf("%s:%d:%s", abiCachePrefix, chainID, address)
}

// GetABI implements the abiresolve.ResolutionCache interface. A missing key
// is a miss, not an error.
func (c *client) GetABI(ctx context.Context, chainID uint64, address string) (string, bool, error) {
	abiJSON, err := c.conn.Get(ctx, abiCacheKey(chainID, address)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return abiJSON, true, nil
}

// PutABI implements the abiresolve.ResolutionCache interface.
func (c *client) PutABI(ctx context.Context, chainID uint64, address string, abiJSON string) error {
	return c.conn.Set(ctx, abiCacheKey(chainID, address), abiJSON, c.ttl).Err()
}

// Compile-time assertion that *client satisfies the cache port.
var _ abiresolve.ResolutionCache = (*client)(nil)

package cache

import (
	"context"
	"fmt"
	"time"
)

const revokedKeyPrefix = "revoked:%s"

func revokedKey(jti string) string {
	return fmt.Sprintf(revokedKeyPrefix, jti)
}

// RevokeToken marks a token's jti as revoked until its natural expiry.
// Best-effort noop when Redis is unavailable.
func RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if client == nil || jti == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return client.Set(ctx, revokedKey(jti), "1", ttl).Err()
}

// IsTokenRevoked reports whether a token's jti has been revoked.
// Fails open when Redis is unavailable: an unreachable revocation list must
// not lock every authenticated user out.
func IsTokenRevoked(ctx context.Context, jti string) bool {
	if client == nil || jti == "" {
		return false
	}
	n, err := client.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

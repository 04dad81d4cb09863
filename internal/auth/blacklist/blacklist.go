// Package blacklist tracks consumed refresh tokens so a redeemed token
// can never be redeemed again. Entries are keyed by a one-way digest of
// the raw token and live no longer than the token itself.
package blacklist

//go:generate mockgen -destination=../../mocks/mock_blacklist_store.go -package=mocks github.com/Tanimou/user-management-system-sub001/internal/auth/blacklist Store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

type Store interface {
	// Blacklist marks a token as consumed until expiresAt. Idempotent.
	Blacklist(ctx context.Context, token, userID string, expiresAt time.Time) error
	// IsBlacklisted reports whether the token has been consumed.
	// Entries past their expiry read as absent.
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

// DeriveTokenID returns the storage key for a raw token: a sha256 hex
// digest, so raw refresh tokens are never persisted.
func DeriveTokenID(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

package application

import (
	"context"
	"time"
)

// TokenRevoker records the moment a user's outstanding tokens stop being valid.
type TokenRevoker interface {
	Revoke(ctx context.Context, userID int64) error
	// RevokedSince returns the revocation time, if any.
	RevokedSince(ctx context.Context, userID int64) (time.Time, bool, error)
}

// NoopRevoker is used when no Redis is configured.
type NoopRevoker struct{}

func (NoopRevoker) Revoke(context.Context, int64) error { return nil }

func (NoopRevoker) RevokedSince(context.Context, int64) (time.Time, bool, error) {
	return time.Time{}, false, nil
}

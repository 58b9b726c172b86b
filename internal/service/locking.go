package service

import (
	"context"
	"errors"
	"fmt"

	"wiw3ch.app/matchmaker/internal/lock"
)

// withOwnerLock runs fn while holding the (scope, owner) lock.
func withOwnerLock(ctx context.Context, locker lock.Locker, scope string, ownerID int64, fn func() error) error {
	release, err := locker.Acquire(ctx, scope, ownerID)
	if err != nil {
		if errors.Is(err, lock.ErrLockHeld) {
			return ErrOperationInProgress
		}
		return fmt.Errorf("acquiring %s lock: %w", scope, err)
	}
	defer release()
	return fn()
}

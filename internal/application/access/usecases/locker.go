package usecases

import (
	"context"
	"fmt"
)

// Locker provides the per-pair critical section around the duplicate
// grant check and insert.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

func grantLockKey(userID, machineID uint) string {
	return fmt.Sprintf("grant:%d:%d", userID, machineID)
}

// Package lock provides keyed critical sections. LocalLocker serializes
// callers inside one process; RedisLocker serializes callers that share a
// redis instance. The release func returned by Acquire may be called more
// than once.
package lock

import "errors"

// ErrNotAcquired is returned when the lock could not be taken before the
// wait deadline or context cancellation.
var ErrNotAcquired = errors.New("lock not acquired")

package lock

import "errors"

// ErrLocked is the cause of Acquire's error when another live process holds the lock.
// Check it with errors.Is().
var ErrLocked = errors.New("lock is held by another process")

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

var (
	lockWaitTimeout = 30 * time.Second
	lockPollEvery   = 100 * time.Millisecond
)

// ErrLockTimeout is returned when another process holds the store lock for too long.
var ErrLockTimeout = errors.New("timed out waiting for the store lock")

// Lock is an advisory lock on a file under the store root, held for the duration
// of a mutating operation.
type Lock struct {
	fl *flock.Flock
}

// NewLock returns an unlocked Lock on path.
func NewLock(path string) *Lock {
	return &Lock{fl: flock.New(path)}
}

// with acquires the lock, runs fn, and releases the lock.
func (l *Lock) with(fn func() error) error {
	if l == nil {
		return fn()
	}

	ctx, cancel := context.WithTimeout(context.Background(), lockWaitTimeout)
	defer cancel()

	locked, err := l.fl.TryLockContext(ctx, lockPollEvery)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return pathErr("lock", l.fl.Path(), err)
	}
	if !locked {
		return fmt.Errorf("%w after %s: %s", ErrLockTimeout, lockWaitTimeout, l.fl.Path())
	}
	defer func() {
		_ = l.fl.Unlock()
	}()
	return fn()
}

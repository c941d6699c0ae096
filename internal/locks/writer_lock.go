package locks

import (
	"context"
	"errors"
	"time"
)

var ErrLockTimeout = errors.New("timed out waiting for the writer lock")

// WriterLock guards one load-mutate-save sequence on the task snapshot.
type WriterLock interface {
	Acquire(ctx context.Context) error

	Release(ctx context.Context) error
}

// MutexLock serializes writers inside a single process.
type MutexLock struct {
	ch      chan struct{}
	timeout time.Duration
}

func NewMutexLock(timeout time.Duration) *MutexLock {
	return &MutexLock{
		ch:      make(chan struct{}, 1),
		timeout: timeout,
	}
}

func (m *MutexLock) Acquire(ctx context.Context) error {
	timer := time.NewTimer(m.timeout)
	defer timer.Stop()

	select {
	case m.ch <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrLockTimeout
	case <-ctx.Done():
		return ErrLockTimeout
	}
}

func (m *MutexLock) Release(ctx context.Context) error {
	select {
	case <-m.ch:
	default:
	}
	return nil
}

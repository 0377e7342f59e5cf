package flock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mrz1836/assetrack/internal/constants"
	atlaserrors "github.com/mrz1836/assetrack/internal/errors"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// Lock is a held exclusive lock on a lock file.
type Lock struct {
	f *os.File
}

// Acquire creates the lock file if needed and takes an exclusive lock on it,
// retrying every constants.LockRetryInterval until timeout elapses or ctx is
// done. A non-positive timeout uses constants.DefaultLockTimeout.
func Acquire(ctx context.Context, path string, timeout time.Duration) (*Lock, error) {
	if timeout <= 0 {
		timeout = constants.DefaultLockTimeout
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, filePerm) //#nosec G302,G304 -- lock file needs write access, path is constructed internally
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for {
		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, ctx.Err()
		default:
		}

		if err := Exclusive(f.Fd()); err == nil {
			return &Lock{f: f}, nil
		}

		if time.Now().After(deadline) {
			_ = f.Close()
			return nil, fmt.Errorf("failed to acquire lock on %s: %w", filepath.Base(path), atlaserrors.ErrLockTimeout)
		}

		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, ctx.Err()
		case <-time.After(constants.LockRetryInterval):
		}
	}
}

// Release unlocks and closes the lock file. Releasing a nil lock is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	f := l.f
	l.f = nil

	if err := Unlock(f.Fd()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return f.Close()
}

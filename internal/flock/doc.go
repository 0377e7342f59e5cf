// Package flock provides cross-platform advisory file locks.
//
// Exclusive and Unlock are the raw non-blocking primitives. Acquire wraps them
// in a retry loop bounded by a timeout and the caller's context, which is how
// the project store serializes writers across processes:
//
//	lock, err := flock.Acquire(ctx, filepath.Join(dir, "project.lock"), timeout)
//	if err != nil {
//	    return err // errors.Is(err, ErrLockTimeout) when another writer holds it
//	}
//	defer func() { _ = lock.Release() }()
package flock

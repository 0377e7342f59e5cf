package errors

import "fmt"

// Wrap adds context to err at a package boundary and returns nil for a nil err,
// so it can be used inline:
//
//	return errors.Wrap(store.Save(ctx, p), "failed to save project")
//
// The original chain is preserved for errors.Is checks.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted message:
//
//	return errors.Wrapf(err, "failed to load project %s", name)
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

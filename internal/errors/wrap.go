package errors

import "fmt"

// Wrap adds context to errors at package boundaries.
// It returns nil if err is nil, so it can be used inline:
//
//	return errors.Wrap(store.Save(ctx, state), "failed to save data file")
//
// The chain is preserved, so errors.Is(err, errors.ErrLockTimeout) still works
// on the result.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

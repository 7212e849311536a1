package cli

import (
	"errors"
	"fmt"
)

// ErrUsage marks errors caused by how apigen was invoked: bad flags, an
// unreadable config file or a project name the target rejects. The binary
// exits with status 2 for them.
var ErrUsage = errors.New("cli usage error")

// usageError matches ErrUsage and keeps its cause reachable through Unwrap.
type usageError struct {
	err error
}

func newUsageError(msg string) error {
	return usageError{err: errors.New(msg)}
}

func usageErrorf(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

func (e usageError) Error() string {
	return e.err.Error()
}

func (e usageError) Unwrap() error {
	return e.err
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}

package scan

import (
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"
)

type InvalidPortError struct {
	Port  int
	Index int
}

func (e *InvalidPortError) Error() string {
	return fmt.Sprintf("invalid port %d at position %d: must be between %d and %d", e.Port, e.Index+1, MinPort, MaxPort)
}

type InvalidTargetError struct {
	Target string
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid target '%s': must be an IPv4 address", e.Target)
}

type InvalidTimeoutError struct {
	Timeout time.Duration
}

func (e *InvalidTimeoutError) Error() string {
	return fmt.Sprintf("invalid probe timeout %s: must be positive", e.Timeout)
}

// ScanAbortedError means the local network stack could not create a socket,
// so no further probe can be trusted.
type ScanAbortedError struct {
	Port int
	Err  error
}

func (e *ScanAbortedError) Error() string {
	return fmt.Sprintf("scan aborted while probing port %d: %s", e.Port, e.Err)
}

func (e *ScanAbortedError) Unwrap() error {
	return e.Err
}

// isLocalFailure reports whether a dial error came from the local host being
// unable to allocate a socket, rather than from the remote end.
func isLocalFailure(err error) bool {
	var sysErr *os.SyscallError
	if errors.As(err, &sysErr) && sysErr.Syscall == "socket" {
		return true
	}
	for _, errno := range []syscall.Errno{syscall.EMFILE, syscall.ENFILE, syscall.ENOBUFS, syscall.ENOMEM} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}

// Package diag wraps the operating system's ping and traceroute tools.
package diag

import (
	"errors"
	"fmt"
	"os/exec"
)

var ErrCommandNotFound = errors.New("command not found")

func commandError(name string, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: '%s' is not installed or not in PATH", ErrCommandNotFound, name)
	}
	return fmt.Errorf("%s: %w", name, err)
}

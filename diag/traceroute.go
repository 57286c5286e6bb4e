package diag

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"

	"github.com/sirupsen/logrus"
)

type Tracer struct {
	Command string
}

func NewTracer() *Tracer {
	command := "traceroute"
	if runtime.GOOS == "windows" {
		command = "tracert"
	}
	return &Tracer{Command: command}
}

// Trace runs the trace and copies its output to w line by line as it is
// produced.
func (t *Tracer) Trace(ctx context.Context, host string, w io.Writer) error {

	cmd := exec.CommandContext(ctx, t.Command, host)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return commandError(t.Command, err)
	}
	cmd.Stderr = cmd.Stdout

	logrus.Debugf("Running %s %s", t.Command, host)

	if err := cmd.Start(); err != nil {
		return commandError(t.Command, err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if _, err := fmt.Fprintln(w, scanner.Text()); err != nil {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return err
		}
	}

	if err := cmd.Wait(); err != nil {
		return commandError(t.Command, err)
	}
	return scanner.Err()
}

package diag

import (
	"context"
	"errors"
	"os/exec"
	"runtime"

	"github.com/sirupsen/logrus"
)

type PingResult struct {
	Reachable bool
	Output    string
}

type Pinger interface {
	Ping(ctx context.Context, host string) (PingResult, error)
}

// ExecPinger runs the system ping binary and sends a single echo request.
type ExecPinger struct {
	Command string
}

func NewExecPinger() *ExecPinger {
	return &ExecPinger{Command: "ping"}
}

func (p *ExecPinger) args(host string) []string {
	count := "-c"
	if runtime.GOOS == "windows" {
		count = "-n"
	}
	return []string{count, "1", host}
}

// Ping reports an unreachable host as a result, not an error. Errors are
// reserved for failing to run the command at all.
func (p *ExecPinger) Ping(ctx context.Context, host string) (PingResult, error) {

	args := p.args(host)
	logrus.Debugf("Running %s %v", p.Command, args)

	output, err := exec.CommandContext(ctx, p.Command, args...).CombinedOutput()
	if err != nil {
		// a killed ping exits non-zero, which must not read as unreachable
		if ctxErr := ctx.Err(); ctxErr != nil {
			return PingResult{}, ctxErr
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logrus.Debugf("%s exited with status %d", p.Command, exitErr.ExitCode())
			return PingResult{Output: string(output)}, nil
		}
		return PingResult{}, commandError(p.Command, err)
	}

	return PingResult{Reachable: true, Output: string(output)}, nil
}

package diag

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on unix utilities")
	}
}

func TestExecPingMissingBinary(t *testing.T) {
	p := &ExecPinger{Command: "netdiag-no-such-ping"}

	_, err := p.Ping(context.Background(), "127.0.0.1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCommandNotFound))
}

func TestExecPingReachable(t *testing.T) {
	skipOnWindows(t)

	result, err := (&ExecPinger{Command: "echo"}).Ping(context.Background(), "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, result.Reachable)
	assert.Equal(t, "-c 1 127.0.0.1\n", result.Output)
}

func TestExecPingUnreachable(t *testing.T) {
	skipOnWindows(t)

	result, err := (&ExecPinger{Command: "false"}).Ping(context.Background(), "192.0.2.1")
	require.NoError(t, err)
	assert.False(t, result.Reachable)
}

func TestTraceStreamsOutput(t *testing.T) {
	skipOnWindows(t)

	buf := &bytes.Buffer{}
	err := (&Tracer{Command: "echo"}).Trace(context.Background(), "example.com", buf)
	require.NoError(t, err)
	assert.Equal(t, "example.com\n", buf.String())
}

func TestTraceMissingBinary(t *testing.T) {
	err := (&Tracer{Command: "netdiag-no-such-traceroute"}).Trace(context.Background(), "example.com", &bytes.Buffer{})
	assert.True(t, errors.Is(err, ErrCommandNotFound))
}

func TestTraceFailureIsReported(t *testing.T) {
	skipOnWindows(t)

	err := (&Tracer{Command: "false"}).Trace(context.Background(), "example.com", &bytes.Buffer{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCommandNotFound))
}

func TestNewTracerCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		assert.Equal(t, "tracert", NewTracer().Command)
	} else {
		assert.Equal(t, "traceroute", NewTracer().Command)
	}
}

func TestICMPPingUnresolvable(t *testing.T) {
	_, err := NewICMPPinger(100*time.Millisecond, false).Ping(context.Background(), "netdiag.invalid")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "netdiag.invalid"))
}

func TestExecPingCancelledIsNotUnreachable(t *testing.T) {
	skipOnWindows(t)

	script := filepath.Join(t.TempDir(), "slowping")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexec sleep 5\n"), 0755))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	result, err := (&ExecPinger{Command: script}).Ping(ctx, "192.0.2.1")

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, result.Reachable)
	assert.Less(t, time.Since(start), 4*time.Second)
}

package scan

import (
	"fmt"
	"time"
)

type PortState uint8

const (
	PortClosedOrFiltered PortState = iota
	PortOpen
)

func (s PortState) String() string {
	switch s {
	case PortOpen:
		return "OPEN"
	default:
		return "CLOSED_OR_FILTERED"
	}
}

type Result struct {
	Port    int
	State   PortState
	Latency time.Duration
}

func (r Result) IsOpen() bool {
	return r.State == PortOpen
}

func (r Result) String() string {
	return fmt.Sprintf("%d/tcp %s", r.Port, r.State)
}

// OpenPorts returns the open ports from results, in scan order.
func OpenPorts(results []Result) []int {
	open := []int{}
	for _, result := range results {
		if result.IsOpen() {
			open = append(open, result.Port)
		}
	}
	return open
}

package scan

import (
	"context"
	"net"
)

type Scanner interface {
	Scan(ctx context.Context, target net.IP, ports []int) ([]Result, error)
}

// Dialer opens a single outbound connection. *net.Dialer satisfies it.
type Dialer interface {
	Dial(network, address string) (net.Conn, error)
}

//go:build !linux

package device

import (
	"errors"

	"github.com/google/gopacket/routing"
)

// gopacket only reads the routing table on Linux; its New panics elsewhere.
var errNoRoutingTable = errors.New("routing table unavailable on this platform")

func newRouter() (routing.Router, error) {
	return nil, errNoRoutingTable
}

//go:build linux

package device

import "github.com/google/gopacket/routing"

func newRouter() (routing.Router, error) {
	return routing.New()
}

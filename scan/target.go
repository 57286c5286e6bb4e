package scan

import (
	"net"
	"strings"
)

// ParseTarget accepts a dotted-quad IPv4 address. Hostnames are not resolved
// here.
func ParseTarget(target string) (net.IP, error) {
	target = strings.TrimSpace(target)
	ip := net.ParseIP(target)
	if ip == nil || ip.To4() == nil || strings.Contains(target, ":") {
		return nil, &InvalidTargetError{Target: target}
	}
	return ip.To4(), nil
}

// Package resolve turns host names into the IPv4 addresses the rest of
// netdiag works with.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	ErrResolve = errors.New("resolution failed")
	ErrNoIPv4  = errors.New("no IPv4 address found")
)

type Resolver interface {
	LookupIPv4(ctx context.Context, host string) (net.IP, error)
	Reverse(ctx context.Context, ip net.IP) (string, error)
}

// System uses the platform resolver.
type System struct {
	resolver *net.Resolver
}

func NewSystem() *System {
	return &System{resolver: net.DefaultResolver}
}

func (s *System) LookupIPv4(ctx context.Context, host string) (net.IP, error) {

	if ip, ok, err := literal(host); ok {
		return ip, err
	}

	addrs, err := s.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		logrus.Debugf("Lookup of %s failed: %s", host, err)
		return nil, fmt.Errorf("%w: '%s': %s", ErrResolve, host, err)
	}

	ips := make([]net.IP, 0, len(addrs))
	for _, addr := range addrs {
		ips = append(ips, addr.IP)
	}
	return firstIPv4(host, ips)
}

func (s *System) Reverse(ctx context.Context, ip net.IP) (string, error) {
	names, err := s.resolver.LookupAddr(ctx, ip.String())
	if err != nil {
		return "", fmt.Errorf("%w: reverse lookup of %s: %s", ErrResolve, ip, err)
	}
	if len(names) == 0 {
		return "", fmt.Errorf("%w: no PTR record for %s", ErrResolve, ip)
	}
	return strings.TrimSuffix(names[0], "."), nil
}

// literal handles hosts that are already IP addresses. ok is false when host
// needs a lookup.
func literal(host string) (ip net.IP, ok bool, err error) {
	parsed := net.ParseIP(host)
	if parsed == nil {
		return nil, false, nil
	}
	if v4 := parsed.To4(); v4 != nil && !strings.Contains(host, ":") {
		return v4, true, nil
	}
	return nil, true, fmt.Errorf("%w: '%s' is an IPv6 address", ErrNoIPv4, host)
}

func firstIPv4(host string, ips []net.IP) (net.IP, error) {
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return v4, nil
		}
	}
	if len(ips) > 0 {
		return nil, fmt.Errorf("%w: '%s' resolves only to IPv6 addresses", ErrNoIPv4, host)
	}
	return nil, fmt.Errorf("%w: '%s' has no A records", ErrNoIPv4, host)
}

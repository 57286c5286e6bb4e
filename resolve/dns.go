package resolve

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"github.com/sirupsen/logrus"
)

// DNS queries a specific name server directly instead of going through the
// platform resolver.
type DNS struct {
	server string
	client *dns.Client
}

// NewDNS returns a resolver for server, given as "host" or "host:port".
func NewDNS(server string, timeout time.Duration) *DNS {
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}
	return &DNS{
		server: server,
		client: &dns.Client{Timeout: timeout},
	}
}

func (d *DNS) Server() string {
	return d.server
}

func (d *DNS) LookupIPv4(ctx context.Context, host string) (net.IP, error) {

	if ip, ok, err := literal(host); ok {
		return ip, err
	}

	response, err := d.exchange(ctx, dns.Fqdn(host), dns.TypeA)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %s", ErrResolve, host, err)
	}

	ips := []net.IP{}
	for _, answer := range response.Answer {
		if a, ok := answer.(*dns.A); ok {
			ips = append(ips, a.A)
		}
	}
	return firstIPv4(host, ips)
}

func (d *DNS) Reverse(ctx context.Context, ip net.IP) (string, error) {

	reverse, err := dns.ReverseAddr(ip.String())
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrResolve, err)
	}

	response, err := d.exchange(ctx, reverse, dns.TypePTR)
	if err != nil {
		return "", fmt.Errorf("%w: reverse lookup of %s: %s", ErrResolve, ip, err)
	}

	for _, answer := range response.Answer {
		if ptr, ok := answer.(*dns.PTR); ok {
			return strings.TrimSuffix(ptr.Ptr, "."), nil
		}
	}
	return "", fmt.Errorf("%w: no PTR record for %s", ErrResolve, ip)
}

func (d *DNS) exchange(ctx context.Context, name string, qtype uint16) (*dns.Msg, error) {

	message := new(dns.Msg)
	message.SetQuestion(name, qtype)

	logrus.Debugf("Querying %s for %s %s", d.server, dns.TypeToString[qtype], name)

	response, _, err := d.client.ExchangeContext(ctx, message, d.server)
	if err != nil {
		return nil, err
	}
	if response.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("server returned %s", dns.RcodeToString[response.Rcode])
	}
	return response, nil
}

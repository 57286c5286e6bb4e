// Package device reports what the local host knows about how it reaches a
// target: the outbound route and, for hosts on the local link, the hardware
// address and its vendor.
package device

import (
	"context"
	"fmt"
	"net"

	"github.com/google/gopacket/macs"
	"github.com/google/gopacket/routing"
	"github.com/mostlygeek/arp"
	"github.com/sirupsen/logrus"
)

const emptyMAC = "00:00:00:00:00:00"

type Details struct {
	IP           net.IP
	Interface    string
	Gateway      net.IP
	Source       net.IP
	MAC          string
	Manufacturer string
	Name         string
}

type Reverser interface {
	Reverse(ctx context.Context, ip net.IP) (string, error)
}

type Inspector struct {
	newRouter func() (routing.Router, error)
	refresh   func()
	search    func(ip string) string
	reverser  Reverser
}

func NewInspector(reverser Reverser) *Inspector {
	return &Inspector{
		newRouter: newRouter,
		refresh:   arp.CacheUpdate,
		search:    arp.Search,
		reverser:  reverser,
	}
}

// Lookup gathers whatever details are available. Each part is best effort
// and missing parts are left empty.
func (i *Inspector) Lookup(ctx context.Context, ip net.IP) Details {

	details := Details{IP: ip}

	if router, err := i.newRouter(); err != nil {
		logrus.Debugf("Routing table unavailable: %s", err)
	} else if iface, gateway, src, err := router.Route(ip); err != nil {
		logrus.Debugf("No route to %s: %s", ip, err)
	} else {
		if iface != nil {
			details.Interface = iface.Name
		}
		details.Gateway = gateway
		details.Source = src
	}

	i.refresh()
	if macStr := i.search(ip.String()); macStr != "" && macStr != emptyMAC {
		if mac, err := net.ParseMAC(macStr); err == nil {
			details.MAC = mac.String()
			details.Manufacturer = Manufacturer(mac)
		}
	}

	if i.reverser != nil {
		if name, err := i.reverser.Reverse(ctx, ip); err == nil {
			details.Name = name
		} else {
			logrus.Debugf("Reverse lookup of %s failed: %s", ip, err)
		}
	}

	return details
}

func Manufacturer(mac net.HardwareAddr) string {
	if len(mac) < 3 {
		return ""
	}
	prefix := [3]byte{
		mac[0],
		mac[1],
		mac[2],
	}
	return macs.ValidMACPrefixMap[prefix]
}

func (d Details) Route() string {
	if d.Interface == "" {
		return ""
	}
	route := fmt.Sprintf("via %s", d.Interface)
	if d.Gateway != nil {
		route = fmt.Sprintf("%s gateway %s", route, d.Gateway)
	}
	if d.Source != nil {
		route = fmt.Sprintf("%s source %s", route, d.Source)
	}
	return route
}

package diag

import (
	"context"
	"fmt"
	"time"

	"github.com/go-ping/ping"
	"github.com/sirupsen/logrus"
)

// ICMPPinger sends the echo request itself rather than shelling out.
// Unprivileged mode relies on ICMP datagram sockets being permitted for the
// current user (net.ipv4.ping_group_range on Linux).
type ICMPPinger struct {
	Timeout    time.Duration
	Privileged bool
}

func NewICMPPinger(timeout time.Duration, privileged bool) *ICMPPinger {
	return &ICMPPinger{
		Timeout:    timeout,
		Privileged: privileged,
	}
}

func (p *ICMPPinger) Ping(ctx context.Context, host string) (PingResult, error) {

	pinger, err := ping.NewPinger(host)
	if err != nil {
		return PingResult{}, fmt.Errorf("icmp ping %s: %w", host, err)
	}

	pinger.Count = 1
	pinger.Timeout = p.Timeout
	pinger.SetPrivileged(p.Privileged)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			pinger.Stop()
		case <-done:
		}
	}()

	logrus.Debugf("Sending ICMP echo to %s (privileged=%t, timeout=%s)", pinger.IPAddr(), p.Privileged, p.Timeout)

	if err := pinger.Run(); err != nil {
		return PingResult{}, fmt.Errorf("icmp ping %s: %w", host, err)
	}

	if err := ctx.Err(); err != nil {
		return PingResult{}, err
	}

	stats := pinger.Statistics()
	return PingResult{
		Reachable: stats.PacketsRecv > 0,
		Output:    summarise(stats),
	}, nil
}

func summarise(stats *ping.Statistics) string {
	text := fmt.Sprintf(
		"--- %s ping statistics ---\n%d packets transmitted, %d packets received, %.1f%% packet loss\n",
		stats.Addr,
		stats.PacketsSent,
		stats.PacketsRecv,
		stats.PacketLoss,
	)
	if stats.PacketsRecv > 0 {
		text = fmt.Sprintf("%sround-trip min/avg/max = %s/%s/%s\n", text, stats.MinRtt, stats.AvgRtt, stats.MaxRtt)
	}
	return text
}

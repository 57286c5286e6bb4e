package scan

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	MinPort = 1
	MaxPort = 65535
)

// ConnectScanner probes ports one at a time with a full TCP handshake.
type ConnectScanner struct {
	timeout time.Duration
	dialer  Dialer
}

// NewConnectScanner applies timeout to every probe. It must be positive;
// Scan fails with an *InvalidTimeoutError otherwise, since a zero dial
// timeout would never expire.
func NewConnectScanner(timeout time.Duration) *ConnectScanner {
	return &ConnectScanner{
		timeout: timeout,
		dialer:  &net.Dialer{Timeout: timeout},
	}
}

// WithDialer replaces the dialer used for probes. The dialer is expected to
// apply its own timeout.
func (s *ConnectScanner) WithDialer(d Dialer) *ConnectScanner {
	s.dialer = d
	return s
}

// Scan probes each port on target in order and returns one result per port.
// Input is validated in full before any connection is attempted. The context
// is only consulted between probes; on cancellation the results gathered so
// far are returned along with the context error.
func (s *ConnectScanner) Scan(ctx context.Context, target net.IP, ports []int) ([]Result, error) {

	if s.timeout <= 0 {
		return nil, &InvalidTimeoutError{Timeout: s.timeout}
	}

	ip4 := target.To4()
	if ip4 == nil {
		return nil, &InvalidTargetError{Target: target.String()}
	}

	if err := ValidatePorts(ports); err != nil {
		return nil, err
	}

	logrus.Debugf("Scanning %d ports on %s, %s per probe", len(ports), ip4, s.timeout)

	results := make([]Result, 0, len(ports))

	for _, port := range ports {

		if err := ctx.Err(); err != nil {
			logrus.Debugf("Scan of %s cancelled after %d of %d ports", ip4, len(results), len(ports))
			return results, err
		}

		result, err := s.scanPort(ip4, port)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

func (s *ConnectScanner) scanPort(target net.IP, port int) (Result, error) {

	result := Result{Port: port, State: PortClosedOrFiltered}

	start := time.Now()
	conn, err := s.dialer.Dial("tcp", net.JoinHostPort(target.String(), strconv.Itoa(port)))
	result.Latency = time.Since(start)
	if err != nil {
		if isLocalFailure(err) {
			return result, &ScanAbortedError{Port: port, Err: err}
		}
		logrus.Debugf("Port %d on %s: %s", port, target, err)
		return result, nil
	}
	conn.Close()

	result.State = PortOpen
	logrus.Debugf("Port %d on %s is open", port, target)
	return result, nil
}

// ValidatePorts fails with an *InvalidPortError for the first port outside
// the valid TCP range.
func ValidatePorts(ports []int) error {
	for i, port := range ports {
		if port < MinPort || port > MaxPort {
			return &InvalidPortError{Port: port, Index: i}
		}
	}
	return nil
}

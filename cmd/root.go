package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/liamg/netdiag/device"
	"github.com/liamg/netdiag/diag"
	"github.com/liamg/netdiag/resolve"
	"github.com/liamg/netdiag/scan"
	"github.com/liamg/netdiag/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	errNoTarget          = errors.New("please specify a target")
	errDiagnosticsFailed = errors.New("one or more diagnostics failed")
)

type options struct {
	ping             bool
	traceroute       bool
	all              bool
	device           bool
	debug            bool
	versionRequested bool
	icmp             bool
	privileged       bool
	noColor          bool
	portSelection    string
	timeoutMS        int
	dnsServer        string
}

func (o *options) timeout() time.Duration {
	return time.Millisecond * time.Duration(o.timeoutMS)
}

type tracer interface {
	Trace(ctx context.Context, host string, w io.Writer) error
}

type inspector interface {
	Lookup(ctx context.Context, ip net.IP) device.Details
}

// toolkit holds the collaborators a run needs, built from the parsed flags.
type toolkit struct {
	resolver  resolve.Resolver
	pinger    diag.Pinger
	tracer    tracer
	scanner   scan.Scanner
	inspector inspector
}

func newToolkit(o *options) *toolkit {
	timeout := o.timeout()

	var resolver resolve.Resolver = resolve.NewSystem()
	if o.dnsServer != "" {
		resolver = resolve.NewDNS(o.dnsServer, timeout)
	}

	var pinger diag.Pinger = diag.NewExecPinger()
	if o.icmp {
		pinger = diag.NewICMPPinger(timeout, o.privileged)
	}

	return &toolkit{
		resolver:  resolver,
		pinger:    pinger,
		tracer:    diag.NewTracer(),
		scanner:   scan.NewConnectScanner(timeout),
		inspector: device.NewInspector(resolver),
	}
}

func newRootCmd(build func(*options) *toolkit) *cobra.Command {

	o := &options{timeoutMS: 1000}

	rootCmd := &cobra.Command{
		Use:           "netdiag [flags] <host>",
		Short:         "netdiag is a network diagnostic tool",
		Long:          `Resolves, pings, port scans and traces the route to a host.`,
		Example:       "  netdiag -p -s 80,443,8080-8090 example.com\n  netdiag --all 192.168.1.1",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {

			if o.versionRequested {
				v := version.Version
				if v == "" {
					v = "development version"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "netdiag %s\n", v)
				return nil
			}

			if o.debug {
				log.SetLevel(log.DebugLevel)
			}

			if o.noColor {
				color.NoColor = true
			}

			if len(args) == 0 {
				cmd.SetOut(cmd.ErrOrStderr())
				_ = cmd.Help()
				return errNoTarget
			}

			if len(args) > 1 {
				return fmt.Errorf("expected a single target, got %d", len(args))
			}

			ports, err := o.ports(cmd)
			if err != nil {
				return err
			}

			if err := o.validate(); err != nil {
				return err
			}

			r := &run{
				toolkit: build(o),
				out:     newPrinter(cmd.OutOrStdout()),
				host:    args[0],
				ports:   ports,
			}

			return r.execute(cmd.Context(), o)
		},
	}

	flags := rootCmd.Flags()
	flags.BoolVarP(&o.ping, "ping", "p", o.ping, "Perform a simple ping test")
	flags.StringVarP(&o.portSelection, "scan", "s", o.portSelection, "Perform a TCP port scan. Comma separated, can use hyphens e.g. 22,80,443,8080-8090")
	flags.BoolVarP(&o.traceroute, "traceroute", "t", o.traceroute, "Perform a traceroute to the host")
	flags.BoolVarP(&o.all, "all", "a", o.all, "Run all diagnostics (ping, scan of common ports, traceroute)")
	flags.BoolVarP(&o.device, "device", "d", o.device, "Show the local route and link-layer details for the host")
	flags.IntVarP(&o.timeoutMS, "timeout-ms", "", o.timeoutMS, "Per-probe timeout in MS")
	flags.BoolVarP(&o.icmp, "icmp", "", o.icmp, "Send ICMP echo requests directly instead of running the ping binary")
	flags.BoolVarP(&o.privileged, "privileged", "", o.privileged, "Use raw sockets for --icmp (requires root)")
	flags.StringVarP(&o.dnsServer, "dns-server", "", o.dnsServer, "Resolve through this DNS server (host or host:port) instead of the system resolver")
	flags.BoolVarP(&o.noColor, "no-color", "", o.noColor, "Disable coloured output")
	flags.BoolVarP(&o.debug, "verbose", "v", o.debug, "Enable verbose logging")
	flags.BoolVarP(&o.versionRequested, "version", "", o.versionRequested, "Output version information and exit")

	return rootCmd
}

// ports returns the ports to scan, or nil when no scan was requested. An
// explicit --scan list wins over the common ports scanned by --all.
func (o *options) ports(cmd *cobra.Command) ([]int, error) {

	if !cmd.Flags().Changed("scan") && !o.all {
		return nil, nil
	}

	selection := o.portSelection
	if !cmd.Flags().Changed("scan") {
		selection = ""
	} else if strings.TrimSpace(selection) == "" {
		return nil, fmt.Errorf("Invalid port selection: --scan needs at least one port")
	}

	ports, err := scan.ParsePorts(selection)
	if err != nil {
		return nil, fmt.Errorf("Invalid port selection: %w", err)
	}

	if err := scan.ValidatePorts(ports); err != nil {
		return nil, fmt.Errorf("Invalid port selection: %w", err)
	}

	return ports, nil
}

func (o *options) validate() error {
	if o.timeoutMS <= 0 {
		return fmt.Errorf("Invalid timeout: %dms, must be positive", o.timeoutMS)
	}
	if o.privileged && !o.icmp {
		return fmt.Errorf("--privileged only applies to --icmp")
	}
	if o.privileged && os.Geteuid() > 0 {
		return fmt.Errorf("Access Denied: You must be a privileged user to send raw ICMP packets.")
	}
	return nil
}

type run struct {
	*toolkit
	out   *printer
	host  string
	ports []int
	ip    net.IP
}

func (r *run) execute(ctx context.Context, o *options) error {

	if ctx == nil {
		ctx = context.Background()
	}

	r.out.banner()

	r.out.progressf("Resolving hostname '%s'...", r.host)
	ip, err := r.resolver.LookupIPv4(ctx, r.host)
	if err != nil {
		log.Debugf("Resolution failed: %s", err)
		r.out.failure("Could not resolve '%s'. Some functions may fail.", r.host)
	} else {
		r.ip = ip
		r.out.success("'%s' resolved to IP address: %s", r.host, ip)
	}

	failed := false
	fail := func(err error) {
		if err != nil {
			failed = true
		}
	}

	if o.ping || o.all {
		if err := r.ping(ctx, o.icmp); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			failed = true
		}
	}

	if r.ports != nil {
		if err := r.scan(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			failed = true
		}
	}

	if o.traceroute || o.all {
		fail(r.trace(ctx))
	}

	if o.device {
		fail(r.inspect(ctx))
	}

	if failed {
		return errDiagnosticsFailed
	}
	return nil
}

// ping passes the host name to the ping binary, which resolves it itself.
// Native ICMP is given the address resolved above so --dns-server and the
// IPv4 choice apply to it too.
func (r *run) ping(ctx context.Context, native bool) error {

	r.out.section("Pinging %s...", r.host)

	target := r.host
	if native && r.ip != nil {
		target = r.ip.String()
	}

	result, err := r.pinger.Ping(ctx, target)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			r.out.failure("Ping interrupted.")
		} else if errors.Is(err, diag.ErrCommandNotFound) {
			r.out.failure("Ping command not found. Please ensure it's in your system's PATH.")
		} else {
			r.out.failure("Ping failed: %s", err)
		}
		return err
	}

	if !result.Reachable {
		r.out.failure("Host is unreachable.")
		return nil
	}

	r.out.success("Host is reachable.")
	r.out.raw(result.Output)
	return nil
}

func (r *run) scan(ctx context.Context) error {

	if r.ip == nil {
		r.out.failure("Cannot resolve hostname '%s'. Aborting port scan.", r.host)
		return fmt.Errorf("cannot resolve '%s'", r.host)
	}

	r.out.section("Starting TCP port scan on %s (%s)...", r.host, r.ip)
	log.Debugf("Scanning %d ports...", len(r.ports))

	startTime := time.Now()
	results, err := r.scanner.Scan(ctx, r.ip, r.ports)
	elapsed := time.Since(startTime)

	var aborted *scan.ScanAbortedError
	switch {
	case err == nil:
	case errors.As(err, &aborted):
		r.out.failure("Port scan aborted: the local network stack failed (%s). No results are available.", aborted.Err)
		return err
	case errors.Is(err, context.Canceled):
		r.out.scanReport(results, elapsed)
		r.out.failure("Port scan interrupted after %d of %d ports.", len(results), len(r.ports))
		return err
	default:
		r.out.failure("Port scan failed: %s", err)
		return err
	}

	r.out.scanReport(results, elapsed)
	return nil
}

func (r *run) trace(ctx context.Context) error {

	if r.ip == nil {
		r.out.failure("Cannot resolve hostname '%s'. Aborting traceroute.", r.host)
		return fmt.Errorf("cannot resolve '%s'", r.host)
	}

	r.out.section("Performing traceroute to %s (%s)...", r.host, r.ip)

	if err := r.tracer.Trace(ctx, r.host, r.out.w); err != nil {
		if errors.Is(err, diag.ErrCommandNotFound) {
			r.out.failure("Traceroute command not found. Please ensure it is installed and in your system's PATH.")
		} else {
			r.out.failure("Traceroute failed: %s", err)
		}
		return err
	}
	return nil
}

func (r *run) inspect(ctx context.Context) error {

	if r.ip == nil {
		r.out.failure("Cannot resolve hostname '%s'. Skipping device details.", r.host)
		return fmt.Errorf("cannot resolve '%s'", r.host)
	}

	r.out.section("Looking up local details for %s...", r.ip)
	r.out.deviceReport(r.inspector.Lookup(ctx, r.ip))
	return nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(newToolkit).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

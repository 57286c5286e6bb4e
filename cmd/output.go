package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/liamg/netdiag/device"
	"github.com/liamg/netdiag/scan"
)

type printer struct {
	w        io.Writer
	title    *color.Color
	progress *color.Color
	good     *color.Color
	bad      *color.Color
}

func newPrinter(w io.Writer) *printer {
	return &printer{
		w:        w,
		title:    color.New(color.FgBlue, color.Bold),
		progress: color.New(color.FgYellow),
		good:     color.New(color.FgGreen),
		bad:      color.New(color.FgRed),
	}
}

func (p *printer) banner() {
	p.title.Fprintln(p.w, "netdiag - network diagnostic tool")
}

func (p *printer) progressf(format string, args ...interface{}) {
	p.progress.Fprintf(p.w, "[*] "+format+"\n", args...)
}

// section starts a new diagnostic with a blank line before its heading.
func (p *printer) section(format string, args ...interface{}) {
	fmt.Fprintln(p.w)
	p.progressf(format, args...)
}

func (p *printer) success(format string, args ...interface{}) {
	p.good.Fprintf(p.w, "[+] "+format+"\n", args...)
}

func (p *printer) failure(format string, args ...interface{}) {
	p.bad.Fprintf(p.w, "[-] "+format+"\n", args...)
}

func (p *printer) raw(text string) {
	if text == "" {
		return
	}
	fmt.Fprint(p.w, text)
	if !strings.HasSuffix(text, "\n") {
		fmt.Fprintln(p.w)
	}
}

func (p *printer) scanReport(results []scan.Result, elapsed time.Duration) {

	if len(results) > 0 {
		fmt.Fprintf(p.w, "\t%s%s%s\n", pad("PORT", 10), pad("STATE", 20), "SERVICE")
	}

	for _, result := range results {
		line := fmt.Sprintf(
			"\t%s%s%s\n",
			pad(fmt.Sprintf("%d/tcp", result.Port), 10),
			pad(result.State.String(), 20),
			scan.DescribePort(result.Port),
		)
		if result.IsOpen() {
			p.good.Fprint(p.w, line)
		} else {
			fmt.Fprint(p.w, line)
		}
	}

	fmt.Fprintln(p.w)
	p.progressf("Port scan completed in: %s", elapsed.Round(time.Millisecond))

	open := scan.OpenPorts(results)
	if len(open) == 0 {
		p.bad.Fprintln(p.w, "Summary: No open ports found in the specified list.")
		return
	}

	list := make([]string, 0, len(open))
	for _, port := range open {
		list = append(list, fmt.Sprintf("%d", port))
	}
	p.good.Fprintf(p.w, "Summary: Open ports found: %s\n", strings.Join(list, ", "))
}

func (p *printer) deviceReport(d device.Details) {

	rows := [][2]string{
		{"Route:", d.Route()},
		{"MAC:", d.MAC},
		{"Manufacturer:", d.Manufacturer},
		{"Name:", d.Name},
	}

	printed := 0
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		fmt.Fprintf(p.w, "\t%s %s\n", pad(row[0], 24), row[1])
		printed++
	}

	if printed == 0 {
		p.failure("No local details available for %s.", d.IP)
	}
}

func pad(input string, length int) string {
	for len(input) < length {
		input += " "
	}
	return input
}

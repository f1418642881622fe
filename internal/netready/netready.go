// Package netready answers one question before any probe is attempted:
// does this host have an active, non-loopback interface with a default
// route? It is a local, syscall-level check with no network round trip.
package netready

import (
	"fmt"
	"net"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/captivate-cli/captivate/internal/detect"
	"github.com/captivate-cli/captivate/internal/gateway"
	"github.com/captivate-cli/captivate/internal/logging"
)

// InterfaceLister enumerates host interfaces; injectable for tests.
type InterfaceLister func() (psnet.InterfaceStatList, error)

// RouteResolver reports the default gateway, or an error when the routing
// table has none.
type RouteResolver func() (string, error)

// Checker implements the readiness gate.
type Checker struct {
	Interfaces InterfaceLister
	Route      RouteResolver
}

// New builds a checker against the real host, sharing the gateway
// package's routing-table lookup.
func New(runner gateway.Runner) *Checker {
	return &Checker{
		Interfaces: psnet.Interfaces,
		Route: func() (string, error) {
			return gateway.ResolveIP(runner)
		},
	}
}

// Check inspects interfaces and the routing table. Read-only, returns
// immediately; a NotReady verdict short-circuits all probing.
func (c *Checker) Check() detect.Readiness {
	log := logging.Component("netready")

	ifaces, err := c.Interfaces()
	if err != nil {
		return detect.Readiness{Reason: fmt.Sprintf("listing interfaces: %v", err)}
	}

	if !anyActive(ifaces) {
		return detect.Readiness{Reason: "no active non-loopback interface with a routable address"}
	}

	gw, err := c.Route()
	if err != nil {
		return detect.Readiness{Reason: fmt.Sprintf("no default route: %v", err)}
	}

	log.WithField("gateway", gw).Debug("network ready")
	return detect.Readiness{Ready: true}
}

// anyActive reports whether some interface is up, not loopback, and holds
// an address that is neither loopback nor link-local. A link-local-only
// interface means DHCP has not finished, so not ready.
func anyActive(ifaces psnet.InterfaceStatList) bool {
	for _, iface := range ifaces {
		if !hasFlag(iface.Flags, "up") || hasFlag(iface.Flags, "loopback") {
			continue
		}
		for _, addr := range iface.Addrs {
			if routableAddr(addr.Addr) {
				return true
			}
		}
	}
	return false
}

func hasFlag(flags []string, want string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, want) {
			return true
		}
	}
	return false
}

func routableAddr(addr string) bool {
	host := addr
	if i := strings.IndexByte(addr, '/'); i >= 0 {
		host = addr[:i]
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return !ip.IsLoopback() && !ip.IsLinkLocalUnicast() && !ip.IsUnspecified()
}

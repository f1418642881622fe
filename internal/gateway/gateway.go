// Package gateway resolves the default gateway from the OS routing table
// and probes it directly for portal-style interception. Many captive
// portals intercept only traffic destined for the hotspot itself, so this
// catches portals that whitelist the vendor check hosts.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/captivate-cli/captivate/internal/detect"
	"github.com/captivate-cli/captivate/internal/logging"
)

// ErrNoDefaultRoute is returned when the routing table holds no default
// gateway, typically a network that is still associating.
var ErrNoDefaultRoute = errors.New("no default route")

// Runner executes an OS command and returns its combined stdout.
// Injectable so route parsing is testable without touching the host.
type Runner interface {
	Run(name string, args ...string) (string, error)
}

// ExecRunner runs commands on the real host.
type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return string(out), nil
}

// Detector performs the gateway probe.
type Detector struct {
	Runner Runner
	Prober detect.EndpointProber

	// urlFor and resolve are overridden in tests.
	urlFor  func(ip string) string
	resolve func(Runner) (string, error)
}

// New builds a gateway detector sharing the engine's probe semantics.
// The gateway endpoint has no canonical response, so only explicit portal
// markers (redirect, meta refresh, login form) count as evidence.
func New(timeout time.Duration) *Detector {
	return &Detector{
		Runner: ExecRunner{},
		Prober: detect.NewEngine(timeout, false),
	}
}

// Probe resolves the default gateway and issues a single HTTP probe at
// it. A missing default route is an error; the caller treats it as "no
// gateway signal", never as portal evidence.
func (d *Detector) Probe(ctx context.Context) (*detect.GatewayOutcome, error) {
	resolve := d.resolve
	if resolve == nil {
		resolve = ResolveIP
	}
	ip, err := resolve(d.Runner)
	if err != nil {
		return nil, fmt.Errorf("resolve default gateway: %w", err)
	}
	logging.Component("gateway").WithField("ip", ip).Debug("probing default gateway")

	urlFor := d.urlFor
	if urlFor == nil {
		urlFor = func(ip string) string { return "http://" + ip + "/" }
	}

	ep := detect.Endpoint{
		Name:           "gateway",
		URL:            urlFor(ip),
		BodyHeuristics: true,
	}
	outcomes := d.Prober.Probe(ctx, []detect.Endpoint{ep})
	return &detect.GatewayOutcome{GatewayIP: ip, Outcome: outcomes[0]}, nil
}

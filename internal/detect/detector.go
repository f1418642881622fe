package detect

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/captivate-cli/captivate/internal/logging"
)

// ReadinessChecker gates detection: probes are only issued on a host with
// an active, routable network interface.
type ReadinessChecker interface {
	Check() Readiness
}

// EndpointProber issues probes against registry endpoints.
type EndpointProber interface {
	Probe(ctx context.Context, endpoints []Endpoint) []ProbeOutcome
}

// GatewayProber probes the default gateway directly for portal-style
// interception.
type GatewayProber interface {
	Probe(ctx context.Context) (*GatewayOutcome, error)
}

// Launcher hands a resolved portal URL to the environment's browser-open
// capability.
type Launcher interface {
	Launch(url string) error
}

// Notifier surfaces a detected portal to the desktop session.
type Notifier interface {
	PortalFound(url string)
}

// Detector wires the readiness gate, the probe engine, and the gateway
// fallback into one run. All collaborators are injectable so the
// algorithm is testable without a real network or browser.
type Detector struct {
	Options   Options
	Endpoints []Endpoint
	Readiness ReadinessChecker
	Prober    EndpointProber
	Gateway   GatewayProber
	Launcher  Launcher
	Notifier  Notifier

	log *logrus.Entry
}

// Run performs one detection pass and produces exactly one terminal
// result. Launch and notification failures are recoverable: the detection
// result stands even when the browser could not be opened.
func (d *Detector) Run(ctx context.Context) Result {
	if d.log == nil {
		d.log = logging.Component("detector")
	}

	readiness := d.Readiness.Check()
	if !readiness.Ready {
		d.log.WithField("reason", readiness.Reason).Debug("network not ready, skipping probes")
		return Resolve(readiness, nil, nil, false)
	}

	endpoints := d.Endpoints
	if len(endpoints) == 0 {
		endpoints = DefaultEndpoints()
	}

	var (
		outcomes []ProbeOutcome
		gateway  *GatewayOutcome
	)

	if d.Options.Gateway && d.Gateway != nil {
		// Gateway-first: a clear portal signal at the gateway
		// short-circuits the vendor endpoints entirely.
		gateway = d.probeGateway(ctx)
		if _, fired := gateway.PortalURL(); !fired {
			outcomes = d.Prober.Probe(ctx, endpoints)
		}
	} else {
		outcomes = d.Prober.Probe(ctx, endpoints)
		if ambiguous(outcomes) && d.Gateway != nil {
			// Secondary corroboration, consulted only when the vendor
			// endpoints produced no signal either way.
			gateway = d.probeGateway(ctx)
		}
	}

	result := Resolve(readiness, outcomes, gateway, d.Options.Gateway)
	if result.Status == StatusPortalDetected {
		result.LaunchErr = d.handlePortal(result.PortalURL)
	}
	return result
}

func (d *Detector) probeGateway(ctx context.Context) *GatewayOutcome {
	out, err := d.Gateway.Probe(ctx)
	if err != nil {
		d.log.WithError(err).Debug("gateway probe unavailable")
		return nil
	}
	return out
}

func (d *Detector) handlePortal(portalURL string) error {
	if d.Options.Notify && d.Notifier != nil {
		d.Notifier.PortalFound(portalURL)
	}
	if d.Options.NoOpen || d.Launcher == nil {
		return nil
	}
	if err := d.Launcher.Launch(portalURL); err != nil {
		d.log.WithError(err).Warn("could not open the portal page; open it manually")
		return err
	}
	return nil
}

// ambiguous reports whether the outcomes carry neither a clean signal nor
// portal evidence, only timeouts, transport errors, or odd statuses.
func ambiguous(outcomes []ProbeOutcome) bool {
	for _, out := range outcomes {
		if out.Kind == OutcomeMatched || out.Kind == OutcomeRedirected {
			return false
		}
	}
	return true
}

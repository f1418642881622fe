package detect

// Status is the single terminal classification produced per run.
type Status int

const (
	// StatusCompleted: internet reachable, no portal in the way.
	StatusCompleted Status = iota
	// StatusPortalDetected: a captive portal intercepts traffic; the
	// accompanying Result carries its login URL.
	StatusPortalDetected
	// StatusNetworkNotReady: no usable interface or default route.
	StatusNetworkNotReady
	// StatusInconclusive: every probe failed or timed out without a
	// clear portal signal.
	StatusInconclusive
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusPortalDetected:
		return "portal-detected"
	case StatusNetworkNotReady:
		return "network-not-ready"
	case StatusInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

// ExitCode maps the status to the process exit code. Finding a portal is
// a success; the tool did its job.
func (s Status) ExitCode() int {
	switch s {
	case StatusCompleted, StatusPortalDetected:
		return 0
	case StatusNetworkNotReady:
		return 2
	case StatusInconclusive:
		return 3
	default:
		return 1
	}
}

// Result is what one detection run produces. PortalURL is set (non-empty
// and validated) exactly when Status is StatusPortalDetected.
type Result struct {
	Status    Status
	PortalURL string

	// LaunchErr records a browser-open failure for the portal page.
	// Diagnostic only; the detection status stands regardless.
	LaunchErr error
}

// Readiness is the outcome of the pre-probe network check.
type Readiness struct {
	Ready  bool
	Reason string // human-readable detail when not ready
}

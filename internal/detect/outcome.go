package detect

// OutcomeKind classifies the result of a single endpoint attempt.
type OutcomeKind int

const (
	// OutcomeMatched: the endpoint returned its expected canonical
	// response; traffic to it is not being intercepted.
	OutcomeMatched OutcomeKind = iota
	// OutcomeRedirected: portal evidence, either an HTTP redirect or a
	// 2xx response diverging from the expected canonical response.
	// Captive portals frequently wrap a login page in a 200 OK.
	OutcomeRedirected
	// OutcomeUnexpected: a non-redirect error status (4xx/5xx). Recorded
	// for diagnostics; by itself neither portal evidence nor a clean signal.
	OutcomeUnexpected
	// OutcomeTimedOut: the probe exceeded its deadline.
	OutcomeTimedOut
	// OutcomeTransportError: DNS, connect, or read failure.
	OutcomeTransportError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeMatched:
		return "matched"
	case OutcomeRedirected:
		return "redirected"
	case OutcomeUnexpected:
		return "unexpected-response"
	case OutcomeTimedOut:
		return "timed-out"
	case OutcomeTransportError:
		return "transport-error"
	default:
		return "unknown"
	}
}

// ProbeOutcome is the result of one endpoint attempt.
type ProbeOutcome struct {
	Endpoint Endpoint
	Kind     OutcomeKind

	// PortalURL is the candidate login URL, set only for OutcomeRedirected.
	PortalURL string

	// StatusCode is the HTTP status when a response was received, 0 otherwise.
	StatusCode int

	// BodyExcerpt holds the start of an unexpected body, for diagnostics.
	BodyExcerpt string

	// Err carries the failure reason for timeouts and transport errors.
	Err error
}

// GatewayOutcome is the result of probing the default gateway directly.
type GatewayOutcome struct {
	GatewayIP string
	Outcome   ProbeOutcome
}

// PortalURL returns the gateway's candidate portal URL, if it fired.
func (g *GatewayOutcome) PortalURL() (string, bool) {
	if g == nil || g.Outcome.Kind != OutcomeRedirected {
		return "", false
	}
	return g.Outcome.PortalURL, true
}

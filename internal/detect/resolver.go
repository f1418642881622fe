package detect

// Resolve merges engine outcomes, the optional gateway outcome, and the
// readiness verdict into exactly one terminal status. Pure function, no
// I/O; every input has already been gathered.
//
// Precedence: NetworkNotReady short-circuits everything. Otherwise any
// confirmed portal signal wins; the gateway URL is preferred when
// gateway-first mode was configured and it fired. With no portal signal,
// at least one Matched endpoint means the network is clean; only
// timeouts, transport errors, and unexpected statuses mean the run was
// inconclusive.
func Resolve(readiness Readiness, outcomes []ProbeOutcome, gateway *GatewayOutcome, gatewayFirst bool) Result {
	if !readiness.Ready {
		return Result{Status: StatusNetworkNotReady}
	}

	gatewayURL, gatewayFired := gateway.PortalURL()

	if gatewayFirst && gatewayFired {
		return Result{Status: StatusPortalDetected, PortalURL: gatewayURL}
	}

	// Outcomes arrive in completion order; the first Redirected wins the
	// tie-break when several disagree on the portal URL.
	for _, out := range outcomes {
		if out.Kind == OutcomeRedirected {
			return Result{Status: StatusPortalDetected, PortalURL: out.PortalURL}
		}
	}

	if gatewayFired {
		return Result{Status: StatusPortalDetected, PortalURL: gatewayURL}
	}

	for _, out := range outcomes {
		if out.Kind == OutcomeMatched {
			return Result{Status: StatusCompleted}
		}
	}

	return Result{Status: StatusInconclusive}
}

package detect

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/captivate-cli/captivate/internal/logging"
)

const (
	// maxBodyBytes caps how much of a response body is read for
	// classification. Portal login pages are small; anything larger is
	// not the canonical check response either way.
	maxBodyBytes = 256 << 10

	excerptLen = 200
)

// Engine issues concurrent HTTP probes against registry endpoints and
// classifies each outcome. One goroutine per endpoint, each bounded by its
// own deadline, so total latency is about one timeout rather than the sum.
type Engine struct {
	client    *http.Client
	timeout   time.Duration
	earlyExit bool
	log       *logrus.Entry
}

// NewEngine builds an engine with redirect-following disabled; the
// Location header is portal evidence, not something to chase. When
// earlyExit is set, the first decisive portal signal cancels outstanding
// probes instead of awaiting them.
func NewEngine(timeout time.Duration, earlyExit bool) *Engine {
	connectTimeout := timeout
	if connectTimeout > 2*time.Second {
		connectTimeout = 2 * time.Second
	}
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
			DisableKeepAlives: true,
		},
	}
	return &Engine{
		client:    client,
		timeout:   timeout,
		earlyExit: earlyExit,
		log:       logging.Component("engine"),
	}
}

// Probe runs one probe per endpoint in parallel and returns one outcome
// per endpoint, in completion order. With early-exit enabled, a
// Redirected outcome cancels the probes still in flight; their sockets
// are released through context cancellation and they settle as fast
// transport errors.
func (e *Engine) Probe(ctx context.Context, endpoints []Endpoint) []ProbeOutcome {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan ProbeOutcome, len(endpoints))
	for _, ep := range endpoints {
		go func(ep Endpoint) {
			results <- e.probeOne(ctx, ep)
		}(ep)
	}

	outcomes := make([]ProbeOutcome, 0, len(endpoints))
	for range endpoints {
		out := <-results
		e.log.WithFields(logrus.Fields{
			"endpoint": out.Endpoint.Name,
			"outcome":  out.Kind.String(),
			"status":   out.StatusCode,
		}).Debug("probe settled")
		outcomes = append(outcomes, out)
		if e.earlyExit && out.Kind == OutcomeRedirected {
			cancel()
		}
	}
	return outcomes
}

// probeOne issues a single GET bounded by the per-probe timeout and
// classifies the result.
func (e *Engine) probeOne(ctx context.Context, ep Endpoint) ProbeOutcome {
	reqCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, ep.URL, nil)
	if err != nil {
		return ProbeOutcome{Endpoint: ep, Kind: OutcomeTransportError, Err: err}
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return classifyError(ep, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return classifyError(ep, err)
	}

	return classifyResponse(ep, resp, string(body))
}

// classifyError folds a transport failure into the probe's outcome.
// These never propagate as top-level failures by themselves.
func classifyError(ep Endpoint, err error) ProbeOutcome {
	kind := OutcomeTransportError
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = OutcomeTimedOut
	}
	return ProbeOutcome{Endpoint: ep, Kind: kind, Err: err}
}

// classifyResponse compares a response against the endpoint's expected
// canonical response. Policy: any divergence from the canonical response
// is portal evidence, not "unexpected but benign", except hard error
// statuses, which are recorded without implying a portal.
func classifyResponse(ep Endpoint, resp *http.Response, body string) ProbeOutcome {
	out := ProbeOutcome{Endpoint: ep, StatusCode: resp.StatusCode}
	base, _ := url.Parse(ep.URL)

	// Redirect statuses are the clearest portal signal.
	if resp.StatusCode >= 300 && resp.StatusCode < 400 {
		out.Kind = OutcomeRedirected
		if target, ok := locationURL(resp, base); ok {
			out.PortalURL = target
		} else {
			// Redirect without a usable Location still points at the
			// intercepting host; fall back to the probed URL.
			out.PortalURL = ep.URL
		}
		return out
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return classifySuccess(ep, resp.StatusCode, body, base, out)
	}

	// 4xx/5xx: neither a clean signal nor portal evidence on its own.
	out.Kind = OutcomeUnexpected
	out.BodyExcerpt = excerpt(body)
	return out
}

func classifySuccess(ep Endpoint, status int, body string, base *url.URL, out ProbeOutcome) ProbeOutcome {
	if ep.ExpectedStatus == 0 && ep.BodyMarker == "" {
		// No canonical response to match (gateway-style probe): only
		// explicit portal markers in the page count as evidence.
		if target, ok := metaRefreshURL(body, base); ok {
			out.Kind = OutcomeRedirected
			out.PortalURL = target
			return out
		}
		if ep.BodyHeuristics && hasLoginForm(body) {
			out.Kind = OutcomeRedirected
			out.PortalURL = ep.URL
			return out
		}
		out.Kind = OutcomeUnexpected
		out.BodyExcerpt = excerpt(body)
		return out
	}

	statusOK := ep.ExpectedStatus == 0 || status == ep.ExpectedStatus
	markerOK := ep.BodyMarker == "" || strings.Contains(body, ep.BodyMarker)
	if statusOK && markerOK {
		out.Kind = OutcomeMatched
		return out
	}

	// A 2xx that diverges from the canonical response is a portal
	// wrapping a login page in a 200 OK.
	out.Kind = OutcomeRedirected
	if target, ok := metaRefreshURL(body, base); ok {
		out.PortalURL = target
	} else {
		out.PortalURL = ep.URL
	}
	out.BodyExcerpt = excerpt(body)
	return out
}

// excerpt trims the body for diagnostics, cutting on a rune boundary so
// a multi-byte character is never split.
func excerpt(body string) string {
	body = strings.TrimSpace(body)
	if len(body) <= excerptLen {
		return body
	}
	cut := excerptLen
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut]
}

package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/captivate-cli/captivate/internal/detect"
)

const darwinRouteOut = `   route to: default
destination: default
       mask: default
    gateway: 192.168.4.1
  interface: en0
      flags: <UP,GATEWAY,DONE,STATIC,PRCLONING,GLOBAL>
`

func TestParseDarwinRoute(t *testing.T) {
	ip, err := parseDarwinRoute(darwinRouteOut)
	require.NoError(t, err)
	assert.Equal(t, "192.168.4.1", ip)

	_, err = parseDarwinRoute("route: writing to routing socket: not in table")
	assert.ErrorIs(t, err, ErrNoDefaultRoute)
}

const procNetRouteOut = `Iface	Destination	Gateway 	Flags	RefCnt	Use	Metric	Mask		MTU	Window	IRTT
wlan0	00000000	0102A8C0	0003	0	0	600	00000000	0	0	0
wlan0	0002A8C0	00000000	0001	0	0	600	00FFFFFF	0	0	0
`

func TestParseProcNetRoute(t *testing.T) {
	ip, err := parseProcNetRoute(procNetRouteOut)
	require.NoError(t, err)
	assert.Equal(t, "192.168.2.1", ip)

	// Route table with only the link-local route, no default gateway.
	noDefault := "Iface\tDestination\tGateway\tFlags\nwlan0\t0002A8C0\t00000000\t0001\n"
	_, err = parseProcNetRoute(noDefault)
	assert.ErrorIs(t, err, ErrNoDefaultRoute)
}

const windowsRouteOut = `===========================================================================
Active Routes:
Network Destination        Netmask          Gateway       Interface  Metric
          0.0.0.0          0.0.0.0      10.20.30.1       10.20.30.7     25
===========================================================================
`

func TestParseWindowsRoute(t *testing.T) {
	ip, err := parseWindowsRoute(windowsRouteOut)
	require.NoError(t, err)
	assert.Equal(t, "10.20.30.1", ip)

	_, err = parseWindowsRoute("Active Routes:\n None\n")
	assert.ErrorIs(t, err, ErrNoDefaultRoute)
}

func testDetector(t *testing.T, handler http.HandlerFunc) *Detector {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	d := New(time.Second)
	d.resolve = func(Runner) (string, error) { return "192.168.4.1", nil }
	d.urlFor = func(string) string { return srv.URL + "/" }
	return d
}

func TestProbeGatewayRedirect(t *testing.T) {
	d := testDetector(t, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://192.168.4.1/login", http.StatusFound)
	})

	out, err := d.Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "192.168.4.1", out.GatewayIP)

	url, fired := out.PortalURL()
	require.True(t, fired)
	assert.Equal(t, "http://192.168.4.1/login", url)
}

func TestProbeGatewayMetaRefresh(t *testing.T) {
	d := testDetector(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><meta http-equiv="refresh" content="0; url=http://192.168.4.1/portal"></html>`))
	})

	out, err := d.Probe(context.Background())
	require.NoError(t, err)

	url, fired := out.PortalURL()
	require.True(t, fired)
	assert.Equal(t, "http://192.168.4.1/portal", url)
}

func TestProbeGatewayAdminPageIsNoSignal(t *testing.T) {
	d := testDetector(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><title>RouterOS admin</title></html>"))
	})

	out, err := d.Probe(context.Background())
	require.NoError(t, err)

	_, fired := out.PortalURL()
	assert.False(t, fired, "a plain gateway admin page is not portal evidence")
	assert.Equal(t, detect.OutcomeUnexpected, out.Outcome.Kind)
}

func TestProbeNoDefaultRoute(t *testing.T) {
	d := New(time.Second)
	d.resolve = func(Runner) (string, error) { return "", ErrNoDefaultRoute }

	_, err := d.Probe(context.Background())
	assert.ErrorIs(t, err, ErrNoDefaultRoute)
}

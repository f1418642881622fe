package netready

import (
	"errors"
	"testing"

	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/stretchr/testify/assert"
)

func iface(name string, flags []string, addrs ...string) psnet.InterfaceStat {
	st := psnet.InterfaceStat{Name: name, Flags: flags}
	for _, a := range addrs {
		st.Addrs = append(st.Addrs, psnet.InterfaceAddr{Addr: a})
	}
	return st
}

func checker(ifaces psnet.InterfaceStatList, route string, routeErr error) *Checker {
	return &Checker{
		Interfaces: func() (psnet.InterfaceStatList, error) { return ifaces, nil },
		Route:      func() (string, error) { return route, routeErr },
	}
}

func TestCheckReady(t *testing.T) {
	c := checker(psnet.InterfaceStatList{
		iface("lo0", []string{"up", "loopback"}, "127.0.0.1/8"),
		iface("en0", []string{"up", "broadcast"}, "192.168.1.12/24"),
	}, "192.168.1.1", nil)

	r := c.Check()
	assert.True(t, r.Ready)
	assert.Empty(t, r.Reason)
}

func TestCheckLoopbackOnly(t *testing.T) {
	c := checker(psnet.InterfaceStatList{
		iface("lo0", []string{"up", "loopback"}, "127.0.0.1/8"),
	}, "192.168.1.1", nil)

	r := c.Check()
	assert.False(t, r.Ready)
	assert.Contains(t, r.Reason, "no active non-loopback interface")
}

func TestCheckLinkLocalOnlyMeansNotReady(t *testing.T) {
	// A 169.254 address means DHCP never completed.
	c := checker(psnet.InterfaceStatList{
		iface("en0", []string{"up", "broadcast"}, "169.254.7.33/16"),
	}, "192.168.1.1", nil)

	r := c.Check()
	assert.False(t, r.Ready)
}

func TestCheckInterfaceDown(t *testing.T) {
	c := checker(psnet.InterfaceStatList{
		iface("en0", []string{"broadcast"}, "192.168.1.12/24"),
	}, "192.168.1.1", nil)

	assert.False(t, c.Check().Ready)
}

func TestCheckNoDefaultRoute(t *testing.T) {
	c := checker(psnet.InterfaceStatList{
		iface("en0", []string{"up", "broadcast"}, "192.168.1.12/24"),
	}, "", errors.New("no default route"))

	r := c.Check()
	assert.False(t, r.Ready)
	assert.Contains(t, r.Reason, "no default route")
}

func TestCheckInterfaceListError(t *testing.T) {
	c := &Checker{
		Interfaces: func() (psnet.InterfaceStatList, error) {
			return nil, errors.New("netlink: permission denied")
		},
		Route: func() (string, error) { return "192.168.1.1", nil },
	}

	r := c.Check()
	assert.False(t, r.Ready)
	assert.Contains(t, r.Reason, "listing interfaces")
}

func TestRoutableAddr(t *testing.T) {
	cases := []struct {
		addr string
		want bool
	}{
		{"192.168.1.12/24", true},
		{"10.0.0.5", true},
		{"2001:db8::1/64", true},
		{"127.0.0.1/8", false},
		{"::1/128", false},
		{"169.254.7.33/16", false},
		{"fe80::1c2d:3eff:fe4f:5a6b/64", false},
		{"0.0.0.0", false},
		{"not-an-ip", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, routableAddr(tc.addr), tc.addr)
	}
}

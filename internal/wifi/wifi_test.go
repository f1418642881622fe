package wifi

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hardwarePortsOut = `Hardware Port: Ethernet
Device: en1
Ethernet Address: aa:bb:cc:dd:ee:00

Hardware Port: Wi-Fi
Device: en0
Ethernet Address: aa:bb:cc:dd:ee:ff

Hardware Port: Thunderbolt Bridge
Device: bridge0
Ethernet Address: aa:bb:cc:dd:ee:01
`

type scriptedRunner struct {
	calls [][]string
	fail  map[string]error
}

func (s *scriptedRunner) Run(name string, args ...string) (string, error) {
	call := append([]string{name}, args...)
	s.calls = append(s.calls, call)
	if err := s.fail[name+" "+args[0]]; err != nil {
		return "", err
	}
	if args[0] == "-listallhardwareports" {
		return hardwarePortsOut, nil
	}
	return "", nil
}

func TestDeviceParsesWiFiPort(t *testing.T) {
	c := New(&scriptedRunner{})
	dev, err := c.Device()
	require.NoError(t, err)
	assert.Equal(t, "en0", dev)
}

func TestDeviceParsesLegacyAirPort(t *testing.T) {
	m := hardwarePortRe.FindStringSubmatch("Hardware Port: AirPort\nDevice: en1\n")
	require.NotNil(t, m)
	assert.Equal(t, "en1", m[2])
}

func TestDeviceNoWiFiPort(t *testing.T) {
	c := &Controller{
		Runner: runnerFunc(func(string, ...string) (string, error) {
			return "Hardware Port: Ethernet\nDevice: en1\n", nil
		}),
	}
	_, err := c.Device()
	assert.Error(t, err)
}

type runnerFunc func(name string, args ...string) (string, error)

func (f runnerFunc) Run(name string, args ...string) (string, error) { return f(name, args...) }

func TestResetPowerCycles(t *testing.T) {
	r := &scriptedRunner{}
	var slept []time.Duration
	c := &Controller{Runner: r, Sleep: func(d time.Duration) { slept = append(slept, d) }}

	require.NoError(t, c.Reset("en0"))

	require.Len(t, r.calls, 2)
	assert.Equal(t, []string{"networksetup", "-setairportpower", "en0", "off"}, r.calls[0])
	assert.Equal(t, []string{"networksetup", "-setairportpower", "en0", "on"}, r.calls[1])
	assert.Equal(t, []time.Duration{powerCycleDelay}, slept)
}

func TestResetPowerOffFailure(t *testing.T) {
	r := &scriptedRunner{fail: map[string]error{
		"networksetup -setairportpower": errors.New("permission denied"),
	}}
	c := &Controller{Runner: r, Sleep: func(time.Duration) {}}

	err := c.Reset("en0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wifi power off")
	assert.Len(t, r.calls, 1, "must not attempt power on after a failed power off")
}

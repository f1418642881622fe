// Package wifi toggles the Wi-Fi interface power to force a clean
// re-association. macOS only: portals sometimes leave a half-joined
// network where nothing answers until the interface rejoins.
package wifi

import (
	"fmt"
	"regexp"
	"runtime"
	"time"

	"github.com/captivate-cli/captivate/internal/logging"
)

// Runner executes an OS command and returns its stdout.
type Runner interface {
	Run(name string, args ...string) (string, error)
}

// hardwarePortRe finds the Wi-Fi device name in
// `networksetup -listallhardwareports` output. Older macOS says AirPort.
var hardwarePortRe = regexp.MustCompile(`(?s)Hardware Port:\s*(Wi-Fi|AirPort).*?Device:\s*(\S+)`)

// powerCycleDelay gives the driver time to fully release the interface
// between the off and on toggles.
const powerCycleDelay = 2 * time.Second

// Controller drives networksetup. Sleep is injectable for tests.
type Controller struct {
	Runner Runner
	Sleep  func(time.Duration)
}

// New returns a controller with real sleeping.
func New(r Runner) *Controller {
	return &Controller{Runner: r, Sleep: time.Sleep}
}

// Supported reports whether this host can reset Wi-Fi.
func Supported() bool {
	return runtime.GOOS == "darwin"
}

// Device finds the Wi-Fi hardware device (e.g. en0).
func (c *Controller) Device() (string, error) {
	out, err := c.Runner.Run("networksetup", "-listallhardwareports")
	if err != nil {
		return "", fmt.Errorf("list hardware ports: %w", err)
	}
	m := hardwarePortRe.FindStringSubmatch(out)
	if m == nil {
		return "", fmt.Errorf("no Wi-Fi hardware port found")
	}
	return m[2], nil
}

// Reset power-cycles the Wi-Fi device.
func (c *Controller) Reset(device string) error {
	log := logging.Component("wifi")
	log.WithField("device", device).Debug("powering Wi-Fi off")
	if _, err := c.Runner.Run("networksetup", "-setairportpower", device, "off"); err != nil {
		return fmt.Errorf("wifi power off: %w", err)
	}
	c.Sleep(powerCycleDelay)
	log.WithField("device", device).Debug("powering Wi-Fi on")
	if _, err := c.Runner.Run("networksetup", "-setairportpower", device, "on"); err != nil {
		return fmt.Errorf("wifi power on: %w", err)
	}
	return nil
}

// Package launcher hands a resolved portal URL to the OS default browser.
// Thin by design: detection already happened, and a launch failure (no
// GUI session, missing handler) never invalidates the detection result.
package launcher

import (
	"fmt"
	"net/url"

	"github.com/captivate-cli/captivate/internal/logging"
)

// BrowserOpener is the platform URL-open primitive, injectable so tests
// never spawn a real browser.
type BrowserOpener interface {
	Open(url string) error
}

// Launcher validates the portal URL and delegates to the opener.
type Launcher struct {
	Opener BrowserOpener
	NoOpen bool
}

// New returns a launcher backed by the OS default browser.
func New(noOpen bool) *Launcher {
	return &Launcher{Opener: ExecOpener{}, NoOpen: noOpen}
}

// Launch opens the portal URL. With NoOpen set it only logs the URL;
// the caller has already printed it for the user.
func (l *Launcher) Launch(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return fmt.Errorf("refusing to open non-http url %q", rawURL)
	}
	if l.NoOpen {
		logging.Component("launcher").WithField("url", rawURL).Debug("browser open suppressed")
		return nil
	}
	if err := l.Opener.Open(rawURL); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}

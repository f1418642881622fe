package detect

import (
	"errors"
	"time"
)

// DefaultTimeout bounds each individual probe when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// ErrInvalidTimeout is reported before any network activity when the
// configured timeout is not positive.
var ErrInvalidTimeout = errors.New("timeout must be a positive duration")

// Options holds the per-run configuration. It is validated once at entry
// and passed by value into every component. No ambient global state.
type Options struct {
	Verbose bool          // emit per-probe classification detail
	NoOpen  bool          // report the portal URL without opening a browser
	Gateway bool          // probe the default gateway before vendor endpoints
	Notify  bool          // desktop notification when a portal is found
	Timeout time.Duration // per-probe deadline, not cumulative across probes
}

// Validate checks the options. The timeout applies to each probe
// individually; concurrent probes keep total latency near one timeout.
func (o Options) Validate() error {
	if o.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

package platform

import (
	"fmt"
	"runtime"
)

// ErrUnsupported is returned when the host OS has no gateway lookup or
// browser-open support. Checked once at entry, before any probing.
type ErrUnsupported struct {
	GOOS string
}

func (e *ErrUnsupported) Error() string {
	return fmt.Sprintf("unsupported platform: %s", e.GOOS)
}

var supported = map[string]bool{
	"darwin":  true,
	"linux":   true,
	"windows": true,
}

// Check verifies the host platform is supported.
func Check() error {
	if !supported[runtime.GOOS] {
		return &ErrUnsupported{GOOS: runtime.GOOS}
	}
	return nil
}

// Package instance prevents two detection runs from racing each other;
// both would probe, and both would open the portal login page.
package instance

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const lockFileName = "captivate.lock"

// Lock represents a held instance lock.
type Lock struct {
	fd   lockHandle
	path string
}

// Acquire tries to obtain an exclusive instance lock under the system
// temp directory. Returns an error if another run is already in flight.
func Acquire() (*Lock, error) {
	path := filepath.Join(os.TempDir(), lockFileName)

	fd, err := tryLock(path)
	if err != nil {
		// Try to read the holder's PID for a helpful message
		if data, readErr := os.ReadFile(path); readErr == nil {
			pid := strings.TrimSpace(string(data))
			if pid != "" {
				return nil, fmt.Errorf("another detection run is in progress (PID: %s)", pid)
			}
		}
		return nil, fmt.Errorf("another detection run is in progress")
	}

	// Write our PID for diagnostics
	writePID(fd, path, strconv.Itoa(os.Getpid()))

	return &Lock{fd: fd, path: path}, nil
}

// Release releases the instance lock.
func (l *Lock) Release() {
	if l == nil {
		return
	}
	unlock(l.fd)
	os.Remove(l.path)
}

// Package ui sends desktop notifications via native OS facilities
// (Win32 on Windows, osascript on macOS, zenity/kdialog on Linux).
package ui

import (
	"fmt"
	"os"
	"runtime"

	"github.com/ncruces/zenity"
)

// DesktopNotifier raises a notification when a portal is found, so the
// verdict is visible even when the terminal is buried.
type DesktopNotifier struct{}

// PortalFound notifies about a detected captive portal. Best effort:
// failures are ignored, the console status line is authoritative.
func (DesktopNotifier) PortalFound(url string) {
	Notify("Captive portal detected", fmt.Sprintf("Login page: %s", url))
}

// Notify sends a desktop notification. No-op if no GUI session is available.
func Notify(title, message string) {
	if !IsGuiAvailable() {
		return
	}
	_ = zenity.Notify(message, zenity.Title(title), zenity.InfoIcon)
}

// IsGuiAvailable returns true if native notifications can be shown.
// Always true on Windows and macOS. On Linux, requires DISPLAY or WAYLAND_DISPLAY.
func IsGuiAvailable() bool {
	switch runtime.GOOS {
	case "windows", "darwin":
		return true
	default:
		return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
	}
}

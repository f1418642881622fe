package launcher

import (
	"fmt"
	"os/exec"
	"runtime"
)

// ExecOpener opens URLs with the platform's default-browser handler.
type ExecOpener struct{}

// Open starts the handler without waiting for it to exit.
func (ExecOpener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		// Use rundll32 instead of "cmd /c start" — start mishandles URLs
		// with & and ? characters (interprets & as command separator).
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}

//go:build linux

package gateway

import "os"

const procNetRoute = "/proc/net/route"

// ResolveIP looks up the default gateway from /proc/net/route. No command
// execution needed on Linux; the Runner is unused here.
func ResolveIP(_ Runner) (string, error) {
	data, err := os.ReadFile(procNetRoute)
	if err != nil {
		return "", err
	}
	return parseProcNetRoute(string(data))
}

//go:build windows

package gateway

// ResolveIP looks up the default gateway via the routing table.
func ResolveIP(r Runner) (string, error) {
	out, err := r.Run("route", "print", "0.0.0.0")
	if err != nil {
		return "", err
	}
	return parseWindowsRoute(out)
}

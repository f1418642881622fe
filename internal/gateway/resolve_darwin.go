//go:build darwin

package gateway

// ResolveIP looks up the default gateway via the routing table.
func ResolveIP(r Runner) (string, error) {
	out, err := r.Run("route", "-n", "get", "default")
	if err != nil {
		return "", err
	}
	return parseDarwinRoute(out)
}

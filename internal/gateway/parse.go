package gateway

import (
	"bufio"
	"net"
	"regexp"
	"strconv"
	"strings"
)

// Routing-table parsers, one per OS output format. Kept free of build
// tags so each can be tested on any platform.

var (
	darwinGatewayRe  = regexp.MustCompile(`gateway:\s+(\d+\.\d+\.\d+\.\d+)`)
	windowsGatewayRe = regexp.MustCompile(`(?m)^\s*0\.0\.0\.0\s+0\.0\.0\.0\s+(\d+\.\d+\.\d+\.\d+)`)
)

// parseDarwinRoute extracts the gateway IP from `route -n get default`.
func parseDarwinRoute(out string) (string, error) {
	m := darwinGatewayRe.FindStringSubmatch(out)
	if m == nil {
		return "", ErrNoDefaultRoute
	}
	return m[1], nil
}

// parseWindowsRoute extracts the gateway IP from `route print 0.0.0.0`.
func parseWindowsRoute(out string) (string, error) {
	m := windowsGatewayRe.FindStringSubmatch(out)
	if m == nil {
		return "", ErrNoDefaultRoute
	}
	return m[1], nil
}

// RTF_GATEWAY flag in /proc/net/route.
const rtfGateway = 0x2

// parseProcNetRoute extracts the gateway IP from Linux /proc/net/route.
// The destination and gateway columns are little-endian hex.
func parseProcNetRoute(data string) (string, error) {
	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[1] == "Destination" {
			continue
		}
		dest, gw, flagStr := fields[1], fields[2], fields[3]
		if dest != "00000000" {
			continue
		}
		flags, err := strconv.ParseUint(flagStr, 16, 32)
		if err != nil || flags&rtfGateway == 0 {
			continue
		}
		v, err := strconv.ParseUint(gw, 16, 32)
		if err != nil || v == 0 {
			continue
		}
		ip := net.IPv4(byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
		return ip.String(), nil
	}
	return "", ErrNoDefaultRoute
}

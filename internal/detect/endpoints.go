package detect

// Endpoint is one well-known connectivity-check URL with its expected
// canonical response. Registry entries are static and read-only.
type Endpoint struct {
	Name string
	URL  string

	// ExpectedStatus is the canonical status code, 0 when any 2xx with a
	// matching body marker counts.
	ExpectedStatus int

	// BodyMarker must appear in the response body for a match. Empty when
	// the status code alone is decisive.
	BodyMarker string

	// BodyHeuristics enables meta-refresh and login-form portal-URL
	// extraction from 2xx bodies. Used for the gateway probe, where the
	// intercepted page is served directly instead of via redirect.
	BodyHeuristics bool
}

// DefaultEndpoints returns the built-in registry. Two distinct vendors so
// a portal that whitelists one check host is still caught by the other.
func DefaultEndpoints() []Endpoint {
	return []Endpoint{
		{
			Name:           "apple",
			URL:            "http://captive.apple.com/hotspot-detect.html",
			ExpectedStatus: 200,
			BodyMarker:     "Success",
		},
		{
			Name:           "google",
			URL:            "http://connectivitycheck.gstatic.com/generate_204",
			ExpectedStatus: 204,
		},
	}
}

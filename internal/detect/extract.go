package detect

import (
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Portal-URL extraction precedence: Location header first, then a
// meta-refresh target in the body, then (when the page carries a login
// form) the probed URL itself. Relative targets resolve against the
// probed URL; only http(s) results are accepted.

// metaContentRe pulls the url= part out of a meta refresh content
// attribute, e.g. "0; url=http://portal.example/login".
var metaContentRe = regexp.MustCompile(`(?i)^\s*\d+\s*;\s*url\s*=\s*['"]?([^'"\s>]+)`)

// locationURL returns the redirect target for 30x responses.
func locationURL(resp *http.Response, base *url.URL) (string, bool) {
	if resp.StatusCode < 300 || resp.StatusCode >= 400 {
		return "", false
	}
	loc := resp.Header.Get("Location")
	if loc == "" {
		return "", false
	}
	return resolveRef(base, loc)
}

// metaRefreshURL scans an HTML body for <meta http-equiv="refresh">.
func metaRefreshURL(body string, base *url.URL) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", false
	}
	var target string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		equiv, _ := s.Attr("http-equiv")
		if !strings.EqualFold(equiv, "refresh") {
			return true
		}
		content, _ := s.Attr("content")
		if m := metaContentRe.FindStringSubmatch(content); m != nil {
			target = m[1]
			return false
		}
		return true
	})
	if target == "" {
		return "", false
	}
	return resolveRef(base, target)
}

// hasLoginForm reports whether the body contains a form with a password
// input, the usual shape of a portal login page served in-band.
func hasLoginForm(body string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return false
	}
	return doc.Find(`form input[type="password"]`).Length() > 0
}

// resolveRef resolves ref against base and validates the result.
func resolveRef(base *url.URL, ref string) (string, bool) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	if base != nil {
		parsed = base.ResolveReference(parsed)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", false
	}
	if parsed.Host == "" {
		return "", false
	}
	return parsed.String(), true
}

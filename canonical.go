package frontier

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// trackingPrefixes lists raw query parameter prefixes stripped during
// normalization. These are advertising and analytics trackers that do not
// affect page content.
var trackingPrefixes = []string{"utm_", "gclid="}

// Canonicalize maps a raw URL to a stable identity and a normalized URL
// string. It is pure and deterministic: two raw URLs that differ only in
// normalized dimensions produce the same CanonicalID.
//
// Normalization rules, applied in order: default the scheme to http if
// absent; lowercase the host; drop port 80 for http and 443 for https;
// append "/" to paths whose final segment has no extension; drop the
// fragment; strip tracking query parameters; sort remaining query
// parameters by raw string.
//
// The canonical id is the SHA-256 of the normalized URL, rendered as
// "cid:sha256:<hex>".
func Canonicalize(rawURL string) (CanonicalID, string, error) {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return "", "", Errorf(EINVALID, "empty URL")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", Errorf(EINVALID, "malformed URL %q: %v", rawURL, err)
	}

	// A bare "example.com/path" parses as a relative path reference.
	// Retry with the default scheme before rejecting.
	if u.Host == "" {
		u, err = url.Parse("http://" + raw)
		if err != nil {
			return "", "", Errorf(EINVALID, "malformed URL %q: %v", rawURL, err)
		}
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme == "" {
		scheme = "http"
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", "", Errorf(EINVALID, "malformed URL %q: no host", rawURL)
	}
	netloc := host
	if port := u.Port(); port != "" && !isDefaultPort(scheme, port) {
		netloc += ":" + port
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	// Directory-style paths (no extension in the final segment) get a
	// trailing slash so /docs and /docs/ dedupe to the same id.
	if last := path[strings.LastIndex(path, "/")+1:]; last != "" && !strings.Contains(last, ".") {
		path += "/"
	}

	var params []string
	for _, param := range strings.Split(u.RawQuery, "&") {
		if param == "" || isTrackingParam(param) {
			continue
		}
		params = append(params, param)
	}
	sort.Strings(params)

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	b.WriteString(netloc)
	b.WriteString(path)
	if len(params) > 0 {
		b.WriteString("?")
		b.WriteString(strings.Join(params, "&"))
	}
	normalized := b.String()

	sum := sha256.Sum256([]byte(normalized))
	return CanonicalID("cid:sha256:" + hex.EncodeToString(sum[:])), normalized, nil
}

func isDefaultPort(scheme, port string) bool {
	return (scheme == "http" && port == "80") || (scheme == "https" && port == "443")
}

func isTrackingParam(param string) bool {
	lower := strings.ToLower(param)
	for _, prefix := range trackingPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

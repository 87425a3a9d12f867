package validation

import (
	"net/netip"
	"net/url"
	"strings"
)

var blockedProtocols = map[string]bool{
	"javascript": true,
	"data":       true,
	"file":       true,
	"vbscript":   true,
	"about":      true,
	"blob":       true,
}

var allowedProtocols = map[string]bool{
	"http":  true,
	"https": true,
}

// Non-routable and reserved IPv4 ranges beyond what netip classifies itself:
// CGNAT, IETF protocol assignments, and the TEST-NET blocks.
var reservedV4 = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("192.0.2.0/24"),
	netip.MustParsePrefix("198.51.100.0/24"),
	netip.MustParsePrefix("203.0.113.0/24"),
}

type URLValidator struct {
	maxLength       int
	allowPrivateIPs bool
}

func NewURLValidator(maxLength int, allowPrivateIPs bool) *URLValidator {
	return &URLValidator{
		maxLength:       maxLength,
		allowPrivateIPs: allowPrivateIPs,
	}
}

// ValidateURL checks that rawURL is an absolute http(s) URL suitable for
// shortening. Hostnames are accepted as-is; only IP literals are screened
// against private and reserved ranges (no DNS resolution).
func (v *URLValidator) ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return ErrEmptyURL
	}

	if len(rawURL) > v.maxLength {
		return ErrURLTooLong
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ErrInvalidURLFormat
	}

	scheme := strings.ToLower(parsed.Scheme)
	if blockedProtocols[scheme] {
		return ErrUnsafeProtocol
	}
	if !allowedProtocols[scheme] {
		return ErrInvalidURLFormat
	}

	if parsed.Host == "" {
		return ErrInvalidURLFormat
	}

	if !v.allowPrivateIPs {
		if err := validateHost(parsed.Hostname()); err != nil {
			return err
		}
	}

	return nil
}

func validateHost(hostname string) error {
	addr, err := netip.ParseAddr(hostname)
	if err != nil {
		// Not an IP literal; hostnames pass without DNS resolution.
		return nil
	}

	if addr.Is4In6() {
		addr = netip.AddrFrom4(addr.As4())
	}

	if addr.IsPrivate() ||
		addr.IsLoopback() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsMulticast() ||
		addr.IsUnspecified() {
		return ErrPrivateHost
	}

	for _, p := range reservedV4 {
		if p.Contains(addr) {
			return ErrPrivateHost
		}
	}

	return nil
}

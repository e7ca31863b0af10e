// Package validator decides whether a proxy host string is a plausible
// network target. Checks are purely lexical; nothing here touches the network.
package validator

import (
	"net/netip"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// hostnameRe matches dot-separated labels that start and end with an
// alphanumeric character, with alphanumerics or hyphens in between.
var hostnameRe = regexp.MustCompile(`^(?i:[a-z0-9]|[a-z0-9][a-z0-9-]*[a-z0-9])(?:\.(?i:[a-z0-9]|[a-z0-9][a-z0-9-]*[a-z0-9]))*$`)

// urlSchemes are accepted by IsWellFormedURL.
var urlSchemes = map[string]struct{}{
	"http":    {},
	"https":   {},
	"ftp":     {},
	"file":    {},
	"socks":   {},
	"socks4":  {},
	"socks5":  {},
	"socks5h": {},
}

// Validate reports whether host is an IPv4 literal, an IPv6 literal,
// something URL-shaped, or a DNS hostname. Any match suffices.
func Validate(host string) bool {
	if host == "" {
		return false
	}
	return IsIPv4(host) ||
		IsIPv6(host) ||
		IsNetworkURL(host) ||
		IsWellFormedURL(host) ||
		IsHostname(host)
}

// IsIPv4 accepts dotted-quad literals with octets 0-255.
func IsIPv4(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
}

// IsIPv6 accepts compressed and expanded IPv6 literals, including
// IPv4-mapped forms. Zoned addresses are rejected.
func IsIPv6(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is6() && addr.Zone() == ""
}

// IsNetworkURL accepts http and https URLs that name a host.
func IsNetworkURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// IsWellFormedURL accepts absolute URLs with a known scheme and a
// non-empty remainder.
func IsWellFormedURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return false
	}
	if _, ok := urlSchemes[strings.ToLower(u.Scheme)]; !ok {
		return false
	}
	return u.Host != "" || u.Opaque != "" || u.Path != ""
}

// IsHostname matches the DNS hostname grammar. Internationalized names are
// converted to their ASCII form first.
func IsHostname(s string) bool {
	if !isASCII(s) {
		ascii, err := idna.Lookup.ToASCII(s)
		if err != nil {
			return false
		}
		s = ascii
	}
	return hostnameRe.MatchString(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Package url holds the URL rules shared by the bridge and the navigation
// service.
package url

import (
	"net/url"
	"strings"
)

// NavigationKind classifies the target of a navigate message.
type NavigationKind int

const (
	// NavigationIgnored targets are dropped without error.
	NavigationIgnored NavigationKind = iota
	// NavigationExternal targets open in a new embedded view.
	NavigationExternal
	// NavigationInFrame targets reload the current embedded view.
	NavigationInFrame
)

// String returns a human-readable representation of the kind.
func (k NavigationKind) String() string {
	switch k {
	case NavigationExternal:
		return "external"
	case NavigationInFrame:
		return "in-frame"
	default:
		return "ignored"
	}
}

// IsHTTP reports whether s starts with http:// or https://.
func IsHTTP(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// IsRelativePath reports whether s is a root-relative or dot-relative path.
func IsRelativePath(s string) bool {
	return strings.HasPrefix(s, "/") || strings.HasPrefix(s, "./") || strings.HasPrefix(s, "../")
}

// ClassifyNavigation decides how a navigate target is handled.
func ClassifyNavigation(target string) NavigationKind {
	switch {
	case target == "":
		return NavigationIgnored
	case IsHTTP(target):
		return NavigationExternal
	case IsRelativePath(target):
		return NavigationInFrame
	default:
		return NavigationIgnored
	}
}

// StripQueryAndFragment cuts raw at its first '?' and then at its first '#'.
func StripQueryAndFragment(raw string) string {
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[:i]
	}
	if i := strings.IndexByte(raw, '#'); i >= 0 {
		raw = raw[:i]
	}
	return raw
}

// ResolveInFrame resolves ref against current with the query and fragment
// of current removed. It returns false when current is not an absolute URL
// or either side fails to parse.
func ResolveInFrame(current, ref string) (string, bool) {
	base, err := url.Parse(StripQueryAndFragment(current))
	if err != nil || !base.IsAbs() || base.Host == "" {
		return "", false
	}
	target, err := url.Parse(ref)
	if err != nil {
		return "", false
	}

	resolved := base.ResolveReference(target)
	if resolved.Path == "" {
		resolved.Path = "/"
	}
	return resolved.String(), true
}

package url

import (
	"net/url"
	"sort"
	"strings"
)

// componentUnescaper restores the characters encodeURIComponent leaves alone
// but url.QueryEscape escapes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%2A", "*",
	"%27", "'",
	"%28", "(",
	"%29", ")",
)

// EncodeComponent escapes s the way encodeURIComponent does.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// DecodeComponent reverses EncodeComponent. Invalid escapes return s unchanged.
func DecodeComponent(s string) string {
	out, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return out
}

// BuildQuery joins params as k=v pairs with sorted keys.
func BuildQuery(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, EncodeComponent(k)+"="+EncodeComponent(params[k]))
	}
	return strings.Join(parts, "&")
}

// AppendQuery appends params to path as a query string.
func AppendQuery(path string, params map[string]string) string {
	q := BuildQuery(params)
	if q == "" {
		return path
	}
	return path + "?" + q
}

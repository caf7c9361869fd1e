package url

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyNavigation(t *testing.T) {
	tests := map[string]NavigationKind{
		"":                        NavigationIgnored,
		"https://example.org/a":   NavigationExternal,
		"http://example.org":      NavigationExternal,
		"/news/1":                 NavigationInFrame,
		"./b":                     NavigationInFrame,
		"../c":                    NavigationInFrame,
		"mailto:x@y.com":          NavigationIgnored,
		"javascript:void(0)":      NavigationIgnored,
		"ftp://example.org/file":  NavigationIgnored,
		"news/1":                  NavigationIgnored,
		"HTTPS://EXAMPLE.ORG/UP":  NavigationIgnored,
	}
	for in, want := range tests {
		assert.Equal(t, want, ClassifyNavigation(in), "target %q", in)
	}
}

func TestStripQueryAndFragment(t *testing.T) {
	assert.Equal(t, "https://example.org/a/b", StripQueryAndFragment("https://example.org/a/b?x=1#y"))
	assert.Equal(t, "https://example.org/a", StripQueryAndFragment("https://example.org/a#frag?y"))
	assert.Equal(t, "https://example.org/a", StripQueryAndFragment("https://example.org/a"))
}

func TestResolveInFrame(t *testing.T) {
	const base = "https://example.org/a/b?x=1#y"
	tests := []struct {
		ref  string
		want string
	}{
		{"/c", "https://example.org/c"},
		{"/c/d?page=2", "https://example.org/c/d?page=2"},
		{"./c", "https://example.org/a/c"},
		{"../c", "https://example.org/c"},
		{"../../../c", "https://example.org/c"},
		{"/", "https://example.org/"},
	}
	for _, tt := range tests {
		got, ok := ResolveInFrame(base, tt.ref)
		assert.True(t, ok, tt.ref)
		assert.Equal(t, tt.want, got, tt.ref)
	}
}

func TestResolveInFrame_NeverCarriesBaseQueryOrFragment(t *testing.T) {
	for _, ref := range []string{"/x", "./x", "../x", "/deep/path/x"} {
		got, ok := ResolveInFrame("https://example.org/a/b?x=1#y", ref)
		assert.True(t, ok)
		assert.NotContains(t, got, "x=1")
		assert.NotContains(t, got, "#y")
	}
}

func TestResolveInFrame_RejectsRelativeBase(t *testing.T) {
	_, ok := ResolveInFrame("/pages/webview/webview", "/c")
	assert.False(t, ok)

	_, ok = ResolveInFrame("", "/c")
	assert.False(t, ok)

	_, ok = ResolveInFrame("https://example.org/a", "/%zz")
	assert.False(t, ok)
}

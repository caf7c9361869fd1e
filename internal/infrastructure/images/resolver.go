// Package images normalises image URLs returned by the backend and offers
// the fetch, probe and compression helpers the pages use.
package images

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/chaoxe/miniapp/internal/domain/entity"
	"github.com/chaoxe/miniapp/internal/domain/url"
)

const (
	// DefaultBaseURL hosts every relative image path.
	DefaultBaseURL = "https://chyxe.cn/app/assets/images"

	defaultFetchTimeout  = 10 * time.Second
	defaultThumbnailSize = 200
)

// Resolver turns raw image references into loadable URLs.
type Resolver struct {
	baseURL  string
	defaults map[entity.ImageCategory]string
	client   *http.Client
	parallel int
	probes   ProbeCache
}

// Probe is a cached Size result.
type Probe struct {
	Size   Size
	Format string
}

// ProbeCache stores probe results keyed by URL. cache.LRU satisfies it.
type ProbeCache interface {
	Get(imageURL string) (Probe, bool)
	Set(imageURL string, probe Probe)
}

// Option customises a Resolver.
type Option func(*Resolver)

// WithHTTPClient sets the client used to fetch images.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Resolver) {
		if c != nil {
			r.client = c
		}
	}
}

// WithParallelism bounds concurrent fetches in Preload.
func WithParallelism(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.parallel = n
		}
	}
}

// WithProbeCache caches successful Size lookups.
func WithProbeCache(c ProbeCache) Option {
	return func(r *Resolver) {
		r.probes = c
	}
}

// NewResolver creates a resolver. overrides replaces the bundled
// placeholders per category.
func NewResolver(baseURL string, overrides map[entity.ImageCategory]string, opts ...Option) *Resolver {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	defaults := entity.DefaultImages()
	for cat, path := range overrides {
		if path != "" {
			defaults[cat] = path
		}
	}

	r := &Resolver{
		baseURL:  strings.TrimRight(baseURL, "/"),
		defaults: defaults,
		client:   &http.Client{Timeout: defaultFetchTimeout},
		parallel: 8,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BaseURL returns the image host prefix.
func (r *Resolver) BaseURL() string {
	return r.baseURL
}

// FallbackFor returns the placeholder of category, or the generic one for
// unknown categories.
func (r *Resolver) FallbackFor(category entity.ImageCategory) string {
	if path, ok := r.defaults[category]; ok {
		return path
	}
	return r.defaults[entity.ImageDefault]
}

// Resolve normalises raw:
//   - empty: the category placeholder
//   - http(s) URLs, /static/ and /photo/ paths: unchanged
//   - other absolute paths: appended to the base URL
//   - bare names: joined to the base URL with a slash
func (r *Resolver) Resolve(raw string, category entity.ImageCategory) string {
	switch {
	case raw == "":
		return r.FallbackFor(category)
	case url.IsHTTP(raw):
		return raw
	case strings.HasPrefix(raw, "/static/"), strings.HasPrefix(raw, "/photo/"):
		return raw
	case strings.HasPrefix(raw, "/"):
		return r.baseURL + raw
	default:
		return r.baseURL + "/" + raw
	}
}

// Thumbnail adds crop parameters to URLs served from the image host.
// Other URLs are returned unchanged. Non-positive sizes default to 200.
func (r *Resolver) Thumbnail(imageURL string, width, height int) string {
	if !strings.Contains(imageURL, r.baseURL) {
		return imageURL
	}
	if width <= 0 {
		width = defaultThumbnailSize
	}
	if height <= 0 {
		height = defaultThumbnailSize
	}

	sep := "?"
	if strings.Contains(imageURL, "?") {
		sep = "&"
	}
	return imageURL + sep + "w=" + strconv.Itoa(width) + "&h=" + strconv.Itoa(height) + "&fit=crop"
}

// ProcessFields rewrites image URLs inside a decoded JSON value. Arrays are
// processed element by element. In objects the named fields and the common
// image fields are resolved; a field holding an array of strings is
// resolved element-wise. Nested objects are left alone. The input is not
// modified.
func (r *Resolver) ProcessFields(data any, fields ...string) any {
	switch v := data.(type) {
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = r.ProcessFields(item, fields...)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = val
		}
		for _, f := range fields {
			if val, ok := out[f]; ok {
				out[f] = r.processValue(val)
			}
		}
		for _, f := range entity.CommonImageFields {
			if slices.Contains(fields, f) {
				continue
			}
			if val, ok := out[f]; ok {
				out[f] = r.processValue(val)
			}
		}
		return out
	default:
		return data
	}
}

func (r *Resolver) processValue(v any) any {
	switch val := v.(type) {
	case string:
		if val == "" {
			return val
		}
		return r.Resolve(val, entity.ImageDefault)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			if s, ok := item.(string); ok && s != "" {
				out[i] = r.Resolve(s, entity.ImageDefault)
			} else {
				out[i] = item
			}
		}
		return out
	default:
		return v
	}
}

package images

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"net/http"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
	"golang.org/x/sync/errgroup"

	"github.com/chaoxe/miniapp/internal/logging"
)

// maxImageBytes bounds how much of a response is read when probing.
const maxImageBytes = 20 << 20

// ErrNotImage is returned when a response does not decode as an image.
var ErrNotImage = errors.New("response is not a supported image")

// Size is an image's pixel dimensions.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PreloadResult is the outcome of preloading one URL.
type PreloadResult struct {
	URL string
	Err error
}

// OK reports whether the image loaded.
func (p PreloadResult) OK() bool {
	return p.Err == nil
}

// open fetches imageURL and returns its body. The caller closes it.
func (r *Resolver) open(ctx context.Context, imageURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, http.NoBody)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: status %d", imageURL, resp.StatusCode)
	}
	return resp.Body, nil
}

// Size fetches imageURL and decodes only its header. It also returns the
// format name (jpeg, png, gif, webp, bmp). Successful results are served
// from the probe cache when one is configured.
func (r *Resolver) Size(ctx context.Context, imageURL string) (Size, string, error) {
	if r.probes != nil {
		if p, ok := r.probes.Get(imageURL); ok {
			return p.Size, p.Format, nil
		}
	}

	body, err := r.open(ctx, imageURL)
	if err != nil {
		return Size{}, "", err
	}
	defer func() { _ = body.Close() }()

	cfg, format, err := image.DecodeConfig(io.LimitReader(body, maxImageBytes))
	if err != nil {
		return Size{}, "", fmt.Errorf("%w: %s: %v", ErrNotImage, imageURL, err)
	}
	size := Size{Width: cfg.Width, Height: cfg.Height}
	if r.probes != nil {
		r.probes.Set(imageURL, Probe{Size: size, Format: format})
	}
	return size, format, nil
}

// Load fetches imageURL and checks that it decodes as an image.
func (r *Resolver) Load(ctx context.Context, imageURL string) error {
	_, _, err := r.Size(ctx, imageURL)
	return err
}

// Exists reports whether imageURL can be loaded.
func (r *Resolver) Exists(ctx context.Context, imageURL string) bool {
	if err := r.Load(ctx, imageURL); err != nil {
		logging.FromContext(ctx).Debug().Err(err).Str("url", imageURL).Msg("image not loadable")
		return false
	}
	return true
}

// Preload loads every URL concurrently and reports each outcome in input
// order. A failed URL never cancels the others.
func (r *Resolver) Preload(ctx context.Context, urls ...string) []PreloadResult {
	results := make([]PreloadResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallel)
	for i, u := range urls {
		g.Go(func() error {
			results[i] = PreloadResult{URL: u, Err: r.Load(gctx, u)}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, res := range results {
		if !res.OK() {
			failed++
		}
	}
	logging.FromContext(ctx).Debug().Int("total", len(urls)).Int("failed", failed).Msg("images preloaded")
	return results
}

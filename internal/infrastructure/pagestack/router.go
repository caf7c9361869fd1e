// Package pagestack is an in-memory page stack with the semantics of a
// mini-program runtime. It backs the navigation service outside a device.
package pagestack

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/chaoxe/miniapp/internal/logging"
)

// DefaultMaxDepth is the page stack limit of mini-program runtimes.
const DefaultMaxDepth = 10

var (
	// ErrStackFull is returned when pushing beyond the depth limit.
	ErrStackFull = errors.New("page stack limit exceeded")
	// ErrNoPreviousPage is returned when popping the last page.
	ErrNoPreviousPage = errors.New("no previous page")
	// ErrNotTabPage is returned when switching to a page outside the tab bar.
	ErrNotTabPage = errors.New("not a tab page")
	// ErrInvalidPage is returned for page URLs that are not absolute paths.
	ErrInvalidPage = errors.New("invalid page url")
)

// Page is one stack entry.
type Page struct {
	// Route is the page path without its leading slash.
	Route string
	// Query is the raw query string, without '?'.
	Query string
}

// URL returns the page URL as passed to navigation calls.
func (p Page) URL() string {
	if p.Query == "" {
		return "/" + p.Route
	}
	return "/" + p.Route + "?" + p.Query
}

// Router implements port.PageRouter and port.Toaster.
type Router struct {
	mu       sync.Mutex
	stack    []Page
	tabs     map[string]bool
	maxDepth int
	toasts   []string
}

// New creates a router whose stack starts at home. tabs lists the page
// paths SwitchTab accepts; empty means any page.
func New(home string, tabs []string, maxDepth int) *Router {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	r := &Router{
		tabs:     make(map[string]bool, len(tabs)),
		maxDepth: maxDepth,
	}
	for _, t := range tabs {
		r.tabs[strings.TrimPrefix(t, "/")] = true
	}
	if home != "" {
		if p, err := parsePage(home); err == nil {
			r.stack = []Page{p}
		}
	}
	return r
}

func parsePage(raw string) (Page, error) {
	if !strings.HasPrefix(raw, "/") || len(raw) < 2 {
		return Page{}, fmt.Errorf("%w: %q", ErrInvalidPage, raw)
	}
	route, query, _ := strings.Cut(raw[1:], "?")
	return Page{Route: route, Query: query}, nil
}

// NavigateTo pushes a page.
func (r *Router) NavigateTo(ctx context.Context, url string) error {
	p, err := parsePage(url)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stack) >= r.maxDepth {
		return fmt.Errorf("%w (%d)", ErrStackFull, r.maxDepth)
	}
	r.stack = append(r.stack, p)
	logging.FromContext(ctx).Debug().Str("url", url).Int("depth", len(r.stack)).Msg("page pushed")
	return nil
}

// RedirectTo replaces the top page.
func (r *Router) RedirectTo(ctx context.Context, url string) error {
	p, err := parsePage(url)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stack) == 0 {
		r.stack = []Page{p}
	} else {
		r.stack[len(r.stack)-1] = p
	}
	logging.FromContext(ctx).Debug().Str("url", url).Msg("page redirected")
	return nil
}

// ReLaunch clears the stack and opens url.
func (r *Router) ReLaunch(ctx context.Context, url string) error {
	p, err := parsePage(url)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.stack = []Page{p}
	logging.FromContext(ctx).Debug().Str("url", url).Msg("relaunched")
	return nil
}

// SwitchTab clears the stack down to a tab page.
func (r *Router) SwitchTab(ctx context.Context, url string) error {
	p, err := parsePage(url)
	if err != nil {
		return err
	}
	if p.Query != "" {
		return fmt.Errorf("%w: tab urls take no query", ErrInvalidPage)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.tabs) > 0 && !r.tabs[p.Route] {
		return fmt.Errorf("%w: %s", ErrNotTabPage, url)
	}
	r.stack = []Page{p}
	logging.FromContext(ctx).Debug().Str("url", url).Msg("tab switched")
	return nil
}

// NavigateBack pops delta pages, stopping at the first page.
func (r *Router) NavigateBack(ctx context.Context, delta int) error {
	if delta < 1 {
		delta = 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stack) <= 1 {
		return ErrNoPreviousPage
	}
	if delta > len(r.stack)-1 {
		delta = len(r.stack) - 1
	}
	r.stack = r.stack[:len(r.stack)-delta]
	logging.FromContext(ctx).Debug().Int("delta", delta).Int("depth", len(r.stack)).Msg("navigated back")
	return nil
}

// CurrentPages returns the routes on the stack, bottom first.
func (r *Router) CurrentPages(context.Context) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	routes := make([]string, len(r.stack))
	for i, p := range r.stack {
		routes[i] = p.Route
	}
	return routes
}

// Stack returns a copy of the stack, bottom first.
func (r *Router) Stack() []Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Page, len(r.stack))
	copy(out, r.stack)
	return out
}

// Top returns the current page.
func (r *Router) Top() (Page, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.stack) == 0 {
		return Page{}, false
	}
	return r.stack[len(r.stack)-1], true
}

// ShowToast implements port.Toaster by recording the toast.
func (r *Router) ShowToast(ctx context.Context, title string) {
	r.mu.Lock()
	r.toasts = append(r.toasts, title)
	r.mu.Unlock()
	logging.FromContext(ctx).Info().Str("toast", title).Msg("toast shown")
}

// Toasts returns the toasts shown so far.
func (r *Router) Toasts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.toasts))
	copy(out, r.toasts)
	return out
}

package port

import "context"

// PageRouter is the host runtime's page stack API.
// URLs are page paths with an optional query string.
type PageRouter interface {
	// NavigateTo pushes a new page.
	NavigateTo(ctx context.Context, url string) error
	// RedirectTo replaces the current page.
	RedirectTo(ctx context.Context, url string) error
	// ReLaunch closes every page and opens url.
	ReLaunch(ctx context.Context, url string) error
	// SwitchTab jumps to a tab bar page, closing all other pages.
	SwitchTab(ctx context.Context, url string) error
	// NavigateBack pops delta pages.
	NavigateBack(ctx context.Context, delta int) error
	// CurrentPages returns the routes of the open pages, bottom first,
	// without a leading slash (e.g. "pages/index/index").
	CurrentPages(ctx context.Context) []string
}

// Toaster shows short transient notices to the user.
type Toaster interface {
	ShowToast(ctx context.Context, title string)
}

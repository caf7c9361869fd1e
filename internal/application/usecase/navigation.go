package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/chaoxe/miniapp/internal/application/port"
	"github.com/chaoxe/miniapp/internal/domain/entity"
	"github.com/chaoxe/miniapp/internal/domain/url"
	"github.com/chaoxe/miniapp/internal/logging"
)

const (
	// navigateFailedToast is shown when a page push fails.
	navigateFailedToast = "页面跳转失败"
	// defaultWebViewTitle is used by NavigateToWebView when no title is given.
	defaultWebViewTitle = "网页"
)

// ErrRouterUnavailable is returned when no page router is configured.
var ErrRouterUnavailable = errors.New("page router not available")

// NavigationService wraps the host page stack with named routes, query
// building and safe back navigation. It also opens embedded views for the
// bridge dispatcher.
type NavigationService struct {
	router  port.PageRouter
	toaster port.Toaster
	routes  map[entity.RouteName]string
	tabs    map[string]bool
}

// NewNavigationService creates a navigation service. routes overrides the
// default route table entry by entry; tabs lists the tab bar routes.
// toaster may be nil.
func NewNavigationService(
	router port.PageRouter,
	toaster port.Toaster,
	routes map[entity.RouteName]string,
	tabs []entity.RouteName,
) *NavigationService {
	table := entity.DefaultRoutes()
	for name, path := range routes {
		if path != "" {
			table[name] = path
		}
	}
	if len(tabs) == 0 {
		tabs = entity.DefaultTabRoutes()
	}
	tabPaths := make(map[string]bool, len(tabs))
	for _, name := range tabs {
		if path, ok := table[name]; ok {
			tabPaths[path] = true
		}
	}

	return &NavigationService{
		router:  router,
		toaster: toaster,
		routes:  table,
		tabs:    tabPaths,
	}
}

// Route returns the path registered for name.
func (s *NavigationService) Route(name entity.RouteName) (string, bool) {
	path, ok := s.routes[name]
	return path, ok
}

// resolve turns a route name or page path into a URL with params appended.
func (s *NavigationService) resolve(path string, params map[string]string) string {
	if routed, ok := s.routes[entity.RouteName(path)]; ok {
		path = routed
	}
	return url.AppendQuery(path, params)
}

// NavigateTo pushes the page for path (a route name or page path).
func (s *NavigationService) NavigateTo(ctx context.Context, path string, params map[string]string) error {
	log := logging.FromContext(ctx)
	if s.router == nil {
		return ErrRouterUnavailable
	}

	target := s.resolve(path, params)
	if err := s.router.NavigateTo(ctx, target); err != nil {
		log.Error().Err(err).Str("url", target).Msg("page navigation failed")
		if s.toaster != nil {
			s.toaster.ShowToast(ctx, navigateFailedToast)
		}
		return fmt.Errorf("navigate to %s: %w", target, err)
	}

	log.Debug().Str("url", target).Msg("navigated")
	return nil
}

// RedirectTo replaces the current page.
func (s *NavigationService) RedirectTo(ctx context.Context, path string, params map[string]string) error {
	if s.router == nil {
		return ErrRouterUnavailable
	}

	target := s.resolve(path, params)
	if err := s.router.RedirectTo(ctx, target); err != nil {
		logging.FromContext(ctx).Error().Err(err).Str("url", target).Msg("page redirect failed")
		return fmt.Errorf("redirect to %s: %w", target, err)
	}
	return nil
}

// ReLaunch closes every page and opens path.
func (s *NavigationService) ReLaunch(ctx context.Context, path string, params map[string]string) error {
	if s.router == nil {
		return ErrRouterUnavailable
	}

	target := s.resolve(path, params)
	if err := s.router.ReLaunch(ctx, target); err != nil {
		logging.FromContext(ctx).Error().Err(err).Str("url", target).Msg("page relaunch failed")
		return fmt.Errorf("relaunch %s: %w", target, err)
	}
	return nil
}

// SwitchTab jumps to a tab bar page.
func (s *NavigationService) SwitchTab(ctx context.Context, path string) error {
	if s.router == nil {
		return ErrRouterUnavailable
	}

	target := s.resolve(path, nil)
	if err := s.router.SwitchTab(ctx, target); err != nil {
		logging.FromContext(ctx).Error().Err(err).Str("url", target).Msg("tab switch failed")
		return fmt.Errorf("switch tab %s: %w", target, err)
	}
	return nil
}

// NavigateBack pops delta pages, or relaunches home when the stack is not
// deep enough or the pop fails.
func (s *NavigationService) NavigateBack(ctx context.Context, delta int) error {
	log := logging.FromContext(ctx)
	if s.router == nil {
		return ErrRouterUnavailable
	}
	if delta < 1 {
		delta = 1
	}

	pages := s.router.CurrentPages(ctx)
	if len(pages) <= delta {
		log.Debug().Int("depth", len(pages)).Int("delta", delta).Msg("not enough history, relaunching home")
		return s.ReLaunch(ctx, string(entity.RouteHome), nil)
	}

	if err := s.router.NavigateBack(ctx, delta); err != nil {
		log.Warn().Err(err).Int("delta", delta).Msg("navigate back failed, relaunching home")
		return s.ReLaunch(ctx, string(entity.RouteHome), nil)
	}
	return nil
}

// SafeGoBack pops one page when there is one to return to, otherwise it
// relaunches home.
func (s *NavigationService) SafeGoBack(ctx context.Context) error {
	return s.NavigateBack(ctx, 1)
}

// NavigateToWebView opens the embedded view page for rawURL.
func (s *NavigationService) NavigateToWebView(ctx context.Context, rawURL, title string) error {
	if title == "" {
		title = defaultWebViewTitle
	}
	return s.NavigateTo(ctx, string(entity.RouteWebView), map[string]string{
		"url":   rawURL,
		"title": title,
	})
}

// OpenEmbeddedView implements port.EmbeddedViewOpener.
func (s *NavigationService) OpenEmbeddedView(ctx context.Context, rawURL, title string) error {
	return s.NavigateToWebView(ctx, rawURL, title)
}

// NavigateToServiceDetail opens the detail view of a service.
func (s *NavigationService) NavigateToServiceDetail(ctx context.Context, serviceID string) error {
	return s.NavigateTo(ctx, string(entity.RouteService), map[string]string{
		"id":     serviceID,
		"action": "detail",
	})
}

// NavigateToEnvironmentalDetail opens the detail view of an environmental requirement.
func (s *NavigationService) NavigateToEnvironmentalDetail(ctx context.Context, requirementID string) error {
	return s.NavigateTo(ctx, string(entity.RouteEnvironmental), map[string]string{
		"id":     requirementID,
		"action": "detail",
	})
}

// NavigateToMessage opens the message board, optionally pre-filled.
func (s *NavigationService) NavigateToMessage(ctx context.Context, prefill map[string]string) error {
	return s.NavigateTo(ctx, string(entity.RouteMessage), prefill)
}

// CurrentPath returns the path of the top page, or "" when the stack is empty.
func (s *NavigationService) CurrentPath(ctx context.Context) string {
	if s.router == nil {
		return ""
	}
	pages := s.router.CurrentPages(ctx)
	if len(pages) == 0 {
		return ""
	}
	return "/" + pages[len(pages)-1]
}

// IsHomePage reports whether the top page is the home page.
func (s *NavigationService) IsHomePage(ctx context.Context) bool {
	return s.CurrentPath(ctx) == s.routes[entity.RouteHome]
}

// IsTabPage reports whether path (or the top page when empty) is a tab page.
func (s *NavigationService) IsTabPage(ctx context.Context, path string) bool {
	if path == "" {
		path = s.CurrentPath(ctx)
	}
	return s.tabs[path]
}

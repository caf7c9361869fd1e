package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/chaoxe/miniapp/internal/application/usecase"
	"github.com/chaoxe/miniapp/internal/domain/entity"
	"github.com/chaoxe/miniapp/internal/infrastructure/api"
	"github.com/chaoxe/miniapp/internal/infrastructure/cache"
	"github.com/chaoxe/miniapp/internal/infrastructure/config"
	"github.com/chaoxe/miniapp/internal/infrastructure/devserver"
	"github.com/chaoxe/miniapp/internal/infrastructure/headless"
	"github.com/chaoxe/miniapp/internal/infrastructure/images"
	"github.com/chaoxe/miniapp/internal/infrastructure/metrics"
	"github.com/chaoxe/miniapp/internal/infrastructure/pagestack"
	"github.com/chaoxe/miniapp/internal/logging"
)

// webViewRoute is the breadcrumb key of the embedded view page.
const webViewRoute = "pages/webview/webview"

// Services holds the wired application graph. Nothing here is global;
// callers pass the pieces they need.
type Services struct {
	Config      *config.Config
	Registry    *prometheus.Registry
	Metrics     *metrics.Recorder
	Router      *pagestack.Router
	Navigation  *usecase.NavigationService
	Breadcrumbs *usecase.Breadcrumbs
	Bridge      *usecase.HandleBridgeUseCase
	Images      *images.Resolver
	API         *api.Client
}

// NewServices wires every component from cfg.
func NewServices(ctx context.Context, cfg *config.Config) (*Services, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	timer := newPhaseTimer()

	registry := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(registry)

	routes := make(map[entity.RouteName]string, len(cfg.Navigation.Routes))
	for name, path := range cfg.Navigation.Routes {
		routes[entity.RouteName(name)] = path
	}
	tabs := make([]entity.RouteName, 0, len(cfg.Navigation.Tabs))
	for _, name := range cfg.Navigation.Tabs {
		tabs = append(tabs, entity.RouteName(name))
	}

	// The router needs resolved paths, so build the service's table first.
	probe := usecase.NewNavigationService(nil, nil, routes, tabs)
	home, _ := probe.Route(entity.RouteHome)
	var tabPaths []string
	for _, name := range tabs {
		if path, ok := probe.Route(name); ok {
			tabPaths = append(tabPaths, path)
		}
	}
	router := pagestack.New(home, tabPaths, cfg.Navigation.MaxDepth)
	navigation := usecase.NewNavigationService(router, router, routes, tabs)
	timer.mark("navigation")

	breadcrumbs, err := usecase.NewBreadcrumbs()
	if err != nil {
		return nil, fmt.Errorf("load breadcrumbs: %w", err)
	}
	timer.mark("breadcrumbs")

	bridgeUC := usecase.NewHandleBridgeUseCase(navigation,
		usecase.WithPlaceholderTitle(cfg.Bridge.PlaceholderTitle))

	overrides := make(map[entity.ImageCategory]string, len(cfg.Images.Defaults))
	for cat, path := range cfg.Images.Defaults {
		overrides[entity.ImageCategory(cat)] = path
	}
	imageOpts := []images.Option{images.WithParallelism(cfg.Images.Parallelism)}
	if cfg.Images.ProbeCacheSize > 0 {
		probes := cache.NewLRU[string, images.Probe](cfg.Images.ProbeCacheSize,
			time.Duration(cfg.Images.ProbeCacheTTLSeconds)*time.Second)
		imageOpts = append(imageOpts, images.WithProbeCache(probes))
	}
	resolver := images.NewResolver(cfg.Images.BaseURL, overrides, imageOpts...)

	client := api.NewClient(api.Config{
		BaseURL:   cfg.API.BaseURL,
		Dev:       cfg.API.Dev,
		DevOrigin: cfg.API.DevOrigin,
		Timeout:   time.Duration(cfg.API.TimeoutSeconds) * time.Second,
	}, resolver, api.WithObserver(recorder))
	timer.mark("clients")

	logging.FromContext(ctx).Debug().
		Str("api", client.BaseURL()).
		Str("images", resolver.BaseURL()).
		Int("breadcrumbs", breadcrumbs.Len()).
		Msg("services wired")
	timer.log(ctx, zerolog.DebugLevel, "wiring timing")

	return &Services{
		Config:      cfg,
		Registry:    registry,
		Metrics:     recorder,
		Router:      router,
		Navigation:  navigation,
		Breadcrumbs: breadcrumbs,
		Bridge:      bridgeUC,
		Images:      resolver,
		API:         client,
	}, nil
}

// NewEmbeddedView creates a view session for rawURL whose breadcrumb trail
// is the webview page's, following the page title.
func (s *Services) NewEmbeddedView(ctx context.Context, rawURL, title string, opts ...usecase.EmbeddedViewOption) *usecase.EmbeddedView {
	trail := s.Breadcrumbs.ForPage(webViewRoute, map[string]string{"title": title})
	opts = append([]usecase.EmbeddedViewOption{
		usecase.WithBridgeObserver(s.Metrics),
		usecase.WithTrail(trail),
	}, opts...)
	return usecase.NewEmbeddedView(ctx, s.Bridge, rawURL, title, opts...)
}

// NewHeadlessHost creates a headless Chrome host from the configuration.
func (s *Services) NewHeadlessHost() *headless.Host {
	return headless.New(headless.Config{
		ExecPath:    s.Config.Headless.ExecPath,
		ShowWindow:  s.Config.Headless.ShowWindow,
		LoadTimeout: time.Duration(s.Config.Headless.LoadTimeoutSeconds) * time.Second,
		Script:      s.Config.Bridge.Script,
	})
}

// NewDevServer creates the dev server from the configuration.
func (s *Services) NewDevServer(ctx context.Context) (*devserver.Server, error) {
	return devserver.New(ctx, devserver.Config{
		Listen:         s.Config.DevServer.Listen,
		ProxyTarget:    s.Config.DevServer.ProxyTarget,
		AllowedOrigins: s.Config.DevServer.AllowedOrigins,
		Script:         s.Config.Bridge.Script,
		Styles:         s.Config.Bridge.Styles,
		MaxSessions:    s.Config.DevServer.MaxSessions,
		SessionTTL:     time.Duration(s.Config.DevServer.SessionTTLSeconds) * time.Second,
	}, s.Bridge, s.Metrics, s.Registry)
}

// Package cli holds the dependencies shared by the command-line commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/chaoxe/miniapp/internal/bootstrap"
	"github.com/chaoxe/miniapp/internal/cli/styles"
	"github.com/chaoxe/miniapp/internal/infrastructure/config"
	"github.com/chaoxe/miniapp/internal/logging"
)

// Options configures NewApp.
type Options struct {
	// ConfigDir overrides the XDG config directory.
	ConfigDir string
	// LogLevel overrides the configured log level.
	LogLevel string
}

// App holds CLI dependencies.
type App struct {
	Config   *config.Config
	Manager  *config.Manager
	Theme    *styles.Theme
	Renderer *styles.ViewRenderer
	Services *bootstrap.Services

	ctx context.Context
}

// NewApp loads the configuration, creates the logger and wires services.
func NewApp(parent context.Context, opts Options) (*App, error) {
	var managerOpts []config.ManagerOption
	if opts.ConfigDir != "" {
		managerOpts = append(managerOpts, config.WithConfigDir(opts.ConfigDir))
	}
	mgr, err := config.NewManager(managerOpts...)
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	level := cfg.Logging.Level
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	logger := logging.New(logging.Config{
		Level:      logging.ParseLevel(level),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
		Output:     os.Stderr,
	})
	ctx := logging.WithContext(parent, logger)

	services, err := bootstrap.NewServices(ctx, cfg)
	if err != nil {
		return nil, err
	}

	theme := styles.NewTheme(cfg.Bridge.Styles.Progress.Color)
	logger.Debug().Str("config", mgr.GetConfigFile()).Msg("cli initialized")

	return &App{
		Config:   cfg,
		Manager:  mgr,
		Theme:    theme,
		Renderer: styles.NewViewRenderer(theme),
		Services: services,
		ctx:      ctx,
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

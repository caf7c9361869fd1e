package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chaoxe/miniapp/internal/bootstrap"
	"github.com/chaoxe/miniapp/internal/infrastructure/config"
	"github.com/chaoxe/miniapp/internal/logging"
)

var (
	serveListen string
	serveProxy  string
	serveWatch  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bridge dev server and API proxy",
	Long: `Serve the page script, the bridge endpoints and Prometheus metrics over
HTTP, and proxy /api/* to the REST API with the /api prefix stripped.

Endpoints:
  GET    /bridge.js              injected page script
  GET    /bridge/schema          JSON schema of bridge messages
  GET    /bridge/styles          embedded view styles
  GET    /bridge/state           view state (?session=, ?url=, ?title=)
  POST   /bridge/messages        deliver a raw bridge payload
  POST   /bridge/load-error      report a load failure
  POST   /bridge/load-finish     report a finished load
  DELETE /bridge/sessions/{id}   drop a view session
  GET    /metrics                Prometheus metrics
  *      /api/*                  reverse proxy to the REST API

With --watch the server restarts when the config file changes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (overrides dev_server.listen)")
	serveCmd.Flags().StringVar(&serveProxy, "proxy", "", "API proxy target (overrides dev_server.proxy_target)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "restart when the config file changes")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx := logging.WithComponent(a.Ctx(), "serve")
	log := logging.FromContext(ctx)

	reloads := make(chan *config.Config, 1)
	if serveWatch {
		a.Manager.OnConfigChange(func(cfg *config.Config) {
			select {
			case reloads <- cfg:
			default:
			}
		})
		if err := a.Manager.Watch(); err != nil {
			return fmt.Errorf("watch config: %w", err)
		}
	}

	services := a.Services
	for {
		srvCtx, cancel := context.WithCancel(ctx)
		errCh := make(chan error, 1)
		go func() {
			errCh <- serveOnce(srvCtx, services)
		}()

		select {
		case err := <-errCh:
			cancel()
			return err
		case <-ctx.Done():
			cancel()
			return <-errCh
		case cfg := <-reloads:
			cancel()
			if err := <-errCh; err != nil {
				return err
			}
			next, err := bootstrap.NewServices(ctx, cfg)
			if err != nil {
				log.Error().Err(err).Msg("config reload failed, keeping previous configuration")
				continue
			}
			log.Info().Msg("config changed, restarting dev server")
			services = next
		}
	}
}

func serveOnce(ctx context.Context, services *bootstrap.Services) error {
	cfg := *services.Config
	if serveListen != "" {
		cfg.DevServer.Listen = serveListen
	}
	if serveProxy != "" {
		cfg.DevServer.ProxyTarget = serveProxy
	}
	services.Config = &cfg

	srv, err := services.NewDevServer(ctx)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}

// Package devserver serves the bridge script to H5 builds, proxies /api to
// the backend and accepts bridge payloads pushed over HTTP.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chaoxe/miniapp/internal/application/port"
	"github.com/chaoxe/miniapp/internal/application/usecase"
	"github.com/chaoxe/miniapp/internal/domain/entity"
	"github.com/chaoxe/miniapp/internal/infrastructure/bridge"
	"github.com/chaoxe/miniapp/internal/infrastructure/cache"
	"github.com/chaoxe/miniapp/internal/logging"
)

const (
	defaultSession     = "default"
	maxPayloadBytes    = 64 << 10
	apiPrefix          = "/api"
	defaultMaxSessions = 64
	defaultSessionTTL  = 30 * time.Minute
	purgeInterval      = time.Minute
)

// Config configures the dev server.
type Config struct {
	Listen         string
	ProxyTarget    string
	AllowedOrigins []string
	Script         bridge.ScriptOptions
	Styles         bridge.Styles
	// MaxSessions caps the live sessions; the least recently used one is
	// closed to make room.
	MaxSessions int
	// SessionTTL closes sessions idle for longer.
	SessionTTL time.Duration
}

// session is one embedded view fed over HTTP.
type session struct {
	channel *bridge.Channel
	view    *usecase.EmbeddedView
}

// Server is the dev server. Use Handler for tests and ListenAndServe to run it.
type Server struct {
	cfg      Config
	ctx      context.Context
	bridge   *usecase.HandleBridgeUseCase
	observer port.BridgeObserver
	gatherer prometheus.Gatherer
	script   string

	mu       sync.Mutex
	sessions *cache.LRU[string, *session]
}

// New builds a server. observer and gatherer may be nil.
func New(ctx context.Context, cfg Config, bridgeUC *usecase.HandleBridgeUseCase, observer port.BridgeObserver, gatherer prometheus.Gatherer) (*Server, error) {
	script, err := bridge.InjectedScript(cfg.Script)
	if err != nil {
		return nil, err
	}
	if gatherer == nil {
		gatherer = prometheus.NewRegistry()
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = defaultMaxSessions
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	s := &Server{
		cfg:      cfg,
		ctx:      logging.WithComponent(ctx, "devserver"),
		bridge:   bridgeUC,
		observer: observer,
		gatherer: gatherer,
		script:   script,
	}
	s.sessions = cache.NewLRU[string, *session](cfg.MaxSessions, cfg.SessionTTL).
		OnEvict(func(id string, sess *session) {
			logging.FromContext(s.ctx).Debug().Str("session", id).Msg("bridge session evicted")
			sess.close()
		})
	return s, nil
}

func (sess *session) close() {
	sess.view.Close()
	sess.channel.Close()
}

// Handler returns the router.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewRouter()
	if len(s.cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"*"},
		}))
	}
	r.Use(middleware.RequestID, middleware.Recoverer, s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Get("/bridge.js", s.handleScript)
	r.Route("/bridge", func(br chi.Router) {
		br.Get("/schema", s.handleSchema)
		br.Get("/styles", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, s.cfg.Styles)
		})
		br.Get("/state", s.handleState)
		br.Post("/messages", s.handleMessages)
		br.Post("/load-error", s.handleLoadError)
		br.Post("/load-finish", s.handleLoadFinish)
		br.Delete("/sessions/{id}", s.handleCloseSession)
	})

	if s.cfg.ProxyTarget != "" {
		proxy, err := s.apiProxy()
		if err != nil {
			return nil, err
		}
		r.Handle(apiPrefix+"/*", proxy)
	}
	return r, nil
}

// ListenAndServe runs until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return s.ctx
		},
	}

	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go s.purgeSessions(purgeCtx)

	errCh := make(chan error, 1)
	go func() {
		logging.FromContext(s.ctx).Info().Str("listen", s.cfg.Listen).Str("proxy", s.cfg.ProxyTarget).Msg("dev server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		s.closeSessions()
		return srv.Shutdown(shutdownCtx)
	}
}

// apiProxy forwards /api/* to the proxy target without the /api prefix.
func (s *Server) apiProxy() (http.Handler, error) {
	target, err := url.Parse(s.cfg.ProxyTarget)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid proxy target %q", s.cfg.ProxyTarget)
	}

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Path = strings.TrimPrefix(pr.In.URL.Path, apiPrefix)
			pr.Out.URL.RawPath = ""
			pr.SetURL(target)
			pr.Out.Host = target.Host
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logging.FromContext(s.ctx).Warn().Err(err).Str("path", r.URL.Path).Msg("api proxy failed")
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
		},
	}
	return proxy, nil
}

func (s *Server) handleScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = io.WriteString(w, s.script)
}

func (s *Server) handleSchema(w http.ResponseWriter, _ *http.Request) {
	data, err := bridge.WireSchema()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	_, _ = w.Write(data)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(sessionID(r))
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sess.view.State())
}

// handleMessages publishes a batch on the session's channel and returns the
// resulting state. The url query parameter seeds a new session.
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
		return
	}

	sess, err := s.session(sessionID(r), r.URL.Query().Get("url"), r.URL.Query().Get("title"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sess.channel.Publish(payload)
	writeJSON(w, http.StatusOK, sess.view.State())
}

func (s *Server) handleLoadError(w http.ResponseWriter, r *http.Request) {
	var event entity.LoadErrorEvent
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPayloadBytes)).Decode(&event); err != nil {
		http.Error(w, "invalid load error event", http.StatusBadRequest)
		return
	}
	sess, ok := s.lookup(sessionID(r))
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	sess.view.LoadFailed(event)
	writeJSON(w, http.StatusOK, sess.view.State())
}

func (s *Server) handleLoadFinish(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(sessionID(r))
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	sess.view.LoadFinished()
	writeJSON(w, http.StatusOK, sess.view.State())
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.Remove(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	sess.close()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) session(id, initialURL, title string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions.Get(id); ok {
		return sess, nil
	}

	var opts []usecase.EmbeddedViewOption
	if s.observer != nil {
		opts = append(opts, usecase.WithBridgeObserver(s.observer))
	}
	sess := &session{
		channel: bridge.NewChannel(),
		view:    usecase.NewEmbeddedView(logging.WithRequestID(s.ctx, id), s.bridge, initialURL, title, opts...),
	}
	if err := sess.view.Attach(sess.channel); err != nil {
		return nil, err
	}
	s.sessions.Set(id, sess)
	logging.FromContext(s.ctx).Debug().Str("session", id).Str("url", initialURL).Msg("bridge session created")
	return sess, nil
}

func (s *Server) lookup(id string) (*session, bool) {
	return s.sessions.Get(id)
}

// SessionCount returns the number of live sessions, idle ones included.
func (s *Server) SessionCount() int {
	return s.sessions.Len()
}

func (s *Server) purgeSessions(ctx context.Context) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.sessions.Purge(); n > 0 {
				logging.FromContext(s.ctx).Debug().Int("sessions", n).Msg("idle bridge sessions closed")
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) closeSessions() {
	s.sessions.Clear()
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logging.FromContext(s.ctx).Debug().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http request")
	})
}

func sessionID(r *http.Request) string {
	if id := r.URL.Query().Get("session"); id != "" {
		return id
	}
	if id := r.Header.Get("X-Bridge-Session"); id != "" {
		return id
	}
	return defaultSession
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

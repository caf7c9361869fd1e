// Package headless hosts embedded views in a headless Chrome instance.
// The page script talks to the host through a CDP runtime binding.
package headless

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/chaoxe/miniapp/internal/application/port"
	"github.com/chaoxe/miniapp/internal/domain/entity"
	"github.com/chaoxe/miniapp/internal/infrastructure/bridge"
	"github.com/chaoxe/miniapp/internal/logging"
)

const (
	defaultLoadTimeout = 20 * time.Second
	eventBuffer        = 64
)

// ErrNotStarted is returned when the browser has not been started.
var ErrNotStarted = errors.New("headless host not started")

// Config configures the browser.
type Config struct {
	// ExecPath overrides the Chrome binary lookup.
	ExecPath string
	// ShowWindow runs Chrome with a visible window.
	ShowWindow bool
	// LoadTimeout bounds each navigation.
	LoadTimeout time.Duration
	// Script controls the injected page script.
	Script bridge.ScriptOptions
}

// Lifecycle receives load outcomes. usecase.EmbeddedView satisfies it.
type Lifecycle interface {
	LoadFailed(event entity.LoadErrorEvent)
	LoadFinished()
}

// Host drives one browser tab. It implements port.BridgeEventSource and
// port.ViewLoader.
type Host struct {
	cfg     Config
	channel *bridge.Channel

	mu            sync.Mutex
	lifecycle     Lifecycle
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	stop          chan struct{}
	done          chan struct{}
}

// New creates a host. Call Start before loading pages.
func New(cfg Config) *Host {
	if cfg.LoadTimeout <= 0 {
		cfg.LoadTimeout = defaultLoadTimeout
	}
	if cfg.Script.HostObject == "" {
		cfg.Script = bridge.DefaultScriptOptions()
	}
	return &Host{
		cfg:     cfg,
		channel: bridge.NewChannel(),
	}
}

// SetLifecycle registers the receiver of load outcomes.
func (h *Host) SetLifecycle(l Lifecycle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lifecycle = l
}

// Subscribe implements port.BridgeEventSource.
func (h *Host) Subscribe(handler port.BridgeEventHandler) (func(), error) {
	return h.channel.Subscribe(handler)
}

// Start launches Chrome, registers the bridge binding and installs the
// scripts that run in every new document.
func (h *Host) Start(ctx context.Context) error {
	log := logging.FromContext(ctx)

	shim, err := bridge.HostShim(h.cfg.Script, bridge.DefaultBindingName)
	if err != nil {
		return err
	}
	script, err := bridge.InjectedScript(h.cfg.Script)
	if err != nil {
		return err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !h.cfg.ShowWindow),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
	)
	if h.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(h.cfg.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.WithoutCancel(ctx), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	events := make(chan []byte, eventBuffer)
	stop := make(chan struct{})
	done := make(chan struct{})

	// Runs on chromedp's event goroutine; must not call chromedp.Run.
	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		called, ok := ev.(*runtime.EventBindingCalled)
		if !ok || called.Name != bridge.DefaultBindingName {
			return
		}
		select {
		case events <- []byte(called.Payload):
		default:
			log.Warn().Msg("bridge event buffer full, payload dropped")
		}
	})

	err = chromedp.Run(browserCtx,
		runtime.AddBinding(bridge.DefaultBindingName),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(shim).Do(ctx)
			return err
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(afterDOMReady(script)).Do(ctx)
			return err
		}),
	)
	if err != nil {
		browserCancel()
		allocCancel()
		return fmt.Errorf("start headless browser: %w", err)
	}

	go func() {
		defer close(done)
		for {
			select {
			case payload := <-events:
				h.channel.Publish(payload)
			case <-stop:
				return
			}
		}
	}()

	h.mu.Lock()
	h.allocCancel = allocCancel
	h.browserCtx = browserCtx
	h.browserCancel = browserCancel
	h.stop = stop
	h.done = done
	h.mu.Unlock()

	log.Info().Bool("headless", !h.cfg.ShowWindow).Msg("headless host started")
	return nil
}

// afterDOMReady defers script until the document has been parsed.
func afterDOMReady(script string) string {
	return "(function() {\n" +
		"  var run = function() {\n" + script + "\n  };\n" +
		"  if (document.readyState === 'loading') {\n" +
		"    document.addEventListener('DOMContentLoaded', run);\n" +
		"  } else {\n" +
		"    run();\n" +
		"  }\n" +
		"})();"
}

func (h *Host) browser() (context.Context, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.browserCtx == nil {
		return nil, ErrNotStarted
	}
	return h.browserCtx, nil
}

// LoadURL implements port.ViewLoader. The outcome is reported to the
// registered Lifecycle as well as returned.
func (h *Host) LoadURL(ctx context.Context, rawURL string) error {
	log := logging.FromContext(ctx)

	browserCtx, err := h.browser()
	if err != nil {
		return err
	}

	if _, perr := url.ParseRequestURI(rawURL); perr != nil {
		event := entity.LoadErrorEvent{ErrCode: entity.LoadErrorInvalidURL, ErrMsg: perr.Error()}
		h.reportFailure(event)
		return fmt.Errorf("load %s: %w", rawURL, perr)
	}

	runCtx, cancel := context.WithTimeout(browserCtx, h.cfg.LoadTimeout)
	defer cancel()

	start := time.Now()
	if err := chromedp.Run(runCtx, chromedp.Navigate(rawURL)); err != nil {
		event := ClassifyLoadError(err)
		log.Warn().Err(err).Int("code", int(event.EffectiveCode())).Str("url", rawURL).Msg("navigation failed")
		h.reportFailure(event)
		return fmt.Errorf("load %s: %w", rawURL, err)
	}

	log.Debug().Str("url", rawURL).Dur("took", time.Since(start)).Msg("page loaded")
	h.mu.Lock()
	l := h.lifecycle
	h.mu.Unlock()
	if l != nil {
		l.LoadFinished()
	}
	return nil
}

func (h *Host) reportFailure(event entity.LoadErrorEvent) {
	h.mu.Lock()
	l := h.lifecycle
	h.mu.Unlock()
	if l != nil {
		l.LoadFailed(event)
	}
}

// Click clicks the first element matching a CSS selector.
func (h *Host) Click(ctx context.Context, selector string) error {
	browserCtx, err := h.browser()
	if err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(browserCtx, h.cfg.LoadTimeout)
	defer cancel()
	return chromedp.Run(runCtx, chromedp.Click(selector, chromedp.ByQuery))
}

// Evaluate runs expression in the page and stores its result in out.
func (h *Host) Evaluate(ctx context.Context, expression string, out any) error {
	browserCtx, err := h.browser()
	if err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(browserCtx, h.cfg.LoadTimeout)
	defer cancel()
	return chromedp.Run(runCtx, chromedp.Evaluate(expression, out))
}

// Title returns the current document title.
func (h *Host) Title(ctx context.Context) (string, error) {
	var title string
	err := h.Evaluate(ctx, "document.title", &title)
	return title, err
}

// Close shuts the browser down and stops event delivery.
func (h *Host) Close() {
	h.mu.Lock()
	browserCancel, allocCancel := h.browserCancel, h.allocCancel
	stop, done := h.stop, h.done
	h.browserCtx = nil
	h.browserCancel, h.allocCancel = nil, nil
	h.stop, h.done = nil, nil
	h.mu.Unlock()

	if browserCancel != nil {
		browserCancel()
	}
	if allocCancel != nil {
		allocCancel()
	}
	if stop != nil {
		close(stop)
		<-done
	}
	h.channel.Close()
}

// ClassifyLoadError maps a navigation error to a load error event.
func ClassifyLoadError(err error) entity.LoadErrorEvent {
	event := entity.LoadErrorEvent{ErrMsg: err.Error()}
	msg := err.Error()

	switch {
	case errors.Is(err, context.DeadlineExceeded),
		strings.Contains(msg, "ERR_TIMED_OUT"),
		strings.Contains(msg, "ERR_CONNECTION_TIMED_OUT"):
		event.ErrCode = entity.LoadErrorTimeout
	case strings.Contains(msg, "ERR_INVALID_URL"),
		strings.Contains(msg, "ERR_UNKNOWN_URL_SCHEME"),
		strings.Contains(msg, "ERR_INVALID_REDIRECT"):
		event.ErrCode = entity.LoadErrorInvalidURL
	case strings.Contains(msg, "ERR_NAME_NOT_RESOLVED"),
		strings.Contains(msg, "ERR_INTERNET_DISCONNECTED"),
		strings.Contains(msg, "ERR_CONNECTION_REFUSED"),
		strings.Contains(msg, "ERR_CONNECTION_RESET"),
		strings.Contains(msg, "ERR_ADDRESS_UNREACHABLE"),
		strings.Contains(msg, "ERR_NETWORK_CHANGED"):
		event.ErrCode = entity.LoadErrorNetwork
	}
	return event
}

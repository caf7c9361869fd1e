// Package guestsim runs the injected page script against a parsed HTML
// document inside an embedded JavaScript runtime. It stands in for a real
// rendering engine when exercising the bridge from tests and the CLI.
package guestsim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/grafana/sobek"
	"golang.org/x/net/html"

	"github.com/chaoxe/miniapp/internal/application/port"
	"github.com/chaoxe/miniapp/internal/infrastructure/bridge"
	"github.com/chaoxe/miniapp/internal/logging"
)

// ErrNoMatch is returned when a selector matches no element.
var ErrNoMatch = errors.New("selector matched no element")

// Option customises a Document.
type Option func(*Document)

// WithoutHost simulates a standalone browser: no host object is installed,
// so the page script falls back to window.open.
func WithoutHost() Option {
	return func(d *Document) {
		d.withHost = false
	}
}

// WithScriptOptions overrides the page script options.
func WithScriptOptions(opts bridge.ScriptOptions) Option {
	return func(d *Document) {
		d.scriptOpts = opts
	}
}

// WithChannel publishes posted payloads on ch instead of a private channel.
func WithChannel(ch *bridge.Channel) Option {
	return func(d *Document) {
		if ch != nil {
			d.channel = ch
		}
	}
}

// ClickResult describes how the page handled a simulated click.
type ClickResult struct {
	DefaultPrevented bool
}

// Document is one simulated page. It implements port.BridgeEventSource.
// A Document is safe for concurrent use; script execution is serialised.
type Document struct {
	ctx        context.Context
	location   *url.URL
	withHost   bool
	scriptOpts bridge.ScriptOptions
	channel    *bridge.Channel

	mu        sync.Mutex
	vm        *sobek.Runtime
	root      *html.Node
	wrappers  map[*html.Node]*sobek.Object
	nodes     map[*sobek.Object]*html.Node
	styles    map[*html.Node]*sobek.Object
	listeners []sobek.Callable
	observers []*mutationObserver
	opened    []string
	pending   [][]byte
	injected  bool
}

// Parse reads an HTML document served at pageURL.
func Parse(ctx context.Context, pageURL string, r io.Reader, opts ...Option) (*Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	location, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	d := &Document{
		ctx:        logging.WithURL(logging.WithComponent(ctx, "guestsim"), pageURL),
		location:   location,
		withHost:   true,
		scriptOpts: bridge.DefaultScriptOptions(),
		channel:    bridge.NewChannel(),
		vm:         sobek.New(),
		root:       root,
		wrappers:   make(map[*html.Node]*sobek.Object),
		nodes:      make(map[*sobek.Object]*html.Node),
		styles:     make(map[*html.Node]*sobek.Object),
	}
	for _, opt := range opts {
		opt(d)
	}

	if err := d.installGlobals(); err != nil {
		return nil, err
	}
	return d, nil
}

// Subscribe implements port.BridgeEventSource.
func (d *Document) Subscribe(handler port.BridgeEventHandler) (func(), error) {
	return d.channel.Subscribe(handler)
}

// Inject installs the host shim (unless WithoutHost was given) and runs the
// page script. Running it again is a no-op inside the page.
func (d *Document) Inject() error {
	defer d.flush()
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.withHost && !d.injected {
		shim, err := bridge.HostShim(d.scriptOpts, bridge.DefaultBindingName)
		if err != nil {
			return err
		}
		if _, err := d.vm.RunString(shim); err != nil {
			return fmt.Errorf("run host shim: %w", err)
		}
	}

	script, err := bridge.InjectedScript(d.scriptOpts)
	if err != nil {
		return err
	}
	if _, err := d.vm.RunString(script); err != nil {
		return fmt.Errorf("run page script: %w", err)
	}
	d.injected = true

	logging.FromContext(d.ctx).Debug().Bool("host", d.withHost).Msg("page script injected")
	return nil
}

// Click dispatches a click on the first element matching selector.
func (d *Document) Click(selector string) (ClickResult, error) {
	defer d.flush()
	d.mu.Lock()
	defer d.mu.Unlock()

	sel, err := cascadia.Compile(selector)
	if err != nil {
		return ClickResult{}, fmt.Errorf("compile selector %q: %w", selector, err)
	}
	node := sel.MatchFirst(d.root)
	if node == nil {
		return ClickResult{}, fmt.Errorf("%w: %s", ErrNoMatch, selector)
	}

	prevented := false
	event := d.vm.NewObject()
	_ = event.Set("type", "click")
	_ = event.Set("target", d.wrap(node))
	_ = event.Set("preventDefault", func(sobek.FunctionCall) sobek.Value {
		prevented = true
		return sobek.Undefined()
	})
	_ = event.DefineAccessorProperty("defaultPrevented", d.vm.ToValue(func(sobek.FunctionCall) sobek.Value {
		return d.vm.ToValue(prevented)
	}), nil, sobek.FLAG_FALSE, sobek.FLAG_TRUE)

	for _, listener := range d.listeners {
		if _, err := listener(d.vm.Get("document"), event); err != nil {
			logging.FromContext(d.ctx).Warn().Err(err).Str("selector", selector).Msg("click listener threw")
		}
	}
	return ClickResult{DefaultPrevented: prevented}, nil
}

// SetTitle replaces the text of the <title> element and notifies the
// observers watching it.
func (d *Document) SetTitle(title string) {
	defer d.flush()
	d.mu.Lock()
	defer d.mu.Unlock()

	d.setTitleLocked(title)
}

// Title returns the current document title.
func (d *Document) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.titleLocked()
}

// Location returns the page URL.
func (d *Document) Location() string {
	return d.location.String()
}

// Opened returns the URLs passed to window.open, in call order.
func (d *Document) Opened() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.opened))
	copy(out, d.opened)
	return out
}

// Style returns an inline style property the page script set on the element
// matching selector.
func (d *Document) Style(selector, property string) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	sel, err := cascadia.Compile(selector)
	if err != nil {
		return ""
	}
	node := sel.MatchFirst(d.root)
	style, ok := d.styles[node]
	if node == nil || !ok {
		return ""
	}
	v := style.Get(property)
	if v == nil || sobek.IsUndefined(v) || sobek.IsNull(v) {
		return ""
	}
	return v.String()
}

// Eval runs arbitrary script in the page and returns its string result.
func (d *Document) Eval(src string) (string, error) {
	defer d.flush()
	d.mu.Lock()
	defer d.mu.Unlock()

	v, err := d.vm.RunString(src)
	if err != nil {
		return "", err
	}
	if v == nil || sobek.IsUndefined(v) {
		return "", nil
	}
	return v.String(), nil
}

// post queues a payload received through the binding. Payloads are
// published once the runtime lock is released.
func (d *Document) post(payload string) {
	d.pending = append(d.pending, []byte(payload))
}

func (d *Document) flush() {
	d.mu.Lock()
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()

	for _, payload := range pending {
		d.channel.Publish(payload)
	}
}

package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/chaoxe/miniapp/internal/application/port"
	"github.com/chaoxe/miniapp/internal/domain/entity"
	"github.com/chaoxe/miniapp/internal/logging"
)

// EmbeddedView owns the HostViewState of one embedded view page and feeds
// it the payloads delivered by its event sources. Deliveries are serialised,
// so each dispatch completes before the next one starts.
type EmbeddedView struct {
	bridge   *HandleBridgeUseCase
	loader   port.ViewLoader
	observer port.BridgeObserver
	trail    entity.Trail
	ctx      context.Context

	mu           sync.Mutex
	state        entity.HostViewState
	unsubscribes []func()
	closed       bool
}

// EmbeddedViewOption customises an EmbeddedView.
type EmbeddedViewOption func(*EmbeddedView)

// WithViewLoader reloads the view whenever an in-frame navigation changes
// the current URL.
func WithViewLoader(loader port.ViewLoader) EmbeddedViewOption {
	return func(v *EmbeddedView) {
		v.loader = loader
	}
}

// WithBridgeObserver reports each dispatched message kind.
func WithBridgeObserver(observer port.BridgeObserver) EmbeddedViewOption {
	return func(v *EmbeddedView) {
		v.observer = observer
	}
}

// WithTrail sets the breadcrumb trail whose last item follows the page title.
func WithTrail(trail entity.Trail) EmbeddedViewOption {
	return func(v *EmbeddedView) {
		v.trail = trail.Clone()
	}
}

// NewEmbeddedView creates a view that starts loading initialURL.
// An empty title uses the bridge's placeholder title.
func NewEmbeddedView(ctx context.Context, bridge *HandleBridgeUseCase, initialURL, title string, opts ...EmbeddedViewOption) *EmbeddedView {
	if ctx == nil {
		ctx = context.Background()
	}
	if title == "" {
		title = bridge.PlaceholderTitle()
	}
	v := &EmbeddedView{
		bridge: bridge,
		ctx:    logging.WithURL(logging.WithComponent(ctx, "embedded-view"), initialURL),
		state:  entity.NewHostViewState(initialURL, title),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Attach subscribes the view to src. Subscriptions end on Close.
func (v *EmbeddedView) Attach(src port.BridgeEventSource) error {
	if src == nil {
		return errors.New("event source is nil")
	}

	unsubscribe, err := src.Subscribe(v.Deliver)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		unsubscribe()
		return errors.New("embedded view is closed")
	}
	v.unsubscribes = append(v.unsubscribes, unsubscribe)
	return nil
}

// Deliver dispatches one raw bridge payload. Payloads delivered after Close
// are neither applied nor observed.
func (v *EmbeddedView) Deliver(payload []byte) {
	log := logging.FromContext(v.ctx)
	msg, n, err := entity.DecodeBatch(payload)

	v.apply(func(state entity.HostViewState) entity.HostViewState {
		if err != nil {
			log.Debug().Err(err).Msg("bridge payload dropped")
			if v.observer != nil {
				v.observer.ObserveDropped(1)
			}
			return state
		}
		if v.observer != nil {
			v.observer.ObserveMessage(msg.Kind())
			if n > 1 {
				v.observer.ObserveDropped(n - 1)
			}
		}
		if n > 1 {
			log.Debug().Int("ignored", n-1).Msg("bridge batch carried extra messages")
		}
		return v.bridge.Dispatch(v.ctx, msg, state)
	})
}

// LoadFinished applies an on-load-finish lifecycle event.
func (v *EmbeddedView) LoadFinished() {
	v.apply(func(state entity.HostViewState) entity.HostViewState {
		return v.bridge.LoadFinished(v.ctx, state)
	})
}

// State returns a snapshot of the view state.
func (v *EmbeddedView) State() entity.HostViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Trail returns the breadcrumb trail with the current page title applied.
func (v *EmbeddedView) Trail() entity.Trail {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.trail.WithTitle(v.state.PageTitle)
}

// Close removes every subscription. Later deliveries are ignored.
func (v *EmbeddedView) Close() {
	v.mu.Lock()
	unsubscribes := v.unsubscribes
	v.unsubscribes = nil
	v.closed = true
	v.mu.Unlock()

	for _, unsubscribe := range unsubscribes {
		unsubscribe()
	}
}

// apply runs fn under the lock and reloads the view afterwards when the
// current URL changed. The loader is called without the lock held so that
// it may deliver further events synchronously.
func (v *EmbeddedView) apply(fn func(entity.HostViewState) entity.HostViewState) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	before := v.state.CurrentURL
	v.state = fn(v.state)
	after := v.state.CurrentURL
	v.mu.Unlock()

	if after == before || v.loader == nil {
		return
	}
	if err := v.loader.LoadURL(v.ctx, after); err != nil {
		logging.FromContext(v.ctx).Warn().Err(err).Str("to", after).Msg("failed to reload embedded view")
	}
}

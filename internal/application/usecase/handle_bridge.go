package usecase

import (
	"context"

	"github.com/chaoxe/miniapp/internal/application/port"
	"github.com/chaoxe/miniapp/internal/domain/entity"
	"github.com/chaoxe/miniapp/internal/domain/url"
	"github.com/chaoxe/miniapp/internal/logging"
)

// HandleBridgeUseCase applies bridge messages and load lifecycle events to
// an embedded view's state. Every method is synchronous and returns the new
// state; the only side effect is opening a new view for external links.
type HandleBridgeUseCase struct {
	opener           port.EmbeddedViewOpener
	placeholderTitle string
	externalTitle    string
}

// BridgeOption customises a HandleBridgeUseCase.
type BridgeOption func(*HandleBridgeUseCase)

// WithPlaceholderTitle overrides the generic title a loaded message may replace.
func WithPlaceholderTitle(title string) BridgeOption {
	return func(uc *HandleBridgeUseCase) {
		if title != "" {
			uc.placeholderTitle = title
		}
	}
}

// WithExternalTitle overrides the title used for views opened on external links.
func WithExternalTitle(title string) BridgeOption {
	return func(uc *HandleBridgeUseCase) {
		if title != "" {
			uc.externalTitle = title
		}
	}
}

// NewHandleBridgeUseCase creates the dispatcher. opener may be nil, in which
// case external links are dropped.
func NewHandleBridgeUseCase(opener port.EmbeddedViewOpener, opts ...BridgeOption) *HandleBridgeUseCase {
	uc := &HandleBridgeUseCase{
		opener:           opener,
		placeholderTitle: entity.PlaceholderTitle,
		externalTitle:    entity.ExternalLinkTitle,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// PlaceholderTitle returns the generic title in use.
func (uc *HandleBridgeUseCase) PlaceholderTitle() string {
	return uc.placeholderTitle
}

// DispatchBatch decodes a raw payload and dispatches its first message.
// Undecodable payloads leave the state unchanged.
func (uc *HandleBridgeUseCase) DispatchBatch(ctx context.Context, payload []byte, state entity.HostViewState) entity.HostViewState {
	log := logging.FromContext(ctx)

	msg, n, err := entity.DecodeBatch(payload)
	if err != nil {
		log.Debug().Err(err).Int("payload_len", len(payload)).Msg("bridge payload dropped")
		return state
	}
	if n > 1 {
		log.Debug().Int("ignored", n-1).Msg("bridge batch carried extra messages")
	}

	return uc.Dispatch(ctx, msg, state)
}

// Dispatch applies exactly one message to state.
func (uc *HandleBridgeUseCase) Dispatch(ctx context.Context, msg entity.BridgeMessage, state entity.HostViewState) entity.HostViewState {
	log := logging.FromContext(ctx)

	switch m := msg.(type) {
	case entity.TitleMessage:
		if m.Title != "" && m.Title != state.PageTitle {
			log.Debug().Str("title", m.Title).Msg("page title updated")
			state.PageTitle = m.Title
		}
	case entity.NavigateMessage:
		if m.URL != "" {
			state = uc.resolveNavigation(ctx, m.URL, state)
		}
	case entity.LoadedMessage:
		log.Debug().Str("title", m.Title).Str("url", m.URL).Msg("embedded page loaded")
		if m.Title != "" && state.PageTitle == uc.placeholderTitle {
			state.PageTitle = m.Title
		}
		state.Loading = false
	case entity.UnknownMessage:
		log.Debug().Str("type", m.Type).Msg("unknown bridge message type")
	case nil:
		log.Debug().Msg("nil bridge message")
	}

	return state
}

// resolveNavigation opens external links in a new view and reloads the
// current view for relative ones. Anything else is dropped.
func (uc *HandleBridgeUseCase) resolveNavigation(ctx context.Context, target string, state entity.HostViewState) entity.HostViewState {
	log := logging.FromContext(ctx)

	switch url.ClassifyNavigation(target) {
	case url.NavigationExternal:
		if uc.opener == nil {
			log.Warn().Str("url", target).Msg("no view opener configured, external link dropped")
			return state
		}
		if err := uc.opener.OpenEmbeddedView(ctx, target, uc.externalTitle); err != nil {
			log.Warn().Err(err).Str("url", target).Msg("failed to open external link")
		}
	case url.NavigationInFrame:
		resolved, ok := url.ResolveInFrame(state.CurrentURL, target)
		if !ok {
			log.Debug().Str("url", target).Str("base", state.CurrentURL).Msg("in-frame link could not be resolved")
			return state
		}
		log.Debug().Str("from", state.CurrentURL).Str("to", resolved).Msg("in-frame navigation")
		state.CurrentURL = resolved
	default:
		log.Debug().Str("url", target).Msg("navigation target ignored")
	}

	return state
}

// LoadFailed applies an on-error lifecycle event.
func (uc *HandleBridgeUseCase) LoadFailed(ctx context.Context, event entity.LoadErrorEvent, state entity.HostViewState) entity.HostViewState {
	log := logging.FromContext(ctx)
	log.Warn().
		Int("code", int(event.EffectiveCode())).
		Str("err_msg", event.ErrMsg).
		Str("url", state.CurrentURL).
		Msg("embedded view failed to load")

	state.Error = event.UserMessage()
	state.Loading = false
	return state
}

// LoadFinished applies an on-load-finish lifecycle event.
func (uc *HandleBridgeUseCase) LoadFinished(ctx context.Context, state entity.HostViewState) entity.HostViewState {
	logging.FromContext(ctx).Debug().Str("url", state.CurrentURL).Msg("embedded view finished loading")
	state.Error = ""
	state.Loading = false
	return state
}

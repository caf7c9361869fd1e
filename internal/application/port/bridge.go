// Package port defines application-layer interfaces for external capabilities.
// Ports abstract the embedding runtime, allowing the application layer to
// remain independent of a specific host (mini-program runtime, headless
// browser, simulator).
package port

import (
	"context"

	"github.com/chaoxe/miniapp/internal/domain/entity"
)

// BridgeEventHandler receives one raw bridge payload (a JSON array).
type BridgeEventHandler func(payload []byte)

// BridgeEventSource delivers payloads posted by the injected page script.
type BridgeEventSource interface {
	// Subscribe registers handler and returns a function that removes it.
	Subscribe(handler BridgeEventHandler) (unsubscribe func(), err error)
}

// EmbeddedViewOpener opens a new embedded view page seeded with a URL.
type EmbeddedViewOpener interface {
	OpenEmbeddedView(ctx context.Context, url, title string) error
}

// ViewLoader reloads an existing embedded view at a new address.
type ViewLoader interface {
	LoadURL(ctx context.Context, url string) error
}

// BridgeObserver is notified about every delivered payload.
// Implementations must not block.
type BridgeObserver interface {
	ObserveMessage(kind entity.MessageKind)
	ObserveDropped(count int)
}

package bridge

import (
	"errors"
	"sync"

	"github.com/chaoxe/miniapp/internal/application/port"
)

// ErrChannelClosed is returned when subscribing to a closed channel.
var ErrChannelClosed = errors.New("bridge channel closed")

// Channel fans raw payloads out to subscribers in publish order.
// It implements port.BridgeEventSource for every host.
type Channel struct {
	mu       sync.Mutex
	handlers map[uint64]port.BridgeEventHandler
	order    []uint64
	nextID   uint64
	closed   bool
}

// NewChannel creates an open channel.
func NewChannel() *Channel {
	return &Channel{handlers: make(map[uint64]port.BridgeEventHandler)}
}

// Subscribe implements port.BridgeEventSource.
func (c *Channel) Subscribe(handler port.BridgeEventHandler) (func(), error) {
	if handler == nil {
		return nil, errors.New("bridge handler is nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrChannelClosed
	}

	id := c.nextID
	c.nextID++
	c.handlers[id] = handler
	c.order = append(c.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { c.remove(id) })
	}, nil
}

func (c *Channel) remove(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Publish hands payload to every subscriber, in subscription order, on the
// calling goroutine. It returns the number of subscribers reached.
func (c *Channel) Publish(payload []byte) int {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0
	}
	handlers := make([]port.BridgeEventHandler, 0, len(c.order))
	for _, id := range c.order {
		handlers = append(handlers, c.handlers[id])
	}
	c.mu.Unlock()

	for _, h := range handlers {
		h(payload)
	}
	return len(handlers)
}

// Subscribers returns the current number of subscribers.
func (c *Channel) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.handlers)
}

// Close drops every subscriber. Later publishes are discarded.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.handlers = make(map[uint64]port.BridgeEventHandler)
	c.order = nil
}

package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chaoxe/miniapp/internal/application/port"
	"github.com/chaoxe/miniapp/internal/application/port/mocks"
	"github.com/chaoxe/miniapp/internal/domain/entity"
)

// stubSource is a synchronous BridgeEventSource.
type stubSource struct {
	mu       sync.Mutex
	handlers map[int]port.BridgeEventHandler
	next     int
	err      error
}

func (s *stubSource) Subscribe(handler port.BridgeEventHandler) (func(), error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handlers == nil {
		s.handlers = make(map[int]port.BridgeEventHandler)
	}
	id := s.next
	s.next++
	s.handlers[id] = handler
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.handlers, id)
	}, nil
}

func (s *stubSource) post(t *testing.T, msgs ...entity.BridgeMessage) {
	t.Helper()
	payload, err := entity.EncodeBatch(msgs...)
	require.NoError(t, err)
	s.postRaw(payload)
}

func (s *stubSource) postRaw(payload []byte) {
	s.mu.Lock()
	handlers := make([]port.BridgeEventHandler, 0, len(s.handlers))
	for _, h := range s.handlers {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()
	for _, h := range handlers {
		h(payload)
	}
}

func TestEmbeddedView_InitialState(t *testing.T) {
	view := NewEmbeddedView(context.Background(), NewHandleBridgeUseCase(nil), "https://example.org", "")

	state := view.State()
	assert.Equal(t, entity.PlaceholderTitle, state.PageTitle)
	assert.Equal(t, "https://example.org", state.CurrentURL)
	assert.True(t, state.Loading)
}

func TestEmbeddedView_LoadedThenTitle(t *testing.T) {
	src := &stubSource{}
	view := NewEmbeddedView(context.Background(), NewHandleBridgeUseCase(nil), "https://example.org", "")
	require.NoError(t, view.Attach(src))

	src.post(t, entity.LoadedMessage{Title: "Home", URL: "https://example.org"})
	assert.Equal(t, "Home", view.State().PageTitle)
	assert.False(t, view.State().Loading)

	src.post(t, entity.TitleMessage{Title: "Renamed"})
	assert.Equal(t, "Renamed", view.State().PageTitle)
}

func TestEmbeddedView_InFrameNavigationReloads(t *testing.T) {
	src := &stubSource{}
	loader := mocks.NewMockViewLoader(t)
	loader.EXPECT().LoadURL(mock.Anything, "https://example.org/c").Return(nil).Once()

	view := NewEmbeddedView(context.Background(), NewHandleBridgeUseCase(nil), "https://example.org/a/b?x=1#y", "T",
		WithViewLoader(loader))
	require.NoError(t, view.Attach(src))

	src.post(t, entity.NavigateMessage{URL: "/c"})
	assert.Equal(t, "https://example.org/c", view.State().CurrentURL)
}

func TestEmbeddedView_ExternalNavigationDoesNotReload(t *testing.T) {
	src := &stubSource{}
	opener := mocks.NewMockEmbeddedViewOpener(t)
	opener.EXPECT().OpenEmbeddedView(mock.Anything, "https://other.example.com", entity.ExternalLinkTitle).Return(nil).Once()
	loader := mocks.NewMockViewLoader(t)

	view := NewEmbeddedView(context.Background(), NewHandleBridgeUseCase(opener), "https://example.org/a", "T",
		WithViewLoader(loader))
	require.NoError(t, view.Attach(src))

	src.post(t, entity.NavigateMessage{URL: "https://other.example.com"})
	assert.Equal(t, "https://example.org/a", view.State().CurrentURL)
}

func TestEmbeddedView_LoaderErrorKeepsNewURL(t *testing.T) {
	loader := mocks.NewMockViewLoader(t)
	loader.EXPECT().LoadURL(mock.Anything, "https://example.org/next").Return(errors.New("gone")).Once()

	view := NewEmbeddedView(context.Background(), NewHandleBridgeUseCase(nil), "https://example.org/a", "T",
		WithViewLoader(loader))

	payload, err := entity.EncodeBatch(entity.NavigateMessage{URL: "./next"})
	require.NoError(t, err)
	view.Deliver(payload)

	assert.Equal(t, "https://example.org/next", view.State().CurrentURL)
}

func TestEmbeddedView_ObserverSeesBatchDrops(t *testing.T) {
	src := &stubSource{}
	observer := mocks.NewMockBridgeObserver(t)
	observer.EXPECT().ObserveMessage(entity.MessageKindTitle).Return().Once()
	observer.EXPECT().ObserveDropped(1).Return().Twice()

	view := NewEmbeddedView(context.Background(), NewHandleBridgeUseCase(nil), "https://example.org", "Old",
		WithBridgeObserver(observer))
	require.NoError(t, view.Attach(src))

	src.post(t, entity.TitleMessage{Title: "First"}, entity.TitleMessage{Title: "Second"})
	src.postRaw([]byte(`{"type":"title"}`))

	assert.Equal(t, "First", view.State().PageTitle)
}

func TestEmbeddedView_LifecycleEvents(t *testing.T) {
	view := NewEmbeddedView(context.Background(), NewHandleBridgeUseCase(nil), "https://example.org", "")

	view.LoadFailed(entity.LoadErrorEvent{ErrCode: entity.LoadErrorNetwork})
	state := view.State()
	assert.Equal(t, "网络连接失败，请检查网络设置。", state.Error)
	assert.False(t, state.Loading)

	view.LoadFinished()
	assert.False(t, view.State().HasError())
}

func TestEmbeddedView_TrailFollowsTitle(t *testing.T) {
	trail := entity.Trail{
		{Title: "首页", Path: "/pages/index/index"},
		{Title: "网页", Path: ""},
	}
	view := NewEmbeddedView(context.Background(), NewHandleBridgeUseCase(nil), "https://example.org", "",
		WithTrail(trail))

	payload, err := entity.EncodeBatch(entity.LoadedMessage{Title: "Article"})
	require.NoError(t, err)
	view.Deliver(payload)

	got := view.Trail()
	require.Len(t, got, 2)
	assert.Equal(t, "Article", got[1].Title)
	assert.Equal(t, "网页", trail[1].Title)
}

func TestEmbeddedView_CloseUnsubscribes(t *testing.T) {
	src := &stubSource{}
	view := NewEmbeddedView(context.Background(), NewHandleBridgeUseCase(nil), "https://example.org", "Old")
	require.NoError(t, view.Attach(src))

	view.Close()
	src.post(t, entity.TitleMessage{Title: "New"})
	view.Deliver([]byte(`[{"type":"title","title":"Direct"}]`))

	assert.Equal(t, "Old", view.State().PageTitle)
	assert.Empty(t, src.handlers)
	assert.Error(t, view.Attach(src))
}

func TestEmbeddedView_ClosedViewIsNotObserved(t *testing.T) {
	observer := mocks.NewMockBridgeObserver(t)
	view := NewEmbeddedView(context.Background(), NewHandleBridgeUseCase(nil), "https://example.org", "Old",
		WithBridgeObserver(observer))

	view.Close()
	view.Deliver([]byte(`[{"type":"title","title":"Direct"},{"type":"title","title":"Extra"}]`))
	view.Deliver([]byte(`not json`))

	assert.Equal(t, "Old", view.State().PageTitle)
	observer.AssertNotCalled(t, "ObserveMessage", mock.Anything)
	observer.AssertNotCalled(t, "ObserveDropped", mock.Anything)
}

func TestEmbeddedView_AttachErrors(t *testing.T) {
	view := NewEmbeddedView(context.Background(), NewHandleBridgeUseCase(nil), "https://example.org", "")

	assert.Error(t, view.Attach(nil))
	assert.Error(t, view.Attach(&stubSource{err: errors.New("no bridge")}))
}

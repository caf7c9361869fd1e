package pagestack

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaoxe/miniapp/internal/application/usecase"
)

func TestRouter_PushAndPop(t *testing.T) {
	ctx := context.Background()
	r := New("/pages/index/index", nil, 0)

	require.NoError(t, r.NavigateTo(ctx, "/pages/webview/webview?url=x"))
	assert.Equal(t, []string{"pages/index/index", "pages/webview/webview"}, r.CurrentPages(ctx))

	top, ok := r.Top()
	require.True(t, ok)
	assert.Equal(t, "/pages/webview/webview?url=x", top.URL())

	require.NoError(t, r.NavigateBack(ctx, 5))
	assert.Equal(t, []string{"pages/index/index"}, r.CurrentPages(ctx))
	assert.ErrorIs(t, r.NavigateBack(ctx, 1), ErrNoPreviousPage)
}

func TestRouter_DepthLimit(t *testing.T) {
	ctx := context.Background()
	r := New("/pages/index/index", nil, 3)

	require.NoError(t, r.NavigateTo(ctx, "/pages/a/a"))
	require.NoError(t, r.NavigateTo(ctx, "/pages/b/b"))
	assert.ErrorIs(t, r.NavigateTo(ctx, "/pages/c/c"), ErrStackFull)
	assert.Len(t, r.Stack(), 3)
}

func TestRouter_RedirectRelaunchSwitchTab(t *testing.T) {
	ctx := context.Background()
	r := New("/pages/index/index", []string{"/pages/index/index", "/pages/service/service"}, 0)

	require.NoError(t, r.NavigateTo(ctx, "/pages/a/a"))
	require.NoError(t, r.RedirectTo(ctx, "/pages/b/b"))
	assert.Equal(t, []string{"pages/index/index", "pages/b/b"}, r.CurrentPages(ctx))

	assert.ErrorIs(t, r.SwitchTab(ctx, "/pages/b/b"), ErrNotTabPage)
	require.NoError(t, r.SwitchTab(ctx, "/pages/service/service"))
	assert.Equal(t, []string{"pages/service/service"}, r.CurrentPages(ctx))

	require.NoError(t, r.ReLaunch(ctx, "/pages/message/message?from=x"))
	assert.Equal(t, []string{"pages/message/message"}, r.CurrentPages(ctx))

	assert.ErrorIs(t, r.NavigateTo(ctx, "pages/relative"), ErrInvalidPage)
}

func TestRouter_BacksNavigationService(t *testing.T) {
	ctx := context.Background()
	r := New("/pages/index/index", []string{"/pages/index/index", "/pages/service/service"}, 2)
	svc := usecase.NewNavigationService(r, r, nil, nil)

	require.NoError(t, svc.NavigateToWebView(ctx, "https://example.org", "Ex"))
	assert.Equal(t, "/pages/webview/webview", svc.CurrentPath(ctx))

	err := svc.NavigateToMessage(ctx, nil)
	require.Error(t, err)
	assert.Equal(t, []string{"页面跳转失败"}, r.Toasts())

	require.NoError(t, svc.SafeGoBack(ctx))
	assert.True(t, svc.IsHomePage(ctx))

	require.NoError(t, svc.SafeGoBack(ctx))
	assert.True(t, svc.IsHomePage(ctx), fmt.Sprint(r.Stack()))
}

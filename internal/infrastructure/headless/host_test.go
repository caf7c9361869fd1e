package headless

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaoxe/miniapp/internal/application/usecase"
	"github.com/chaoxe/miniapp/internal/domain/entity"
)

func findChrome(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("no Chrome binary found")
	return ""
}

func TestClassifyLoadError(t *testing.T) {
	tests := []struct {
		err  error
		want entity.LoadErrorCode
	}{
		{context.DeadlineExceeded, entity.LoadErrorTimeout},
		{fmt.Errorf("wrapped: %w", context.DeadlineExceeded), entity.LoadErrorTimeout},
		{errors.New("page load error net::ERR_NAME_NOT_RESOLVED"), entity.LoadErrorNetwork},
		{errors.New("page load error net::ERR_CONNECTION_REFUSED"), entity.LoadErrorNetwork},
		{errors.New("page load error net::ERR_INVALID_URL"), entity.LoadErrorInvalidURL},
		{errors.New("page load error net::ERR_CERT_DATE_INVALID"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			event := ClassifyLoadError(tt.err)
			assert.Equal(t, tt.want, event.EffectiveCode())
			assert.Equal(t, tt.err.Error(), event.ErrMsg)
		})
	}

	assert.Equal(t, "page load error net::ERR_CERT_DATE_INVALID",
		ClassifyLoadError(errors.New("page load error net::ERR_CERT_DATE_INVALID")).UserMessage())
}

func TestHost_NotStarted(t *testing.T) {
	h := New(Config{})
	assert.ErrorIs(t, h.LoadURL(context.Background(), "https://example.org"), ErrNotStarted)
	_, err := h.Title(context.Background())
	assert.ErrorIs(t, err, ErrNotStarted)
	h.Close()
}

func TestHost_BridgeRoundTrip(t *testing.T) {
	execPath := findChrome(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, `<!doctype html><html><head><title>Served page</title></head>
<body><a id="ext" href="https://other.example.com/">x</a></body></html>`)
	}))
	defer srv.Close()

	ctx := context.Background()
	host := New(Config{ExecPath: execPath, LoadTimeout: 15 * time.Second})
	require.NoError(t, host.Start(ctx))
	defer host.Close()

	view := usecase.NewEmbeddedView(ctx, usecase.NewHandleBridgeUseCase(nil), srv.URL, "", usecase.WithViewLoader(host))
	host.SetLifecycle(view)
	require.NoError(t, view.Attach(host))

	require.NoError(t, host.LoadURL(ctx, srv.URL))

	assert.Eventually(t, func() bool {
		return view.State().PageTitle == "Served page"
	}, 10*time.Second, 50*time.Millisecond)
	assert.False(t, view.State().Loading)

	require.NoError(t, host.Evaluate(ctx, `document.title = "Changed"`, nil))
	assert.Eventually(t, func() bool {
		return view.State().PageTitle == "Changed"
	}, 10*time.Second, 50*time.Millisecond)
}

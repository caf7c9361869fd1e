package devserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chaoxe/miniapp/internal/application/port/mocks"
	"github.com/chaoxe/miniapp/internal/application/usecase"
	"github.com/chaoxe/miniapp/internal/domain/entity"
	"github.com/chaoxe/miniapp/internal/infrastructure/bridge"
	"github.com/chaoxe/miniapp/internal/infrastructure/metrics"
)

func newTestServer(t *testing.T, cfg Config, opener *mocks.MockEmbeddedViewOpener) (*httptest.Server, *prometheus.Registry) {
	t.Helper()
	if cfg.Script.HostObject == "" {
		cfg.Script = bridge.DefaultScriptOptions()
	}
	cfg.Styles = bridge.DefaultStyles()

	reg := prometheus.NewRegistry()
	recorder := metrics.NewRecorder(reg)

	var uc *usecase.HandleBridgeUseCase
	if opener != nil {
		uc = usecase.NewHandleBridgeUseCase(opener)
	} else {
		uc = usecase.NewHandleBridgeUseCase(nil)
	}

	srv, err := New(context.Background(), cfg, uc, recorder, reg)
	require.NoError(t, err)
	handler, err := srv.Handler()
	require.NoError(t, err)

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts, reg
}

func postState(t *testing.T, url, body string) entity.HostViewState {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var state entity.HostViewState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	return state
}

func TestServer_Healthz(t *testing.T) {
	ts, _ := newTestServer(t, Config{}, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_BridgeScript(t *testing.T) {
	ts, _ := newTestServer(t, Config{Script: bridge.ScriptOptions{HostObject: "my.host", ScrollFix: true}}, nil)

	resp, err := http.Get(ts.URL + "/bridge.js")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, resp.Header.Get("Content-Type"), "javascript")
	assert.Contains(t, string(body), `"my","host"`)
}

func TestServer_SchemaAndStyles(t *testing.T) {
	ts, _ := newTestServer(t, Config{}, nil)

	resp, err := http.Get(ts.URL + "/bridge/schema")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "navigate")

	resp, err = http.Get(ts.URL + "/bridge/styles")
	require.NoError(t, err)
	var styles bridge.Styles
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&styles))
	resp.Body.Close()
	assert.Equal(t, bridge.DefaultStyles(), styles)
}

func TestServer_MessagesDriveSessionState(t *testing.T) {
	ts, reg := newTestServer(t, Config{}, nil)
	base := ts.URL + "/bridge/messages?session=s1&url=" + "https%3A%2F%2Fexample.org%2Fa%2Fb"

	state := postState(t, base, `[{"type":"loaded","title":"Hello","url":"https://example.org/a/b"}]`)
	assert.Equal(t, "Hello", state.PageTitle)
	assert.False(t, state.Loading)

	state = postState(t, base, `[{"type":"navigate","url":"../c"},{"type":"title","title":"ignored"}]`)
	assert.Equal(t, "https://example.org/c", state.CurrentURL)
	assert.Equal(t, "Hello", state.PageTitle)

	resp, err := http.Get(ts.URL + "/bridge/state?session=s1")
	require.NoError(t, err)
	defer resp.Body.Close()
	var got entity.HostViewState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, state, got)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "chaoxe_bridge_messages_total")
	assert.Contains(t, names, "chaoxe_bridge_dropped_total")
}

func TestServer_ExternalNavigateOpensView(t *testing.T) {
	opener := mocks.NewMockEmbeddedViewOpener(t)
	opener.EXPECT().OpenEmbeddedView(mock.Anything, "https://other.example.com/", entity.ExternalLinkTitle).Return(nil).Once()

	ts, _ := newTestServer(t, Config{}, opener)
	state := postState(t, ts.URL+"/bridge/messages?url=https%3A%2F%2Fexample.org%2F",
		`[{"type":"navigate","url":"https://other.example.com/"}]`)
	assert.Equal(t, "https://example.org/", state.CurrentURL)
}

func TestServer_Lifecycle(t *testing.T) {
	ts, _ := newTestServer(t, Config{}, nil)

	resp, err := http.Post(ts.URL+"/bridge/load-finish?session=nope", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	postState(t, ts.URL+"/bridge/messages?session=s2&url=https%3A%2F%2Fexample.org%2F", `[]`)

	state := postState(t, ts.URL+"/bridge/load-error?session=s2", `{"errCode":-2}`)
	assert.Equal(t, entity.LoadErrorTextTimeout, state.Error)
	assert.False(t, state.Loading)

	state = postState(t, ts.URL+"/bridge/load-finish?session=s2", ``)
	assert.Empty(t, state.Error)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/bridge/sessions/s2", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestServer_SessionsAreCapped(t *testing.T) {
	ts, _ := newTestServer(t, Config{MaxSessions: 2}, nil)

	for _, id := range []string{"s1", "s2", "s3"} {
		postState(t, ts.URL+"/bridge/messages?session="+id+"&url=https%3A%2F%2Fexample.org%2F", `[]`)
	}

	status := func(id string) int {
		resp, err := http.Get(ts.URL + "/bridge/state?session=" + id)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}
	assert.Equal(t, http.StatusNotFound, status("s1"))
	assert.Equal(t, http.StatusOK, status("s2"))
	assert.Equal(t, http.StatusOK, status("s3"))
}

func TestServer_CloseSessionsClosesViews(t *testing.T) {
	srv, err := New(context.Background(), Config{Script: bridge.DefaultScriptOptions()}, usecase.NewHandleBridgeUseCase(nil), nil, nil)
	require.NoError(t, err)

	sess, err := srv.session("s1", "https://example.org/", "Old")
	require.NoError(t, err)
	assert.Equal(t, 1, srv.SessionCount())

	srv.closeSessions()
	assert.Zero(t, srv.SessionCount())

	sess.channel.Publish([]byte(`[{"type":"title","title":"New"}]`))
	assert.Equal(t, "Old", sess.view.State().PageTitle)
}

func TestServer_APIProxyStripsPrefix(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, r.URL.Path+"?"+r.URL.RawQuery)
	}))
	defer upstream.Close()

	ts, _ := newTestServer(t, Config{ProxyTarget: upstream.URL + "/chaoxe-api"}, nil)

	resp, err := http.Get(ts.URL + "/api/api/v1/banners/?limit=3")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "/chaoxe-api/api/v1/banners/?limit=3", string(body))
}

func TestServer_InvalidProxyTarget(t *testing.T) {
	srv, err := New(context.Background(), Config{ProxyTarget: "not a url", Script: bridge.DefaultScriptOptions()},
		usecase.NewHandleBridgeUseCase(nil), nil, nil)
	require.NoError(t, err)
	_, err = srv.Handler()
	assert.Error(t, err)
}

func TestServer_CORS(t *testing.T) {
	ts, _ := newTestServer(t, Config{AllowedOrigins: []string{"http://localhost:5173"}}, nil)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "http://localhost:5173", resp.Header.Get("Access-Control-Allow-Origin"))
}

package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chaoxe/miniapp/internal/application/port/mocks"
	"github.com/chaoxe/miniapp/internal/infrastructure/images"
)

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithHTTPClient(srv.Client())}, opts...)
	return NewClient(Config{BaseURL: srv.URL}, images.NewResolver("", nil), opts...)
}

func TestConfig_ResolveBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, Config{}.ResolveBaseURL())
	assert.Equal(t, "https://api.example.com", Config{BaseURL: "https://api.example.com/"}.ResolveBaseURL())
	assert.Equal(t, "http://localhost:8080/api", Config{Dev: true, DevOrigin: "http://localhost:8080/", BaseURL: "https://x"}.ResolveBaseURL())
	assert.Equal(t, "/api", Config{Dev: true}.ResolveBaseURL())
}

func TestBuildQuery(t *testing.T) {
	assert.Equal(t, "", BuildQuery(nil))
	assert.Equal(t, "a=1&b=x%20y&c=true", BuildQuery(Params{"c": true, "b": "x y", "a": 1, "skip": nil}))
	assert.Equal(t, "q=%E7%8E%AF%E4%BF%9D", BuildQuery(Params{"q": "环保"}))
	assert.Equal(t, "", BuildQuery(Params{"skip": nil}))
	assert.Equal(t, "q=it's%20(new)!", BuildQuery(Params{"q": "it's (new)!"}))
}

func TestClient_RequestHeaders(t *testing.T) {
	var got http.Header
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/messages/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(t, w, map[string]any{"success": true, "message": "ok"})
	})

	env, err := c.SubmitMessage(context.Background(), map[string]any{"content": "hi"})
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, "ok", env.Message)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
	assert.Equal(t, map[string]any{"content": "hi"}, body)
}

func TestClient_RequestOverridesHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/plain", r.Header.Get("Content-Type"))
		assert.Equal(t, "fixed", r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte("raw"))
	})

	data, err := c.Request(context.Background(), http.MethodGet, "/x", nil,
		map[string]string{"Content-Type": "text/plain", "X-Request-ID": "fixed"})
	require.NoError(t, err)
	assert.Equal(t, "raw", string(data))
}

func TestClient_StatusError(t *testing.T) {
	observer := mocks.NewMockRequestObserver(t)
	observer.EXPECT().ObserveRequest(http.MethodGet, http.StatusNotFound, mock.Anything).Return()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}, WithObserver(observer))

	_, err := c.Get(context.Background(), "/api/v1/banners/7", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "missing")
}

func TestClient_GetEncodesParams(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/services/search", r.URL.Path)
		assert.Equal(t, "category=&limit=20&q=water", r.URL.RawQuery)
		writeJSON(t, w, map[string]any{"success": true, "data": []any{}})
	})

	_, err := c.SearchServices(context.Background(), "water", "", 0)
	require.NoError(t, err)
}

func TestClient_PaginatedImagesAreResolved(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"success": true,
			"data": map[string]any{
				"total": 1,
				"items": []any{map[string]any{"thumbnail": "t.jpg", "image_url": "/u.jpg"}},
			},
		})
	})

	env, err := c.Achievements(context.Background(), nil)
	require.NoError(t, err)

	data := env.Data.(map[string]any)
	assert.Equal(t, float64(1), data["total"])
	item := data["items"].([]any)[0].(map[string]any)
	assert.Equal(t, images.DefaultBaseURL+"/t.jpg", item["thumbnail"])
	assert.Equal(t, images.DefaultBaseURL+"/u.jpg", item["image_url"])
}

func TestClient_AchievementDetailResolvesImageArray(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"success": true,
			"data": map[string]any{
				"thumbnail": "https://cdn.example.com/t.jpg",
				"images":    []any{"a.jpg", "/static/b.jpg"},
			},
		})
	})

	env, err := c.AchievementDetail(context.Background(), "3")
	require.NoError(t, err)

	data := env.Data.(map[string]any)
	assert.Equal(t, "https://cdn.example.com/t.jpg", data["thumbnail"])
	assert.Equal(t, []any{images.DefaultBaseURL + "/a.jpg", "/static/b.jpg"}, data["images"])
}

func TestClient_FailedEnvelopeIsUntouched(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{"success": false, "data": map[string]any{"image_url": "a.jpg"}, "message": "nope"})
	})

	env, err := c.Banners(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, env.Success)
	assert.Equal(t, "a.jpg", env.Data.(map[string]any)["image_url"])
}

func TestClient_UploadFiles(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.txt", "b.txt"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("content of "+name), 0o600))
		paths = append(paths, p)
	}

	var mu sync.Mutex
	received := map[string]string{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/upload/multiple", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "avatar", r.FormValue("kind"))

		f, hdr, err := r.FormFile("files")
		require.NoError(t, err)
		defer f.Close()
		data, err := io.ReadAll(f)
		require.NoError(t, err)

		mu.Lock()
		received[hdr.Filename] = string(data)
		mu.Unlock()
		writeJSON(t, w, map[string]any{"success": true, "data": map[string]any{"name": hdr.Filename}})
	})

	envs, err := c.UploadFiles(context.Background(), paths, map[string]string{"kind": "avatar"})
	require.NoError(t, err)
	require.Len(t, envs, 2)
	assert.Equal(t, "a.txt", envs[0].Data.(map[string]any)["name"])
	assert.Equal(t, "b.txt", envs[1].Data.(map[string]any)["name"])
	assert.Equal(t, map[string]string{"a.txt": "content of a.txt", "b.txt": "content of b.txt"}, received)
}

func TestClient_UploadFileMissing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := c.UploadFile(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"), nil)
	assert.Error(t, err)
}

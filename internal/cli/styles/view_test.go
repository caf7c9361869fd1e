package styles_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chaoxe/miniapp/internal/cli/styles"
	"github.com/chaoxe/miniapp/internal/domain/entity"
	"github.com/chaoxe/miniapp/internal/infrastructure/images"
)

func TestViewRenderer_RenderState(t *testing.T) {
	r := styles.NewViewRenderer(styles.NewTheme(""))

	out := r.RenderState(entity.HostViewState{PageTitle: "News", CurrentURL: "https://example.org/"})
	assert.Contains(t, out, "News")
	assert.Contains(t, out, "https://example.org/")
	assert.Contains(t, out, "ready")

	out = r.RenderState(entity.HostViewState{PageTitle: "x", Loading: true})
	assert.Contains(t, out, "loading")

	out = r.RenderState(entity.HostViewState{PageTitle: "x", Error: entity.LoadErrorTextNetwork})
	assert.Contains(t, out, "error")
	assert.Contains(t, out, entity.LoadErrorTextNetwork)
}

func TestViewRenderer_RenderTrail(t *testing.T) {
	r := styles.NewViewRenderer(styles.NewTheme(""))

	out := r.RenderTrail(entity.Trail{{Title: "首页", Path: "/pages/index/index"}, {Title: "详情"}})
	assert.Contains(t, out, "首页")
	assert.Contains(t, out, "详情")
	assert.Less(t, strings.Index(out, "首页"), strings.Index(out, "详情"))

	assert.Contains(t, r.RenderTrail(nil), "no breadcrumbs")
}

func TestViewRenderer_RenderKeyValuesSorted(t *testing.T) {
	r := styles.NewViewRenderer(styles.NewTheme(""))

	out := r.RenderKeyValues(map[string]string{"width": "40", "height": "30"})
	assert.Less(t, strings.Index(out, "height"), strings.Index(out, "width"))
}

func TestViewRenderer_RenderPreload(t *testing.T) {
	r := styles.NewViewRenderer(styles.NewTheme("#00ff00"))

	out := r.RenderPreload([]images.PreloadResult{
		{URL: "https://a/1.png"},
		{URL: "https://a/2.png", Err: errors.New("status 404")},
	})
	assert.Contains(t, out, "https://a/2.png")
	assert.Contains(t, out, "status 404")
	assert.Contains(t, out, "1 loaded, 1 failed")
}

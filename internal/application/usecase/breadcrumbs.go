package usecase

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/chaoxe/miniapp/internal/domain/entity"
	"github.com/chaoxe/miniapp/internal/domain/url"
)

//go:embed breadcrumbs.yaml
var defaultBreadcrumbs []byte

// Breadcrumbs maps page paths to their navigation trails.
type Breadcrumbs struct {
	mu    sync.RWMutex
	pages map[string]entity.Trail
}

// NewBreadcrumbs returns the built-in page trails.
func NewBreadcrumbs() (*Breadcrumbs, error) {
	return ParseBreadcrumbs(defaultBreadcrumbs)
}

// ParseBreadcrumbs reads trails from a YAML document keyed by page path.
func ParseBreadcrumbs(data []byte) (*Breadcrumbs, error) {
	pages := make(map[string]entity.Trail)
	if err := yaml.Unmarshal(data, &pages); err != nil {
		return nil, fmt.Errorf("parse breadcrumbs: %w", err)
	}
	return &Breadcrumbs{pages: pages}, nil
}

// Get returns a copy of the trail for path. A non-empty customTitle
// replaces the title of the last item. Unknown paths yield an empty trail.
func (b *Breadcrumbs) Get(path, customTitle string) entity.Trail {
	b.mu.RLock()
	trail := b.pages[path]
	b.mu.RUnlock()

	if trail == nil {
		return entity.Trail{}
	}
	return trail.WithTitle(customTitle)
}

// AddPageConfig registers or replaces the trail for path.
func (b *Breadcrumbs) AddPageConfig(path string, trail entity.Trail) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pages[path] = trail.Clone()
}

// Len returns the number of configured pages.
func (b *Breadcrumbs) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.pages)
}

// ForPage builds the trail for a page being loaded. route is the page route
// without its leading slash; the "title" option is URI-decoded and used as
// the custom title.
func (b *Breadcrumbs) ForPage(route string, options map[string]string) entity.Trail {
	path := "/" + strings.TrimPrefix(route, "/")

	var title string
	if raw := options["title"]; raw != "" {
		title = url.DecodeComponent(raw)
	}
	return b.Get(path, title)
}

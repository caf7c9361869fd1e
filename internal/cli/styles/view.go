package styles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chaoxe/miniapp/internal/domain/entity"
	"github.com/chaoxe/miniapp/internal/infrastructure/images"
)

// ViewRenderer renders embedded view state and command results.
type ViewRenderer struct {
	theme *Theme
}

// NewViewRenderer creates a renderer with the given theme.
func NewViewRenderer(theme *Theme) *ViewRenderer {
	return &ViewRenderer{theme: theme}
}

// RenderState renders the host-side state of an embedded view.
func (r *ViewRenderer) RenderState(state entity.HostViewState) string {
	t := r.theme

	status := t.Badge.Render("ready")
	switch {
	case state.HasError():
		status = lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Error).
			Padding(0, 1).
			Render("error")
	case state.Loading:
		status = t.BadgeMuted.Render("loading")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n  %s %s %s\n",
		t.Highlight.Render(IconGlobe),
		t.Title.Render(state.PageTitle),
		status,
	))
	sb.WriteString("  " + t.Subtle.Render(state.CurrentURL) + "\n")
	if state.HasError() {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			t.ErrorStyle.Render(IconWarning),
			t.ErrorStyle.Render(state.Error),
		))
	}
	return sb.String()
}

// RenderTrail renders a breadcrumb trail on one line. The last item is
// highlighted as the current page.
func (r *ViewRenderer) RenderTrail(trail entity.Trail) string {
	t := r.theme
	if len(trail) == 0 {
		return t.Subtle.Render("(no breadcrumbs)")
	}

	sep := " " + t.Subtle.Render(IconCrumb) + " "
	parts := make([]string, len(trail))
	for i, crumb := range trail {
		if i == len(trail)-1 {
			parts[i] = t.Highlight.Render(crumb.Title)
			continue
		}
		parts[i] = t.Normal.Render(crumb.Title)
	}
	return strings.Join(parts, sep)
}

// RenderKeyValues renders pairs as an aligned list, sorted by key.
func (r *ViewRenderer) RenderKeyValues(pairs map[string]string) string {
	keys := make([]string, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString("  " + r.theme.Key.Render(k) + r.theme.Value.Render(pairs[k]) + "\n")
	}
	return sb.String()
}

// RenderPreload renders the outcome of an image preload, one URL per line.
func (r *ViewRenderer) RenderPreload(results []images.PreloadResult) string {
	t := r.theme
	failed := 0

	var sb strings.Builder
	for _, res := range results {
		if res.OK() {
			sb.WriteString(fmt.Sprintf("  %s %s\n", t.SuccessStyle.Render(IconCheck), res.URL))
			continue
		}
		failed++
		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			t.ErrorStyle.Render(IconX),
			res.URL,
			t.Subtle.Render(res.Err.Error()),
		))
	}
	sb.WriteString(t.Subtle.Render(fmt.Sprintf("  %d loaded, %d failed", len(results)-failed, failed)) + "\n")
	return sb.String()
}

// RenderSuccess renders a one-line success message.
func (r *ViewRenderer) RenderSuccess(msg string) string {
	return fmt.Sprintf("  %s %s", r.theme.SuccessStyle.Render(IconCheck), msg)
}

// RenderError renders an error message.
func (r *ViewRenderer) RenderError(err error) string {
	return fmt.Sprintf("  %s %s", r.theme.ErrorStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}

// Package model holds the Bubble Tea models of interactive commands.
package model

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chaoxe/miniapp/internal/cli/styles"
	"github.com/chaoxe/miniapp/internal/domain/entity"
)

const refreshInterval = 200 * time.Millisecond

// ViewSource exposes an embedded view. usecase.EmbeddedView satisfies it.
type ViewSource interface {
	State() entity.HostViewState
	Trail() entity.Trail
}

// LoadFunc loads the previewed page.
type LoadFunc func(ctx context.Context) error

// PreviewModel follows an embedded view live while its page loads.
type PreviewModel struct {
	ctx      context.Context
	view     ViewSource
	load     LoadFunc
	theme    *styles.Theme
	renderer *styles.ViewRenderer
	loading  styles.LoadingModel

	state   entity.HostViewState
	trail   entity.Trail
	loaded  bool
	loadErr error
}

// NewPreviewModel creates a preview of view. load runs once on Init.
func NewPreviewModel(ctx context.Context, theme *styles.Theme, view ViewSource, load LoadFunc) PreviewModel {
	return PreviewModel{
		ctx:      ctx,
		view:     view,
		load:     load,
		theme:    theme,
		renderer: styles.NewViewRenderer(theme),
		loading:  styles.NewLoading(theme, "loading page"),
		state:    view.State(),
		trail:    view.Trail(),
	}
}

// loadDoneMsg is sent when the load function returns.
type loadDoneMsg struct {
	err error
}

// refreshMsg asks the model to re-read the view.
type refreshMsg struct{}

// Init implements tea.Model.
func (m PreviewModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Spinner.Tick, m.runLoad, refresh())
}

func (m PreviewModel) runLoad() tea.Msg {
	if m.load == nil {
		return loadDoneMsg{}
	}
	return loadDoneMsg{err: m.load(m.ctx)}
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

// Update implements tea.Model.
func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case loadDoneMsg:
		m.loaded = true
		m.loadErr = msg.err
		m.state = m.view.State()
		m.trail = m.view.Trail()

	case refreshMsg:
		m.state = m.view.State()
		m.trail = m.view.Trail()
		return m, refresh()

	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.loading.Spinner, cmd = m.loading.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// State returns the last observed view state.
func (m PreviewModel) State() entity.HostViewState {
	return m.state
}

// View implements tea.Model.
func (m PreviewModel) View() string {
	t := m.theme

	var sb strings.Builder
	sb.WriteString(m.renderer.RenderState(m.state))
	sb.WriteString("\n  " + m.renderer.RenderTrail(m.trail) + "\n\n")

	switch {
	case !m.loaded:
		sb.WriteString("  " + m.loading.View() + "\n")
	case m.loadErr != nil:
		sb.WriteString(m.renderer.RenderError(m.loadErr) + "\n")
	}

	sb.WriteString("\n  " + t.Subtle.Render("q quit") + "\n")
	return sb.String()
}

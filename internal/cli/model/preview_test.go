package model

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaoxe/miniapp/internal/cli/styles"
	"github.com/chaoxe/miniapp/internal/domain/entity"
)

type fakeView struct {
	state entity.HostViewState
	trail entity.Trail
}

func (f *fakeView) State() entity.HostViewState { return f.state }
func (f *fakeView) Trail() entity.Trail         { return f.trail }

func newTestPreview(view *fakeView, load LoadFunc) PreviewModel {
	return NewPreviewModel(context.Background(), styles.NewTheme(""), view, load)
}

func TestPreviewModel_LoadDoneRefreshesState(t *testing.T) {
	view := &fakeView{state: entity.NewHostViewState("https://example.org/", "")}
	m := newTestPreview(view, nil)
	assert.Contains(t, m.View(), "loading page")

	view.state = entity.HostViewState{PageTitle: "News", CurrentURL: "https://example.org/"}
	view.trail = entity.Trail{{Title: "首页", Path: "/pages/index/index"}, {Title: "News"}}

	updated, _ := m.Update(m.runLoad())
	pm := updated.(PreviewModel)
	assert.Equal(t, "News", pm.State().PageTitle)
	assert.NotContains(t, pm.View(), "loading page")
	assert.Contains(t, pm.View(), "首页")
}

func TestPreviewModel_LoadErrorIsShown(t *testing.T) {
	view := &fakeView{state: entity.NewHostViewState("https://bad.example/", "")}
	m := newTestPreview(view, func(context.Context) error {
		return errors.New("net::ERR_NAME_NOT_RESOLVED")
	})

	msg := m.runLoad()
	require.IsType(t, loadDoneMsg{}, msg)

	updated, _ := m.Update(msg)
	assert.Contains(t, updated.View(), "ERR_NAME_NOT_RESOLVED")
}

func TestPreviewModel_RefreshReschedules(t *testing.T) {
	view := &fakeView{state: entity.NewHostViewState("https://example.org/", "")}
	m := newTestPreview(view, nil)

	view.state.PageTitle = "Changed"
	updated, cmd := m.Update(refreshMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, "Changed", updated.(PreviewModel).State().PageTitle)
}

func TestPreviewModel_QuitKeys(t *testing.T) {
	m := newTestPreview(&fakeView{}, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

package styles

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chaoxe/miniapp/internal/infrastructure/config"
)

// ConfigRenderer renders config status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderChanges renders the differences between a config file and the
// defaults.
func (r *ConfigRenderer) RenderChanges(path string, changes []config.KeyChange) string {
	t := r.theme
	iconStyle := lipgloss.NewStyle().Foreground(t.Accent)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n  %s Config %s\n", iconStyle.Render(IconConfig), t.Subtle.Render(path)))
	if len(changes) == 0 {
		sb.WriteString(fmt.Sprintf("  %s up to date\n", t.SuccessStyle.Render(IconCheck)))
		return sb.String()
	}

	added, unknown := 0, 0
	for _, c := range changes {
		switch c.Kind {
		case config.KeyAdded:
			added++
			sb.WriteString(fmt.Sprintf("    %s %s %s\n",
				t.SuccessStyle.Render("+"), t.Highlight.Render(c.Key), t.Subtle.Render("= "+c.Value)))
		case config.KeyUnknown:
			unknown++
			sb.WriteString(fmt.Sprintf("    %s %s %s\n",
				t.WarningStyle.Render("?"), t.Normal.Render(c.Key), t.Subtle.Render("= "+c.Value)))
		}
	}
	sb.WriteString(fmt.Sprintf("\n  %s %d new settings available, %d unknown keys\n",
		iconStyle.Render(IconInfo), added, unknown))
	if added > 0 {
		sb.WriteString("  " + t.Subtle.Render("Run 'chaoxe config migrate' to add them.") + "\n")
	}
	return sb.String()
}

// RenderMigrated renders the result of a migration.
func (r *ConfigRenderer) RenderMigrated(path string, changes []config.KeyChange) string {
	t := r.theme
	if len(changes) == 0 {
		return fmt.Sprintf("  %s %s is up to date\n", t.SuccessStyle.Render(IconCheck), filepath.Base(path))
	}

	added := 0
	for _, c := range changes {
		if c.Kind == config.KeyAdded {
			added++
		}
	}
	return fmt.Sprintf("  %s Added %s settings to %s %s\n",
		t.SuccessStyle.Render(IconCheck),
		t.Highlight.Render(fmt.Sprintf("%d", added)),
		filepath.Base(path),
		t.Subtle.Render("(backup: "+filepath.Base(path)+".bak)"),
	)
}

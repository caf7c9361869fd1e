package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/chaoxe/miniapp/internal/cli/styles"
	"github.com/chaoxe/miniapp/internal/domain/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := buildInfo
		if info.GoVersion == "" {
			info.GoVersion = runtime.Version()
		}
		theme := styles.NewTheme("")
		renderer := styles.NewViewRenderer(theme)
		fmt.Fprintf(cmd.OutOrStdout(), "\n  %s %s\n", theme.Highlight.Render("chaoxe"), theme.Normal.Render(info.Version))
		fmt.Fprint(cmd.OutOrStdout(), renderer.RenderKeyValues(map[string]string{
			"commit": info.Commit,
			"built":  info.BuildDate,
			"go":     info.GoVersion,
			"repo":   build.RepoURL(),
		}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

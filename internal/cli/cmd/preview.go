package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chaoxe/miniapp/internal/cli/model"
)

var (
	previewNoTUI  bool
	previewClicks []string
	previewTitle  string
)

var previewCmd = &cobra.Command{
	Use:   "preview <url>",
	Short: "Open a page in a headless browser with the bridge attached",
	Long: `Open <url> in headless Chrome with the page script injected and follow the
embedded view's state live. Load failures are mapped to the same messages
the mini program shows.

Examples:
  chaoxe preview https://example.org/
  chaoxe preview --no-tui --click 'a[href^="https://"]' https://example.org/`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().BoolVar(&previewNoTUI, "no-tui", false, "print the final state instead of the live view")
	previewCmd.Flags().StringArrayVar(&previewClicks, "click", nil, "click the first element matching a CSS selector after loading (repeatable)")
	previewCmd.Flags().StringVar(&previewTitle, "title", "", "initial title of the view")
}

func runPreview(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx := a.Ctx()
	pageURL := args[0]

	host := a.Services.NewHeadlessHost()
	if err := host.Start(ctx); err != nil {
		return err
	}
	defer host.Close()

	view := a.Services.NewEmbeddedView(ctx, pageURL, previewTitle)
	defer view.Close()
	host.SetLifecycle(view)
	if err := view.Attach(host); err != nil {
		return err
	}

	load := func(ctx context.Context) error {
		if err := host.LoadURL(ctx, pageURL); err != nil {
			return err
		}
		for _, selector := range previewClicks {
			if err := host.Click(ctx, selector); err != nil {
				return fmt.Errorf("click %s: %w", selector, err)
			}
		}
		return nil
	}

	if previewNoTUI {
		loadErr := load(ctx)
		out := cmd.OutOrStdout()
		fmt.Fprint(out, a.Renderer.RenderState(view.State()))
		fmt.Fprintln(out, "  "+a.Renderer.RenderTrail(view.Trail()))
		printOpenedPages(cmd, a)
		return loadErr
	}

	m := model.NewPreviewModel(ctx, a.Theme, view, load)
	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout())).Run()
	return err
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/chaoxe/miniapp/internal/cli"
	"github.com/chaoxe/miniapp/internal/domain/entity"
	"github.com/chaoxe/miniapp/internal/infrastructure/bridge"
	"github.com/chaoxe/miniapp/internal/infrastructure/guestsim"
	"github.com/chaoxe/miniapp/internal/logging"
)

var (
	scriptShim     bool
	dispatchURL    string
	dispatchTitle  string
	simulateFile   string
	simulateClicks []string
	simulateTitle  string
	simulateNoHost bool
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Inspect and exercise the page bridge",
}

var bridgeScriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Print the injected page script",
	Long: `Print the script injected into embedded pages, built from the [bridge.script]
configuration. With --shim, print the host object shim used by the headless
host and the simulator instead.`,
	RunE: runBridgeScript,
}

var bridgeSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of bridge messages",
	RunE: func(cmd *cobra.Command, _ []string) error {
		schema, err := bridge.WireSchema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
		return err
	},
}

var bridgeDispatchCmd = &cobra.Command{
	Use:   "dispatch <payload>",
	Short: "Apply a raw bridge payload to a fresh view",
	Long: `Apply one raw payload (a JSON array, as posted by the page script) to a
fresh embedded view and print the resulting state. Use "-" to read the
payload from stdin.

Examples:
  chaoxe bridge dispatch '[{"type":"title","title":"News"}]'
  chaoxe bridge dispatch --url https://example.org/a '[{"type":"navigate","url":"b"}]'`,
	Args: cobra.ExactArgs(1),
	RunE: runBridgeDispatch,
}

var bridgeSimulateCmd = &cobra.Command{
	Use:   "simulate <url>",
	Short: "Run the page script against a page in the simulator",
	Long: `Load a page into the in-process simulator, inject the page script and
print the view state after each step. The page is fetched from <url> unless
--file is given, in which case <url> is only used as the page address.

Examples:
  chaoxe bridge simulate https://example.org/
  chaoxe bridge simulate --file page.html --click 'a.external' https://example.org/`,
	Args: cobra.ExactArgs(1),
	RunE: runBridgeSimulate,
}

func init() {
	rootCmd.AddCommand(bridgeCmd)
	bridgeCmd.AddCommand(bridgeScriptCmd, bridgeSchemaCmd, bridgeDispatchCmd, bridgeSimulateCmd)

	bridgeScriptCmd.Flags().BoolVar(&scriptShim, "shim", false, "print the host object shim")

	bridgeDispatchCmd.Flags().StringVar(&dispatchURL, "url", "https://example.org/", "current URL of the view")
	bridgeDispatchCmd.Flags().StringVar(&dispatchTitle, "title", "", "initial title of the view")

	bridgeSimulateCmd.Flags().StringVarP(&simulateFile, "file", "f", "", "read the page from a local HTML file")
	bridgeSimulateCmd.Flags().StringArrayVar(&simulateClicks, "click", nil, "click the first element matching a CSS selector (repeatable)")
	bridgeSimulateCmd.Flags().StringVar(&simulateTitle, "set-title", "", "change the document title after injection")
	bridgeSimulateCmd.Flags().BoolVar(&simulateNoHost, "no-host", false, "simulate a standalone browser without the host object")
}

func runBridgeScript(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	var script string
	if scriptShim {
		script, err = bridge.HostShim(a.Config.Bridge.Script, bridge.DefaultBindingName)
	} else {
		script, err = bridge.InjectedScript(a.Config.Bridge.Script)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), script)
	return err
}

func runBridgeDispatch(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	payload := []byte(args[0])
	if args[0] == "-" {
		if payload, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("read payload: %w", err)
		}
	}

	ctx := a.Ctx()
	channel := bridge.NewChannel()
	defer channel.Close()

	view := a.Services.NewEmbeddedView(ctx, dispatchURL, dispatchTitle)
	defer view.Close()
	if err := view.Attach(channel); err != nil {
		return err
	}

	if _, _, err := entity.DecodeBatch(payload); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("payload is not a valid batch")
	}
	channel.Publish(payload)

	out := cmd.OutOrStdout()
	fmt.Fprint(out, a.Renderer.RenderState(view.State()))
	fmt.Fprintln(out, "  "+a.Renderer.RenderTrail(view.Trail()))
	printOpenedPages(cmd, a)
	return nil
}

func runBridgeSimulate(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx := a.Ctx()
	pageURL := args[0]

	body, err := openPage(ctx, pageURL, simulateFile)
	if err != nil {
		return err
	}
	defer body.Close()

	opts := []guestsim.Option{guestsim.WithScriptOptions(a.Config.Bridge.Script)}
	if simulateNoHost {
		opts = append(opts, guestsim.WithoutHost())
	}
	doc, err := guestsim.Parse(ctx, pageURL, body, opts...)
	if err != nil {
		return err
	}

	view := a.Services.NewEmbeddedView(ctx, doc.Location(), "")
	defer view.Close()
	if err := view.Attach(doc); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	step := func(label string) {
		fmt.Fprintf(out, "\n%s\n", a.Theme.Subtitle.Render(label))
		fmt.Fprint(out, a.Renderer.RenderState(view.State()))
		fmt.Fprintln(out, "  "+a.Renderer.RenderTrail(view.Trail()))
	}

	if err := doc.Inject(); err != nil {
		return err
	}
	view.LoadFinished()
	step("inject")

	if simulateTitle != "" {
		doc.SetTitle(simulateTitle)
		step("set-title " + simulateTitle)
	}

	for _, selector := range simulateClicks {
		res, err := doc.Click(selector)
		if err != nil {
			fmt.Fprintln(out, a.Renderer.RenderError(err))
			continue
		}
		step(fmt.Sprintf("click %s (default prevented: %t)", selector, res.DefaultPrevented))
	}

	if opened := doc.Opened(); len(opened) > 0 {
		fmt.Fprintf(out, "\n  window.open: %v\n", opened)
	}
	printOpenedPages(cmd, a)
	return nil
}

// openPage returns the page body from file, or fetches pageURL.
func openPage(ctx context.Context, pageURL, file string) (io.ReadCloser, error) {
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open page file: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// printOpenedPages lists pages the bridge pushed onto the page stack.
func printOpenedPages(cmd *cobra.Command, a *cli.App) {
	stack := a.Services.Router.Stack()
	if len(stack) <= 1 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\n%s\n", a.Theme.Subtitle.Render("page stack"))
	for _, page := range stack {
		fmt.Fprintf(out, "  %s\n", page.URL())
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

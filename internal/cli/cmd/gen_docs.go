package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/chaoxe/miniapp/internal/domain/entity"
	"github.com/chaoxe/miniapp/internal/infrastructure/bridge"
	"github.com/chaoxe/miniapp/internal/infrastructure/config"
)

const (
	docsDirPerm  = 0o755
	docsFilePerm = 0o644

	formatMan      = "man"
	formatMarkdown = "markdown"

	bridgeSchemaFile = "bridge-message.schema.json"
	configSchemaFile = "config.schema.json"
	pageScriptFile   = "page-script.js"
	routesFile       = "routes.md"
)

var (
	genDocsOutputDir string
	genDocsFormat    string
	genDocsCommand   string
	genDocsReference bool
)

var genDocsCmd = &cobra.Command{
	Use:   "gen-docs",
	Short: "Generate CLI and bridge documentation",
	Long: `Generate man pages or markdown for the command tree.

Markdown output can also carry the bridge reference used by page and host
authors (--reference, on by default for markdown):
  bridge-message.schema.json  JSON schema of posted bridge messages
  config.schema.json          JSON schema of config.toml
  page-script.js              the injected page script (default options)
  routes.md                   named page routes and tab pages

Man pages go to $XDG_DATA_HOME/man/man1 unless --output is given.`,
	Example: `  chaoxe gen-docs
  chaoxe gen-docs --format markdown --output ./docs
  chaoxe gen-docs --format markdown --command bridge --output ./docs/bridge`,
	Args: cobra.NoArgs,
	RunE: runGenDocs,
}

func init() {
	rootCmd.AddCommand(genDocsCmd)
	genDocsCmd.Flags().StringVarP(&genDocsOutputDir, "output", "o", "", "output directory")
	genDocsCmd.Flags().StringVarP(&genDocsFormat, "format", "f", formatMan, "output format: man, markdown")
	genDocsCmd.Flags().StringVar(&genDocsCommand, "command", "", "document only this command subtree, e.g. \"bridge\" or \"nav\"")
	genDocsCmd.Flags().BoolVar(&genDocsReference, "reference", true, "write the bridge reference files (markdown only)")
}

func runGenDocs(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	target, err := docsTarget(genDocsCommand)
	if err != nil {
		return err
	}

	outputDir := genDocsOutputDir
	if outputDir == "" {
		switch genDocsFormat {
		case formatMan:
			if outputDir, err = config.GetManDir(); err != nil {
				return fmt.Errorf("resolve man directory: %w", err)
			}
		case formatMarkdown:
			outputDir = "docs"
		}
	}
	if err := os.MkdirAll(outputDir, docsDirPerm); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	rootCmd.DisableAutoGenTag = true

	switch genDocsFormat {
	case formatMan:
		header := &doc.GenManHeader{
			Title:   "CHAOXE",
			Section: "1",
			Source:  "chaoxe " + buildInfo.Version,
			Manual:  "chaoxe Manual",
			Date:    func() *time.Time { t := time.Now(); return &t }(),
		}
		if err := doc.GenManTree(target, header, outputDir); err != nil {
			return fmt.Errorf("generate man pages: %w", err)
		}
		return listGenerated(out, outputDir, ".1")
	case formatMarkdown:
		if err := doc.GenMarkdownTree(target, outputDir); err != nil {
			return fmt.Errorf("generate markdown docs: %w", err)
		}
		if genDocsReference {
			if err := writeBridgeReference(outputDir); err != nil {
				return err
			}
		}
		return listGenerated(out, outputDir, ".md", ".json", ".js")
	default:
		return fmt.Errorf("unsupported format %q (use: man, markdown)", genDocsFormat)
	}
}

// docsTarget resolves a space separated command path below the root.
func docsTarget(path string) (*cobra.Command, error) {
	if strings.TrimSpace(path) == "" {
		return rootCmd, nil
	}
	target, rest, err := rootCmd.Find(strings.Fields(path))
	if err != nil || len(rest) > 0 || target == rootCmd {
		return nil, fmt.Errorf("unknown command %q", path)
	}
	return target, nil
}

func writeBridgeReference(dir string) error {
	wire, err := bridge.WireSchema()
	if err != nil {
		return err
	}
	cfgSchema, err := config.Schema()
	if err != nil {
		return err
	}
	script, err := bridge.InjectedScript(bridge.DefaultScriptOptions())
	if err != nil {
		return err
	}

	files := map[string][]byte{
		bridgeSchemaFile: wire,
		configSchemaFile: cfgSchema,
		pageScriptFile:   []byte(script),
		routesFile:       []byte(routesMarkdown()),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, docsFilePerm); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

func routesMarkdown() string {
	routes := entity.DefaultRoutes()
	tabs := make(map[entity.RouteName]bool)
	for _, name := range entity.DefaultTabRoutes() {
		tabs[name] = true
	}
	names := make([]string, 0, len(routes))
	for name := range routes {
		names = append(names, string(name))
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("# Page routes\n\n| Name | Path | Tab |\n|---|---|---|\n")
	for _, name := range names {
		tab := ""
		if tabs[entity.RouteName(name)] {
			tab = "yes"
		}
		fmt.Fprintf(&b, "| %s | `%s` | %s |\n", name, routes[entity.RouteName(name)], tab)
	}
	return b.String()
}

func listGenerated(out io.Writer, dir string, exts ...string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}
	fmt.Fprintf(out, "Generated docs in %s\n", dir)
	for _, e := range entries {
		for _, ext := range exts {
			if filepath.Ext(e.Name()) == ext {
				fmt.Fprintf(out, "  - %s\n", e.Name())
				break
			}
		}
	}
	return nil
}

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/chaoxe/miniapp/internal/domain/entity"
)

var navTitle string

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Inspect routes and breadcrumbs",
}

var navRoutesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the configured page routes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		nav := a.Services.Navigation
		names := make([]string, 0, len(entity.DefaultRoutes()))
		for name := range entity.DefaultRoutes() {
			names = append(names, string(name))
		}
		for name := range a.Config.Navigation.Routes {
			if _, ok := entity.DefaultRoutes()[entity.RouteName(name)]; !ok {
				names = append(names, name)
			}
		}
		sort.Strings(names)

		pairs := make(map[string]string, len(names))
		for _, name := range names {
			path, _ := nav.Route(entity.RouteName(name))
			if nav.IsTabPage(a.Ctx(), path) {
				path += " (tab)"
			}
			pairs[name] = path
		}
		fmt.Fprint(cmd.OutOrStdout(), a.Renderer.RenderKeyValues(pairs))
		return nil
	},
}

var navBreadcrumbsCmd = &cobra.Command{
	Use:   "breadcrumbs <route> [key=value]...",
	Short: "Print the breadcrumb trail of a page",
	Example: `  chaoxe nav breadcrumbs pages/service/service
  chaoxe nav breadcrumbs pages/service/service action=detail
  chaoxe nav breadcrumbs --title News pages/webview/webview`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		options, err := parsePairs(args[1:])
		if err != nil {
			return err
		}
		if navTitle != "" {
			options["title"] = navTitle
		}
		trail := a.Services.Breadcrumbs.ForPage(args[0], options)
		fmt.Fprintln(cmd.OutOrStdout(), a.Renderer.RenderTrail(trail))
		return nil
	},
}

var navGoCmd = &cobra.Command{
	Use:   "go <route> [key=value]...",
	Short: "Navigate the in-memory page stack and print it",
	Long: `Push a page (a route name such as "service" or a page path) onto the
in-memory page stack and print the stack.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		query, err := parsePairs(args[1:])
		if err != nil {
			return err
		}
		if err := a.Services.Navigation.NavigateTo(a.Ctx(), args[0], query); err != nil {
			return err
		}
		for _, page := range a.Services.Router.Stack() {
			fmt.Fprintln(cmd.OutOrStdout(), page.URL())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(navCmd)
	navCmd.AddCommand(navRoutesCmd, navBreadcrumbsCmd, navGoCmd)
	navBreadcrumbsCmd.Flags().StringVar(&navTitle, "title", "", "custom title for the last breadcrumb")
}

package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chaoxe/miniapp/internal/infrastructure/api"
)

var (
	apiSearchCategory string
	apiSearchLimit    int
	apiUploadForm     map[string]string
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Call the chaoxe REST API",
}

var apiGetCmd = &cobra.Command{
	Use:   "get <path> [key=value]...",
	Short: "GET an API path and print the envelope",
	Example: `  chaoxe api get /api/v1/banners/ limit=3
  chaoxe api get /api/v1/services/search q=water`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		params, err := parseParams(args[1:])
		if err != nil {
			return err
		}
		env, err := a.Services.API.Get(a.Ctx(), args[0], params)
		if err != nil {
			return err
		}
		return printJSON(cmd, env)
	},
}

var apiPostCmd = &cobra.Command{
	Use:   "post <path> [json]",
	Short: "POST a JSON body to an API path",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		var body any
		if len(args) == 2 {
			if err := json.Unmarshal([]byte(args[1]), &body); err != nil {
				return fmt.Errorf("parse body: %w", err)
			}
		}
		env, err := a.Services.API.Post(a.Ctx(), args[0], body)
		if err != nil {
			return err
		}
		return printJSON(cmd, env)
	},
}

var apiSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search services",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		env, err := a.Services.API.SearchServices(a.Ctx(), args[0], apiSearchCategory, apiSearchLimit)
		if err != nil {
			return err
		}
		return printJSON(cmd, env)
	},
}

var apiHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the API health endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		env, err := a.Services.API.SystemHealth(a.Ctx())
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), a.Renderer.RenderError(err))
			return err
		}
		if !env.Success {
			return fmt.Errorf("api unhealthy: %s", env.Message)
		}
		fmt.Fprintln(cmd.OutOrStdout(), a.Renderer.RenderSuccess(a.Services.API.BaseURL()+" is healthy"))
		return nil
	},
}

var apiUploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload one or more files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			env, err := a.Services.API.UploadFile(a.Ctx(), args[0], apiUploadForm)
			if err != nil {
				return err
			}
			return printJSON(cmd, env)
		}
		envs, err := a.Services.API.UploadFiles(a.Ctx(), args, apiUploadForm)
		if err != nil {
			return err
		}
		return printJSON(cmd, envs)
	},
}

func init() {
	rootCmd.AddCommand(apiCmd)
	apiCmd.AddCommand(apiGetCmd, apiPostCmd, apiSearchCmd, apiHealthCmd, apiUploadCmd)

	apiSearchCmd.Flags().StringVar(&apiSearchCategory, "category", "", "service category")
	apiSearchCmd.Flags().IntVar(&apiSearchLimit, "limit", 0, "maximum number of results")

	apiUploadCmd.Flags().StringToStringVar(&apiUploadForm, "form", nil, "extra form fields (key=value,...)")
}

// parsePairs turns key=value arguments into a map.
func parsePairs(args []string) (map[string]string, error) {
	pairs := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", arg)
		}
		pairs[key] = value
	}
	return pairs, nil
}

// parseParams turns key=value arguments into query parameters.
func parseParams(args []string) (api.Params, error) {
	pairs, err := parsePairs(args)
	if err != nil {
		return nil, err
	}
	params := make(api.Params, len(pairs))
	for k, v := range pairs {
		params[k] = v
	}
	return params, nil
}

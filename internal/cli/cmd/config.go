package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chaoxe/miniapp/internal/cli/styles"
	"github.com/chaoxe/miniapp/internal/infrastructure/config"
)

var configDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Inspect the configuration. The config file is created with defaults on
first run, next to a JSON schema editors can use for completion.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), a.Manager.GetConfigFile())
		return err
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		cfg := a.Config
		if configDefaults {
			cfg = config.DefaultConfig()
		}
		data, err := config.EncodeTOML(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := config.Schema()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Compare the config file with the built-in defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		changes, err := a.Manager.Diff()
		if err != nil {
			return err
		}
		renderer := styles.NewConfigRenderer(a.Theme)
		fmt.Fprint(cmd.OutOrStdout(), renderer.RenderChanges(a.Manager.GetConfigFile(), changes))
		return nil
	},
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Add missing default settings to the config file",
	Long: `Rewrite the config file with every missing default added. Values already
set are kept, unknown keys are dropped, and the previous file is saved with
a .bak suffix.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := requireApp()
		if err != nil {
			return err
		}
		changes, err := a.Manager.Migrate()
		if err != nil {
			return err
		}
		renderer := styles.NewConfigRenderer(a.Theme)
		fmt.Fprint(cmd.OutOrStdout(), renderer.RenderMigrated(a.Manager.GetConfigFile(), changes))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configShowCmd, configSchemaCmd, configCheckCmd, configMigrateCmd)
	configShowCmd.Flags().BoolVar(&configDefaults, "defaults", false, "print the built-in defaults instead")
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/webshell/internal/cli/styles"
	"github.com/bnema/webshell/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `Show where the configuration lives and the effective values.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	Long: `Print the configuration after defaults, environment overrides and
path resolution were applied.`,
	RunE: runConfigShow,
}

var configSchemaWrite bool

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of config.toml",
	Long: `Print the JSON schema describing config.toml. With --write it is saved
as config.schema.json next to the config file for editor completion.`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
	configSchemaCmd.Flags().BoolVarP(&configSchemaWrite, "write", "w", false, "write config.schema.json instead of printing")
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	path := app.ConfigFile
	if path == "" {
		var err error
		if path, err = config.GetConfigFile(); err != nil {
			return err
		}
	}
	fmt.Println(path)
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if app.ConfigErr != nil {
		fmt.Fprintln(os.Stderr, app.Theme.RenderError(app.ConfigErr))
		fmt.Fprintln(os.Stderr, app.Theme.Subtle.Render(styles.IconConfig+" showing defaults"))
	}
	return config.Encode(os.Stdout, app.Config)
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	if !configSchemaWrite {
		return config.WriteSchema(os.Stdout)
	}
	path, err := config.GenerateSchemaFile()
	if err != nil {
		fmt.Println(app.Theme.RenderError(err))
		return err
	}
	fmt.Println(app.Theme.RenderSuccess("wrote " + path))
	return nil
}

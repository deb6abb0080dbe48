package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	configServer   string
	configLogLevel string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the gpucatalog configuration file",
}

var configCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the configuration file",
	Long: `Create the configuration file at the default location, or at the path given with --config.

Example:
  gpucatalog config create --server-url localhost:8000`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := &Config{
			Version:   ConfigVersion,
			ServerURL: MorphServer(configServer),
			LogLevel:  configLogLevel,
		}
		if err := cfg.ValidateConfig(); err != nil {
			return err
		}
		if err := cfg.WriteConfig(configFile); err != nil {
			return err
		}
		if jsonOutput {
			printResult(cmd.OutOrStdout(), map[string]string{"file": configFile})
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", configFile)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := LoadConfig(configFile); err != nil {
			return err
		}
		if jsonOutput {
			printResult(cmd.OutOrStdout(), GetConfig())
			return nil
		}
		GetConfig().Print(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configCreateCmd, configShowCmd)

	configCreateCmd.Flags().StringVar(&configServer, "server-url", "", "Catalog service URL (required)")
	configCreateCmd.Flags().StringVar(&configLogLevel, "level", "", "Log level")
	configCreateCmd.MarkFlagRequired("server-url")
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gpucatalog/gpucatalog/internal/common/logtrace"
)

const cliVersion = "v0.1.0"

var (
	// Global flags
	jsonOutput     bool
	configFile     string
	serverOverride string
	logLevel       string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gpucatalog",
	Short: "gpucatalog - administer the GPU catalog",
	Long: `gpucatalog is a command line interface for administering a catalog of graphics cards.
It lists, searches, filters and sorts devices, and creates, edits and deletes them together
with their specification and price. Run "gpucatalog shell" for an interactive session.`,
	PersistentPreRunE: preRunHandlePersistents,
}

func init() {
	// Set up persistent flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to configuration file to override default")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVarP(&serverOverride, "server", "s", "", "Catalog service URL, overrides the config file")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", "", "Log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newVersionCmd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true // Prevent Cobra from printing the error
	rootCmd.SilenceUsage = true  // Prevent Cobra from printing usage on error

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if jsonOutput {
			kv := map[string]string{
				"error": err.Error(),
			}
			printJSON(os.Stdout, kv)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func preRunHandlePersistents(cmd *cobra.Command, args []string) error {
	// if a config file is provided, load config from config file
	if configFile == "" {
		var err error
		configFile, err = GetDefaultConfigPath()
		if err != nil {
			return err
		}
	}

	if !isConfigCommand(cmd) && cmd.Name() != "version" {
		if err := LoadConfig(configFile); err != nil {
			notFound := errors.Is(err, os.ErrNotExist)
			switch {
			case notFound && serverOverride != "":
				// a server given on the command line is enough to run
				config = &Config{Version: ConfigVersion}
			case notFound:
				return errors.New("gpucatalog config file not found. Configure gpucatalog with \"gpucatalog config create\" first")
			default:
				return fmt.Errorf("unable to load config file: %w", err)
			}
		}
		if serverOverride != "" {
			config.ServerURL = MorphServer(serverOverride)
		}
	}

	level := logLevel
	if level == "" && config != nil {
		level = config.LogLevel
	}
	if level == "" {
		level = "warn"
	}
	logtrace.InitLogger(level, true)
	return nil
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of gpucatalog",
		Run: func(cmd *cobra.Command, args []string) {
			if jsonOutput {
				kv := map[string]string{
					"version": cliVersion,
				}
				printJSON(cmd.OutOrStdout(), kv)
			} else {
				cmd.Println("gpucatalog " + cliVersion)
			}
		},
	}
}

// printJSON prints the given value as indented JSON
func printJSON(w io.Writer, data any) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintln(w, string(jsonData))
}

// printResult wraps a value in the {"result":1,"value":...} envelope used for
// all successful JSON output.
func printResult(w io.Writer, value any) {
	printJSON(w, map[string]any{
		"result": 1,
		"value":  value,
	})
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gpucatalog/gpucatalog/internal/admin/view"
	"github.com/gpucatalog/gpucatalog/pkg/types"
)

var (
	// List command flags
	listSearch       string
	listManufacturer string
	listMemoryType   string
	listSort         string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List devices",
	Long: `List devices, optionally searched, filtered and sorted.
The search term matches device or manufacturer names. The sort token is <field>_<direction>
where field is one of price, power, resolution, clock, bus, memory, year and direction is asc or desc.

Examples:
  gpucatalog list
  gpucatalog list --search rtx
  gpucatalog list --manufacturer NVIDIA --memory-type GDDR6X
  gpucatalog list --sort price_asc`,
	Args: cobra.NoArgs,
	RunE: listDevices,
}

func listDevices(cmd *cobra.Command, args []string) error {
	if err := validateSort(listSort); err != nil {
		return err
	}
	if listMemoryType != "" && !types.MemoryType(listMemoryType).IsValid() {
		return fmt.Errorf("unknown memory type %q", listMemoryType)
	}

	ctx := cmd.Context()
	app := newApp(cmd, nil, nil)
	if err := app.Start(ctx); err != nil {
		return err
	}

	c := view.Criteria{
		Search:     listSearch,
		MemoryType: listMemoryType,
		Sort:       listSort,
	}
	if listManufacturer != "" {
		id, err := resolveManufacturer(app.Manufacturers(), listManufacturer)
		if err != nil {
			return err
		}
		c.ManufacturerID = strconv.FormatInt(id, 10)
	}
	app.SetCriteria(c)

	devices := app.View()
	if jsonOutput {
		printResult(cmd.OutOrStdout(), devices)
		return nil
	}
	if len(devices) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No devices")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderDevices(devices))
	return nil
}

var manufacturersCmd = &cobra.Command{
	Use:   "manufacturers",
	Short: "List manufacturers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp(cmd, nil, nil)
		if err := app.LoadManufacturers(cmd.Context()); err != nil {
			return err
		}
		if jsonOutput {
			printResult(cmd.OutOrStdout(), app.Manufacturers())
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderManufacturers(app.Manufacturers()))
		return nil
	},
}

var memoryTypesCmd = &cobra.Command{
	Use:   "memory-types",
	Short: "List the supported memory types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		memoryTypes := types.MemoryTypes()
		if jsonOutput {
			printResult(cmd.OutOrStdout(), memoryTypes)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", cases.Title(language.English).String("memory types"))
		for _, m := range memoryTypes {
			fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", m)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd, manufacturersCmd, memoryTypesCmd)

	// Add flags
	listCmd.Flags().StringVarP(&listSearch, "search", "q", "", "Search term matched against device and manufacturer names")
	listCmd.Flags().StringVarP(&listManufacturer, "manufacturer", "m", "", "Manufacturer id or name")
	listCmd.Flags().StringVarP(&listMemoryType, "memory-type", "t", "", "Memory type, e.g. GDDR6X")
	listCmd.Flags().StringVarP(&listSort, "sort", "o", "", "Sort token, e.g. price_asc or year_desc")
}

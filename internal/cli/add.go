package cli

import (
	"github.com/spf13/cobra"

	"github.com/gpucatalog/gpucatalog/internal/admin"
)

var (
	addFlags       formFlags
	addInteractive bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a device with its specification and price",
	Long: `Add a device. The device is created first, then its specification and price.
The price is dated today.

Examples:
  gpucatalog add --name "GeForce RTX 4080" --manufacturer NVIDIA --year 2022 \
    --memory-size 16 --memory-type GDDR6X --bus-width 256 --base-clock 2205 \
    --max-resolution 7680x4320 --psu 750 --price 1199
  gpucatalog add -i`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		app := newApp(cmd, nil, nil)
		if err := app.LoadManufacturers(ctx); err != nil {
			return err
		}

		var input admin.FormInput
		if err := addFlags.apply(cmd, &input, app.Manufacturers()); err != nil {
			return err
		}
		if addInteractive {
			var err error
			if input, err = promptForm(newLineReader(cmd), input, app.Manufacturers()); err != nil {
				return err
			}
		}

		app.OpenAdd()
		if err := app.Submit(ctx, input); err != nil {
			return err
		}
		return printSubmitted(cmd, app, admin.MsgDeviceAdded)
	},
}

// printSubmitted reports a successful write in JSON mode; the notifier has
// already printed the text notice.
func printSubmitted(cmd *cobra.Command, app *admin.App, msg string) error {
	if jsonOutput {
		printResult(cmd.OutOrStdout(), map[string]any{
			"message": msg,
			"devices": len(app.Devices()),
		})
	}
	return nil
}

func init() {
	rootCmd.AddCommand(addCmd)
	addFlags.register(addCmd)
	addCmd.Flags().BoolVarP(&addInteractive, "interactive", "i", false, "Prompt for each field")
}

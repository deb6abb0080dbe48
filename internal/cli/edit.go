package cli

import (
	"github.com/spf13/cobra"

	"github.com/gpucatalog/gpucatalog/internal/admin"
)

var (
	editFlags       formFlags
	editInteractive bool
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a device, its specification and its price",
	Long: `Edit a device. The form is prefilled from the device and only the given flags change.
A missing specification or price is created instead of updated.

Examples:
  gpucatalog edit 12 --price 999
  gpucatalog edit 12 -i`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		app := newApp(cmd, nil, nil)
		if err := app.LoadManufacturers(ctx); err != nil {
			return err
		}

		input, err := app.RequestEdit(ctx, id)
		if err != nil {
			return err
		}
		if err := editFlags.apply(cmd, &input, app.Manufacturers()); err != nil {
			return err
		}
		if editInteractive {
			if input, err = promptForm(newLineReader(cmd), input, app.Manufacturers()); err != nil {
				return err
			}
		}

		if err := app.Submit(ctx, input); err != nil {
			return err
		}
		return printSubmitted(cmd, app, admin.MsgDeviceUpdated)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editFlags.register(editCmd)
	editCmd.Flags().BoolVarP(&editInteractive, "interactive", "i", false, "Prompt for each field")
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gpucatalog/gpucatalog/internal/admin"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a device",
	Long: `Delete a device together with its specifications and prices.
The command asks for confirmation unless --yes is given.

Example:
  gpucatalog delete 12
  gpucatalog delete 12 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: deleteDevice,
}

func deleteDevice(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	confirmer := &promptConfirmer{in: newLineReader(cmd), assumeYes: deleteYes}
	app := newApp(cmd, nil, confirmer)
	err = app.RequestDelete(cmd.Context(), id)
	if errors.Is(err, admin.ErrDeleteCancelled) {
		fmt.Fprintln(cmd.OutOrStdout(), "Delete cancelled")
		return nil
	}
	if err != nil {
		return err
	}
	if jsonOutput {
		printResult(cmd.OutOrStdout(), map[string]any{"message": admin.MsgDeviceDeleted, "id": id})
	}
	return nil
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking for confirmation")
}

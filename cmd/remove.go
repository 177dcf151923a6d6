package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/lockbox-sh/lockbox/internal/audit"
	kerrors "github.com/lockbox-sh/lockbox/internal/errors"
	"github.com/lockbox-sh/lockbox/internal/ui"
)

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Removes a stored secret",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		Logger.Infof("Starting remove command for %s", name)

		spinner, cleanup := startSpinner("Removing secret...")
		defer cleanup()

		e, err := openEnv(nil)
		if errors.Is(err, kerrors.ErrNotInitialized) {
			spinner.FinalMSG = notInitializedMessage()
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open lockbox: %v", err)
		}

		err = e.store.DeleteSecret(name)
		switch {
		case err == nil:
			audit.Log(audit.Entry{Operation: "remove", Name: name})
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Secret " + ui.Highlight.Sprint(name) + " removed"
			return nil
		case errors.Is(err, kerrors.ErrInvalidName):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Invalid secret name " + ui.Highlight.Sprint(name)
			return nil
		case errors.Is(err, kerrors.ErrNotFound):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " No secret named " + ui.Highlight.Sprint(name)
			return nil
		default:
			return Logger.ErrorfAndReturn("Failed to remove secret: %v", err)
		}
	},
}

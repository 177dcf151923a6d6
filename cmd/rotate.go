package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lockbox-sh/lockbox/internal/audit"
	kerrors "github.com/lockbox-sh/lockbox/internal/errors"
	"github.com/lockbox-sh/lockbox/internal/protect"
	"github.com/lockbox-sh/lockbox/internal/ui"
)

var rotateCmd = &cobra.Command{
	Use:   "rotate",
	Short: "Re-encrypts every secret under a fresh master key",
	Long: `Generates a fresh master key and re-encrypts every stored secret
under it. All records are staged in memory first; the new key is
persisted before anything is written back, so a failure leaves the
store readable under the old key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting rotate command")
		spinner, cleanup := startSpinner("Rotating master key...")
		defer cleanup()

		e, err := openEnv(nil)
		if errors.Is(err, kerrors.ErrNotInitialized) {
			spinner.FinalMSG = notInitializedMessage()
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open lockbox: %v", err)
		}

		Logger.Debugf("Generating replacement master key")
		newKey, err := protect.GenerateMasterKey()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to generate master key: %v", err)
		}

		next, err := protect.NewSecretbox(newKey, e.identity)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to derive sealing key: %v", err)
		}

		count, err := e.store.Rotate(next, func() error {
			Logger.Debugf("Persisting replacement master key")
			return e.source.Save(newKey)
		})
		if errors.Is(err, kerrors.ErrDecryptFailed) {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Rotation aborted: " + err.Error() + "\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("lockbox status") + " to find unreadable records"
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to rotate secrets: %v", err)
		}

		audit.Log(audit.Entry{Operation: "rotate", Count: count})

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Master key rotated " +
			ui.Muted.Sprint(fmt.Sprintf("%d secrets re-encrypted", count))
		return nil
	},
}

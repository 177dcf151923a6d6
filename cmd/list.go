package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	kerrors "github.com/lockbox-sh/lockbox/internal/errors"
	"github.com/lockbox-sh/lockbox/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists stored secret names",
	Long:  `Lists the names of all stored secrets. Values are never decrypted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")

		e, err := openEnv(nil)
		if errors.Is(err, kerrors.ErrNotInitialized) {
			fmt.Fprintln(cmd.ErrOrStderr(), notInitializedMessage())
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open lockbox: %v", err)
		}

		names, err := e.store.ListSecrets()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to list secrets: %v", err)
		}

		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Sprint("no secrets stored"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Info.Sprint("→")+" Store one with "+ui.Code.Sprint("lockbox put <name>"))
			return nil
		}

		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

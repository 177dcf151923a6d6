package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lockbox-sh/lockbox/internal/audit"
	kerrors "github.com/lockbox-sh/lockbox/internal/errors"
	"github.com/lockbox-sh/lockbox/internal/ui"
)

var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Decrypts and prints a stored secret",
	Long: `Decrypts the secret stored under the given name and prints it to
stdout. Nothing else is written to stdout, so the output is safe to
pipe or capture in scripts.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		Logger.Infof("Starting get command for %s", name)

		e, err := openEnv(nil)
		if errors.Is(err, kerrors.ErrNotInitialized) {
			fmt.Fprintln(cmd.ErrOrStderr(), notInitializedMessage())
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open lockbox: %v", err)
		}

		content, err := e.store.GetSecret(name)
		switch {
		case err == nil:
			audit.Log(audit.Entry{Operation: "get", Name: name})
			fmt.Fprintln(cmd.OutOrStdout(), content)
			return nil
		case errors.Is(err, kerrors.ErrInvalidName):
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Error.Sprint("✗")+" Invalid secret name "+ui.Highlight.Sprint(name))
			return nil
		case errors.Is(err, kerrors.ErrNotFound):
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Error.Sprint("✗")+" No secret named "+ui.Highlight.Sprint(name)+"\n"+
				ui.Info.Sprint("→")+" See what is stored with "+ui.Code.Sprint("lockbox list"))
			return nil
		case errors.Is(err, kerrors.ErrDecryptFailed):
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Error.Sprint("✗")+" Secret "+ui.Highlight.Sprint(name)+" could not be decrypted\n"+
				ui.Info.Sprint("→")+" It was stored by a different user, machine, or installation, or the record is corrupt")
			return nil
		default:
			return Logger.ErrorfAndReturn("Failed to read secret: %v", err)
		}
	},
}

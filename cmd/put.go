package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lockbox-sh/lockbox/internal/audit"
	kerrors "github.com/lockbox-sh/lockbox/internal/errors"
	"github.com/lockbox-sh/lockbox/internal/ui"
)

var (
	putForce bool
	putValue string
)

func init() {
	putCmd.Flags().BoolVarP(&putForce, "force", "f", false, "overwrite an existing secret without confirmation")
	putCmd.Flags().StringVar(&putValue, "value", "", "secret value (prefer the hidden prompt or stdin; this lands in shell history)")
}

// resetPutCommandState resets the put command's global state for testing.
func resetPutCommandState() {
	putForce = false
	putValue = ""
}

var putCmd = &cobra.Command{
	Use:   "put <name>",
	Short: "Encrypts and stores a named secret",
	Long: `Encrypts a secret value with your user and machine bound key and
stores it under the given name. The value is read from --value, from
stdin when piped, or from a hidden terminal prompt.

Names must start with a letter or underscore and contain only letters,
digits, and underscores.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		Logger.Infof("Starting put command for %s", name)

		content, err := readSecretValue(name)
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to read secret value: %v", err)
		}

		spinner, cleanup := startSpinner("Storing secret...")
		defer cleanup()

		confirm := func(name string) bool {
			spinner.Stop()
			granted := promptYesNo("Secret " + ui.Highlight.Sprint(name) + " already exists. Overwrite?")
			spinner.Restart()
			return granted
		}

		e, err := openEnv(confirm)
		if errors.Is(err, kerrors.ErrNotInitialized) {
			spinner.FinalMSG = notInitializedMessage()
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open lockbox: %v", err)
		}

		_, err = e.store.PutSecret(name, content, putForce)
		switch {
		case err == nil:
			audit.Log(audit.Entry{Operation: "put", Name: name, Overwrite: putForce})
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Secret " + ui.Highlight.Sprint(name) + " stored"
			return nil
		case errors.Is(err, kerrors.ErrInvalidName):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Invalid secret name " + ui.Highlight.Sprint(name) + "\n" +
				ui.Info.Sprint("→") + " Names must match " + ui.Code.Sprint("[A-Za-z_][A-Za-z0-9_]*")
			return nil
		case errors.Is(err, kerrors.ErrEmptyContent):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Secret value must not be empty"
			return nil
		case errors.Is(err, kerrors.ErrDeclined):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Secret " + ui.Highlight.Sprint(name) + " already exists and was left unchanged\n" +
				ui.Info.Sprint("→") + " To replace it, run " + ui.Code.Sprint("lockbox put "+name+" --force")
			return nil
		default:
			return Logger.ErrorfAndReturn("Failed to store secret: %v", err)
		}
	},
}

// readSecretValue resolves the secret value from --value, piped stdin,
// or a hidden terminal prompt, in that order.
func readSecretValue(name string) (string, error) {
	if putValue != "" {
		Logger.Warnf("Reading secret value from the %s flag", ui.Flag.Sprint("--value"))
		return putValue, nil
	}

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Print("Enter value for " + ui.Highlight.Sprint(name) + ": ")
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		content := string(raw)
		for i := range raw {
			raw[i] = 0
		}
		return content, nil
	}

	Logger.Debugf("Reading secret value from stdin")
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

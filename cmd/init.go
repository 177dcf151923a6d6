package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/lockbox-sh/lockbox/internal/audit"
	"github.com/lockbox-sh/lockbox/internal/configs"
	"github.com/lockbox-sh/lockbox/internal/protect"
	"github.com/lockbox-sh/lockbox/internal/ui"
)

var initForce bool

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "replace an existing master key")
}

// resetInitCommandState resets the init command's global state for testing.
func resetInitCommandState() {
	initForce = false
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Provisions your master key and configuration area",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		spinner, cleanup := startSpinner("Initializing lockbox...")
		defer cleanup()

		Logger.Debugf("Ensuring user config")
		if _, err := configs.EnsureUserConfig(); err != nil {
			return Logger.ErrorfAndReturn("Failed to ensure user config: %v", err)
		}

		source := masterKeySource()
		if source.Exists() {
			if !initForce {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " Lockbox is already initialized\n" +
					ui.Info.Sprint("→") + " To replace the master key, run " + ui.Code.Sprint("lockbox init --force")
				return nil
			}
			Logger.Infof("Force flag set, replacing existing master key")
			spinner.Stop()
			Logger.WarnfUser("Replacing the master key makes existing secrets unreadable - use " + ui.Code.Sprint("lockbox rotate") + " to keep them")
			spinner.Restart()
		}

		Logger.Debugf("Generating master key")
		key, err := protect.GenerateMasterKey()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to generate master key: %v", err)
		}

		Logger.Debugf("Saving master key")
		if err := source.Save(key); err != nil {
			return Logger.ErrorfAndReturn("Failed to save master key: %v", err)
		}

		audit.Log(audit.Entry{Operation: "init"})

		spinner.Stop()
		fmt.Println()
		banner := figure.NewColorFigure("lockbox", "alligator2", "green", true)
		banner.Print()
		fmt.Println()

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Lockbox initialized\n" +
			ui.Info.Sprint("→") + " Store your first secret with " + ui.Code.Sprint("lockbox put <name>")
		return nil
	},
}

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lockbox-sh/lockbox/internal/audit"
	"github.com/lockbox-sh/lockbox/internal/configs"
	kerrors "github.com/lockbox-sh/lockbox/internal/errors"
	"github.com/lockbox-sh/lockbox/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Reports the health of your lockbox",
	Long: `Checks the configuration area, master key, and secret store, and
verifies that every stored record can still be decrypted by the current
user on this machine. Values are decrypted transiently and never
printed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Lockbox status")
		fmt.Fprintln(out)

		// Config area.
		configPath := configs.UserLockboxSettings.UserConfigPath
		if _, err := os.Stat(configPath); err != nil {
			fmt.Fprintln(out, ui.Error.Sprint("✗")+" Config area missing "+ui.Path.Sprint(configPath))
		} else {
			fmt.Fprintln(out, ui.Success.Sprint("✓")+" Config area "+ui.Path.Sprint(configPath))
		}

		// Install identity.
		config, err := configs.LoadUserConfig()
		if err != nil || config.User.InstallID == "" {
			fmt.Fprintln(out, ui.Error.Sprint("✗")+" No install identity")
		} else {
			fmt.Fprintln(out, ui.Success.Sprint("✓")+" Install identity "+ui.Muted.Sprint(config.User.InstallID))
		}

		// Master key and store.
		e, err := openEnv(nil)
		if errors.Is(err, kerrors.ErrNotInitialized) {
			fmt.Fprintln(out, ui.Error.Sprint("✗")+" No master key")
			fmt.Fprintln(out)
			fmt.Fprintln(out, ui.Info.Sprint("→")+" Run "+ui.Code.Sprint("lockbox init")+" to get started")
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open lockbox: %v", err)
		}
		fmt.Fprintln(out, ui.Success.Sprint("✓")+" Master key available")

		names, err := e.store.ListSecrets()
		if err != nil {
			fmt.Fprintln(out, ui.Error.Sprint("✗")+" Secret store unreadable: "+err.Error())
			return nil
		}
		fmt.Fprintln(out, ui.Success.Sprint("✓")+" Secret store "+ui.Muted.Sprint(fmt.Sprintf("%d records", len(names))))

		// Decryption check. Values are dropped immediately; GetSecret
		// wipes its transient buffer.
		unreadable := 0
		for _, name := range names {
			if _, err := e.store.GetSecret(name); err != nil {
				unreadable++
				fmt.Fprintln(out, ui.Error.Sprint("✗")+" Cannot decrypt "+ui.Highlight.Sprint(name))
			}
		}
		if len(names) > 0 && unreadable == 0 {
			fmt.Fprintln(out, ui.Success.Sprint("✓")+" All records decrypt under the current identity")
		}

		// Audit trail.
		entries, err := audit.ReadEntries()
		if err != nil {
			fmt.Fprintln(out, ui.Warning.Sprint("⚠")+" Audit log unreadable: "+err.Error())
		} else {
			fmt.Fprintln(out, ui.Success.Sprint("✓")+" Audit trail "+ui.Muted.Sprint(fmt.Sprintf("%d entries", len(entries))))
		}

		return nil
	},
}

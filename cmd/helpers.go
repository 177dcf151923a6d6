package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"

	"github.com/lockbox-sh/lockbox/internal/configs"
	kerrors "github.com/lockbox-sh/lockbox/internal/errors"
	"github.com/lockbox-sh/lockbox/internal/kvstore"
	"github.com/lockbox-sh/lockbox/internal/protect"
	"github.com/lockbox-sh/lockbox/internal/ui"
	"github.com/lockbox-sh/lockbox/internal/vault"
)

// startSpinner creates and starts a spinner with the given message when not in verbose or debug mode.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup
// function calls ui.EnsureNewline() on the final message before
// printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// env bundles everything a command needs to operate on the vault.
type env struct {
	store    *vault.Store
	source   *protect.KeySource
	identity protect.Identity
}

// masterKeySource returns the key source for the current user.
func masterKeySource() *protect.KeySource {
	return &protect.KeySource{
		ServiceName:    "lockbox",
		FallbackPath:   configs.KeyFilePath(),
		DisableKeyring: os.Getenv("LOCKBOX_NO_KEYRING") != "",
	}
}

// openEnv builds the vault from the user's config, master key, and
// secret store. Returns ErrNotInitialized when no master key has been
// provisioned yet. confirm may be nil for non-interactive commands.
func openEnv(confirm func(name string) bool) (*env, error) {
	config, err := configs.EnsureUserConfig()
	if err != nil {
		return nil, fmt.Errorf("ensuring user config: %w", err)
	}

	identity, err := protect.CurrentIdentity(config.User.InstallID)
	if err != nil {
		return nil, fmt.Errorf("resolving identity: %w", err)
	}

	source := masterKeySource()
	key, err := source.Load()
	if errors.Is(err, kerrors.ErrMasterKeyNotFound) {
		return nil, kerrors.ErrNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("loading master key: %w", err)
	}

	protector, err := protect.NewSecretbox(key, identity)
	if err != nil {
		return nil, fmt.Errorf("deriving sealing key: %w", err)
	}

	records := kvstore.New(configs.SecretStorePath())

	return &env{
		store:    vault.New(protector, records, vault.Options{Confirm: confirm}),
		source:   source,
		identity: identity,
	}, nil
}

// notInitializedMessage is the standard final message for commands that
// require lockbox init to have been run.
func notInitializedMessage() string {
	return ui.Error.Sprint("✗") + " Lockbox has not been initialized\n" +
		ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("lockbox init") + " first"
}

// promptYesNo asks a y/N question on the terminal. Returns false when
// stdin is not a terminal or on any read error.
func promptYesNo(question string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false
	}

	fmt.Print(question + " [y/N]: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

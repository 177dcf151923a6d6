package protect

import (
	"fmt"
	"os"
	"os/user"
	"strings"
)

// Identity binds encrypted blobs to a specific user, machine, and
// lockbox installation. All three fields feed the key derivation, so a
// blob sealed under one identity cannot be opened under another even
// with the same master key material.
type Identity struct {
	Username  string
	MachineID string
	InstallID string
}

// CurrentIdentity resolves the identity of the invoking user on this
// machine. installID comes from the user config.
func CurrentIdentity(installID string) (Identity, error) {
	u, err := user.Current()
	if err != nil {
		return Identity{}, fmt.Errorf("failed to get current user: %w", err)
	}

	machineID, err := machineID()
	if err != nil {
		return Identity{}, err
	}

	return Identity{
		Username:  u.Username,
		MachineID: machineID,
		InstallID: installID,
	}, nil
}

// machineID returns a stable identifier for this machine. On Linux this
// is /etc/machine-id; elsewhere (or when unreadable) the hostname is
// used instead.
func machineID() (string, error) {
	if data, err := os.ReadFile("/etc/machine-id"); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	}

	hostname, err := os.Hostname()
	if err != nil {
		return "", fmt.Errorf("failed to get hostname: %w", err)
	}
	return hostname, nil
}

// bindingInfo serializes the identity for use as HKDF info input.
func (id Identity) bindingInfo() []byte {
	return []byte("lockbox/v1|" + id.Username + "|" + id.MachineID + "|" + id.InstallID)
}

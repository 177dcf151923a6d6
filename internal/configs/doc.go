// Package configs resolves lockbox's per-user paths and persists its
// small TOML configuration.
//
// # Layout
//
// Lockbox follows the XDG base directory convention:
//
//	$XDG_CONFIG_HOME/lockbox/config.toml   install identity
//	$XDG_CONFIG_HOME/lockbox/secrets.toml  encrypted secret store
//	$XDG_DATA_HOME/lockbox/master.key      fallback master key (0600)
//	$XDG_DATA_HOME/lockbox/audit.jsonl     audit trail
//
// Paths are resolved once at startup into UserLockboxSettings; tests
// point the fields at a temporary directory instead of faking the
// environment.
//
// # Install identity
//
// config.toml carries a generated install UUID. It is part of the key
// derivation input, so a secret store copied to another installation
// cannot be decrypted even by the same OS user on the same machine.
package configs

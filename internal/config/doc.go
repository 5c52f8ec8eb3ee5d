// Package config loads runtime configuration for the vaultura CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-v string   vault file path
//	-l int      auto-lock timeout in seconds (0 disables)
//	-b int      clipboard clear timeout in seconds (0 disables)
//	-m uint     Argon2id memory cost in KiB for new vaults
//	-t uint     Argon2id time cost for new vaults
//	-p uint     Argon2id parallelism for new vaults
//	-j string   activity journal database (empty disables)
//	-log string log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so "5m" and integer nanoseconds both work.
// Keys that are absent keep their earlier value.
//
//	{
//	  "vault_path": "/home/me/.local/share/vaultura/vault.vltr",
//	  "auto_lock_timeout": "5m",
//	  "clipboard_clear_timeout": "30s",
//	  "kdf_memory_kib": 65536,
//	  "kdf_time": 3,
//	  "kdf_parallelism": 4,
//	  "journal_path": "",
//	  "log_level": "warn"
//	}
//
// When the journal path is not set anywhere it follows the vault: an
// activity.db file in the vault's directory.
//
// The KDF settings only apply to vaults created or exported by this process;
// an existing vault always opens with the cost parameters in its header.
package config

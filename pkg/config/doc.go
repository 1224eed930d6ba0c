// Package config loads deskset's own settings: which package managers to
// drive, where system files live and which external tool names to invoke.
//
// Settings are layered with koanf, lowest precedence first:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the settings file, $XDG_CONFIG_HOME/deskset/settings.toml or --settings
//  3. DESKSET_ environment variables, "__" separating section and key
//  4. command-line flags that were explicitly set
//
// The descriptor document itself is handled by package descriptor.
package config

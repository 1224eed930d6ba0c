package deskset

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Declarative desktop provisioning for pacman-based systems"
	MsgInitShort       = "Snapshot this machine into a new descriptor"
	MsgApplyShort      = "Bring this machine in line with a descriptor"
	MsgAddPackageShort = "Record a package in the descriptor"
	MsgShowShort       = "Print a descriptor"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Version output
	MsgVersionFormat = "deskset version %s\n"
	MsgCommitFormat  = "  commit: %s\n"
	MsgBuiltFormat   = "  built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Descriptor path (default from settings, config.toml)"
	MsgFlagSettings = "Settings file (default $XDG_CONFIG_HOME/deskset/settings.toml)"
	MsgFlagFormat   = "Output format: auto, term, text, json, yaml, toml, markdown"
	MsgFlagHard     = "Record every installed package, not only explicitly installed ones"
	MsgFlagSection  = "Apply only this section: system, packages or themes"
	MsgFlagDryRun   = "Preview changes without executing them"

	// Error messages
	MsgErrNoCommand = "no command specified"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/apply-long.txt
	msgApplyLongRaw string
	MsgApplyLong    = strings.TrimSpace(msgApplyLongRaw)

	//go:embed msgs/apply-example.txt
	msgApplyExampleRaw string
	MsgApplyExample    = strings.TrimRight(msgApplyExampleRaw, "\n")

	//go:embed msgs/add-package-long.txt
	msgAddPackageLongRaw string
	MsgAddPackageLong    = strings.TrimSpace(msgAddPackageLongRaw)

	//go:embed msgs/add-package-example.txt
	msgAddPackageExampleRaw string
	MsgAddPackageExample    = strings.TrimRight(msgAddPackageExampleRaw, "\n")

	//go:embed msgs/show-long.txt
	msgShowLongRaw string
	MsgShowLong    = strings.TrimSpace(msgShowLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)

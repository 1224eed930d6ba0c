package deskset

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/deskset/internal/version"
	"github.com/arthur-debert/deskset/pkg/commands/addpackage"
	"github.com/arthur-debert/deskset/pkg/commands/apply"
	"github.com/arthur-debert/deskset/pkg/commands/initialize"
	"github.com/arthur-debert/deskset/pkg/commands/show"
	"github.com/arthur-debert/deskset/pkg/config"
	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/errors"
	"github.com/arthur-debert/deskset/pkg/logging"
	"github.com/arthur-debert/deskset/pkg/reconcile"
	"github.com/arthur-debert/deskset/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app is the state shared by the commands of one root command.
type app struct {
	env Environment

	verbosity    int
	settingsFile string
	format       string

	settings *config.Settings
	renderer ui.Renderer
}

// NewRootCmd creates the root command against the live system.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithEnvironment(DefaultEnvironment())
}

// NewRootCmdWithEnvironment creates the root command against env.
func NewRootCmdWithEnvironment(env Environment) *cobra.Command {
	initTemplateFormatting()

	a := &app{env: env}

	rootCmd := &cobra.Command{
		Use:     "deskset",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(a.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().String("config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&a.settingsFile, "settings", "", MsgFlagSettings)
	rootCmd.PersistentFlags().StringVar(&a.format, "format", "auto", MsgFlagFormat)
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return ui.Formats(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(a.newInitCmd())
	rootCmd.AddCommand(a.newApplyCmd())
	rootCmd.AddCommand(a.newAddPackageCmd())
	rootCmd.AddCommand(a.newShowCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if err := initTopics(rootCmd); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// setup loads settings and picks the renderer. It runs before every
// command so flags are already parsed.
func (a *app) setup(cmd *cobra.Command) error {
	settings, err := config.Load(config.LoadOptions{
		SettingsFile: a.settingsFile,
		Flags:        cmd.Flags(),
		Overrides:    a.env.Overrides,
	})
	if err != nil {
		return err
	}
	a.settings = settings

	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	a.renderer = renderer
	return nil
}

func (a *app) descriptorPath() string {
	return a.settings.Descriptor.Path
}

// descriptorCompletion completes descriptor file names.
func descriptorCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
}

func (a *app) newInitCmd() *cobra.Command {
	var hard bool
	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := initialize.InitDescriptor(cmd.Context(), initialize.InitOptions{
				ConfigPath: a.descriptorPath(),
				All:        hard,
				Probe:      newProbe(a.env, a.settings),
				FS:         a.env.FS,
			})
			if err != nil {
				return err
			}
			return a.renderer.RenderResult(result)
		},
	}
	cmd.Flags().BoolVar(&hard, "hard", false, MsgFlagHard)
	return cmd
}

func (a *app) newApplyCmd() *cobra.Command {
	var (
		section string
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:               "apply <file>",
		Short:             MsgApplyShort,
		Long:              MsgApplyLong,
		Example:           MsgApplyExample,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: descriptorCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newReconciler(a.env, a.settings, dryRun)
			if err != nil {
				return err
			}
			var sections []string
			if cmd.Flags().Changed("section") {
				sections = []string{section}
			}
			result, err := apply.ApplyDescriptor(cmd.Context(), apply.ApplyOptions{
				ConfigPath: args[0],
				Sections:   sections,
				Reconciler: rc,
				FS:         a.env.FS,
			})
			if result != nil {
				if rerr := a.renderer.RenderResult(result); rerr != nil && err == nil {
					err = rerr
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&section, "section", "", MsgFlagSection)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	_ = cmd.RegisterFlagCompletionFunc("section", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, 3)
		for _, s := range reconcile.Sections() {
			names = append(names, s.String())
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func (a *app) newAddPackageCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add-package <manager> <package> [<category>]",
		Short:   MsgAddPackageShort,
		Long:    MsgAddPackageLong,
		Example: MsgAddPackageExample,
		GroupID: "core",
		Args:    cobra.RangeArgs(2, 3),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 2 {
				names := make([]string, 0, 4)
				for _, b := range descriptor.Buckets() {
					names = append(names, b.String())
				}
				return names, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := addpackage.AddPackageOptions{
				ConfigPath: a.descriptorPath(),
				Manager:    args[0],
				Package:    args[1],
				Registry:   newRegistry(a.env, a.settings),
				FS:         a.env.FS,
				Locker:     a.env.Locker,
			}
			if len(args) == 3 {
				opts.Category = args[2]
			}
			result, err := addpackage.AddPackage(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return a.renderer.RenderResult(result)
		},
	}
}

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "show [<file>]",
		Short:             MsgShowShort,
		Long:              MsgShowLong,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: descriptorCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.descriptorPath()
			if len(args) == 1 {
				path = args[0]
			}
			result, err := show.ShowDescriptor(a.env.FS, path)
			if err != nil {
				return err
			}
			if len(result.Duplicates) > 0 {
				log.Warn().Strs("packages", result.Duplicates).Msg("Descriptor lists packages more than once")
			}
			return a.renderer.RenderResult(result)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		// Settings are irrelevant here and may be broken.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, MsgVersionFormat, version.Version)
			fmt.Fprintf(out, MsgCommitFormat, version.Commit)
			fmt.Fprintf(out, MsgBuiltFormat, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		PersistentPreRun:      func(cmd *cobra.Command, args []string) {},
		RunE: func(cmd *cobra.Command, args []string) error {
			return GenCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

// GenCompletion writes the completion script for shell.
func GenCompletion(rootCmd *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return rootCmd.GenBashCompletionV2(w, true)
	case "zsh":
		return rootCmd.GenZshCompletion(w)
	case "fish":
		return rootCmd.GenFishCompletion(w, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	}
	return errors.Newf(errors.ErrInvalidInput, "unknown shell: %s", shell)
}

// RenderError prints err to w in the terminal style when w is a terminal
// and as plain text otherwise.
func RenderError(w io.Writer, err error) {
	renderer, rerr := ui.NewRenderer(ui.FormatAuto, w)
	if rerr != nil || renderer.RenderError(err) != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

package deskset

import (
	"os"

	"github.com/arthur-debert/deskset/pkg/classify"
	"github.com/arthur-debert/deskset/pkg/config"
	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/filesystem"
	"github.com/arthur-debert/deskset/pkg/manager"
	"github.com/arthur-debert/deskset/pkg/probe"
	"github.com/arthur-debert/deskset/pkg/reconcile"
	"github.com/arthur-debert/deskset/pkg/runner"
)

// Environment is everything outside the process that commands touch.
// Tests swap in an in-memory filesystem and a scripted runner.
type Environment struct {
	FS        filesystem.FS
	Runner    runner.Runner
	Locker    descriptor.Locker
	Env       func(string) (string, bool)
	ParentPID int
	// Settings overrides applied above every other settings layer.
	Overrides map[string]interface{}
}

// DefaultEnvironment is the live system.
func DefaultEnvironment() Environment {
	return Environment{
		FS:        filesystem.NewOS(),
		Runner:    runner.NewExecRunner(),
		Locker:    descriptor.FileLocker{},
		Env:       os.LookupEnv,
		ParentPID: os.Getppid(),
	}
}

func newRegistry(env Environment, s *config.Settings) *manager.Registry {
	return manager.NewRegistry(s.Packages.Native, s.Packages.Auxiliary, env.Runner)
}

func newProbe(env Environment, s *config.Settings) *probe.Probe {
	return probe.New(probe.Config{
		Env:       env.Env,
		Runner:    env.Runner,
		FS:        env.FS,
		ParentPID: env.ParentPID,
		Packages:  newRegistry(env, s).Native(),
		Tools: probe.Tools{
			Ps:        s.Tools.Ps,
			Locale:    s.Tools.Locale,
			Setxkbmap: s.Tools.Setxkbmap,
		},
		Localtime:      s.Probe.Localtime,
		FontconfigFile: s.FontconfigPath(),
	})
}

func newReconciler(env Environment, s *config.Settings, dryRun bool) (*reconcile.Reconciler, error) {
	policy, err := classify.ParsePolicy(s.Packages.OnInspectionFailure)
	if err != nil {
		return nil, err
	}
	return reconcile.New(reconcile.Config{
		Runner:   env.Runner,
		FS:       env.FS,
		Env:      env.Env,
		Registry: newRegistry(env, s),
		Options: reconcile.Options{
			ShellDir:      s.System.ShellDir,
			LocaleGenFile: s.Locale.GenFile,
			Tools: reconcile.Tools{
				Chsh:            s.Tools.Chsh,
				LocaleGen:       s.Tools.LocaleGen,
				Timedatectl:     s.Tools.Timedatectl,
				Setxkbmap:       s.Tools.Setxkbmap,
				Lookandfeeltool: s.Tools.Lookandfeeltool,
				Kvantummanager:  s.Tools.Kvantummanager,
			},
			InspectionPolicy: policy,
			DryRun:           dryRun,
		},
	}), nil
}

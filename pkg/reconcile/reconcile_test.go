package reconcile_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/arthur-debert/deskset/pkg/classify"
	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/errors"
	"github.com/arthur-debert/deskset/pkg/manager"
	"github.com/arthur-debert/deskset/pkg/reconcile"
	"github.com/arthur-debert/deskset/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const localeGen = `# Configuration file for locale-gen
#de_DE.UTF-8 UTF-8
#en_US ISO-8859-1
#en_US.UTF-8 UTF-8
fr_FR.UTF-8 UTF-8
`

func newReconciler(env *testutil.Environment, opts reconcile.Options) *reconcile.Reconciler {
	return reconcile.New(reconcile.Config{
		Runner:   env.Runner,
		FS:       env.FS,
		Env:      env.Lookup,
		Registry: manager.NewRegistry("pacman", "yay", env.Runner),
		Options:  opts,
	})
}

// emptyDescriptor has nothing to manage at all.
func emptyDescriptor() *descriptor.Descriptor {
	d := descriptor.New()
	d.Locale = descriptor.LocaleSettings{}
	d.Themes.Global = ""
	return d
}

func TestApply_Scenario(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.Runner.On("pacman -Si gcc-dev-tools", testutil.Response{ExitCode: 1})

	d := emptyDescriptor()
	d.Packages.System = []string{"htop"}
	d.Packages.Development = []string{"gcc-dev-tools"}
	d.Themes.Global = "Breeze"

	report, err := newReconciler(env, reconcile.Options{}).Apply(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"pacman -Si htop",
		"pacman -Si gcc-dev-tools",
		"pacman -S --needed --noconfirm htop",
		"yay -S --needed --noconfirm gcc-dev-tools",
		"lookandfeeltool -a Breeze",
	}, env.Runner.CommandLines())

	require.Len(t, report.Sections, 3)
	assert.Equal(t, reconcile.SectionSystem, report.Sections[0].Section)
	assert.Empty(t, report.Sections[0].Actions)
	assert.Equal(t, 3, report.Count(reconcile.StatusDone))
	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.DryRun)
}

func TestApply_UnknownSection(t *testing.T) {
	for _, name := range []string{"foo", "", "Themes"} {
		t.Run("section "+strconv.Quote(name), func(t *testing.T) {
			env := testutil.NewEnvironment(t)
			d := descriptor.New()
			d.System.Shell = "zsh"
			d.Packages.Other = []string{"htop"}

			report, err := newReconciler(env, reconcile.Options{}).Apply(context.Background(), d, name)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownSection))
			assert.Nil(t, report)
			assert.Empty(t, env.Runner.Calls())
		})
	}
}

func TestSelectSections(t *testing.T) {
	all, err := reconcile.SelectSections()
	require.NoError(t, err)
	assert.Equal(t, reconcile.Sections(), all)

	some, err := reconcile.SelectSections("themes", "system", "themes")
	require.NoError(t, err)
	assert.Equal(t, []reconcile.Section{reconcile.SectionSystem, reconcile.SectionThemes}, some)

	_, err = reconcile.SelectSections("")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownSection))
}

func TestApply_SingleSection(t *testing.T) {
	env := testutil.NewEnvironment(t)
	d := descriptor.New()
	d.System.Shell = "zsh"
	d.Packages.Other = []string{"htop"}

	report, err := newReconciler(env, reconcile.Options{}).Apply(context.Background(), d, "themes")
	require.NoError(t, err)
	require.Len(t, report.Sections, 1)
	assert.Equal(t, []string{"lookandfeeltool -a Breeze"}, env.Runner.CommandLines())
}

func TestApplyPackages_PartialFailure(t *testing.T) {
	tests := []struct {
		name    string
		failing string
	}{
		{"native batch fails", "pacman -S"},
		{"auxiliary batch fails", "yay -S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewEnvironment(t)
			env.Runner.
				On("pacman -Si spotify", testutil.Response{ExitCode: 1}).
				On(tt.failing, testutil.Response{ExitCode: 1})

			d := emptyDescriptor()
			d.Packages.Other = []string{"htop", "spotify"}

			report, err := newReconciler(env, reconcile.Options{}).Apply(context.Background(), d, "packages")
			require.NoError(t, err)

			assert.Len(t, env.Runner.CallsTo("pacman"), 3, "two inspections and one batch")
			assert.Len(t, env.Runner.CallsTo("yay"), 1)
			assert.Len(t, report.Failed(), 1)
			assert.Equal(t, 1, report.Count(reconcile.StatusDone))
		})
	}
}

func TestApplyPackages_DedupesKeepingFirst(t *testing.T) {
	env := testutil.NewEnvironment(t)
	d := emptyDescriptor()
	d.Packages.System = []string{"htop", "git"}
	d.Packages.Other = []string{"git", "htop", "vim"}

	_, err := newReconciler(env, reconcile.Options{}).Apply(context.Background(), d, "packages")
	require.NoError(t, err)

	installs := env.Runner.CallsTo("pacman")
	last := installs[len(installs)-1]
	assert.Equal(t, "pacman -S --needed --noconfirm htop git vim", last.CommandLine())
	assert.True(t, last.Stream)
}

func TestApplyPackages_InspectionPolicy(t *testing.T) {
	setup := func(t *testing.T) (*testutil.Environment, *descriptor.Descriptor) {
		env := testutil.NewEnvironment(t)
		env.Runner.On("pacman -Si", testutil.Response{StartErr: true})
		d := emptyDescriptor()
		d.Packages.Other = []string{"htop"}
		return env, d
	}

	t.Run("auxiliary", func(t *testing.T) {
		env, d := setup(t)
		_, err := newReconciler(env, reconcile.Options{}).Apply(context.Background(), d, "packages")
		require.NoError(t, err)
		assert.Len(t, env.Runner.CallsTo("yay"), 1)
	})

	t.Run("skip", func(t *testing.T) {
		env, d := setup(t)
		report, err := newReconciler(env, reconcile.Options{InspectionPolicy: classify.PolicySkip}).
			Apply(context.Background(), d, "packages")
		require.NoError(t, err)
		assert.Empty(t, env.Runner.CallsTo("yay"))
		assert.Equal(t, 1, report.Count(reconcile.StatusSkipped))
	})

	t.Run("abort", func(t *testing.T) {
		env, d := setup(t)
		_, err := newReconciler(env, reconcile.Options{InspectionPolicy: classify.PolicyAbort}).
			Apply(context.Background(), d, "")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSourceInspection))
		assert.Empty(t, env.Runner.CallsTo("yay"))
		assert.Empty(t, env.Runner.CallsTo("lookandfeeltool"))
	})
}

func TestApplySystem(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.Vars["SHELL"] = "/usr/bin/bash"
	env.WriteFile("/etc/locale.gen", localeGen)

	d := descriptor.New()
	d.System.Shell = "zsh"
	d.Locale = descriptor.LocaleSettings{Language: "en_US.UTF-8", Timezone: "Europe/Paris", KeyboardLayout: "fr"}

	report, err := newReconciler(env, reconcile.Options{}).Apply(context.Background(), d, "system")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"chsh -s /bin/zsh",
		"locale-gen",
		"timedatectl set-timezone Europe/Paris",
		"setxkbmap fr",
	}, env.Runner.CommandLines())
	assert.Contains(t, env.ReadFile("/etc/locale.gen"), "\nen_US.UTF-8 UTF-8\n")
	assert.Contains(t, env.ReadFile("/etc/locale.gen"), "\n#de_DE.UTF-8 UTF-8\n")
	assert.Equal(t, 5, report.Count(reconcile.StatusDone))
}

func TestApplySystem_ShellAlreadyActive(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.Vars["SHELL"] = "/usr/bin/zsh"

	d := emptyDescriptor()
	d.System.Shell = "zsh"

	_, err := newReconciler(env, reconcile.Options{ShellDir: "/usr/bin"}).Apply(context.Background(), d, "system")
	require.NoError(t, err)
	assert.Empty(t, env.Runner.CallsTo("chsh"))
}

func TestApplySystem_LocaleGenIdempotent(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.WriteFile("/etc/locale.gen", localeGen)

	d := emptyDescriptor()
	d.Locale.Language = "en_US.UTF-8"
	rc := newReconciler(env, reconcile.Options{})

	_, err := rc.Apply(context.Background(), d, "system")
	require.NoError(t, err)
	first := env.ReadFile("/etc/locale.gen")

	report, err := rc.Apply(context.Background(), d, "system")
	require.NoError(t, err)
	assert.Equal(t, first, env.ReadFile("/etc/locale.gen"))
	assert.Equal(t, reconcile.StatusSkipped, report.Sections[0].Actions[0].Status)
	assert.Len(t, env.Runner.CallsTo("locale-gen"), 2)
}

func TestApplySystem_AbortsOnFirstFailure(t *testing.T) {
	t.Run("unreadable locale.gen", func(t *testing.T) {
		env := testutil.NewEnvironment(t)
		d := emptyDescriptor()
		d.Locale = descriptor.LocaleSettings{Language: "en_US.UTF-8", Timezone: "UTC", KeyboardLayout: "us"}
		d.Themes.Global = "Breeze"

		_, err := newReconciler(env, reconcile.Options{}).Apply(context.Background(), d)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSystemFile))
		assert.Empty(t, env.Runner.Calls(), "no later step or section runs")
	})

	t.Run("failing tool", func(t *testing.T) {
		env := testutil.NewEnvironment(t)
		env.Runner.On("timedatectl", testutil.Response{ExitCode: 1})
		d := emptyDescriptor()
		d.Locale.Timezone = "Mars/Olympus"
		d.Locale.KeyboardLayout = "us"

		report, err := newReconciler(env, reconcile.Options{}).Apply(context.Background(), d, "system")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrExternalTool))
		assert.Empty(t, env.Runner.CallsTo("setxkbmap"))
		require.NotNil(t, report)
		assert.Len(t, report.Failed(), 1)
	})
}

func TestApplyThemes(t *testing.T) {
	kvantum := "KvArcDark"

	t.Run("global and kvantum", func(t *testing.T) {
		env := testutil.NewEnvironment(t)
		d := emptyDescriptor()
		d.Themes.Global = "org.kde.breezedark.desktop"
		d.Themes.Kvantum = &kvantum

		_, err := newReconciler(env, reconcile.Options{}).Apply(context.Background(), d, "themes")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"lookandfeeltool -a org.kde.breezedark.desktop",
			"kvantummanager --set KvArcDark",
		}, env.Runner.CommandLines())
	})

	t.Run("global failure aborts", func(t *testing.T) {
		env := testutil.NewEnvironment(t)
		env.Runner.On("lookandfeeltool", testutil.Response{StartErr: true})
		d := emptyDescriptor()
		d.Themes.Global = "Breeze"
		d.Themes.Kvantum = &kvantum

		_, err := newReconciler(env, reconcile.Options{}).Apply(context.Background(), d, "themes")
		require.Error(t, err)
		assert.Empty(t, env.Runner.CallsTo("kvantummanager"))
	})

	t.Run("empty kvantum is skipped", func(t *testing.T) {
		env := testutil.NewEnvironment(t)
		empty := ""
		d := emptyDescriptor()
		d.Themes.Global = "Breeze"
		d.Themes.Kvantum = &empty

		report, err := newReconciler(env, reconcile.Options{}).Apply(context.Background(), d, "themes")
		require.NoError(t, err)
		assert.Equal(t, []string{"lookandfeeltool -a Breeze"}, env.Runner.CommandLines())
		assert.Equal(t, 1, report.Count(reconcile.StatusDone))
	})
}

func TestApply_DryRun(t *testing.T) {
	env := testutil.NewEnvironment(t)
	env.Vars["SHELL"] = "/bin/bash"
	env.WriteFile("/etc/locale.gen", localeGen)

	d := descriptor.New()
	d.System.Shell = "zsh"
	d.Packages.Other = []string{"htop"}

	report, err := newReconciler(env, reconcile.Options{DryRun: true}).Apply(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, []string{"pacman -Si htop"}, env.Runner.CommandLines(), "only read-only inspection runs")
	assert.Equal(t, localeGen, env.ReadFile("/etc/locale.gen"))
	assert.True(t, report.DryRun)
	assert.Equal(t, 0, report.Count(reconcile.StatusDone))
	assert.Equal(t, 7, report.Count(reconcile.StatusPlanned))
}

func TestUncommentLocale(t *testing.T) {
	updated, changed := reconcile.UncommentLocale(localeGen, "en_US.UTF-8")
	assert.True(t, changed)
	assert.Contains(t, updated, "\nen_US.UTF-8 UTF-8\n")
	assert.Contains(t, updated, "\n#en_US ISO-8859-1\n")
	assert.Contains(t, updated, "\nfr_FR.UTF-8 UTF-8\n")

	again, changed := reconcile.UncommentLocale(updated, "en_US.UTF-8")
	assert.False(t, changed)
	assert.Equal(t, updated, again)

	_, changed = reconcile.UncommentLocale(localeGen, "fr_FR.UTF-8")
	assert.False(t, changed, "already active lines are left alone")
}

func TestParseSection(t *testing.T) {
	for _, name := range []string{"system", "packages", "themes"} {
		s, err := reconcile.ParseSection(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.String())
	}

	_, err := reconcile.ParseSection("System")
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownSection))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, reconcile.Dedupe([]string{"a", "b", "a", "c", "b"}))
	assert.Equal(t, []string{}, reconcile.Dedupe(nil))
}

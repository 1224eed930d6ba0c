package deskset_test

import (
	"bytes"
	stdjson "encoding/json"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/deskset/cmd/deskset"
	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/errors"
	"github.com/arthur-debert/deskset/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configPath = "/work/config.toml"

type harness struct {
	env *testutil.Environment
	out *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()
	return &harness{env: testutil.NewEnvironment(t), out: &bytes.Buffer{}}
}

func (h *harness) run(args ...string) error {
	root := deskset.NewRootCmdWithEnvironment(deskset.Environment{
		FS:        h.env.FS,
		Runner:    h.env.Runner,
		Locker:    descriptor.NopLocker{},
		Env:       h.env.Lookup,
		ParentPID: 1,
		Overrides: map[string]interface{}{"probe.fontconfig_file": ""},
	})
	h.out.Reset()
	root.SetOut(h.out)
	root.SetErr(h.out)
	root.SetArgs(args)
	return root.Execute()
}

func (h *harness) save(t *testing.T, d *descriptor.Descriptor) {
	t.Helper()
	require.NoError(t, d.Save(h.env.FS, configPath))
}

func (h *harness) load(t *testing.T) *descriptor.Descriptor {
	t.Helper()
	d, err := descriptor.Load(h.env.FS, configPath)
	require.NoError(t, err)
	return d
}

func (h *harness) decode(t *testing.T) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, stdjson.Unmarshal(h.out.Bytes(), &out), h.out.String())
	return out
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("version"))
	assert.Contains(t, h.out.String(), "deskset version dev")
	assert.Contains(t, h.out.String(), "commit: unknown")
}

func TestNoCommand(t *testing.T) {
	h := newHarness(t)
	err := h.run()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Contains(t, h.out.String(), "add-package")
}

func TestInit(t *testing.T) {
	h := newHarness(t)
	h.env.Vars["SHELL"] = "/usr/bin/zsh"
	h.env.Vars["XDG_CURRENT_DESKTOP"] = "KDE"
	h.env.Vars["TERM_PROGRAM"] = "Konsole"
	h.env.Runner.
		On("pacman -Qe", testutil.Response{Stdout: "base-devel 1-1\ngimp 2.10\nneofetch 7.1\n"}).
		On("pacman -Q", testutil.Response{Stdout: "base-devel 1-1\ngimp 2.10\nneofetch 7.1\nglibc 2.39\n"})

	require.NoError(t, h.run("init", "--config", configPath, "--format", "json"))

	out := h.decode(t)
	assert.Equal(t, configPath, out["path"])

	d := h.load(t)
	assert.Equal(t, "zsh", d.System.Shell)
	assert.Equal(t, "kde", d.System.DesktopEnvironment)
	assert.Equal(t, "konsole", d.System.Terminal)
	assert.Equal(t, []string{"base-devel"}, d.Packages.Development)
	assert.Equal(t, []string{"gimp"}, d.Packages.Graphics)
	assert.Equal(t, []string{"neofetch"}, d.Packages.Other)

	t.Run("hard lists every package", func(t *testing.T) {
		require.NoError(t, h.run("init", "--hard", "--config", configPath, "--format", "json"))
		assert.Equal(t, []string{"neofetch", "glibc"}, h.load(t).Packages.Other)
	})
}

func TestInit_ConfigFromEnvironment(t *testing.T) {
	h := newHarness(t)
	t.Setenv("DESKSET_DESCRIPTOR__PATH", "/work/from-env.toml")

	require.NoError(t, h.run("init", "--format", "json"))

	_, err := descriptor.Load(h.env.FS, "/work/from-env.toml")
	require.NoError(t, err)
}

func TestAddPackage(t *testing.T) {
	h := newHarness(t)
	h.save(t, descriptor.New())
	h.env.Runner.On("pacman -Ss neofetch", testutil.Response{Stdout: "extra/neofetch 7.1.0-2\n    A CLI system information tool\n"})

	require.NoError(t, h.run("add-package", "pacman", "neofetch", "--config", configPath, "--format", "text"))
	assert.Equal(t, "Added neofetch (pacman) to other in /work/config.toml\n", h.out.String())
	assert.Equal(t, []string{"neofetch"}, h.load(t).Packages.Other)

	t.Run("category", func(t *testing.T) {
		h.env.Runner.On("pacman -Ss gimp", testutil.Response{Stdout: "extra/gimp 2.10.36-1\n"})
		require.NoError(t, h.run("add-package", "pacman", "gimp", "graphics", "--config", configPath))
		assert.Equal(t, []string{"gimp"}, h.load(t).Packages.Graphics)
	})

	t.Run("unsupported manager", func(t *testing.T) {
		err := h.run("add-package", "apt", "vim", "--config", configPath)
		assert.True(t, errors.IsErrorCode(err, errors.ErrUnsupportedManager))
	})

	t.Run("not found", func(t *testing.T) {
		h.env.Runner.On("pacman -Ss nosuchpkg", testutil.Response{ExitCode: 1})
		before := h.load(t)
		err := h.run("add-package", "pacman", "nosuchpkg", "--config", configPath)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPackageNotFound))
		assert.Equal(t, before, h.load(t))
	})

	t.Run("wrong argument count", func(t *testing.T) {
		require.Error(t, h.run("add-package", "pacman"))
	})
}

func TestApply_UnknownSection(t *testing.T) {
	h := newHarness(t)
	h.save(t, descriptor.New())

	err := h.run("apply", configPath, "--section", "foo")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownSection))
	assert.Empty(t, h.env.Runner.Calls())
}

func TestApply_EmptySectionIsNotAll(t *testing.T) {
	h := newHarness(t)
	h.save(t, descriptor.New())

	err := h.run("apply", configPath, "--section", "")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownSection))
	assert.Empty(t, h.env.Runner.Calls())
}

func TestApply_Themes(t *testing.T) {
	h := newHarness(t)
	d := descriptor.New()
	kvantum := "KvArc"
	d.Themes.Kvantum = &kvantum
	h.save(t, d)

	require.NoError(t, h.run("apply", configPath, "--section", "themes", "--format", "json"))
	assert.Equal(t, []string{
		"lookandfeeltool -a Breeze",
		"kvantummanager --set KvArc",
	}, h.env.Runner.CommandLines())

	report := h.decode(t)["report"].(map[string]interface{})
	assert.Equal(t, false, report["dry_run"])
}

func TestApply_DryRun(t *testing.T) {
	h := newHarness(t)
	d := descriptor.New()
	d.System.Shell = "zsh"
	h.save(t, d)
	t.Setenv("DESKSET_LOCALE__GEN_FILE", "/work/locale.gen")
	h.env.WriteFile("/work/locale.gen", "#en_US.UTF-8 UTF-8\n")

	require.NoError(t, h.run("apply", configPath, "--section", "system", "--dry-run", "--format", "json"))
	assert.Equal(t, "#en_US.UTF-8 UTF-8\n", h.env.ReadFile("/work/locale.gen"))
	assert.Empty(t, h.env.Runner.Calls())

	report := h.decode(t)["report"].(map[string]interface{})
	assert.Equal(t, true, report["dry_run"])
	actions := report["sections"].([]interface{})[0].(map[string]interface{})["actions"].([]interface{})
	first := actions[0].(map[string]interface{})
	assert.Equal(t, "planned", first["status"])
	assert.Equal(t, "chsh -s /bin/zsh", first["command"])
}

func TestApply_FailureExitsWithError(t *testing.T) {
	h := newHarness(t)
	h.save(t, descriptor.New())
	h.env.Runner.On("lookandfeeltool", testutil.Response{ExitCode: 1, Stderr: "no such theme"})

	err := h.run("apply", configPath, "--section", "themes", "--format", "text")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExternalTool))
	assert.Contains(t, h.out.String(), "1 failed")
}

func TestApply_MissingDescriptor(t *testing.T) {
	h := newHarness(t)
	err := h.run("apply", "/work/missing.toml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigNotFound))
}

func TestShow(t *testing.T) {
	h := newHarness(t)
	d := descriptor.New()
	d.Packages.Append(descriptor.BucketOther, "neofetch")
	h.save(t, d)

	t.Run("toml from settings path", func(t *testing.T) {
		require.NoError(t, h.run("show", "--config", configPath, "--format", "toml"))
		parsed, err := descriptor.Parse(h.out.Bytes())
		require.NoError(t, err)
		assert.Equal(t, d, parsed)
	})

	t.Run("explicit file as yaml", func(t *testing.T) {
		require.NoError(t, h.run("show", configPath, "--format", "yaml"))
		assert.Contains(t, h.out.String(), "path: /work/config.toml")
		assert.Contains(t, h.out.String(), "- neofetch")
	})

	t.Run("invalid format", func(t *testing.T) {
		err := h.run("show", configPath, "--format", "xml")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestInvalidSettings(t *testing.T) {
	h := newHarness(t)
	t.Setenv("DESKSET_PACKAGES__ON_INSPECTION_FAILURE", "retry")

	err := h.run("show", configPath)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSettingsInvalid))
}

func TestHelpTopics(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("help", "topics"))
	assert.Contains(t, h.out.String(), "descriptor")
	assert.Contains(t, h.out.String(), "--dry-run")
}

func TestCompletion(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("completion", "fish"))
	assert.Contains(t, h.out.String(), "deskset")
}

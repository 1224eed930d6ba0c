package probe

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/deskset/pkg/filesystem"
	"github.com/arthur-debert/deskset/pkg/logging"
	"github.com/arthur-debert/deskset/pkg/manager"
	"github.com/arthur-debert/deskset/pkg/runner"
)

// Mode selects which installed packages a snapshot records.
type Mode int

const (
	// ModeExplicit lists packages the operator installed on purpose.
	ModeExplicit Mode = iota
	// ModeAll also lists dependencies.
	ModeAll
)

// knownTerminals are matched against the parent process name.
var knownTerminals = []string{"konsole", "gnome-terminal", "xfce4-terminal", "alacritty", "kitty"}

// desktopMarkers map a process-list substring to a desktop name, first hit
// wins.
var desktopMarkers = []struct{ marker, name string }{
	{"plasma", "plasma"},
	{"gnome-shell", "gnome"},
	{"xfce", "xfce"},
}

// Tools names the executables probes run.
type Tools struct {
	Ps        string
	Locale    string
	Setxkbmap string
}

// Config wires a Probe to its inputs. Zero values fall back to the live
// system.
type Config struct {
	Env       func(string) (string, bool)
	Runner    runner.Runner
	FS        filesystem.FS
	ParentPID int
	// Packages lists installed packages.
	Packages *manager.Manager
	Tools    Tools
	// Localtime is the zoneinfo symlink, normally /etc/localtime.
	Localtime string
	// FontconfigFile is read for the monospace font. Empty skips it.
	FontconfigFile string
}

// Probe reads system facts.
type Probe struct {
	cfg Config
}

func New(cfg Config) *Probe {
	if cfg.Env == nil {
		cfg.Env = os.LookupEnv
	}
	if cfg.Runner == nil {
		cfg.Runner = runner.NewExecRunner()
	}
	if cfg.FS == nil {
		cfg.FS = filesystem.NewOS()
	}
	if cfg.ParentPID == 0 {
		cfg.ParentPID = os.Getppid()
	}
	if cfg.Packages == nil {
		cfg.Packages = manager.New("pacman", cfg.Runner)
	}
	if cfg.Tools.Ps == "" {
		cfg.Tools.Ps = "ps"
	}
	if cfg.Tools.Locale == "" {
		cfg.Tools.Locale = "locale"
	}
	if cfg.Tools.Setxkbmap == "" {
		cfg.Tools.Setxkbmap = "setxkbmap"
	}
	if cfg.Localtime == "" {
		cfg.Localtime = "/etc/localtime"
	}
	return &Probe{cfg: cfg}
}

// lookup treats set-but-empty variables as unset.
func (p *Probe) lookup(key string) (string, bool) {
	v, ok := p.cfg.Env(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// output runs a read-only command and returns stdout, or false when the
// tool is missing or fails.
func (p *Probe) output(ctx context.Context, name string, args ...string) (string, bool) {
	res, err := p.cfg.Runner.Run(ctx, name, args...)
	if err != nil || !res.Success() {
		logger := logging.GetLogger("probe")
		logger.Debug().Str("command", res.CommandLine()).Int("exit_code", res.ExitCode).Msg("Probe command failed")
		return "", false
	}
	return string(res.Stdout), true
}

// Shell is the base name of $SHELL.
func (p *Probe) Shell() (string, bool) {
	shell, ok := p.lookup("SHELL")
	if !ok {
		return "", false
	}
	base := filepath.Base(shell)
	if base == "/" || base == "." {
		return "", false
	}
	return base, true
}

// DesktopEnvironment reads the XDG session variables and falls back to
// scanning the process list.
func (p *Probe) DesktopEnvironment(ctx context.Context) (string, bool) {
	for _, key := range []string{"XDG_CURRENT_DESKTOP", "DESKTOP_SESSION"} {
		if v, ok := p.lookup(key); ok {
			return strings.ToLower(v), true
		}
	}

	out, ok := p.output(ctx, p.cfg.Tools.Ps, "aux")
	if !ok {
		return "", false
	}
	processes := strings.ToLower(out)
	for _, m := range desktopMarkers {
		if strings.Contains(processes, m.marker) {
			return m.name, true
		}
	}
	return "", false
}

// Terminal reads $TERM_PROGRAM, else the parent process name when it is a
// known terminal emulator.
func (p *Probe) Terminal(ctx context.Context) (string, bool) {
	if v, ok := p.lookup("TERM_PROGRAM"); ok {
		return strings.ToLower(v), true
	}

	out, ok := p.output(ctx, p.cfg.Tools.Ps, "-p", strconv.Itoa(p.cfg.ParentPID), "-o", "comm=")
	if !ok {
		return "", false
	}
	comm := strings.ToLower(strings.TrimSpace(out))
	for _, known := range knownTerminals {
		if strings.Contains(comm, known) {
			return comm, true
		}
	}
	return "", false
}

// InstalledPackages lists installed package names per mode.
func (p *Probe) InstalledPackages(ctx context.Context, mode Mode) ([]string, bool) {
	names, err := p.cfg.Packages.ListInstalled(ctx, mode == ModeExplicit)
	if err != nil {
		logger := logging.GetLogger("probe")
		logger.Debug().Err(err).Msg("Listing installed packages failed")
		return nil, false
	}
	return names, true
}

// Language is the LANG value reported by locale(1).
func (p *Probe) Language(ctx context.Context) (string, bool) {
	out, ok := p.output(ctx, p.cfg.Tools.Locale)
	if !ok {
		return "", false
	}
	for _, line := range strings.Split(out, "\n") {
		if v, found := strings.CutPrefix(strings.TrimSpace(line), "LANG="); found {
			v = strings.Trim(v, `"`)
			return v, v != ""
		}
	}
	return "", false
}

// Timezone derives the zone name from the localtime symlink target.
func (p *Probe) Timezone() (string, bool) {
	target, err := p.cfg.FS.Readlink(p.cfg.Localtime)
	if err != nil {
		return "", false
	}
	_, zone, found := strings.Cut(target, "/zoneinfo/")
	if !found || zone == "" {
		return "", false
	}
	return zone, true
}

// KeyboardLayout is the X11 layout reported by setxkbmap.
func (p *Probe) KeyboardLayout(ctx context.Context) (string, bool) {
	out, ok := p.output(ctx, p.cfg.Tools.Setxkbmap, "-query")
	if !ok {
		return "", false
	}
	for _, line := range strings.Split(out, "\n") {
		if _, v, found := strings.Cut(line, "layout:"); found {
			v = strings.TrimSpace(v)
			return v, v != ""
		}
	}
	return "", false
}

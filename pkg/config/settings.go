package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Settings is the decoded, validated settings tree.
type Settings struct {
	Descriptor DescriptorSettings `koanf:"descriptor"`
	Packages   PackageSettings    `koanf:"packages"`
	System     SystemSettings     `koanf:"system"`
	Locale     LocaleSettings     `koanf:"locale"`
	Probe      ProbeSettings      `koanf:"probe"`
	Tools      ToolSettings       `koanf:"tools"`
}

type DescriptorSettings struct {
	Path string `koanf:"path" validate:"required"`
}

type PackageSettings struct {
	Native              string `koanf:"native" validate:"required,nefield=Auxiliary"`
	Auxiliary           string `koanf:"auxiliary" validate:"required"`
	OnInspectionFailure string `koanf:"on_inspection_failure" validate:"oneof=auxiliary skip abort"`
}

type SystemSettings struct {
	ShellDir string `koanf:"shell_dir" validate:"required"`
}

type LocaleSettings struct {
	GenFile string `koanf:"gen_file" validate:"required"`
}

type ProbeSettings struct {
	FontconfigFile string `koanf:"fontconfig_file"`
	Localtime      string `koanf:"localtime" validate:"required"`
}

// ToolSettings names the external executables deskset runs.
type ToolSettings struct {
	Chsh            string `koanf:"chsh" validate:"required"`
	LocaleGen       string `koanf:"locale_gen" validate:"required"`
	Timedatectl     string `koanf:"timedatectl" validate:"required"`
	Setxkbmap       string `koanf:"setxkbmap" validate:"required"`
	Lookandfeeltool string `koanf:"lookandfeeltool" validate:"required"`
	Kvantummanager  string `koanf:"kvantummanager" validate:"required"`
	Ps              string `koanf:"ps" validate:"required"`
	Locale          string `koanf:"locale" validate:"required"`
}

// FontconfigPath returns the fontconfig file the probe reads, resolving a
// relative setting against the XDG config home. Empty disables the probe.
func (s *Settings) FontconfigPath() string {
	p := s.Probe.FontconfigFile
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(xdg.ConfigHome, p)
}

// DefaultSettingsFile is where settings are read from when --settings is
// not given.
func DefaultSettingsFile() string {
	return filepath.Join(xdg.ConfigHome, "deskset", "settings.toml")
}

package descriptor

const (
	DefaultLanguage       = "en_US.UTF-8"
	DefaultTimezone       = "UTC"
	DefaultKeyboardLayout = "us"
	DefaultGlobalTheme    = "Breeze"
)

// Descriptor is the persisted manifest describing desired system state.
// An empty string anywhere means "unset, do not manage".
type Descriptor struct {
	System   SystemSettings  `toml:"system" json:"system" yaml:"system"`
	Locale   LocaleSettings  `toml:"locale" json:"locale" yaml:"locale"`
	Packages PackageManifest `toml:"packages" json:"packages" yaml:"packages"`
	Themes   ThemeSettings   `toml:"themes" json:"themes" yaml:"themes"`
	// Widgets is reserved: persisted and round-tripped, never populated or
	// consumed.
	Widgets []string `toml:"widgets" json:"widgets" yaml:"widgets"`
}

type SystemSettings struct {
	Shell              string `toml:"shell" json:"shell" yaml:"shell"`
	DesktopEnvironment string `toml:"desktop_environment" json:"desktop_environment" yaml:"desktop_environment"`
	Terminal           string `toml:"terminal" json:"terminal" yaml:"terminal"`
	TerminalFont       string `toml:"terminal_font" json:"terminal_font" yaml:"terminal_font"`
	Icons              string `toml:"icons" json:"icons" yaml:"icons"`
	Theme              string `toml:"theme" json:"theme" yaml:"theme"`
	SplashScreen       string `toml:"splash_screen" json:"splash_screen" yaml:"splash_screen"`
	LoginScreen        string `toml:"login_screen" json:"login_screen" yaml:"login_screen"`
}

type LocaleSettings struct {
	Language       string `toml:"language" json:"language" yaml:"language"`
	Timezone       string `toml:"timezone" json:"timezone" yaml:"timezone"`
	KeyboardLayout string `toml:"keyboard_layout" json:"keyboard_layout" yaml:"keyboard_layout"`
}

// ThemeSettings holds the global look-and-feel theme and the optional
// Kvantum theme. A nil Kvantum means the Kvantum engine is not managed.
type ThemeSettings struct {
	Kvantum *string `toml:"kvantum,omitempty" json:"kvantum,omitempty" yaml:"kvantum,omitempty"`
	Global  string  `toml:"global" json:"global" yaml:"global"`
}

// New returns a descriptor with the documented defaults and empty
// collections.
func New() *Descriptor {
	return &Descriptor{
		Locale: LocaleSettings{
			Language:       DefaultLanguage,
			Timezone:       DefaultTimezone,
			KeyboardLayout: DefaultKeyboardLayout,
		},
		Packages: NewPackageManifest(),
		Themes: ThemeSettings{
			Global: DefaultGlobalTheme,
		},
		Widgets: []string{},
	}
}

// normalize replaces nil collections with empty ones so that a loaded
// descriptor compares equal to a freshly built one.
func (d *Descriptor) normalize() {
	d.Packages.normalize()
	if d.Widgets == nil {
		d.Widgets = []string{}
	}
}

package descriptor

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"

	"github.com/arthur-debert/deskset/pkg/errors"
	"github.com/arthur-debert/deskset/pkg/filesystem"
	"github.com/arthur-debert/deskset/pkg/logging"
	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
)

// document is the on-disk shape. Pointers record presence so that a missing
// required key can be told apart from a key set to the empty string.
type document struct {
	System   *systemDoc   `toml:"system" validate:"required"`
	Locale   *localeDoc   `toml:"locale" validate:"required"`
	Packages *packagesDoc `toml:"packages" validate:"required"`
	Themes   *themesDoc   `toml:"themes" validate:"required"`
	Widgets  []string     `toml:"widgets"`
}

type systemDoc struct {
	Shell              *string `toml:"shell" validate:"required"`
	DesktopEnvironment *string `toml:"desktop_environment" validate:"required"`
	Terminal           *string `toml:"terminal" validate:"required"`
	TerminalFont       *string `toml:"terminal_font" validate:"required"`
	Icons              *string `toml:"icons" validate:"required"`
	Theme              *string `toml:"theme" validate:"required"`
	SplashScreen       *string `toml:"splash_screen" validate:"required"`
	LoginScreen        *string `toml:"login_screen" validate:"required"`
}

type localeDoc struct {
	Language       *string `toml:"language" validate:"required"`
	Timezone       *string `toml:"timezone" validate:"required"`
	KeyboardLayout *string `toml:"keyboard_layout" validate:"required"`
}

type packagesDoc struct {
	System      []string `toml:"system"`
	Development []string `toml:"development"`
	Graphics    []string `toml:"graphics"`
	Other       []string `toml:"other"`
}

type themesDoc struct {
	Kvantum *string `toml:"kvantum"`
	Global  *string `toml:"global" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Parse decodes a descriptor document. Missing required keys and values of
// the wrong type are reported as CONFIG_PARSE.
func Parse(data []byte) (*Descriptor, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, parseError(err)
	}

	if err := validate.Struct(&doc); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) {
			missing := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				missing = append(missing, fieldPath(fe.Namespace()))
			}
			return nil, errors.Newf(errors.ErrConfigParse, "descriptor is missing required fields: %s",
				strings.Join(missing, ", ")).
				WithDetail("missing", missing)
		}
		return nil, errors.Wrap(err, errors.ErrConfigParse, "descriptor validation failed")
	}

	d := doc.toDescriptor()
	d.normalize()
	return d, nil
}

// fieldPath turns "document.themes.global" into "themes.global".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func parseError(err error) error {
	var decodeErr *toml.DecodeError
	if stderrors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return errors.Wrapf(err, errors.ErrConfigParse, "invalid descriptor at line %d, column %d", row, col).
			WithDetail("line", row).
			WithDetail("column", col)
	}
	return errors.Wrap(err, errors.ErrConfigParse, "invalid descriptor")
}

func (doc *document) toDescriptor() *Descriptor {
	return &Descriptor{
		System: SystemSettings{
			Shell:              *doc.System.Shell,
			DesktopEnvironment: *doc.System.DesktopEnvironment,
			Terminal:           *doc.System.Terminal,
			TerminalFont:       *doc.System.TerminalFont,
			Icons:              *doc.System.Icons,
			Theme:              *doc.System.Theme,
			SplashScreen:       *doc.System.SplashScreen,
			LoginScreen:        *doc.System.LoginScreen,
		},
		Locale: LocaleSettings{
			Language:       *doc.Locale.Language,
			Timezone:       *doc.Locale.Timezone,
			KeyboardLayout: *doc.Locale.KeyboardLayout,
		},
		Packages: PackageManifest{
			System:      doc.Packages.System,
			Development: doc.Packages.Development,
			Graphics:    doc.Packages.Graphics,
			Other:       doc.Packages.Other,
		},
		Themes: ThemeSettings{
			Kvantum: doc.Themes.Kvantum,
			Global:  *doc.Themes.Global,
		},
		Widgets: doc.Widgets,
	}
}

// Load reads and parses the descriptor at path. A missing file is
// CONFIG_NOT_FOUND; any other read failure, such as a permission error or
// a directory, is CONFIG_READ.
func Load(fsys filesystem.FS, path string) (*Descriptor, error) {
	logger := logging.GetLogger("descriptor")

	data, err := fsys.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, errors.ErrConfigNotFound, "descriptor not found: %s", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrConfigRead, "cannot read descriptor %s", path).
			WithDetail("path", path)
	}

	d, err := Parse(data)
	if err != nil {
		if de, ok := err.(*errors.DesksetError); ok {
			de.WithDetail("path", path)
		}
		return nil, err
	}

	if dups := d.Packages.Duplicates(); len(dups) > 0 {
		logger.Warn().Str("path", path).Strs("packages", dups).Msg("Descriptor lists packages more than once")
	}
	logger.Debug().Str("path", path).Int("packages", d.Packages.Len()).Msg("Descriptor loaded")
	return d, nil
}

// Marshal encodes d as TOML with a stable key order.
func (d *Descriptor) Marshal() ([]byte, error) {
	d.normalize()
	data, err := toml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode descriptor: %w", err)
	}
	return data, nil
}

// Save writes d to path atomically.
func (d *Descriptor) Save(fsys filesystem.FS, path string) error {
	data, err := d.Marshal()
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigWrite, "cannot encode descriptor")
	}
	if err := filesystem.WriteFileAtomic(fsys, path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "cannot write descriptor %s", path).
			WithDetail("path", path)
	}
	logger := logging.GetLogger("descriptor")
	logger.Debug().Str("path", path).Msg("Descriptor saved")
	return nil
}

// Update loads the descriptor at path, applies fn and saves the result,
// holding locker's lock on path for the whole cycle. If fn returns an
// error nothing is written.
func Update(fsys filesystem.FS, locker Locker, path string, fn func(*Descriptor) error) (*Descriptor, error) {
	unlock, err := locker.Lock(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if uerr := unlock(); uerr != nil {
			logger := logging.GetLogger("descriptor")
			logger.Warn().Err(uerr).Str("path", path).Msg("Failed to release descriptor lock")
		}
	}()

	d, err := Load(fsys, path)
	if err != nil {
		return nil, err
	}
	if err := fn(d); err != nil {
		return nil, err
	}
	if err := d.Save(fsys, path); err != nil {
		return nil, err
	}
	return d, nil
}

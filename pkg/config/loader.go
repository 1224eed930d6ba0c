package config

import (
	_ "embed"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/arthur-debert/deskset/pkg/errors"
	"github.com/arthur-debert/deskset/pkg/logging"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

//go:embed embedded/defaults.toml
var defaultSettings []byte

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DESKSET_"

// flagKeys maps command-line flags to the settings key they override.
var flagKeys = map[string]string{
	"config": "descriptor.path",
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadOptions selects the optional layers of a settings load.
type LoadOptions struct {
	// SettingsFile is an explicit settings file. It must exist. When empty
	// DefaultSettingsFile is used if present.
	SettingsFile string
	// Flags contributes explicitly set flags listed in flagKeys.
	Flags *pflag.FlagSet
	// Overrides is applied last, above flags. Keys use dotted paths.
	Overrides map[string]interface{}
}

// Load builds Settings from every layer.
func Load(opts LoadOptions) (*Settings, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to load default settings")
	}

	// 2. Settings file
	path, err := settingsFile(opts.SettingsFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrSettingsLoad, "failed to load settings from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded settings file")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to load environment settings")
	}

	// 4. Flags, only the ones the operator actually set
	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		}), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to load flag settings")
		}
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to apply setting overrides")
		}
	}

	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			TagName:          "koanf",
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to decode settings")
	}

	if err := validateSettings(&s); err != nil {
		return nil, err
	}

	logger.Trace().Interface("settings", k.All()).Msg("Settings resolved")
	return &s, nil
}

func settingsFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrSettingsLoad, "settings file not found: %s", explicit).
				WithDetail("path", explicit)
		}
		return explicit, nil
	}

	path := DefaultSettingsFile()
	if _, err := os.Stat(path); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", errors.Wrapf(err, errors.ErrSettingsLoad, "cannot read settings file %s", path)
	}
	return path, nil
}

// envKey turns DESKSET_PACKAGES__NATIVE into packages.native.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("koanf")
	})
	return v
}

func validateSettings(s *Settings) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(err, errors.ErrSettingsInvalid, "invalid settings")
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		key := strings.TrimPrefix(fe.Namespace(), "Settings.")
		switch fe.Tag() {
		case "required":
			problems = append(problems, key+" must not be empty")
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fe.Value()))
		case "nefield":
			problems = append(problems, fmt.Sprintf("%s must differ from packages.auxiliary", key))
		default:
			problems = append(problems, fmt.Sprintf("%s failed %s", key, fe.Tag()))
		}
	}
	return errors.Newf(errors.ErrSettingsInvalid, "invalid settings: %s", strings.Join(problems, "; ")).
		WithDetail("problems", problems)
}

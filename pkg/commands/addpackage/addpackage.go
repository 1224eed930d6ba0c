package addpackage

import (
	"context"
	stderrors "errors"

	"github.com/arthur-debert/deskset/pkg/classify"
	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/errors"
	"github.com/arthur-debert/deskset/pkg/filesystem"
	"github.com/arthur-debert/deskset/pkg/logging"
	"github.com/arthur-debert/deskset/pkg/manager"
)

// AddPackageOptions defines the options for AddPackage.
type AddPackageOptions struct {
	ConfigPath string
	// Manager names the package manager to search with.
	Manager string
	Package string
	// Category is the target bucket label. Empty or unknown means "other".
	Category string
	Registry *manager.Registry
	FS       filesystem.FS
	Locker   descriptor.Locker
}

// AddPackageResult reports where the package was recorded.
type AddPackageResult struct {
	Path    string            `json:"path" yaml:"path"`
	Package string            `json:"package" yaml:"package"`
	Manager string            `json:"manager" yaml:"manager"`
	Bucket  descriptor.Bucket `json:"bucket" yaml:"bucket"`
	// AlreadyPresent is set when the descriptor already listed the package,
	// in which case Bucket is where it was found and nothing was written.
	AlreadyPresent bool `json:"already_present" yaml:"already_present"`
}

var errAlreadyPresent = stderrors.New("package already listed")

// AddPackage checks that the manager is supported and can find the
// package, then records it in the descriptor.
func AddPackage(ctx context.Context, opts AddPackageOptions) (*AddPackageResult, error) {
	logger := logging.GetLogger("commands.addpackage")
	logger.Debug().
		Str("manager", opts.Manager).
		Str("package", opts.Package).
		Str("category", opts.Category).
		Msg("Executing command")

	if opts.Package == "" {
		return nil, errors.New(errors.ErrInvalidInput, "package name cannot be empty")
	}

	m, err := opts.Registry.Get(opts.Manager)
	if err != nil {
		return nil, err
	}

	found, err := m.Search(ctx, opts.Package)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Newf(errors.ErrPackageNotFound, "package not found: %s", opts.Package).
			WithDetail("package", opts.Package).
			WithDetail("manager", m.Name)
	}

	result := &AddPackageResult{
		Path:    opts.ConfigPath,
		Package: opts.Package,
		Manager: m.Name,
		Bucket:  classify.ResolveCategory(opts.Category),
	}
	if _, ok := descriptor.ParseBucket(opts.Category); opts.Category != "" && !ok {
		logger.Warn().Str("category", opts.Category).Msg("Unknown category, using other")
	}

	_, err = descriptor.Update(opts.FS, opts.Locker, opts.ConfigPath, func(d *descriptor.Descriptor) error {
		if existing, ok := d.Packages.Contains(opts.Package); ok {
			result.Bucket = existing
			return errAlreadyPresent
		}
		d.Packages.Append(result.Bucket, opts.Package)
		return nil
	})
	switch {
	case stderrors.Is(err, errAlreadyPresent):
		result.AlreadyPresent = true
		logger.Info().Str("package", opts.Package).Str("bucket", result.Bucket.String()).Msg("Package already listed")
	case err != nil:
		return nil, err
	default:
		logger.Info().Str("package", opts.Package).Str("bucket", result.Bucket.String()).Msg("Added package")
	}
	return result, nil
}

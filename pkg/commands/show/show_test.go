package show_test

import (
	"testing"

	"github.com/arthur-debert/deskset/pkg/commands/show"
	"github.com/arthur-debert/deskset/pkg/descriptor"
	"github.com/arthur-debert/deskset/pkg/errors"
	"github.com/arthur-debert/deskset/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowDescriptor(t *testing.T) {
	fs := filesystem.NewMemory()
	d := descriptor.New()
	d.Packages.Append(descriptor.BucketSystem, "htop")
	d.Packages.Append(descriptor.BucketOther, "htop")
	require.NoError(t, d.Save(fs, "/work/config.toml"))

	result, err := show.ShowDescriptor(fs, "/work/config.toml")
	require.NoError(t, err)
	assert.Equal(t, d, result.Descriptor)
	assert.Equal(t, []string{"htop"}, result.Duplicates)

	_, err = show.ShowDescriptor(fs, "/work/other.toml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigNotFound))
}

package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironment(t *testing.T) {
	env := NewEnvironment(t)

	info, err := env.FS.Stat("/work")
	assert.NoError(t, err)
	assert.True(t, info.IsDir())

	env.WriteFile("/work/locale.gen", "#en_US.UTF-8 UTF-8\n")
	assert.Equal(t, "#en_US.UTF-8 UTF-8\n", env.ReadFile("/work/locale.gen"))

	_, ok := env.Lookup("SHELL")
	assert.False(t, ok)

	env.Vars["SHELL"] = "/bin/zsh"
	v, ok := env.Lookup("SHELL")
	assert.True(t, ok)
	assert.Equal(t, "/bin/zsh", v)
}

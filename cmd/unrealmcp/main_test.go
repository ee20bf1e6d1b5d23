package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagsArgs(t *testing.T) {
	flags := parseFlagsArgs(nil)
	assert.Equal(t, "unrealmcp.yaml", flags.ConfigPath)
	assert.Equal(t, ".", flags.ProjectDir)
	assert.Empty(t, flags.ListenAddr)

	flags = parseFlagsArgs([]string{"-config", "custom.yaml", "-project", "/tmp/proj", "-listen", "127.0.0.1:4000"})
	assert.Equal(t, "custom.yaml", flags.ConfigPath)
	assert.Equal(t, "/tmp/proj", flags.ProjectDir)
	assert.Equal(t, "127.0.0.1:4000", flags.ListenAddr)
}

func TestShellRunner(t *testing.T) {
	out, err := shellRunner{}.Run("echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)

	_, err = shellRunner{}.Run("")
	require.Error(t, err)

	_, err = shellRunner{}.Run("definitely-not-a-real-binary")
	require.Error(t, err)
}

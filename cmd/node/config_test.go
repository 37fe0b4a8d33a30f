package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Morgane2t/decent-workshop-4/pkg/config"
)

func TestLoadPasswordFromFile(t *testing.T) {
	_, err := config.LoadConfig()
	require.NoError(t, err)

	passwordFile := filepath.Join(t.TempDir(), "badger_password")
	require.NoError(t, os.WriteFile(passwordFile, []byte("hunter2-but-longer\n"), 0600))

	require.NoError(t, loadPasswordFromFile(passwordFile))

	// The stored password must survive the zeroing of the local copy.
	assert.Equal(t, "hunter2-but-longer", config.BadgerPassword())
}

func TestLoadPasswordFromFileEmpty(t *testing.T) {
	_, err := config.LoadConfig()
	require.NoError(t, err)

	passwordFile := filepath.Join(t.TempDir(), "badger_password")
	require.NoError(t, os.WriteFile(passwordFile, []byte("  \n"), 0600))

	assert.Error(t, loadPasswordFromFile(passwordFile))
}

func TestLoadPasswordFromFileMissing(t *testing.T) {
	assert.Error(t, loadPasswordFromFile(filepath.Join(t.TempDir(), "nope")))
}

func TestMaskString(t *testing.T) {
	assert.Equal(t, "s******t", maskString("s3cr3pwt"))
	assert.Equal(t, "ab", maskString("ab"))
}

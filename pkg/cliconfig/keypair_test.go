package cliconfig

import (
	"crypto/ed25519"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeypairFile(t *testing.T, raw []int) string {
	b, err := json.Marshal(raw)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "keypair.json")
	require.NoError(t, os.WriteFile(path, b, 0o600))

	return path
}

func TestLoadKeypair(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	raw := make([]int, len(priv))
	for i, b := range priv {
		raw[i] = int(b)
	}

	loaded, err := LoadKeypair(writeKeypairFile(t, raw))
	require.NoError(t, err)
	assert.Equal(t, priv, loaded)
}

func TestLoadKeypair_Invalid(t *testing.T) {
	_, err := LoadKeypair(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "keypair.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))
	_, err = LoadKeypair(path)
	assert.Error(t, err)

	_, err = LoadKeypair(writeKeypairFile(t, make([]int, 32)))
	assert.Error(t, err)

	raw := make([]int, ed25519.PrivateKeySize)
	raw[0] = 300
	_, err = LoadKeypair(writeKeypairFile(t, raw))
	assert.Error(t, err)
}

func TestLoadProgramID(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	raw := make([]int, len(priv))
	for i, b := range priv {
		raw[i] = int(b)
	}

	program, err := LoadProgramID(writeKeypairFile(t, raw))
	require.NoError(t, err)
	assert.Equal(t, pub, program)

	_, err = LoadProgramID(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

package cliconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(
		"json_rpc_url: https://api.devnet.solana.com\n"+
			"keypair_path: /home/user/.config/solana/id.json\n",
	), 0o600))

	cfg, source := Load(path)
	assert.Equal(t, SourceFile, source)
	assert.Equal(t, "https://api.devnet.solana.com", cfg.JSONRPCURL)
	assert.Equal(t, "/home/user/.config/solana/id.json", cfg.KeypairPath)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, source := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Equal(t, SourceFallback, source)
	assert.Equal(t, DefaultEndpoint, cfg.JSONRPCURL)
	assert.Empty(t, cfg.KeypairPath)
}

func TestLoad_Unparseable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o600))

	cfg, source := Load(path)
	assert.Equal(t, SourceFallback, source)
	assert.Equal(t, DefaultEndpoint, cfg.JSONRPCURL)
}

func TestLoad_MissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("json_rpc_url: https://api.devnet.solana.com\n"), 0o600))

	cfg, source := Load(path)
	assert.Equal(t, SourceFallback, source)
	assert.Equal(t, DefaultEndpoint, cfg.JSONRPCURL)
}

func TestDefaultEndpoint(t *testing.T) {
	assert.Equal(t, "http://localhost:8899", DefaultEndpoint)
}

func TestSource_String(t *testing.T) {
	assert.Equal(t, "file", SourceFile.String())
	assert.Equal(t, "fallback", SourceFallback.String())
	assert.Equal(t, "unknown", Source(42).String())
}

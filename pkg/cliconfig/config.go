// Package cliconfig reads the configuration files maintained by the solana
// CLI tooling: the YAML config file with the RPC endpoint and keypair path,
// and the JSON keypair files themselves.
package cliconfig

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/gaylonalfano/solana-rust-helloworld/pkg/solana"
)

// DefaultEndpoint is used when no config file is available.
const DefaultEndpoint = string(solana.EnvironmentLocal)

// Source indicates where a resolved Config came from.
type Source uint8

const (
	// SourceFile indicates the config was read from the CLI config file.
	SourceFile Source = iota
	// SourceFallback indicates the config file was missing or unusable and
	// hard-coded defaults were applied.
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceFile:
		return "file"
	case SourceFallback:
		return "fallback"
	}
	return "unknown"
}

// Config is the subset of the solana CLI config file this client uses.
type Config struct {
	JSONRPCURL  string `yaml:"json_rpc_url"`
	KeypairPath string `yaml:"keypair_path"`
}

// DefaultPath returns the per-user location of the solana CLI config file.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to resolve home directory")
	}

	return filepath.Join(home, ".config", "solana", "cli", "config.yml"), nil
}

// Load reads the CLI config file at path. A missing, unparseable, or
// incomplete file is not an error: the returned Source is SourceFallback and
// the config holds the default local endpoint with no keypair path. The
// caller is expected to generate a fresh identity on fallback.
func Load(path string) (Config, Source) {
	log := logrus.StandardLogger().WithField("type", "cliconfig")

	fallback := Config{JSONRPCURL: DefaultEndpoint}

	b, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Warnf("unable to read CLI config at %s, using defaults", path)
		return fallback, SourceFallback
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		log.WithError(err).Warnf("unable to parse CLI config at %s, using defaults", path)
		return fallback, SourceFallback
	}

	if cfg.JSONRPCURL == "" || cfg.KeypairPath == "" {
		log.Warnf("CLI config at %s is missing required fields, using defaults", path)
		return fallback, SourceFallback
	}

	return cfg, SourceFile
}

package cliconfig

import (
	"crypto/ed25519"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// LoadKeypair reads a solana keypair file: a JSON array of the 64 raw
// private key bytes.
func LoadKeypair(path string) (ed25519.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read keypair file %s", path)
	}

	// The file is a JSON array of numbers, which encoding/json will not
	// decode directly into a []byte (it expects base64 for those).
	var raw []uint16
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, errors.Wrapf(err, "invalid keypair file %s", path)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("invalid keypair length: %d (expected %d)", len(raw), ed25519.PrivateKeySize)
	}

	key := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	for i, v := range raw {
		if v > 255 {
			return nil, errors.Errorf("invalid byte value in keypair file: %d", v)
		}
		key[i] = byte(v)
	}

	return key, nil
}

// LoadProgramID reads the public address out of a program's deployment
// keypair file. The private half is never used for signing by this client.
func LoadProgramID(path string) (ed25519.PublicKey, error) {
	keypair, err := LoadKeypair(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read program keypair; run `solana program deploy` to build and deploy the program")
	}

	return keypair.Public().(ed25519.PublicKey), nil
}

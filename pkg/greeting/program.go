package greeting

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/gaylonalfano/solana-rust-helloworld/pkg/solana"
)

// SayHello builds the single program instruction: the encoded greeting
// payload addressed to the program, with the greeting account as the only
// account reference, writable and non-signing.
func SayHello(program, account ed25519.PublicKey, data []byte) solana.Instruction {
	// # Account references
	//   0. [WRITE] Greeting account
	return solana.NewInstruction(
		program,
		data,
		solana.NewAccountMeta(account, false),
	)
}

type DecompiledSayHello struct {
	Account ed25519.PublicKey
	Data    []byte
}

func DecompileSayHello(m solana.Message, program ed25519.PublicKey, index int) (*DecompiledSayHello, error) {
	if index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]

	if !bytes.Equal(m.Accounts[i.ProgramIndex], program) {
		return nil, solana.ErrIncorrectProgram
	}
	if len(i.Accounts) != 1 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}

	return &DecompiledSayHello{
		Account: m.Accounts[i.Accounts[0]],
		Data:    i.Data,
	}, nil
}

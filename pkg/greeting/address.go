package greeting

import (
	"crypto/ed25519"

	"github.com/gaylonalfano/solana-rust-helloworld/pkg/solana"
)

// AccountSeed is the literal seed used to derive the greeting account from
// the payer. Re-running the client with the same payer and program always
// resolves to the same account, so its address never needs to be recorded.
const AccountSeed = "hello"

// DeriveAccountAddress deterministically derives the greeting account
// address for the given payer and program. No network access is required.
func DeriveAccountAddress(payer, program ed25519.PublicKey) (ed25519.PublicKey, error) {
	return solana.CreateWithSeed(payer, AccountSeed, program)
}

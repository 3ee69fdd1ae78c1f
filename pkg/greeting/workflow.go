package greeting

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gaylonalfano/solana-rust-helloworld/pkg/cliconfig"
	"github.com/gaylonalfano/solana-rust-helloworld/pkg/retry"
	"github.com/gaylonalfano/solana-rust-helloworld/pkg/retry/backoff"
	"github.com/gaylonalfano/solana-rust-helloworld/pkg/solana"
	"github.com/gaylonalfano/solana-rust-helloworld/pkg/solana/system"
)

const (
	// feeSafetyMultiplier scales the per-signature fee when estimating how
	// many lamports the payer needs, so one funding round covers the whole
	// run.
	feeSafetyMultiplier = 100

	// Poll rate is ~2x the slot rate, and we want to wait ~32 slots.
	airdropPollLimit = 2 * 32
)

var (
	ErrProgramNotDeployed   = errors.New("program account not found; deploy the program with `solana program deploy` first")
	ErrProgramNotExecutable = errors.New("program account exists but is not executable")
	ErrAccountNotFound      = errors.New("greeting account not found; run the client once to create it")
)

// Connect resolves the RPC endpoint from the CLI config file (falling back
// to the local cluster default) and probes the cluster with getVersion.
func Connect(configPath string) (solana.Client, cliconfig.Config, error) {
	log := logrus.StandardLogger().WithField("type", "greeting/workflow")

	cfg, source := cliconfig.Load(configPath)

	client := solana.New(cfg.JSONRPCURL)
	version, err := client.GetVersion()
	if err != nil {
		return nil, cfg, errors.Wrapf(err, "failed to connect to cluster at %s", cfg.JSONRPCURL)
	}

	log.WithFields(logrus.Fields{
		"endpoint": cfg.JSONRPCURL,
		"version":  version,
		"source":   source.String(),
	}).Info("connected to cluster")

	return client, cfg, nil
}

// Workflow drives one run of the client against a single cluster, payer,
// program, and greeting account. All handles are assigned exactly once by
// the corresponding step and read thereafter.
type Workflow struct {
	log    *logrus.Entry
	client solana.Client
	state  State

	keypairPath        string
	programKeypairPath string

	payer   ed25519.PrivateKey
	program ed25519.PublicKey
	account ed25519.PublicKey
}

type Option func(*Workflow)

// WithKeypairPath sets the payer keypair file path, typically from the CLI
// config. An empty path means a fresh payer is always generated.
func WithKeypairPath(path string) Option {
	return func(w *Workflow) {
		w.keypairPath = path
	}
}

// WithProgramKeypairPath sets the path of the program's deployment keypair
// file.
func WithProgramKeypairPath(path string) Option {
	return func(w *Workflow) {
		w.programKeypairPath = path
	}
}

func NewWorkflow(client solana.Client, state State, opts ...Option) *Workflow {
	w := &Workflow{
		log:    logrus.StandardLogger().WithField("type", "greeting/workflow"),
		client: client,
		state:  state,
	}

	for _, o := range opts {
		o(w)
	}

	return w
}

func (w *Workflow) Payer() ed25519.PublicKey {
	return w.payer.Public().(ed25519.PublicKey)
}

func (w *Workflow) Program() ed25519.PublicKey {
	return w.program
}

func (w *Workflow) Account() ed25519.PublicKey {
	return w.account
}

// FeeEstimate returns the lamports the payer needs for one run: the
// rent-exemption minimum for the greeting payload, plus the per-signature
// fee with a generous safety margin.
func (w *Workflow) FeeEstimate() (uint64, error) {
	rent, err := w.client.GetMinimumBalanceForRentExemption(uint64(w.state.Size()))
	if err != nil {
		return 0, errors.Wrap(err, "failed to get rent exemption minimum")
	}

	// A representative invoke message; the network prices fees by signature
	// count, so the exact account keys don't matter here.
	sample := solana.NewTransaction(
		w.Payer(),
		SayHello(make(ed25519.PublicKey, ed25519.PublicKeySize), make(ed25519.PublicKey, ed25519.PublicKeySize), nil),
	)
	feePerSig, err := w.client.GetFeeForMessage(sample.Message)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get fee for message")
	}

	return rent + feePerSig*feeSafetyMultiplier, nil
}

// EstablishPayer produces a signing identity holding at least FeeEstimate
// lamports. It loads the configured keypair when possible, generating and
// funding a fresh one otherwise, and in either case tops up any shortfall
// from the faucet. Faucet failures are fatal.
func (w *Workflow) EstablishPayer() error {
	var fresh bool
	if w.keypairPath != "" {
		payer, err := cliconfig.LoadKeypair(w.keypairPath)
		if err != nil {
			w.log.WithError(err).Warn("unable to load payer keypair, generating a new one")
		} else {
			w.payer = payer
		}
	}

	if w.payer == nil {
		_, payer, err := ed25519.GenerateKey(nil)
		if err != nil {
			return errors.Wrap(err, "failed to generate payer keypair")
		}

		w.payer = payer
		fresh = true
	}

	estimate, err := w.FeeEstimate()
	if err != nil {
		return err
	}

	if fresh {
		w.log.WithField("payer", base58.Encode(w.Payer())).Info("funding freshly generated payer")
		if err := w.requestAirdrop(estimate); err != nil {
			return errors.Wrap(err, "failed to fund new payer")
		}
	}

	balance, err := w.client.GetBalance(w.Payer())
	if errors.Is(err, solana.ErrNoBalance) {
		balance = 0
	} else if err != nil {
		return errors.Wrap(err, "failed to get payer balance")
	}

	if balance < estimate {
		w.log.WithFields(logrus.Fields{
			"balance":  balance,
			"estimate": estimate,
		}).Info("payer balance below fee estimate, requesting shortfall")

		if err := w.requestAirdrop(estimate - balance); err != nil {
			return errors.Wrap(err, "failed to top up payer")
		}
	}

	return nil
}

func (w *Workflow) requestAirdrop(lamports uint64) error {
	sig, err := w.client.RequestAirdrop(w.Payer(), lamports, solana.CommitmentConfirmed)
	if err != nil {
		return err
	}

	errNotConfirmed := errors.New("airdrop not confirmed")
	_, err = retry.Retry(
		func() error {
			confirmed, err := w.client.GetConfirmationStatus(sig, solana.CommitmentConfirmed)
			if err != nil {
				return err
			}
			if !confirmed {
				return errNotConfirmed
			}
			return nil
		},
		retry.RetriableErrors(errNotConfirmed),
		retry.Limit(airdropPollLimit),
		retry.Backoff(backoff.Constant(solana.PollRate), solana.PollRate),
	)
	if err != nil {
		return errors.Wrap(err, "airdrop was not confirmed")
	}

	return nil
}

// CheckProgram loads the program address from its deployment keypair file
// and verifies the corresponding on-chain account exists and is executable.
func (w *Workflow) CheckProgram() error {
	program, err := cliconfig.LoadProgramID(w.programKeypairPath)
	if err != nil {
		return err
	}
	w.program = program

	info, err := w.client.GetAccountInfo(w.program, solana.CommitmentConfirmed)
	if errors.Is(err, solana.ErrNoAccountInfo) {
		return ErrProgramNotDeployed
	}
	if err != nil {
		return errors.Wrap(err, "failed to get program account info")
	}

	if !info.Executable {
		return ErrProgramNotExecutable
	}

	w.log.WithField("program", base58.Encode(w.program)).Info("using program")

	return nil
}

// EnsureAccount derives the greeting account address and lazily provisions
// it: if no on-chain state exists, a single transaction creates the account
// at the derived address, funds it to the rent-exemption minimum, allocates
// exactly the payload size, and assigns it to the program. If the account
// already exists, the call is a no-op.
func (w *Workflow) EnsureAccount() error {
	account, err := DeriveAccountAddress(w.Payer(), w.program)
	if err != nil {
		return errors.Wrap(err, "failed to derive greeting account address")
	}
	w.account = account

	_, err = w.client.GetAccountInfo(w.account, solana.CommitmentConfirmed)
	if err == nil {
		w.log.WithField("account", base58.Encode(w.account)).Info("greeting account already exists")
		return nil
	}
	if !errors.Is(err, solana.ErrNoAccountInfo) {
		return errors.Wrap(err, "failed to get greeting account info")
	}

	size := uint64(w.state.Size())
	rent, err := w.client.GetMinimumBalanceForRentExemption(size)
	if err != nil {
		return errors.Wrap(err, "failed to get rent exemption minimum")
	}

	txn := solana.NewTransaction(
		w.Payer(),
		system.CreateAccountWithSeed(w.Payer(), w.account, w.Payer(), w.program, AccountSeed, rent, size),
	)
	if err := w.signAndSubmit(&txn); err != nil {
		return errors.Wrap(err, "failed to create greeting account")
	}

	w.log.WithFields(logrus.Fields{
		"account": base58.Encode(w.account),
		"size":    size,
		"rent":    rent,
	}).Info("created greeting account")

	return nil
}

// SayHello encodes the current payload and submits it in a single
// instruction to the program, signed solely by the payer.
func (w *Workflow) SayHello() error {
	data, err := w.state.Marshal()
	if err != nil {
		return errors.Wrap(err, "failed to encode greeting payload")
	}

	txn := solana.NewTransaction(
		w.Payer(),
		SayHello(w.program, w.account, data),
	)
	if err := w.signAndSubmit(&txn); err != nil {
		return errors.Wrap(err, "failed to say hello")
	}

	w.log.WithField("account", base58.Encode(w.account)).Info("said hello")

	return nil
}

// Report fetches the greeting account's current bytes and decodes them into
// the workflow's state.
func (w *Workflow) Report() (State, error) {
	info, err := w.client.GetAccountInfo(w.account, solana.CommitmentConfirmed)
	if errors.Is(err, solana.ErrNoAccountInfo) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get greeting account info")
	}

	if err := w.state.Unmarshal(info.Data); err != nil {
		return nil, err
	}

	w.log.WithField("state", w.state.String()).Info("reported greeting")

	return w.state, nil
}

// Run executes the full fixed sequence after a connection has been
// established: payer, program, account, invoke, report.
func (w *Workflow) Run() (State, error) {
	if err := w.EstablishPayer(); err != nil {
		return nil, err
	}
	if err := w.CheckProgram(); err != nil {
		return nil, err
	}
	if err := w.EnsureAccount(); err != nil {
		return nil, err
	}
	if err := w.SayHello(); err != nil {
		return nil, err
	}
	return w.Report()
}

func (w *Workflow) signAndSubmit(txn *solana.Transaction) error {
	bh, err := w.client.GetLatestBlockhash()
	if err != nil {
		return errors.Wrap(err, "failed to get latest blockhash")
	}
	txn.SetBlockhash(bh)

	if err := txn.Sign(w.payer); err != nil {
		return errors.Wrap(err, "failed to sign transaction")
	}

	sig, err := w.client.SubmitTransaction(*txn, solana.CommitmentConfirmed)
	if err != nil {
		return errors.Wrap(err, "failed to submit transaction")
	}

	if _, err := w.client.GetSignatureStatus(sig, solana.CommitmentConfirmed); err != nil {
		return errors.Wrap(err, "transaction was not confirmed")
	}

	return nil
}

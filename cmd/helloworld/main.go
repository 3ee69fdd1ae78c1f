package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gaylonalfano/solana-rust-helloworld/pkg/cliconfig"
	"github.com/gaylonalfano/solana-rust-helloworld/pkg/greeting"
)

const defaultProgramKeypairPath = "dist/program/helloworld-keypair.json"

var (
	configPath         string
	programKeypairPath string
	message            string
	useCounter         bool
)

var rootCmd = &cobra.Command{
	Use:          "helloworld",
	Short:        "Say hello to an on-chain program and read back the greeting",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "solana CLI config file (default: the per-user CLI config)")
	rootCmd.Flags().StringVar(&programKeypairPath, "program-keypair", defaultProgramKeypairPath, "program deployment keypair file")
	rootCmd.Flags().StringVar(&message, "message", "Hello1234567", "greeting text to store")
	rootCmd.Flags().BoolVar(&useCounter, "counter", false, "store a greeting counter instead of a text message")
}

func run(cmd *cobra.Command, args []string) error {
	if configPath == "" {
		resolved, err := cliconfig.DefaultPath()
		if err != nil {
			return err
		}
		configPath = resolved
	}

	client, cfg, err := greeting.Connect(configPath)
	if err != nil {
		return err
	}

	var state greeting.State
	if useCounter {
		state = &greeting.Counter{Count: 1}
	} else {
		state = &greeting.Message{Text: message}
	}

	workflow := greeting.NewWorkflow(
		client,
		state,
		greeting.WithKeypairPath(cfg.KeypairPath),
		greeting.WithProgramKeypairPath(programKeypairPath),
	)

	result, err := workflow.Run()
	if err != nil {
		return err
	}

	logrus.WithField("state", result.String()).Info("success")

	return nil
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

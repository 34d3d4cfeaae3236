package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Madhav-sp/All-ai-models/pkg/logger"
	"github.com/Madhav-sp/All-ai-models/relay"
)

const relayLongDesc string = `Run the chat relay server.

The relay validates inbound chat requests, forwards them to the
configured upstream provider, and serves the upstream model catalog.
Credentials are read from the environment (OPENROUTER_API_KEY,
ASSISTANT_API_KEY); everything else can come from flags, environment
variables, or an optional TOML config file.

Examples:
  OPENROUTER_API_KEY=sk-... relay
  relay --config relay.toml --listen :9090 --debug`

type relayCommander struct {
	configPath string
	listenAddr string
	debug      bool
}

func newRelayCmd() *cobra.Command {
	cmder := &relayCommander{}

	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Run the chat relay server",
		Long:  relayLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.configPath, "config", "c", "", "Path to TOML config file")
	cmd.Flags().StringVarP(&cmder.listenAddr, "listen", "l", "", "Address to listen on (overrides config)")
	cmd.Flags().BoolVar(&cmder.debug, "debug", false, "Enable debug logging")

	return cmd
}

func (c *relayCommander) run() error {
	config, err := relay.LoadConfig(c.configPath)
	if err != nil {
		return fmt.Errorf("could not load configuration: %w", err)
	}
	if c.listenAddr != "" {
		config.ListenAddr = c.listenAddr
	}

	log := logger.New(config.Production(), c.debug)
	defer log.Sync()

	log.Info("chat relay starting",
		zap.String("listen", config.ListenAddr),
		zap.String("environment", config.Environment),
	)

	r, err := relay.New(config, log)
	if err != nil {
		return fmt.Errorf("could not create relay: %w", err)
	}

	if err := r.Run(); err != nil {
		return fmt.Errorf("relay server failed: %w", err)
	}
	return nil
}

func main() {
	if err := newRelayCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

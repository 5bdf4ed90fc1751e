// Package main provides the CLI entrypoint for the bulk SMS scheduler.
// It wires subcommands (send, validate), loads configuration, and
// initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"smsblast/internal/config"
	"smsblast/pkg/logger"
	"smsblast/pkg/messenger"
	"smsblast/pkg/messenger/twilio"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newMessenger creates the Twilio-backed messenger client using configuration
// values. The HTTP timeout from the config bounds every provider call.
func newMessenger(cfg *config.Config) messenger.Client {
	return twilio.New(&http.Client{Timeout: cfg.Twilio.Timeout}, twilio.Options{
		BaseURL:             cfg.Twilio.APIBaseURL,
		AccountSID:          cfg.Twilio.AccountSID,
		AuthToken:           cfg.Twilio.AuthToken,
		MessagingServiceSID: cfg.Twilio.MessagingServiceSID,
	})
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use: "smsblast",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file ", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		sendCommand(cfg),
		validateCommand(),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}

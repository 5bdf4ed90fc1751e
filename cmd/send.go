package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"smsblast/internal/batch"
	"smsblast/internal/config"
	"smsblast/pkg/logger"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// confirm prints a prompt and waits for the operator to press Enter. It
// returns false when the context is cancelled (Ctrl+C) or stdin closes
// before a line arrives.
func confirm(ctx context.Context, recipients int, sendAt time.Time) bool {
	fmt.Printf("Scheduling %d messages for delivery at %s.\n", recipients, sendAt.Format(time.RFC3339))
	fmt.Print("Press Enter to continue, or Ctrl+C to abort. ")

	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(os.Stdin).ReadString('\n')
		done <- err
	}()

	select {
	case <-ctx.Done():
		return false
	case err := <-done:
		return err == nil
	}
}

func sendCommand(cfg *config.Config) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "send <numbers-file>",
		Short: "Schedules one SMS per unique valid number in the input file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// config is validated at load time, so SendTime cannot fail here
			sendAt, _ := cfg.SendTime()

			roster, err := batch.LoadRecipients(args[0])
			if err != nil {
				logger.Fatal(ctx, "could not load recipients", zap.Error(err))
			}

			logger.Info(ctx, "loaded recipients",
				zap.Int("unique", len(roster.Recipients)),
				zap.Int("skipped", len(roster.Skipped)))

			if !yes && !confirm(ctx, len(roster.Recipients), sendAt) {
				logger.Fatal(ctx, "aborted before dispatch")
			}

			runner := batch.New(newMessenger(cfg), batch.NewOptions(cfg))
			result := runner.Run(ctx, roster)

			// per-recipient failures are captured in the report, not fatal
			batch.WriteReport(os.Stdout, result)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

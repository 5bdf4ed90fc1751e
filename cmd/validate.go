package main

import (
	"context"
	"os"
	"smsblast/internal/batch"
	"smsblast/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func validateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <numbers-file>",
		Short: "Parses and validates the input file without sending anything",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			roster, err := batch.LoadRecipients(args[0])
			if err != nil {
				logger.Fatal(ctx, "could not load recipients", zap.Error(err))
			}

			batch.WriteRoster(os.Stdout, roster)
		},
	}

	return cmd
}

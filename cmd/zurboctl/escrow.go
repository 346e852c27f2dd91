package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newEscrowCmd(wire wireFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "escrow",
		Short: "Escrow release operations",
	}

	cmd.AddCommand(newEscrowRetryCmd(wire))

	return cmd
}

func newEscrowRetryCmd(wire wireFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "retry-release <order-id>",
		Short: "Retry the escrow release of a fully confirmed order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid order id %q: %w", args[0], err)
			}
			a, stop, err := wire(cmd.Context())
			if err != nil {
				return err
			}
			defer stop()

			result, err := a.confirmations.RetryRelease(cmd.Context(), orderID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case result.Released:
				_, _ = fmt.Fprintf(out, "order %s released\n", orderID)
				return nil
			case result.ReleaseErr != nil:
				_, _ = fmt.Fprintf(out, "order %s still pending\n", orderID)
				return fmt.Errorf("release failed: %w", result.ReleaseErr)
			default:
				_, _ = fmt.Fprintf(out, "order %s still pending: another release is in progress\n", orderID)
				return nil
			}
		},
	}
}

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"zurbo/internal/usecase"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newUsageCmd(wire wireFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Inspect or reset per-client usage limits",
	}

	cmd.AddCommand(
		newUsageShowCmd(wire),
		newUsageUnblockCmd(wire),
	)

	return cmd
}

func newUsageShowCmd(wire wireFunc) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <user-id>",
		Short: "Print a client's usage counters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}
			a, stop, err := wire(cmd.Context())
			if err != nil {
				return err
			}
			defer stop()

			view, err := a.guard.Usage(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return printUsage(cmd.OutOrStdout(), view, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newUsageUnblockCmd(wire wireFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "unblock <user-id>",
		Short: "Clear a client's cool-down block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}
			a, stop, err := wire(cmd.Context())
			if err != nil {
				return err
			}
			defer stop()

			view, err := a.guard.Unblock(cmd.Context(), userID)
			if err != nil {
				return err
			}
			return printUsage(cmd.OutOrStdout(), view, false)
		},
	}
}

func printUsage(w io.Writer, v *usecase.UsageView, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	blockedUntil := "-"
	if v.BlockedUntil != nil {
		blockedUntil = v.BlockedUntil.Format("2006-01-02 15:04:05 -0700")
	}
	lastRequest := "-"
	if v.LastRequestAt != nil {
		lastRequest = v.LastRequestAt.Format("2006-01-02 15:04:05 -0700")
	}

	_, _ = fmt.Fprintf(w, "user:           %s\n", v.UserID)
	_, _ = fmt.Fprintf(w, "this hour:      %d/%d\n", v.RequestsThisHour, v.Limits.MaxPerHour)
	_, _ = fmt.Fprintf(w, "this day:       %d/%d\n", v.RequestsThisDay, v.Limits.MaxPerDay)
	_, _ = fmt.Fprintf(w, "active:         %d/%d\n", v.ActiveRequestCount, v.Limits.MaxActive)
	_, _ = fmt.Fprintf(w, "last request:   %s\n", lastRequest)
	_, _ = fmt.Fprintf(w, "blocked:        %t (until %s)\n", v.Blocked, blockedUntil)
	return nil
}

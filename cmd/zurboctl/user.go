package main

import (
	"fmt"

	"zurbo/internal/usecase/commands"

	"github.com/spf13/cobra"
)

func newUserCmd(wire wireFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	cmd.AddCommand(newUserCreateCmd(wire))

	return cmd
}

func newUserCreateCmd(wire wireFunc) *cobra.Command {
	var in commands.CreateUserInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a client, provider or admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, stop, err := wire(cmd.Context())
			if err != nil {
				return err
			}
			defer stop()

			id, err := a.users.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "login email")
	cmd.Flags().StringVar(&in.Password, "password", "", "initial password (min 8 chars)")
	cmd.Flags().StringVar(&in.Role, "role", "client", "client, provider or admin")
	cmd.Flags().StringVar(&in.DisplayName, "name", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

package main

import (
	"context"
	"fmt"

	"zurbo/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/spf13/cobra"
)

// schemaApplier is the slice of atlasexec the migrate command needs.
type schemaApplier interface {
	SchemaApply(ctx context.Context, params *atlasexec.SchemaApplyParams) (*atlasexec.SchemaApply, error)
}

func newAtlasApplier(bin string) (schemaApplier, error) {
	return atlasexec.NewClient(".", bin)
}

func newMigrateCmd(load func() (config.Config, error), newApplier func(bin string) (schemaApplier, error)) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Bring the database schema in line with the schema file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			applier, err := newApplier(cfg.Migration.AtlasBin)
			if err != nil {
				return fmt.Errorf("init atlas client: %w", err)
			}

			res, err := applier.SchemaApply(cmd.Context(), &atlasexec.SchemaApplyParams{
				URL:         cfg.DB.BuildDSN(),
				To:          "file://" + cfg.Migration.SchemaFile,
				DevURL:      cfg.Migration.DevURL,
				AutoApprove: true,
				DryRun:      dryRun,
			})
			if err != nil {
				return fmt.Errorf("apply schema: %w", err)
			}

			verb := "applied"
			if dryRun {
				verb = "planned"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d statement(s) %s\n", countChanges(res, dryRun), verb)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the plan without executing it")
	return cmd
}

func countChanges(res *atlasexec.SchemaApply, dryRun bool) int {
	if res == nil {
		return 0
	}
	if dryRun {
		return len(res.Changes.Pending)
	}
	return len(res.Changes.Applied)
}

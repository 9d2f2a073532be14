package main

import (
	"fmt"

	"github.com/brandonbohn/adebackend/common/database"
	"github.com/brandonbohn/adebackend/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func migrateCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Long: `Apply the embedded SQL migrations that are not yet recorded in
schema_migrations. Each file runs in its own transaction.

Examples:
  ade-admin migrate
  ade-admin migrate --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if dryRun {
				pending, err := migrations.Pending(ctx, db)
				if err != nil {
					return err
				}
				if len(pending) == 0 {
					fmt.Fprintln(out, "Schema is up to date")
					return nil
				}
				for _, m := range pending {
					fmt.Fprintf(out, "pending  %s (%d statements)\n", m.Name, len(migrations.Statements(m.SQL)))
				}
				fmt.Fprintln(out, "Dry run - no changes made")
				return nil
			}

			applied, err := migrations.Apply(ctx, db)
			for _, name := range applied {
				fmt.Fprintf(out, "applied  %s\n", name)
			}
			if err != nil {
				return err
			}
			a.logger.Info("Migrations applied", zap.Int("count", len(applied)))
			if len(applied) == 0 {
				fmt.Fprintln(out, "Schema is up to date")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list pending migrations without applying them")
	return cmd
}

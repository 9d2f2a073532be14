package main

import (
	"fmt"
	"os"
	"time"

	"github.com/brandonbohn/adebackend/common/database"
	"github.com/brandonbohn/adebackend/internal/repository"
	"github.com/brandonbohn/adebackend/internal/service"

	"github.com/spf13/cobra"
)

func exportCmd(a *app) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:       "export <donations|donors>",
		Short:     "Write a spreadsheet export",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"donations", "donors"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			if kind != "donations" && kind != "donors" {
				return fmt.Errorf("unknown export %q: want donations or donors", kind)
			}
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)
			admin := service.NewAdminService(repository.NewPostgresStore(db), a.logger)

			var data []byte
			if kind == "donations" {
				data, err = admin.ExportDonations(cmd.Context())
			} else {
				data, err = admin.ExportDonors(cmd.Context())
			}
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = fmt.Sprintf("%s-%s.xlsx", kind, time.Now().UTC().Format("20060102"))
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", outPath, len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default <kind>-<date>.xlsx)")
	return cmd
}

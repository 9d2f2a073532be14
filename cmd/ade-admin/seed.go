package main

import (
	"fmt"
	"os"

	"github.com/brandonbohn/adebackend/common/database"
	"github.com/brandonbohn/adebackend/internal/repository"
	"github.com/brandonbohn/adebackend/internal/seed"
	"github.com/brandonbohn/adebackend/internal/service"

	"github.com/spf13/cobra"
)

func seedCmd(a *app) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load payment options and content sections from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fh, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer fh.Close()
			f, err := seed.Load(fh)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if check {
				fmt.Fprintf(out, "%s: %d payment options, sections %v\n", args[0], len(f.PaymentOptions), f.Sections())
				return nil
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer database.Close(db)
			st := repository.NewPostgresStore(db)
			kv, closeKV := a.contentCache(cmd.Context())
			defer closeKV()

			res, err := seed.Apply(cmd.Context(),
				f,
				service.NewPaymentOptionService(st.PaymentOptions, a.logger),
				service.NewContentService(st.Content, kv, a.cfg.Content.CacheTTL, a.logger),
			)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "payment options: %d created, %d already present\ncontent sections: %d written\n",
				res.OptionsCreated, res.OptionsSkipped, res.Sections)
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "validate the file without writing")
	return cmd
}

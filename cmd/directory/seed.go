package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/directory/internal/directory/app"
	"github.com/aussiebroadwan/directory/internal/directory/service"
	"github.com/aussiebroadwan/directory/pkg/slogx"
)

func newSeedCmd() *cobra.Command {
	var (
		file      string
		domain    string
		bootstrap string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Initialise the relational store and load seed accounts",
		Long: `Creates the schema, the default domain and the admin, user and guest
roles if they are missing, then loads accounts from a JSON or YAML array.
Accounts whose username or email already exists are skipped, so seed can be
run repeatedly.`,
		Example: `  directory seed --file users.yaml
  directory seed --file users.json --bootstrap ops@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Relational() {
				return errors.New("seed requires the relational directory backend")
			}

			opts := cfg.SeedOptions()
			if file != "" {
				opts.UsersFile = file
			}
			if domain != "" {
				opts.DomainName = domain
			}
			if bootstrap != "" {
				opts.BootstrapAccount = bootstrap
			}

			db, err := app.OpenStore(cfg.DatabaseFile)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			ctx := slogx.WithContext(cmd.Context(), app.NewLogger(cfg))
			report, err := (&service.SeedService{Store: db}).Run(ctx, opts)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %d, skipped %d, failed %d\n",
				report.Created, report.Skipped, report.Failed)
			if report.Failed > 0 {
				return fmt.Errorf("%d seed accounts failed", report.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "seed accounts file (JSON or YAML array)")
	cmd.Flags().StringVar(&domain, "domain", "", "default domain name (default \"localhost\")")
	cmd.Flags().StringVar(&bootstrap, "bootstrap", "", "account granted the admin role (default \"admin@localhost\")")
	return cmd
}

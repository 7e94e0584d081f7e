package main

import (
	"fmt"
	"os"

	"nova-library/internal/adapters/persistence/store"
	"nova-library/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outDir  string
		baseURL string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the opening collection and print its QR labels",
		Long: "Inserts the opening collection into the table store selected by STORE_DRIVER " +
			"and writes one QR label per inserted copy, each linking to the express checkout of that copy.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if baseURL == "" {
				baseURL = cfg.Storefront.PublicBaseURL
			}

			st, err := store.Open(cfg)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			seeder := config.NewSeeder(st.Inventory, baseURL, cmd.OutOrStdout())
			seeder.QRDir = outDir
			seeder.DryRun = dryRun
			seeder.Run(cmd.Context(), config.OpeningCatalog)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", config.DefaultQRDir, "directory for the QR label PNGs (empty skips labels)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "public storefront URL encoded in the labels (default PUBLIC_BASE_URL)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list the collection without writing anything")
	return cmd
}

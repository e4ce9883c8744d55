package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded Postgres schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.newApp()
			if err != nil {
				return err
			}
			defer engine.Close()

			if err := engine.Migrate(cmd.Context()); err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), opts.Format, map[string]string{"status": "migrated"}, "schema applied")
		},
	}
}

func NewSeedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load events, tiers, promo codes and users from a YAML fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := opts.newApp()
			if err != nil {
				return err
			}
			defer engine.Close()

			if err := engine.ApplySeed(cmd.Context(), args[0]); err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), opts.Format, map[string]string{"seeded": args[0]}, "seeded "+args[0])
		},
	}
}

type SweepResult struct {
	Reservations int `json:"reservations_expired"`
	Transfers    int `json:"transfers_expired"`
}

func NewSweepCommand(opts *RootOptions) *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run one expiry pass over reservations and transfers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if batchSize <= 0 {
				return fmt.Errorf("--batch must be positive")
			}

			engine, err := opts.newApp()
			if err != nil {
				return err
			}
			defer engine.Close()

			var result SweepResult
			if result.Reservations, err = engine.Reservations.ExpireSweep(cmd.Context(), batchSize); err != nil {
				return fmt.Errorf("reservation sweep: %w", err)
			}
			if result.Transfers, err = engine.Transfers.ExpireSweep(cmd.Context(), batchSize); err != nil {
				return fmt.Errorf("transfer sweep: %w", err)
			}

			text := fmt.Sprintf("reservations expired: %d\ntransfers expired: %d", result.Reservations, result.Transfers)
			return write(cmd.OutOrStdout(), opts.Format, result, text)
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch", 500, "maximum records expired per kind")
	return cmd
}

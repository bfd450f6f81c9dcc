package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/packs/internal/seed"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	File string
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the initial packs",
		Long: `Create the initial packs and their items in the configured database.

Packs that already exist (by name) are skipped, so seeding is safe to repeat.
Without --file the built-in seed data is used.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.RootOptions)
			if err != nil {
				return err
			}

			f, err := loadSeedFile(opts.File)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid seed file", err)
			}

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := seed.Seed(cmd.Context(), store, f)
			if err != nil {
				return WrapExitError(ExitFailure, "seeding failed", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %d packs and %d items.\n", res.PacksCreated, res.ItemsCreated)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "YAML seed file (defaults to the built-in packs)")

	return cmd
}

func loadSeedFile(path string) (seed.File, error) {
	if path == "" {
		return seed.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return seed.File{}, err
	}
	return seed.Parse(data)
}

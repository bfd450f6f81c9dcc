// Package cli implements the packs command line.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	// EnvFile is loaded before the environment is parsed; a missing file is ignored.
	EnvFile string
}

// NewRootCommand creates the root command for the packs CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "packs",
		Short: "Packs REST API",
		Long:  "A REST API for managing packs and their items, with JWT authentication.",
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to load before reading the environment")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewOpenAPICommand(opts))

	return cmd
}

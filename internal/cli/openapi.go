package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/packs/internal/httpapi"
	"github.com/mmynk/packs/internal/openapi"
)

// ValidFormats are the document encodings the openapi command can print.
var ValidFormats = []string{"json", "yaml"}

// NewOpenAPICommand creates the openapi command.
func NewOpenAPICommand(_ *RootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:           "openapi",
		Short:         "Print the OpenAPI document",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := openapi.Build(openapi.Info{Title: httpapi.Title, Version: httpapi.APIVersion})

			var (
				out []byte
				err error
			)
			switch format {
			case "json":
				out, err = doc.JSON()
			case "yaml":
				out, err = doc.YAML()
			default:
				return WrapExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", format, ValidFormats), nil)
			}
			if err != nil {
				return WrapExitError(ExitFailure, "failed to render document", err)
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format (json|yaml)")

	return cmd
}

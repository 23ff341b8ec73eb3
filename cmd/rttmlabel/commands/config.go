package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/rttmlabel/pkg/config"
)

// NewConfigCmd returns the config command.
func NewConfigCmd(args *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "config",
		Short:        "Inspect client settings",
		SilenceUsage: true,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as YAML",
		RunE: func(cc *cobra.Command, _ []string) error {
			out, err := args.GetConfig().Encode()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrConfigFailed, err)
			}

			_, err = cc.OutOrStdout().Write(out)

			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the config file",
		RunE: func(cc *cobra.Command, _ []string) error {
			out, err := config.Schema()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrConfigFailed, err)
			}

			fmt.Fprintln(cc.OutOrStdout(), string(out))

			return nil
		},
	})

	return cmd
}

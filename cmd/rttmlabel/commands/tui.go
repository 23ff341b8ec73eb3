package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/macropower/rttmlabel/pkg/labeltui"
	"github.com/macropower/rttmlabel/pkg/log"
)

var (
	ErrTUIFailed = errors.New("tui failed")
	ErrNoTTY     = errors.New("stdout is not a terminal")
)

// NewTUICmd returns the tui command.
func NewTUICmd(args *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive labeling UI",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("%w: %w", ErrTUIFailed, ErrNoTTY)
			}

			cfg := args.GetConfig()

			b, err := newBackend(args)
			if err != nil {
				return err
			}

			lvl, err := log.GetLevel(cfg.LogLevel)
			if err != nil {
				// Should not be possible due to root's PersistentPreRunE.
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			m, err := labeltui.NewModel(cc.Context(), labeltui.Config{
				API:      b.client,
				Paths:    cfg.Paths(),
				State:    b.state,
				Defaults: cfg.DefaultDirs(),
			})
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTUIFailed, err)
			}

			err = labeltui.NewApp(cc.OutOrStdout(), lvl, m).Run(cc.Context())
			if err != nil {
				return fmt.Errorf("%w: %w", ErrTUIFailed, err)
			}

			return nil
		},
	}
}

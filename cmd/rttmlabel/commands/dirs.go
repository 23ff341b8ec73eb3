package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/macropower/rttmlabel/pkg/editor"
	"github.com/macropower/rttmlabel/pkg/form"
	"github.com/macropower/rttmlabel/pkg/notify"
)

var ErrDirsCommandFailed = errors.New("dirs command failed")

// NewDirsCmd returns the dirs command.
func NewDirsCmd(args *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dirs",
		Short:        "Manage the backend's RTTM and audio directories",
		SilenceUsage: true,
	}

	cmd.AddCommand(NewDirsSetCmd(args))
	cmd.AddCommand(NewDirsResetCmd(args))
	cmd.AddCommand(NewDirsBrowseCmd(args))

	return cmd
}

func NewDirsSetCmd(args *RootArgs) *cobra.Command {
	rttmDir := new(string)
	audioDir := new(string)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the directories and list the RTTM files found",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			return runDirs(cc, args, func(ctx context.Context, d *editor.DirectorySelection, f form.Fields) (editor.Listing, error) {
				f.Set(editor.FieldRTTMDir, *rttmDir)
				f.Set(editor.FieldAudioDir, *audioDir)

				return d.Set(ctx)
			})
		},
	}

	cmd.Flags().StringVar(rttmDir, "rttm", "", "RTTM directory")
	cmd.Flags().StringVar(audioDir, "audio", "", "Audio directory")

	return cmd
}

func NewDirsResetCmd(args *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the configured default directories",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			return runDirs(cc, args, func(ctx context.Context, d *editor.DirectorySelection, _ form.Fields) (editor.Listing, error) {
				return d.Reset(ctx)
			})
		},
	}
}

func NewDirsBrowseCmd(args *RootArgs) *cobra.Command {
	roots := new(bool)

	cmd := &cobra.Command{
		Use:   "browse [path]",
		Short: "List the subdirectories of a backend path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			b, err := newBackend(args)
			if err != nil {
				return err
			}

			base := args.GetConfig().Paths().DefaultRoot()
			if len(pArgs) > 0 {
				base = pArgs[0]
			}

			if *roots {
				listing, err := b.client.GetRootDirectories(cc.Context())
				if err != nil {
					return fmt.Errorf("%w: %w", ErrDirsCommandFailed, err)
				}

				return printResult(cc.OutOrStdout(), args.GetOutput(), listing, func(w io.Writer) error {
					for _, d := range listing.Directories {
						_, err := fmt.Fprintln(w, d.Path)
						if err != nil {
							return err
						}
					}

					return nil
				})
			}

			listing, err := b.client.GetDirectories(cc.Context(), base)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrDirsCommandFailed, err)
			}

			return printResult(cc.OutOrStdout(), args.GetOutput(), listing, func(w io.Writer) error {
				for _, d := range listing.Directories {
					_, err := fmt.Fprintln(w, d.Path)
					if err != nil {
						return err
					}
				}

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(roots, "roots", false, "List the file system roots instead")

	return cmd
}

type dirsAction func(ctx context.Context, d *editor.DirectorySelection, f form.Fields) (editor.Listing, error)

func runDirs(cc *cobra.Command, args *RootArgs, action dirsAction) error {
	b, err := newBackend(args)
	if err != nil {
		return err
	}

	fields := form.NewFields(editor.DirectorySelectionFields...)

	d, err := editor.NewDirectorySelection(b.state, fields, b.client, nil, args.GetConfig().DefaultDirs())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDirsCommandFailed, err)
	}

	listing, err := action(cc.Context(), d, fields)

	if n, ok := d.Banner().Current(time.Now()); ok {
		logNotification(n)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrDirsCommandFailed, err)
	}

	return printResult(cc.OutOrStdout(), args.GetOutput(), listing, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "RTTM: %s\nAudio: %s\n", listing.Dirs.RTTM, listing.Dirs.Audio)
		if err != nil {
			return err
		}

		return printOptions(w, listing.Options.Files)
	})
}

func logNotification(n notify.Notification) {
	notify.NewLogger(slog.Default()).Notify(n.Message, n.Level)
}

func printOptions(w io.Writer, files []editor.FileOption) error {
	for _, f := range files {
		_, err := fmt.Fprintf(w, "%s\t%s\n", f.Category, f.Path)
		if err != nil {
			return err
		}
	}

	return nil
}

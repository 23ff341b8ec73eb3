package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/macropower/rttmlabel/pkg/editor"
	"github.com/macropower/rttmlabel/pkg/form"
	"github.com/macropower/rttmlabel/pkg/segment"
	"github.com/macropower/rttmlabel/pkg/session"
)

var ErrFilesCommandFailed = errors.New("files command failed")

// NewFilesCmd returns the files command.
func NewFilesCmd(args *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "files",
		Short:        "List, inspect and load RTTM files",
		SilenceUsage: true,
	}

	cmd.AddCommand(NewFilesListCmd(args))
	cmd.AddCommand(NewFilesLoadCmd(args))
	cmd.AddCommand(NewFilesCheckCmd(args))

	return cmd
}

func NewFilesListCmd(args *RootArgs) *cobra.Command {
	category := new(string)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the RTTM files in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			b, err := newBackend(args)
			if err != nil {
				return err
			}

			d, err := editor.NewDirectorySelection(
				b.state,
				form.NewFields(editor.DirectorySelectionFields...),
				b.client,
				nil,
				args.GetConfig().DefaultDirs(),
			)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFilesCommandFailed, err)
			}

			listing, err := d.Refresh(cc.Context())
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFilesCommandFailed, err)
			}

			files := listing.Options.InCategory(*category)

			return printResult(cc.OutOrStdout(), args.GetOutput(), files, func(w io.Writer) error {
				return printOptions(w, files)
			})
		},
	}

	cmd.Flags().StringVar(category, "category", editor.AllCategories, "Only list files in this category")

	return cmd
}

type loadedFile struct {
	File     session.File      `json:"file" yaml:"file"`
	Segments []segment.Segment `json:"segments" yaml:"segments"`
}

func NewFilesLoadCmd(args *RootArgs) *cobra.Command {
	saved := new(bool)

	cmd := &cobra.Command{
		Use:   "load <rttm_file>",
		Short: "Load an RTTM file and print its segments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			b, err := newBackend(args)
			if err != nil {
				return err
			}

			f, err := editor.NewLoader(b.state, b.client, b.notifier).Load(cc.Context(), pArgs[0], *saved)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFilesCommandFailed, err)
			}

			out := loadedFile{File: f, Segments: b.state.Segments()}

			return printResult(cc.OutOrStdout(), args.GetOutput(), out, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s (%s)\n%s\n", f.RTTMPath, f.SourceType, segmentTable(out.Segments))

				return err
			})
		},
	}

	cmd.Flags().BoolVar(saved, "saved", false, "Load the saved edits instead of the original file")

	return cmd
}

func NewFilesCheckCmd(args *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "check <rttm_file>",
		Short: "Report whether an RTTM file has saved edits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			b, err := newBackend(args)
			if err != nil {
				return err
			}

			res, err := b.client.CheckSavedEdits(cc.Context(), pArgs[0])
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFilesCommandFailed, err)
			}

			return printResult(cc.OutOrStdout(), args.GetOutput(), res, func(w io.Writer) error {
				if !res.HasSavedEdits {
					_, err := fmt.Fprintln(w, "no saved edits")

					return err
				}

				_, err := fmt.Fprintf(w, "saved edits at %s (last modified %s)\n", res.SavedPath, res.LastModified)

				return err
			})
		},
	}
}

package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/macropower/rttmlabel/pkg/editor"
	"github.com/macropower/rttmlabel/pkg/form"
)

var ErrFoldersCommandFailed = errors.New("folders command failed")

// NewFoldersCmd returns the folders command.
func NewFoldersCmd(args *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "folders",
		Short:        "Select the folders files are listed from",
		SilenceUsage: true,
	}

	cmd.AddCommand(NewFoldersUpdateCmd(args))
	cmd.AddCommand(NewFoldersSelectCmd(args))
	cmd.AddCommand(NewFoldersConfirmCmd(args))
	cmd.AddCommand(NewFoldersListCmd(args))
	cmd.AddCommand(NewFoldersBrowseURLCmd(args))

	return cmd
}

func NewFoldersUpdateCmd(args *RootArgs) *cobra.Command {
	rttmDir := new(string)
	audioDir := new(string)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Point the backend at new RTTM and audio folders",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			b, err := newBackend(args)
			if err != nil {
				return err
			}

			fields := form.NewFields(editor.FolderConfigFields...)
			fields.Set(editor.FieldRTTMFolder, *rttmDir)
			fields.Set(editor.FieldAudioFolder, *audioDir)

			c, err := editor.NewFolderConfig(b.state, fields, b.client, args.GetConfig().Paths(), b.notifier)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFoldersCommandFailed, err)
			}

			opts, err := c.Submit(cc.Context())
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFoldersCommandFailed, err)
			}

			return printResult(cc.OutOrStdout(), args.GetOutput(), opts, func(w io.Writer) error {
				return printOptions(w, opts.Files)
			})
		},
	}

	cmd.Flags().StringVar(rttmDir, "rttm", "", "RTTM folder")
	cmd.Flags().StringVar(audioDir, "audio", "", "Audio folder")

	return cmd
}

func NewFoldersSelectCmd(args *RootArgs) *cobra.Command {
	kind := new(string)

	cmd := &cobra.Command{
		Use:   "select <path>",
		Short: "Select the folder for one file type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			k, err := parseKind(*kind)
			if err != nil {
				return err
			}

			b, err := newBackend(args)
			if err != nil {
				return err
			}

			path := args.GetConfig().Paths().Normalize(pArgs[0])

			err = editor.NewFolderSelection(b.client).SetFolder(cc.Context(), k, path)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFoldersCommandFailed, err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(kind, "type", "t", "rttm", "File type (rttm, audio)")

	return cmd
}

func NewFoldersConfirmCmd(args *RootArgs) *cobra.Command {
	rttmDir := new(string)
	audioDir := new(string)
	rttmFile := new(string)

	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Select both folders and list the RTTM files",
		Long: `Select both folders and list the RTTM files of the RTTM folder.

With --file, the audio files available for that RTTM file are listed instead.
`,
		Args: cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			b, err := newBackend(args)
			if err != nil {
				return err
			}

			sel := editor.NewFolderSelection(b.client)

			files, err := sel.Confirm(cc.Context(), *rttmDir, *audioDir)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFoldersCommandFailed, err)
			}

			if *rttmFile != "" {
				files, err = sel.SelectRTTM(cc.Context(), *rttmFile)
				if err != nil {
					return fmt.Errorf("%w: %w", ErrFoldersCommandFailed, err)
				}
			}

			return printResult(cc.OutOrStdout(), args.GetOutput(), files, func(w io.Writer) error {
				return printLines(w, files)
			})
		},
	}

	cmd.Flags().StringVar(rttmDir, "rttm", "", "RTTM folder")
	cmd.Flags().StringVar(audioDir, "audio", "", "Audio folder")
	cmd.Flags().StringVar(rttmFile, "file", "", "RTTM file to list audio files for")

	return cmd
}

func NewFoldersListCmd(args *RootArgs) *cobra.Command {
	kind := new(string)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the files of the selected folder",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			k, err := parseKind(*kind)
			if err != nil {
				return err
			}

			b, err := newBackend(args)
			if err != nil {
				return err
			}

			files, err := b.client.ListFiles(cc.Context(), k)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFoldersCommandFailed, err)
			}

			return printResult(cc.OutOrStdout(), args.GetOutput(), files, func(w io.Writer) error {
				return printLines(w, files)
			})
		},
	}

	cmd.Flags().StringVarP(kind, "type", "t", "rttm", "File type (rttm, audio)")

	return cmd
}

func NewFoldersBrowseURLCmd(args *RootArgs) *cobra.Command {
	kind := new(string)
	start := new(string)

	cmd := &cobra.Command{
		Use:   "browse-url",
		Short: "Print the URL of the backend's folder browser",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			k, err := parseKind(*kind)
			if err != nil {
				return err
			}

			b, err := newBackend(args)
			if err != nil {
				return err
			}

			fields := form.NewFields(editor.FolderConfigFields...)
			fields.Set(editor.FieldFor(k), *start)

			c, err := editor.NewFolderConfig(b.state, fields, b.client, args.GetConfig().Paths(), nil)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrFoldersCommandFailed, err)
			}

			_, err = fmt.Fprintln(cc.OutOrStdout(), c.Browse(k))

			return err
		},
	}

	cmd.Flags().StringVarP(kind, "type", "t", "rttm", "File type (rttm, audio)")
	cmd.Flags().StringVar(start, "start", "", "Folder to start browsing at")

	return cmd
}

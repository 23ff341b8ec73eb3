package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/macropower/rttmlabel/pkg/editor"
	"github.com/macropower/rttmlabel/pkg/form"
	"github.com/macropower/rttmlabel/pkg/segment"
)

var ErrSegmentCommandFailed = errors.New("segment command failed")

// NewSegmentCmd returns the segment command.
func NewSegmentCmd(args *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "segment",
		Short:        "Edit the segments of an RTTM file",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("saved", false, "Edit the saved edits instead of the original file")

	cmd.AddCommand(NewSegmentAddCmd(args))
	cmd.AddCommand(NewSegmentRemoveCmd(args))
	cmd.AddCommand(NewSegmentURLCmd(args))

	return cmd
}

func NewSegmentAddCmd(args *RootArgs) *cobra.Command {
	start := new(string)
	duration := new(string)
	end := new(string)
	speaker := new(string)

	cmd := &cobra.Command{
		Use:   "add <rttm_file>",
		Short: "Add a segment and save the labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			var merr error

			if *start == "" {
				merr = multierror.Append(merr, errors.New("--start is required"))
			}

			if (*duration == "") == (*end == "") {
				merr = multierror.Append(merr, errors.New("exactly one of --duration and --end is required"))
			}

			if *speaker == "" {
				merr = multierror.Append(merr, errors.New("--speaker is required"))
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
			}

			return editSegments(cc, args, pArgs[0], func(b *backend) error {
				fields := form.NewFields(editor.AddSegmentFields...)

				add, err := editor.NewAddSegment(b.state, fields, b.notifier)
				if err != nil {
					return err
				}

				err = add.Open()
				if err != nil {
					return err
				}

				edits := [][2]string{{editor.FieldStartTime, *start}}
				if *duration != "" {
					edits = append(edits, [2]string{editor.FieldDuration, *duration})
				} else {
					edits = append(edits, [2]string{editor.FieldEndTime, *end})
				}

				edits = append(edits, [2]string{editor.FieldSpeakerID, *speaker})

				for _, e := range edits {
					_, err = add.Edit(e[0], e[1])
					if err != nil {
						return err
					}
				}

				_, err = add.Save()

				return err
			})
		},
	}

	cmd.Flags().StringVar(start, "start", "", "Start time in seconds")
	cmd.Flags().StringVar(duration, "duration", "", "Duration in seconds")
	cmd.Flags().StringVar(end, "end", "", "End time in seconds")
	cmd.Flags().StringVar(speaker, "speaker", "", "Speaker ID")

	return cmd
}

func NewSegmentRemoveCmd(args *RootArgs) *cobra.Command {
	index := new(int)

	cmd := &cobra.Command{
		Use:   "remove <rttm_file>",
		Short: "Remove a segment by its index and save the labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			return editSegments(cc, args, pArgs[0], func(b *backend) error {
				if !b.state.RemoveSegment(*index) {
					return fmt.Errorf("%w: index %d out of range", ErrInvalidArgument, *index)
				}

				return nil
			})
		},
	}

	cmd.Flags().IntVarP(index, "index", "i", 0, "Index of the segment, as printed by files load")
	must(cmd.MarkFlagRequired("index"))

	return cmd
}

type segmentClip struct {
	URL     string          `json:"url" yaml:"url"`
	Segment segment.Segment `json:"segment" yaml:"segment"`
}

func NewSegmentURLCmd(args *RootArgs) *cobra.Command {
	index := new(int)

	cmd := &cobra.Command{
		Use:   "url <rttm_file>",
		Short: "Extract the audio of a segment and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cc *cobra.Command, pArgs []string) error {
			saved, err := cc.Flags().GetBool("saved")
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
			}

			b, err := newBackend(args)
			if err != nil {
				return err
			}

			f, err := editor.NewLoader(b.state, b.client, b.notifier).Load(cc.Context(), pArgs[0], saved)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrSegmentCommandFailed, err)
			}

			segs := b.state.Segments()
			if *index < 0 || *index >= len(segs) {
				return fmt.Errorf("%w: index %d out of range", ErrInvalidArgument, *index)
			}

			clip := segmentClip{Segment: segs[*index]}

			clip.URL, err = b.client.SegmentURL(cc.Context(), f.FileID, f.RTTMPath, clip.Segment)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrSegmentCommandFailed, err)
			}

			return printResult(cc.OutOrStdout(), args.GetOutput(), clip, func(w io.Writer) error {
				_, err := fmt.Fprintln(w, clip.URL)

				return err
			})
		},
	}

	cmd.Flags().IntVarP(index, "index", "i", 0, "Index of the segment, as printed by files load")
	must(cmd.MarkFlagRequired("index"))

	return cmd
}

// editSegments loads rttmFile, applies edit, and saves the result.
func editSegments(cc *cobra.Command, args *RootArgs, rttmFile string, edit func(b *backend) error) error {
	saved, err := cc.Flags().GetBool("saved")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	b, err := newBackend(args)
	if err != nil {
		return err
	}

	loader := editor.NewLoader(b.state, b.client, b.notifier)

	_, err = loader.Load(cc.Context(), rttmFile, saved)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSegmentCommandFailed, err)
	}

	err = edit(b)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSegmentCommandFailed, err)
	}

	res, err := loader.Save(cc.Context())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSegmentCommandFailed, err)
	}

	return printResult(cc.OutOrStdout(), args.GetOutput(), res, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s\n%s\n", res.Message, segmentTable(b.state.Segments()))

		return err
	})
}

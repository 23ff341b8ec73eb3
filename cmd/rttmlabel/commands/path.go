package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/macropower/rttmlabel/pkg/pathutil"
)

const pathExample = `  # Normalize a Windows path
  rttmlabel path normalize --os windows 'C:/data//rttm/'

  # Join a relative RTTM path onto a folder
  rttmlabel path join /data/rttm interviews/int_01.rttm

  # Show the parent of a folder
  rttmlabel path parent /data/rttm
`

// NewPathCmd returns the path command. Its subcommands apply the path rules
// used for folder inputs, in the style selected with --os.
func NewPathCmd(args *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "path",
		Short:        "Path helpers",
		Example:      pathExample,
		SilenceUsage: true,
	}

	single := func(use, short string, fn func(p *pathutil.Paths, path string) any) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <path>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cc *cobra.Command, pArgs []string) error {
				return printPathResult(cc.OutOrStdout(), args.GetOutput(), fn(args.GetConfig().Paths(), pArgs[0]))
			},
		}
	}

	cmd.AddCommand(
		single("normalize", "Collapse separators into the host style",
			func(p *pathutil.Paths, path string) any { return p.Normalize(path) }),
		single("split", "Split a path into its non-empty parts",
			func(p *pathutil.Paths, path string) any { return p.Split(path) }),
		single("url", "Convert a path to URL form",
			func(p *pathutil.Paths, path string) any { return p.ToURL(path) }),
		single("first-dir", "Print the first directory of a relative path",
			func(p *pathutil.Paths, path string) any { return p.FirstDir(path) }),
		single("parent", "Print the directory containing a path",
			func(p *pathutil.Paths, path string) any { return p.Parent(path) }),
		single("category", "Print the file picker category of a relative path",
			func(_ *pathutil.Paths, path string) any { return pathutil.Category(path) }),
		&cobra.Command{
			Use:   "join <base> <part>...",
			Short: "Join paths with the host separator",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cc *cobra.Command, pArgs []string) error {
				return printPathResult(cc.OutOrStdout(), args.GetOutput(), args.GetConfig().Paths().Join(pArgs...))
			},
		},
		&cobra.Command{
			Use:   "root",
			Short: "Print the default browse root",
			Args:  cobra.NoArgs,
			RunE: func(cc *cobra.Command, _ []string) error {
				return printPathResult(cc.OutOrStdout(), args.GetOutput(), args.GetConfig().Paths().DefaultRoot())
			},
		},
	)

	return cmd
}

func printPathResult(w io.Writer, format string, v any) error {
	return printResult(w, format, v, func(w io.Writer) error {
		var err error

		switch v := v.(type) {
		case []string:
			_, err = fmt.Fprintln(w, strings.Join(v, "\n"))
		default:
			_, err = fmt.Fprintln(w, v)
		}

		return err
	})
}

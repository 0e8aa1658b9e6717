package cli

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lvillar/calcpdf/pageops"
)

// NewMergeCommand creates the merge subcommand.
func NewMergeCommand(a *app) *cobra.Command {
	var (
		stampFlag    string
		numberedFlag bool
	)

	cmd := &cobra.Command{
		Use:   "merge [output] [input...]",
		Short: "Merge PDF files into one",
		Long: `Merge PDF files, for example reports and their attachments, in the given order.
With --stamp or --numbered the merged pages are stamped with a diagonal text
or numbered.`,
		Example: `  calcpdf merge offer.pdf calculation-12.pdf plan.pdf --stamp COPY`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, inputs := args[0], args[1:]
			if stampFlag == "" && !numberedFlag {
				if err := pageops.MergeFiles(out, inputs...); err != nil {
					return err
				}
			} else if err := mergeAndStamp(out, inputs, pageops.Stamp{Text: stampFlag}, numberedFlag); err != nil {
				return err
			}

			pages, err := pageops.PageCount(out)
			if err != nil {
				return err
			}
			a.logger.WithFields(logrus.Fields{
				"file":  out,
				"files": len(inputs),
				"pages": pages,
			}).Info("PDF files merged.")
			return nil
		},
	}

	cmd.Flags().StringVar(&stampFlag, "stamp", "", "text printed across every page")
	cmd.Flags().BoolVar(&numberedFlag, "numbered", false, "number the pages")

	return cmd
}

func mergeAndStamp(out string, inputs []string, s pageops.Stamp, numbered bool) error {
	dir, err := os.MkdirTemp("", "calcpdf-merge")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	merged := filepath.Join(dir, "merged.pdf")
	if err := pageops.MergeFiles(merged, inputs...); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := pageops.StampFile(f, merged, s, numbered); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

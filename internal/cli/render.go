package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lvillar/calcpdf/pageops"
	"github.com/lvillar/calcpdf/report"
)

func reportKinds() []string { return report.Kinds() }

// NewRenderCommand creates the render subcommand.
func NewRenderCommand(a *app) *cobra.Command {
	var (
		dataFlag   string
		idFlag     int
		outFlag    string
		attachFlag []string
		pdf417Flag bool
	)

	cmd := &cobra.Command{
		Use:   "render [kind]",
		Short: "Render a report from a dataset",
		Long: `Render a report from a JSON or YAML dataset. The calculation report needs the
calculation id. PDF files given with --attach are appended after the report
pages, without the report header and footer.`,
		Example: `  calcpdf render calculation --data data.yaml --id 12 --attach plan.pdf
  calcpdf render states --data data.yaml --out - > states.pdf`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: report.Kinds(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(dataFlag, false)
			if err != nil {
				return err
			}
			opts := a.cfg.ReportOptions(idFlag)
			opts.PDF417 = pdf417Flag
			r, err := report.New(args[0], ds, opts)
			if err != nil {
				return err
			}

			start := time.Now()
			doc, err := report.Build(r, a.cfg.DocumentOptions()...)
			if err != nil {
				return err
			}
			for _, path := range attachFlag {
				n, err := pageops.AppendFile(doc, path)
				if err != nil {
					return err
				}
				a.logger.WithFields(logrus.Fields{"file": path, "pages": n}).Debug("Attachment appended.")
			}
			data, err := doc.Bytes()
			if err != nil {
				return err
			}

			out := outFlag
			if out == "" {
				out = defaultFilename(r.Kind(), idFlag)
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
			} else {
				err = os.WriteFile(out, data, 0o644)
			}
			if err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			a.logger.WithFields(logrus.Fields{
				"kind":     r.Kind(),
				"pages":    doc.PageNo(),
				"bytes":    len(data),
				"file":     out,
				"duration": time.Since(start),
			}).Info("Report written.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataFlag, "data", "d", "", "dataset file (JSON or YAML)")
	cmd.Flags().IntVar(&idFlag, "id", 0, "calculation id")
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "output file, - for stdout (default <kind>[-<id>].pdf)")
	cmd.Flags().StringSliceVar(&attachFlag, "attach", nil, "PDF files appended to the report")
	cmd.Flags().BoolVar(&pdf417Flag, "pdf417", false, "print a PDF417 code with the calculation summary")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func defaultFilename(kind string, id int) string {
	if id > 0 {
		return fmt.Sprintf("%s-%d.pdf", kind, id)
	}
	return kind + ".pdf"
}

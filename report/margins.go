package report

import (
	"github.com/lvillar/calcpdf"
	"github.com/lvillar/calcpdf/model"
	"github.com/lvillar/calcpdf/table"
)

// MarginsReport lists the global margin ranges.
type MarginsReport struct {
	ds *model.Dataset
	f  formats
}

// NewMarginsReport returns the global margins report.
func NewMarginsReport(ds *model.Dataset, opts Options) *MarginsReport {
	return &MarginsReport{ds: ds, f: newFormats(opts.Locale)}
}

func (r *MarginsReport) Kind() string  { return KindMargins }
func (r *MarginsReport) Title() string { return "Global margins" }

func (r *MarginsReport) Render(doc *calcpdf.Document) error {
	const op = "MarginsReport"
	if len(r.ds.GlobalMargins) == 0 {
		return calcpdf.WrapError(op, calcpdf.ErrNoData)
	}
	begin(doc, r.Title())

	tb := table.New(doc)
	tb.AddColumns(
		table.RightColumn("Minimum", 60, false).WithFormatter(r.f.amount),
		table.RightColumn("Maximum", 60, false).WithFormatter(r.f.amount),
		table.RightColumn("Margin", 40, false).WithFormatter(r.f.percent),
	)
	if err := tb.OutputHeaders(); err != nil {
		return calcpdf.WrapError(op, err)
	}
	for _, m := range r.ds.GlobalMargins {
		if err := tb.StartRow(nil).AddValues(m.Minimum, m.Maximum, m.Value).EndRow(); err != nil {
			return calcpdf.WrapError(op, err)
		}
	}
	return finish(op, tb)
}

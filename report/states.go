package report

import (
	"github.com/lvillar/calcpdf"
	"github.com/lvillar/calcpdf/model"
	"github.com/lvillar/calcpdf/table"
)

// colorColumn is the index of the swatch column of the states report.
const colorColumn = 5

// StatesReport lists the states with the number of calculations in each.
type StatesReport struct {
	ds *model.Dataset
	f  formats
}

// NewStatesReport returns the states report.
func NewStatesReport(ds *model.Dataset, opts Options) *StatesReport {
	return &StatesReport{ds: ds, f: newFormats(opts.Locale)}
}

func (r *StatesReport) Kind() string  { return KindStates }
func (r *StatesReport) Title() string { return "States" }

func (r *StatesReport) Render(doc *calcpdf.Document) error {
	const op = "StatesReport"
	if len(r.ds.States) == 0 {
		return calcpdf.WrapError(op, calcpdf.ErrNoData)
	}
	begin(doc, r.Title())

	tb := table.New(doc).SetListener(table.ListenerFuncs{Text: drawSwatch})
	tb.AddColumns(
		table.LeftColumn("Code", 25, true),
		table.LeftColumn("Description", 70, false),
		table.CenterColumn("Editable", 20, true).WithFormatter(r.f.yesNo),
		table.RightColumn("Calculations", 25, true).WithFormatter(r.f.integer),
		table.RightColumn("Percent", 20, true).WithFormatter(r.f.percent),
		table.CenterColumn("Color", 20, true),
	)
	if err := tb.OutputHeaders(); err != nil {
		return calcpdf.WrapError(op, err)
	}

	total := len(r.ds.Calculations)
	for _, s := range r.ds.States {
		count := r.ds.CountByState(s.Code)
		percent := 0.0
		if total > 0 {
			percent = float64(count) / float64(total)
		}
		err := tb.StartRow(nil).
			AddValues(s.Code, s.Description, s.Editable, count, percent, s.Color).
			EndRow()
		if err != nil {
			return calcpdf.WrapError(op, err)
		}
	}
	tb.StartRow(table.BoldCellStyle()).
		Add("Total", table.Span(3)).
		AddValues(total, 1.0).
		Add("").
		EndRow()
	return finish(op, tb)
}

// drawSwatch fills the color cells with the color they name.
func drawSwatch(e table.DrawEvent, text string) bool {
	if e.Header || e.Index != colorColumn {
		return false
	}
	c, ok := table.CreateColor(text)
	if !ok {
		return false
	}
	s := e.Builder.Surface()
	margin := s.GetCellMargin()
	b := e.Bounds
	s.SetFillColor(c.R, c.G, c.B)
	s.Rect(b.X+margin, b.Y+margin, b.W-2*margin, b.H-2*margin, "F")
	return true
}

package report

import (
	"fmt"

	"github.com/lvillar/calcpdf"
	"github.com/lvillar/calcpdf/model"
	"github.com/lvillar/calcpdf/table"
)

// TasksReport lists the tasks with their items and margin ranges.
type TasksReport struct {
	ds *model.Dataset
	f  formats
}

// NewTasksReport returns the tasks report.
func NewTasksReport(ds *model.Dataset, opts Options) *TasksReport {
	return &TasksReport{ds: ds, f: newFormats(opts.Locale)}
}

func (r *TasksReport) Kind() string  { return KindTasks }
func (r *TasksReport) Title() string { return "Tasks" }

func (r *TasksReport) Render(doc *calcpdf.Document) error {
	const op = "TasksReport"
	if len(r.ds.Tasks) == 0 {
		return calcpdf.WrapError(op, calcpdf.ErrNoData)
	}
	begin(doc, r.Title())

	gb := table.NewGroupBuilder(doc)
	gb.AddColumns(
		table.LeftColumn("Description", 90, false),
		table.CenterColumn("Unit", 15, true),
		table.RightColumn("Price", 25, true).WithFormatter(r.f.amount),
		table.RightColumn("Quantity", 20, true).WithFormatter(r.f.amount),
		table.RightColumn("Total", 25, true).WithFormatter(r.f.amount),
	)
	if err := gb.OutputHeaders(); err != nil {
		return calcpdf.WrapError(op, err)
	}

	margin := table.CellStyle().SetFontItalic(false)
	for _, task := range r.ds.Tasks {
		key := task.Description
		if task.Category != "" {
			key = fmt.Sprintf("%s (%s)", task.Description, task.Category)
		}
		if err := gb.SetGroupKey(key); err != nil {
			return calcpdf.WrapError(op, err)
		}
		for _, item := range task.Items {
			err := gb.StartRow(nil).
				AddValues(item.Description, item.Unit, item.Price, item.Quantity, item.Total()).
				EndRow()
			if err != nil {
				return calcpdf.WrapError(op, err)
			}
		}
		gb.StartRow(table.BoldCellStyle()).
			Add("Total per "+task.Unit, table.Span(4), table.WithAlign(table.AlignRight)).
			AddValues(task.Total()).
			EndRow()
		for _, m := range task.Margins {
			gb.StartRow(margin).
				Add(fmt.Sprintf("Margin from %s to %s", r.f.amount.Format(m.Minimum), r.f.amount.Format(m.Maximum)), table.Span(4)).
				Add(r.f.percent.Format(m.Value)).
				EndRow()
		}
	}
	return finish(op, gb)
}

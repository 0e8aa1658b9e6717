package report

import (
	"strings"

	"github.com/lvillar/calcpdf"
	"github.com/lvillar/calcpdf/model"
	"github.com/lvillar/calcpdf/table"
)

const (
	levelColumn   = 1
	levelBarWidth = 1.5
)

// DefaultLevelColors returns the marker colors of the log levels.
func DefaultLevelColors() map[string]table.Color {
	return map[string]table.Color{
		"debug":     table.NewColor(108, 117, 125),
		"info":      table.NewColor(23, 162, 184),
		"notice":    table.NewColor(0, 123, 255),
		"warning":   table.NewColor(255, 193, 7),
		"error":     table.NewColor(220, 53, 69),
		"critical":  table.NewColor(220, 53, 69),
		"alert":     table.NewColor(128, 0, 0),
		"emergency": table.NewColor(128, 0, 0),
	}
}

// LogReport lists the log entries by channel. The level cells are marked on
// their left side with the color of the level.
type LogReport struct {
	ds     *model.Dataset
	colors map[string]table.Color
	f      formats
}

// NewLogReport returns the log report. Options.LevelColors defaults to
// DefaultLevelColors.
func NewLogReport(ds *model.Dataset, opts Options) *LogReport {
	colors := opts.LevelColors
	if colors == nil {
		colors = DefaultLevelColors()
	}
	f := newFormats(opts.Locale)
	f.date.Layout = "02.01.2006 15:04"
	return &LogReport{ds: ds, colors: colors, f: f}
}

func (r *LogReport) Kind() string  { return KindLog }
func (r *LogReport) Title() string { return "Log" }

// LevelColor returns the marker color of level.
func (r *LogReport) LevelColor(level string) (table.Color, bool) {
	c, ok := r.colors[strings.ToLower(level)]
	return c, ok
}

func (r *LogReport) Render(doc *calcpdf.Document) error {
	const op = "LogReport"
	if len(r.ds.Logs) == 0 {
		return calcpdf.WrapError(op, calcpdf.ErrNoData)
	}
	begin(doc, r.Title())

	gb := table.NewGroupBuilder(doc)
	gb.SetListener(table.ListenerFuncs{Border: r.drawLevelBorder})
	gb.AddColumns(
		table.LeftColumn("Date", 30, true).WithFormatter(r.f.date),
		table.LeftColumn("Level", 22, true),
		table.LeftColumn("Message", 138, false),
	)
	if err := gb.OutputHeaders(); err != nil {
		return calcpdf.WrapError(op, err)
	}
	for _, entry := range r.ds.Logs {
		if err := gb.SetGroupKey(entry.Channel); err != nil {
			return calcpdf.WrapError(op, err)
		}
		err := gb.StartRow(nil).
			AddValues(entry.Date.Time, entry.LevelName(), entry.Message).
			EndRow()
		if err != nil {
			return calcpdf.WrapError(op, err)
		}
	}
	return finish(op, gb)
}

// drawLevelBorder draws the border of the level cells with a thick left side
// in the level color.
func (r *LogReport) drawLevelBorder(e table.DrawEvent, border table.Border) bool {
	if e.Header || e.Index != levelColumn || e.Cell.Cols != 1 {
		return false
	}
	c, ok := r.LevelColor(e.Cell.Text)
	if !ok {
		return false
	}
	s := e.Builder.Surface()
	b := e.Bounds
	if border.IsAll() {
		s.Rect(b.X, b.Y, b.W, b.H, "D")
	}
	s.SetLineWidth(levelBarWidth)
	s.SetDrawColor(c.R, c.G, c.B)
	x := b.X + levelBarWidth/2
	s.Line(x, b.Y, x, b.Bottom())
	return true
}

package report

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/boombuler/barcode/qr"
	"github.com/go-pdf/fpdf/contrib/barcode"

	"github.com/lvillar/calcpdf"
	"github.com/lvillar/calcpdf/model"
	"github.com/lvillar/calcpdf/table"
)

const (
	// DraftText is stamped on the calculations in a draft state.
	DraftText = "DRAFT"

	qrSize        = 22.0
	pdf417Width   = 80.0
	pdf417Height  = 20.0
	pdf417Columns = 10
	pdf417Level   = 2
	sectionSpace  = 3.0
)

// CalculationReport prints one calculation: its customer and state, the
// items by group and category, and the totals with the margins.
type CalculationReport struct {
	ds   *model.Dataset
	calc *model.Calculation
	opts Options
	f    formats
}

// NewCalculationReport returns the report of the calculation opts.ID.
func NewCalculationReport(ds *model.Dataset, opts Options) (*CalculationReport, error) {
	if opts.ID <= 0 {
		return nil, fmt.Errorf("report %s: %w: missing calculation id", KindCalculation, calcpdf.ErrInvalidParam)
	}
	c, err := ds.Calculation(opts.ID)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", KindCalculation, err)
	}
	return &CalculationReport{ds: ds, calc: c, opts: opts, f: newFormats(opts.Locale)}, nil
}

func (r *CalculationReport) Kind() string { return KindCalculation }

func (r *CalculationReport) Title() string {
	return fmt.Sprintf("Calculation n°%d", r.calc.ID)
}

// IsDraft reports whether the calculation state is a draft state.
func (r *CalculationReport) IsDraft() bool {
	return slices.ContainsFunc(r.opts.DraftStates, func(s string) bool {
		return strings.EqualFold(s, r.calc.State)
	})
}

// Totals returns the computed totals of the calculation.
func (r *CalculationReport) Totals() model.Totals {
	return r.ds.Totals(r.calc)
}

func (r *CalculationReport) Render(doc *calcpdf.Document) error {
	const op = "CalculationReport"
	if r.IsDraft() {
		doc.SetDraft(DraftText)
	}
	begin(doc, r.Title())

	top := doc.GetY()
	bottom := top
	if r.opts.QRBaseURL != "" {
		r.drawQR(doc, top)
		bottom = top + qrSize
	}
	info := r.outputInfo(doc)
	if err := info.Err(); err != nil {
		return calcpdf.WrapError(op, err)
	}
	doc.SetY(max(doc.GetY(), bottom) + sectionSpace)

	if r.calc.IsEmpty() {
		tb := table.New(doc).AddColumn(table.LeftColumn("", 1, false))
		if err := tb.SingleLine("No item.", table.CellStyle(), table.AlignCenter); err != nil {
			return calcpdf.WrapError(op, err)
		}
		return nil
	}

	items := r.outputItems(doc)
	if err := items.Err(); err != nil {
		return calcpdf.WrapError(op, err)
	}
	doc.Ln(sectionSpace)
	totals := r.Totals()
	tb := r.outputTotals(doc, totals)
	if r.opts.PDF417 && tb.Err() == nil {
		r.drawPDF417(doc, totals)
	}
	return finish(op, tb)
}

func (r *CalculationReport) groupName(code string) string {
	if g, ok := r.ds.Group(code); ok && g.Description != "" {
		return g.Description
	}
	return code
}

func (r *CalculationReport) drawQR(doc *calcpdf.Document, top float64) {
	url := r.opts.QRBaseURL + strconv.Itoa(r.calc.ID)
	key := barcode.RegisterQR(doc, url, qr.M, qr.Auto)
	w, _ := doc.GetPageSize()
	_, _, right, _ := doc.GetMargins()
	x := w - right - qrSize
	barcode.Barcode(doc, key, x, top, qrSize, qrSize, false)
	doc.LinkString(x, top, qrSize, qrSize, url)
}

// outputInfo prints the customer, description, state and date.
func (r *CalculationReport) outputInfo(doc *calcpdf.Document) *table.Builder {
	tb := table.New(doc).SetFullWidth(false).SetBorder(table.BorderNone())
	tb.AddColumns(table.LeftColumn("", 30, true), table.LeftColumn("", 120, true))

	label := table.NoBorderStyle().SetFontBold(false)
	value := table.NoBorderStyle()
	state := value.Clone()
	stateText := r.calc.State
	if s, ok := r.ds.State(r.calc.State); ok {
		if s.Description != "" {
			stateText = s.Description
		}
		if c, ok := table.CreateColor(s.Color); ok {
			state.SetFillColor(c)
		}
	}

	rows := []struct {
		label string
		value string
		style *table.Style
	}{
		{"Customer", r.calc.Customer, value},
		{"Description", r.calc.Description, value},
		{"State", stateText, state},
		{"Date", r.f.date.Format(r.calc.Date.Time), value},
	}
	for _, row := range rows {
		err := tb.StartRow(value).
			Add(row.label, table.WithStyle(label)).
			Add(row.value, table.WithStyle(row.style)).
			EndRow()
		if err != nil {
			break
		}
	}
	return tb
}

// outputItems prints the items grouped by group, with one line per category
// and a total per group.
func (r *CalculationReport) outputItems(doc *calcpdf.Document) *table.GroupBuilder {
	gb := table.NewGroupBuilder(doc)
	gb.AddColumns(
		table.LeftColumn("Description", 90, false),
		table.CenterColumn("Unit", 15, true),
		table.RightColumn("Price", 25, true).WithFormatter(r.f.amount),
		table.RightColumn("Quantity", 20, true).WithFormatter(r.f.amount),
		table.RightColumn("Total", 25, true).WithFormatter(r.f.amount),
	)
	if err := gb.OutputHeaders(); err != nil {
		return gb
	}

	category := table.CellStyle().SetFontItalic(false)
	indented := table.CellStyle().SetIndent(3)
	subtotal := table.BoldCellStyle()
	for _, section := range r.calc.Sections() {
		name := r.groupName(section.Group)
		if err := gb.SetGroupKey(name); err != nil {
			return gb
		}
		for _, cat := range section.Categories {
			if err := gb.SingleLine(cat.Category, category, table.AlignLeft); err != nil {
				return gb
			}
			for _, item := range cat.Items {
				err := gb.StartRow(nil).
					Add(item.Description, table.WithStyle(indented)).
					AddValues(item.Unit, item.Price, item.Quantity, item.Total()).
					EndRow()
				if err != nil {
					return gb
				}
			}
		}
		err := gb.StartRow(subtotal).
			Add("Total "+name, table.Span(4), table.WithAlign(table.AlignRight)).
			AddValues(section.Amount()).
			EndRow()
		if err != nil {
			return gb
		}
	}
	return gb
}

// outputTotals prints the amounts by group, the global and user margins and
// the overall total.
func (r *CalculationReport) outputTotals(doc *calcpdf.Document, totals model.Totals) *table.Builder {
	tb := table.New(doc)
	tb.AddColumns(
		table.LeftColumn("Group", 70, false),
		table.RightColumn("Amount", 30, true).WithFormatter(r.f.amount),
		table.RightColumn("Margin %", 20, true).WithFormatter(r.f.percent),
		table.RightColumn("Margin", 30, true).WithFormatter(r.f.amount),
		table.RightColumn("Total", 30, true).WithFormatter(r.f.amount),
	)
	if err := tb.OutputHeaders(); err != nil {
		return tb
	}
	for _, g := range totals.Groups {
		err := tb.StartRow(nil).
			AddValues(r.groupName(g.Group), g.Amount, g.Margin, g.MarginAmount(), g.Total()).
			EndRow()
		if err != nil {
			return tb
		}
	}

	bold := table.BoldCellStyle()
	groupsTotal := totals.GroupsTotal()
	afterGlobal := groupsTotal + totals.GlobalAmount()
	tb.StartRow(bold).
		Add("Total groups").
		AddValues(totals.Items).
		Add("").
		AddValues(groupsTotal-totals.Items, groupsTotal).
		EndRow()
	tb.StartRow(nil).
		AddValues("Global margin", groupsTotal, totals.GlobalMargin, totals.GlobalAmount(), afterGlobal).
		EndRow()
	tb.StartRow(nil).
		AddValues("User margin", afterGlobal, totals.UserMargin, totals.UserAmount(), totals.Overall()).
		EndRow()
	tb.StartRow(table.BlackHeaderStyle()).
		Add("Overall total", table.Span(4)).
		AddValues(totals.Overall()).
		EndRow()

	text := "Overall margin: " + r.f.percent.Format(totals.OverallMargin())
	style := table.BoldCellStyle()
	if totals.IsBelow(r.opts.MinMargin) {
		style.SetTextColor(table.Red())
		text += " (below the minimum margin of " + r.f.percent.Format(r.opts.MinMargin) + ")"
	}
	tb.SingleLine(text, style, table.AlignRight)
	return tb
}

// drawPDF417 prints a PDF417 code holding the identifier, the customer and
// the overall total.
func (r *CalculationReport) drawPDF417(doc *calcpdf.Document, totals model.Totals) {
	code := fmt.Sprintf("%d;%s;%.2f", r.calc.ID, r.calc.Customer, totals.Overall())
	key := barcode.RegisterPdf417(doc, code, pdf417Columns, pdf417Level)
	if !table.IsPrintable(doc, pdf417Height+sectionSpace) {
		doc.AddPage()
	}
	left, _, _, _ := doc.GetMargins()
	y := doc.GetY() + sectionSpace
	barcode.Barcode(doc, key, left, y, pdf417Width, pdf417Height, false)
	doc.SetY(y + pdf417Height)
}

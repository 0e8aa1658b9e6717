package table_test

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillar/calcpdf"
	"github.com/lvillar/calcpdf/table"
)

// newTestPDF returns an A4 document with a printable width of 190mm.
func newTestPDF() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.SetFont("Arial", "", 9)
	pdf.AddPage()
	return pdf
}

// recorder records every text cell drawn, without handling it.
type recorder struct {
	events []table.DrawEvent
	texts  []string
}

func (r *recorder) DrawCellBackground(table.DrawEvent) bool           { return false }
func (r *recorder) DrawCellBorder(table.DrawEvent, table.Border) bool { return false }
func (r *recorder) DrawCellText(e table.DrawEvent, text string) bool {
	r.events = append(r.events, e)
	r.texts = append(r.texts, text)
	return false
}

// rows groups the recorded events by their vertical position and page.
func (r *recorder) rows() [][]table.DrawEvent {
	var rows [][]table.DrawEvent
	for _, e := range r.events {
		if e.Index == 0 {
			rows = append(rows, nil)
		}
		rows[len(rows)-1] = append(rows[len(rows)-1], e)
	}
	return rows
}

func rowWidth(events []table.DrawEvent) float64 {
	w := 0.0
	for _, e := range events {
		w += e.Bounds.W
	}
	return w
}

func newRecordedBuilder(pdf *fpdf.Fpdf) (*table.Builder, *recorder) {
	rec := &recorder{}
	tb := table.New(pdf)
	tb.SetListener(rec)
	return tb, rec
}

func TestBasicTable(t *testing.T) {
	pdf := newTestPDF()

	tb := table.New(pdf)
	tb.AddColumns(
		table.LeftColumn("ID", 20, true),
		table.LeftColumn("Name", 60, false),
		table.RightColumn("Qty", 30, true),
		table.RightColumn("Price", 30, true),
	)
	require.NoError(t, tb.OutputHeaders())
	require.NoError(t, tb.AddRow(nil, "1", "Widget", "10", "5.00"))
	require.NoError(t, tb.AddRow(nil, "2", "Gadget", "5", "12.50"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("output: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}
	t.Logf("Basic table PDF: %d bytes", buf.Len())
}

func TestSpanMustMatchColumns(t *testing.T) {
	pdf := newTestPDF()
	tb := table.New(pdf)
	tb.AddColumns(
		table.LeftColumn("A", 20, false),
		table.LeftColumn("B", 20, false),
		table.LeftColumn("C", 20, false),
	)

	require.NoError(t, tb.StartRow(nil).Add("1").Add("2-3", table.Span(2)).EndRow())

	err := tb.StartRow(nil).Add("1").Add("2").EndRow()
	require.Error(t, err)
	assert.ErrorIs(t, err, table.ErrSpanMismatch)

	var terr *table.Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "EndRow", terr.Op)

	// the error is sticky and aborts the document
	assert.ErrorIs(t, tb.AddRow(nil, "a", "b", "c"), table.ErrSpanMismatch)
	assert.True(t, pdf.Err())
	var buf bytes.Buffer
	assert.Error(t, pdf.Output(&buf))
}

func TestRowLifecycleErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(tb *table.Builder) error
		want  error
	}{
		{
			name: "start twice",
			build: func(tb *table.Builder) error {
				return tb.StartRow(nil).StartRow(nil).Err()
			},
			want: table.ErrRowStarted,
		},
		{
			name: "add without row",
			build: func(tb *table.Builder) error {
				return tb.Add("text").Err()
			},
			want: table.ErrRowNotStarted,
		},
		{
			name: "end without row",
			build: func(tb *table.Builder) error {
				return tb.EndRow()
			},
			want: table.ErrRowNotStarted,
		},
		{
			name: "empty row",
			build: func(tb *table.Builder) error {
				return tb.StartRow(nil).EndRow()
			},
			want: table.ErrEmptyRow,
		},
		{
			name: "complete without row",
			build: func(tb *table.Builder) error {
				return tb.CompleteRow(true)
			},
			want: table.ErrRowNotStarted,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := table.New(newTestPDF())
			tb.AddColumn(table.LeftColumn("A", 20, false))
			assert.ErrorIs(t, tt.build(tb), tt.want)
		})
	}
}

func TestNoColumns(t *testing.T) {
	tb := table.New(newTestPDF())
	assert.ErrorIs(t, tb.OutputHeaders(), table.ErrNoColumns)

	tb = table.New(newTestPDF())
	assert.ErrorIs(t, tb.SingleLine("total", nil, table.AlignRight), table.ErrNoColumns)
}

func TestCompleteRow(t *testing.T) {
	tb, rec := newRecordedBuilder(newTestPDF())
	tb.AddColumns(
		table.LeftColumn("A", 20, false),
		table.LeftColumn("B", 20, false),
		table.LeftColumn("C", 20, false),
		table.LeftColumn("D", 20, false),
	)

	require.NoError(t, tb.StartRow(nil).Add("first").CompleteRow(true))
	assert.Equal(t, []string{"first", "", "", ""}, rec.texts)
	assert.False(t, tb.IsRowStarted())

	require.NoError(t, tb.StartRow(nil).Add("x", table.Span(2)).CompleteRow(false))
	assert.True(t, tb.IsRowStarted())
	require.NoError(t, tb.EndRow())
	assert.Len(t, rec.events, 7)
}

func TestWidthRedistribution(t *testing.T) {
	tb, rec := newRecordedBuilder(newTestPDF())
	tb.AddColumns(
		table.LeftColumn("Fixed", 40, true),
		table.LeftColumn("Flexible", 60, false),
	)
	require.NoError(t, tb.AddRow(nil, "a", "b"))

	require.Len(t, rec.events, 2)
	assert.InDelta(t, 40, rec.events[0].Bounds.W, 1e-9)
	assert.InDelta(t, 150, rec.events[1].Bounds.W, 1e-9)
	assert.InDelta(t, 10, rec.events[0].Bounds.X, 1e-9)
	assert.InDelta(t, 50, rec.events[1].Bounds.X, 1e-9)
}

func TestWidthRedistributionAllFixed(t *testing.T) {
	tb, rec := newRecordedBuilder(newTestPDF())
	tb.AddColumns(
		table.LeftColumn("A", 40, true),
		table.LeftColumn("B", 60, true),
	)
	require.NoError(t, tb.AddRow(nil, "a", "b"))
	assert.InDelta(t, 100, rowWidth(rec.events), 1e-9)
}

func TestSingleCellFullWidth(t *testing.T) {
	tb, rec := newRecordedBuilder(newTestPDF())
	tb.AddColumn(table.LeftColumn("Only", 50, true))
	require.NoError(t, tb.AddRow(nil, "text"))
	require.Len(t, rec.events, 1)
	assert.InDelta(t, 190, rec.events[0].Bounds.W, 1e-9)

	tb.AddColumn(table.LeftColumn("Other", 30, true))
	require.NoError(t, tb.SingleLine("total", nil, table.AlignRight))
	require.Len(t, rec.events, 2)
	assert.InDelta(t, 190, rec.events[1].Bounds.W, 1e-9)
	assert.Equal(t, table.AlignRight, rec.events[1].Align)
}

func TestTableAlignment(t *testing.T) {
	tests := []struct {
		align table.Alignment
		x     float64
	}{
		{table.AlignLeft, 10},
		{table.AlignCenter, 10 + 45},
		{table.AlignRight, 10 + 90},
	}
	for _, tt := range tests {
		t.Run(string(tt.align), func(t *testing.T) {
			tb, rec := newRecordedBuilder(newTestPDF())
			tb.SetFullWidth(false).SetAlignment(tt.align)
			tb.AddColumns(table.LeftColumn("A", 40, false), table.LeftColumn("B", 60, false))
			require.NoError(t, tb.AddRow(nil, "a", "b"))
			assert.InDelta(t, tt.x, rec.events[0].Bounds.X, 1e-9)
			assert.InDelta(t, 100, rowWidth(rec.events), 1e-9)
		})
	}
}

func TestEndToEndHeaderAndData(t *testing.T) {
	pdf := newTestPDF()
	tb, rec := newRecordedBuilder(pdf)
	tb.AddColumns(
		table.LeftColumn("Customer", 100, false),
		table.LeftColumn("State", 40, false),
	)
	require.NoError(t, tb.StartRow(table.HeaderStyle()).Add("Customer").Add("State").EndRow())
	require.NoError(t, tb.StartRow(nil).Add("Acme Corp").Add("Open").EndRow())

	rows := rec.rows()
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.InDelta(t, table.PrintableWidth(pdf), rowWidth(row), 1e-9)
	}
	assert.Equal(t, *table.HeaderStyle(), *rows[0][0].Style)
	assert.Equal(t, *table.CellStyle(), *rows[1][1].Style)
	assert.Equal(t, []string{"Customer", "State", "Acme Corp", "Open"}, rec.texts)

	// rows are stacked
	assert.InDelta(t, rows[0][0].Bounds.Bottom(), rows[1][0].Bounds.Y, 1e-9)
	// cells of a row share the same top and height
	assert.Equal(t, rows[1][0].Bounds.Y, rows[1][1].Bounds.Y)
	assert.Equal(t, rows[1][0].Bounds.H, rows[1][1].Bounds.H)
}

func TestAlignmentResolution(t *testing.T) {
	tb, rec := newRecordedBuilder(newTestPDF())
	tb.AddColumns(
		table.RightColumn("Amount", 40, false),
		table.Column{Text: "Free", Width: 40},
	)
	require.NoError(t, tb.StartRow(nil).Add("1.00").Add("text").EndRow())
	require.NoError(t, tb.StartRow(nil).Add("2.00", table.WithAlign(table.AlignCenter)).Add("text").EndRow())

	aligns := make([]table.Alignment, 0, len(rec.events))
	for _, e := range rec.events {
		aligns = append(aligns, e.Align)
	}
	assert.Equal(t, []table.Alignment{table.AlignRight, table.AlignLeft, table.AlignCenter, table.AlignLeft}, aligns)
}

func TestRowHeightFromWrappedText(t *testing.T) {
	tb, rec := newRecordedBuilder(newTestPDF())
	tb.AddColumns(table.LeftColumn("A", 20, true), table.LeftColumn("B", 170, true))

	long := "a long text that must be wrapped on several lines within twenty millimeters"
	require.NoError(t, tb.AddRow(nil, long, "short"))
	row := rec.rows()[0]
	assert.Greater(t, row[0].Bounds.H, table.DefaultLineHeight)
	assert.Equal(t, 0.0, math.Mod(row[0].Bounds.H, table.DefaultLineHeight))

	// a larger font uses its own line height
	big := table.CellStyle().SetFontSize(18)
	require.NoError(t, tb.StartRow(nil).Add("big", table.WithStyle(big)).Add("small").EndRow())
	row = rec.rows()[1]
	assert.NotEqual(t, table.DefaultLineHeight, row[0].LineHeight)
	assert.Equal(t, table.DefaultLineHeight, row[1].LineHeight)
}

func TestHeaderRepeatsOnPageBreak(t *testing.T) {
	pdf := newTestPDF()
	tb, rec := newRecordedBuilder(pdf)
	tb.AddColumns(
		table.LeftColumn("ID", 20, true),
		table.LeftColumn("Name", 60, false),
		table.RightColumn("Value", 30, true),
	)
	require.NoError(t, tb.OutputHeaders())
	for i := 0; i < 80; i++ {
		require.NoError(t, tb.StartRow(nil).AddValues(i+1, fmt.Sprintf("Item %d", i+1), float64(i)*1.5).EndRow())
	}

	if pdf.PageNo() < 2 {
		t.Fatalf("expected at least 2 pages, got %d", pdf.PageNo())
	}
	headers := 0
	for i, text := range rec.texts {
		if text == "ID" && rec.events[i].Index == 0 {
			headers++
		}
	}
	assert.Equal(t, pdf.PageNo(), headers)
}

func TestHeaderNotRepeated(t *testing.T) {
	pdf := newTestPDF()
	tb, rec := newRecordedBuilder(pdf)
	tb.SetRepeatHeader(false)
	tb.AddColumn(table.LeftColumn("ID", 20, true))
	require.NoError(t, tb.OutputHeaders())
	for i := 0; i < 80; i++ {
		require.NoError(t, tb.AddRow(nil, fmt.Sprint(i)))
	}
	require.GreaterOrEqual(t, pdf.PageNo(), 2)
	assert.Equal(t, "ID", rec.texts[0])
	assert.NotContains(t, rec.texts[1:], "ID")
}

func TestCheckNewPage(t *testing.T) {
	pdf := newTestPDF()
	tb, rec := newRecordedBuilder(pdf)
	tb.AddColumn(table.LeftColumn("Header", 20, true))

	assert.False(t, tb.CheckNewPage(10))
	assert.Equal(t, 1, pdf.PageNo())

	// a row in progress survives the page break
	pdf.SetY(250)
	tb.StartRow(nil).Add("pending")
	assert.True(t, tb.CheckNewPage(100))
	assert.Equal(t, 2, pdf.PageNo())
	require.NoError(t, tb.EndRow())
	assert.Equal(t, []string{"Header", "pending"}, rec.texts)
}

func TestListenerHandlesText(t *testing.T) {
	var handled []string
	tb := table.New(newTestPDF())
	tb.AddColumns(table.LeftColumn("A", 20, false), table.LeftColumn("B", 20, false))
	tb.SetListener(table.ListenerFuncs{
		Text: func(e table.DrawEvent, text string) bool {
			if e.Index == 1 {
				handled = append(handled, text)
				return true
			}
			return false
		},
	})
	require.NoError(t, tb.AddRow(nil, "left", "right"))
	assert.Equal(t, []string{"right"}, handled)
}

func TestListenerBorderAndBackground(t *testing.T) {
	var borders []table.Border
	var backgrounds int
	tb := table.New(newTestPDF())
	tb.AddColumns(table.LeftColumn("A", 20, false), table.LeftColumn("B", 20, false))
	tb.SetListener(table.ListenerFuncs{
		Background: func(table.DrawEvent) bool { backgrounds++; return true },
		Border: func(_ table.DrawEvent, b table.Border) bool {
			borders = append(borders, b)
			return false
		},
	})

	require.NoError(t, tb.StartRow(table.HeaderStyle()).
		Add("a", table.WithSide(table.SideTop, false)).
		Add("b", table.WithBorder(table.BorderSides(table.SideBottom))).
		EndRow())
	require.NoError(t, tb.StartRow(nil).
		Add("c", table.WithBorder(table.BorderInherited())).
		Add("d", table.WithStyle(table.NoBorderStyle())).
		EndRow())

	// white cells do not paint a background
	assert.Equal(t, 2, backgrounds)
	require.Len(t, borders, 3)
	assert.Equal(t, "LRB", borders[0].String())
	assert.Equal(t, "B", borders[1].String())
	assert.True(t, borders[2].IsAll())
}

func TestInheritedBorderUsesTableBorder(t *testing.T) {
	var borders []string
	tb := table.New(newTestPDF())
	tb.SetBorder(table.BorderSides(table.SideLeft, table.SideRight))
	tb.AddColumn(table.LeftColumn("A", 20, false))
	tb.SetListener(table.ListenerFuncs{
		Border: func(_ table.DrawEvent, b table.Border) bool {
			borders = append(borders, b.String())
			return true
		},
	})
	style := table.CellStyle().SetBorder(table.BorderInherited())
	require.NoError(t, tb.AddRow(style, "a"))
	assert.Equal(t, []string{"LR"}, borders)
}

func TestLinkAndIndent(t *testing.T) {
	pdf := newTestPDF()
	tb := table.New(pdf)
	tb.AddColumns(table.LeftColumn("Site", 60, false), table.RightColumn("Note", 60, false))
	indented := table.CellStyle().SetIndent(4)
	require.NoError(t, tb.StartRow(nil).
		Add("example.com", table.WithLink("https://example.com"), table.WithStyle(table.LinkStyle())).
		Add("indented", table.WithStyle(indented)).
		EndRow())

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	assert.Contains(t, buf.String(), "https://example.com")
}

func TestAddValuesUsesColumnFormatters(t *testing.T) {
	tb, rec := newRecordedBuilder(newTestPDF())
	tb.AddColumns(
		table.LeftColumn("Name", 40, false),
		table.RightColumn("Price", 20, true).WithFormatter(table.AmountFormatter{}),
		table.RightColumn("Margin", 20, true).WithFormatter(table.PercentFormatter{}),
		table.CenterColumn("Active", 20, true).WithFormatter(table.BoolFormatter{}),
	)
	require.NoError(t, tb.StartRow(nil).AddValues("Widget", 1234.5, 0.25, true).EndRow())
	assert.Equal(t, []string{"Widget", "1,234.50", "25%", "Yes"}, rec.texts)
}

func TestTableBorderAppliesToDefaultStyles(t *testing.T) {
	var drawn []table.Border
	tb := table.New(newTestPDF()).SetBorder(table.BorderNone())
	tb.AddColumns(table.LeftColumn("A", 20, false), table.LeftColumn("B", 20, false))
	tb.SetListener(table.ListenerFuncs{
		Border: func(_ table.DrawEvent, b table.Border) bool {
			drawn = append(drawn, b)
			return true
		},
	})
	require.NoError(t, tb.OutputHeaders())
	require.NoError(t, tb.AddRow(nil, "a", "b"))
	require.NoError(t, tb.AddRow(table.BoldCellStyle(), "c", "d"))
	assert.Empty(t, drawn)

	// an explicit style border still wins
	require.NoError(t, tb.AddRow(table.CellStyle().SetBorder(table.BorderSides(table.SideBottom)), "e", "f"))
	require.Len(t, drawn, 2)
	assert.Equal(t, "B", drawn[0].String())
}

func TestAccentedTextOnDocument(t *testing.T) {
	doc := calcpdf.NewDocument()
	doc.AddPage()
	tb := table.New(doc)
	tb.AddColumns(table.LeftColumn("Client", 60, false), table.LeftColumn("État", 40, false))
	require.NotPanics(t, func() {
		require.NoError(t, tb.OutputHeaders())
		require.NoError(t, tb.AddRow(nil, "Café Zürich", "Ouvert"))
		require.NoError(t, tb.AddRow(nil, strings.Repeat("Façade à réparer ", 20), "Fermé"))
	})
	_, err := doc.Bytes()
	require.NoError(t, err)
}

func TestOversizedRowStaysBelowHeaders(t *testing.T) {
	pdf := newTestPDF()
	var pages []int
	tb := table.New(pdf)
	tb.AddColumn(table.LeftColumn("Message", 20, false))
	tb.SetListener(table.ListenerFuncs{
		Text: func(table.DrawEvent, string) bool {
			pages = append(pages, pdf.PageNo())
			return false
		},
	})
	long := strings.Repeat("word ", 4000)

	require.NoError(t, tb.OutputHeaders())
	require.NoError(t, tb.AddRow(nil, long))
	assert.Equal(t, []int{1, 1}, pages)

	// after a body row the page is broken as usual
	pages = nil
	next := pdf.PageNo() + 1
	pdf.AddPage()
	require.NoError(t, tb.AddRow(nil, "short"))
	require.NoError(t, tb.AddRow(nil, long))
	assert.Equal(t, []int{next, next + 1, next + 1}, pages)

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
}

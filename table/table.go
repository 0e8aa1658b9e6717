package table

import (
	"fmt"
	"math"
)

// DefaultLineHeight is the height of one text line when the cell font has
// the default size, in user units.
const DefaultLineHeight = 5.0

// widthEpsilon guards the width redistribution against floating point noise.
const widthEpsilon = 1e-6

// Builder lays out rows of cells on a Surface.
//
// Rows are built with StartRow, Add/AddCell and EndRow. The column spans of
// the cells of a row must exactly match the declared columns. Broken
// invariants are recorded as a sticky error: every later operation returns
// it and the error is set on the surface so that the document output fails.
type Builder struct {
	s            Surface
	columns      []Column
	cells        []*Cell
	rowStyle     *Style
	rowStarted   bool
	border       Border
	fullWidth    bool
	alignment    Alignment
	headerStyle  *Style
	listener     DrawListener
	repeatHeader bool
	lineHeight   float64
	inHeader     bool
	err          error

	// headerHeight is the height of the last header row; rowPage is the
	// page of the last body row.
	headerHeight float64
	rowPage      int

	// afterHeaders is called after the headers have been repeated on a new
	// page.
	afterHeaders func() error
}

// cellLayout is a cell with its resolved values.
type cellLayout struct {
	cell       *Cell
	text       string
	style      *Style
	align      Alignment
	width      float64
	fixed      bool
	lineHeight float64
}

// New returns a full width Builder drawing on s.
func New(s Surface) *Builder {
	return &Builder{
		s:            s,
		border:       BorderAll(),
		fullWidth:    true,
		alignment:    AlignLeft,
		repeatHeader: true,
		lineHeight:   DefaultLineHeight,
	}
}

// Surface returns the drawing surface.
func (b *Builder) Surface() Surface { return b.s }

// Err returns the first error that occurred, if any.
func (b *Builder) Err() error { return b.err }

func (b *Builder) fail(op string, err error) error {
	if b.err == nil {
		b.err = newError(op, err)
		b.s.SetError(b.err)
	}
	return b.err
}

// SetFullWidth sets whether the rows always fill the printable width.
func (b *Builder) SetFullWidth(fullWidth bool) *Builder {
	b.fullWidth = fullWidth
	return b
}

// IsFullWidth reports whether the rows fill the printable width.
func (b *Builder) IsFullWidth() bool { return b.fullWidth }

// SetAlignment sets the horizontal position of rows narrower than the
// printable width. It has no effect on full width tables.
func (b *Builder) SetAlignment(a Alignment) *Builder {
	b.alignment = a
	return b
}

// SetBorder sets the border used by cells with an inherited border.
func (b *Builder) SetBorder(border Border) *Builder {
	if border.IsInherited() {
		border = BorderAll()
	}
	b.border = border
	return b
}

// Border returns the default border.
func (b *Builder) Border() Border { return b.border }

// SetHeaderStyle sets the style of the header row; nil restores HeaderStyle.
func (b *Builder) SetHeaderStyle(s *Style) *Builder {
	if s != nil {
		s = s.Clone()
	}
	b.headerStyle = s
	return b
}

// SetListener sets the draw listener; nil removes it.
func (b *Builder) SetListener(l DrawListener) *Builder {
	b.listener = l
	return b
}

// SetRepeatHeader sets whether the header row is output again after a page
// break. It is true by default.
func (b *Builder) SetRepeatHeader(repeat bool) *Builder {
	b.repeatHeader = repeat
	return b
}

// SetLineHeight sets the height of a text line of default size.
func (b *Builder) SetLineHeight(h float64) *Builder {
	if h > 0 {
		b.lineHeight = h
	}
	return b
}

// LineHeight returns the height of a text line of default size.
func (b *Builder) LineHeight() float64 { return b.lineHeight }

// AddColumn appends a column.
func (b *Builder) AddColumn(c Column) *Builder {
	b.columns = append(b.columns, c)
	return b
}

// AddColumns appends the given columns.
func (b *Builder) AddColumns(cols ...Column) *Builder {
	b.columns = append(b.columns, cols...)
	return b
}

// Columns returns a copy of the declared columns.
func (b *Builder) Columns() []Column {
	return append([]Column(nil), b.columns...)
}

// ColumnsCount returns the number of declared columns.
func (b *Builder) ColumnsCount() int { return len(b.columns) }

// IsRowStarted reports whether a row is in progress.
func (b *Builder) IsRowStarted() bool { return b.rowStarted }

// StartRow starts a new row. Cells without style use the given style, or
// CellStyle when it is nil.
func (b *Builder) StartRow(style *Style) *Builder {
	if b.err != nil {
		return b
	}
	if b.rowStarted {
		b.fail("StartRow", ErrRowStarted)
		return b
	}
	if style == nil {
		style = CellStyle()
	} else {
		style = style.Clone()
	}
	b.rowStarted = true
	b.rowStyle = style
	b.cells = nil
	return b
}

// Add appends a text cell to the current row.
func (b *Builder) Add(text string, opts ...CellOption) *Builder {
	return b.AddCell(NewCell(text, opts...))
}

// AddCell appends a cell to the current row.
func (b *Builder) AddCell(c *Cell) *Builder {
	if b.err != nil {
		return b
	}
	if !b.rowStarted {
		b.fail("AddCell", ErrRowNotStarted)
		return b
	}
	if c.Cols < 1 {
		c.Cols = 1
	}
	b.cells = append(b.cells, c)
	return b
}

// AddCells appends cells to the current row.
func (b *Builder) AddCells(cells ...*Cell) *Builder {
	for _, c := range cells {
		b.AddCell(c)
	}
	return b
}

// AddValues appends one cell per value, formatted by the formatter of the
// column the cell falls in.
func (b *Builder) AddValues(values ...any) *Builder {
	for _, v := range values {
		index := b.spanCount()
		if index < len(b.columns) {
			b.Add(b.columns[index].format(v))
		} else {
			b.Add(TextFormatter{}.Format(v))
		}
	}
	return b
}

func (b *Builder) spanCount() int {
	n := 0
	for _, c := range b.cells {
		n += c.span()
	}
	return n
}

// CompleteRow adds empty cells until the row spans all the columns and,
// when endRow is true, ends it.
func (b *Builder) CompleteRow(endRow bool) error {
	if b.err != nil {
		return b.err
	}
	if !b.rowStarted {
		return b.fail("CompleteRow", ErrRowNotStarted)
	}
	for n := b.spanCount(); n < len(b.columns); n++ {
		b.Add("")
	}
	if endRow {
		return b.EndRow()
	}
	return b.err
}

// EndRow lays out and draws the current row.
func (b *Builder) EndRow() error {
	const op = "EndRow"
	if b.err != nil {
		return b.err
	}
	if !b.rowStarted {
		return b.fail(op, ErrRowNotStarted)
	}
	if len(b.cells) == 0 {
		return b.fail(op, ErrEmptyRow)
	}
	if span := b.spanCount(); span != len(b.columns) {
		return b.fail(op, fmt.Errorf("%w: %d for %d columns", ErrSpanMismatch, span, len(b.columns)))
	}

	layouts := b.resolve()
	if b.fullWidth {
		b.adjustWidths(layouts)
	}

	b.cells = nil
	b.rowStarted = false
	b.rowStyle = nil

	height := 0.0
	for i := range layouts {
		height = max(height, b.cellHeight(&layouts[i]))
	}
	b.CheckNewPage(height)
	if b.err != nil {
		return b.err
	}
	if b.s.Err() {
		return b.s.Error()
	}
	b.drawRow(layouts, height)
	if b.inHeader {
		b.headerHeight = height
	} else {
		b.rowPage = b.s.PageNo()
	}
	return b.err
}

func (b *Builder) resolve() []cellLayout {
	layouts := make([]cellLayout, len(b.cells))
	index := 0
	for i, c := range b.cells {
		l := &layouts[i]
		l.cell = c
		l.text = c.Text
		switch {
		case c.Style != nil:
			l.style = c.Style
		case b.rowStyle != nil:
			l.style = b.rowStyle
		default:
			l.style = CellStyle()
		}
		l.align = c.Align
		if l.align == AlignInherit {
			l.align = b.columns[index].Align
		}
		if l.align == AlignInherit {
			l.align = AlignLeft
		}
		l.fixed = true
		for _, col := range b.columns[index : index+c.span()] {
			l.width += col.Width
			l.fixed = l.fixed && col.Fixed
		}
		l.lineHeight = b.lineHeightFor(l.style)
		index += c.span()
	}
	return layouts
}

// adjustWidths scales the non fixed cells so that the row fills the
// printable width. A single cell always takes the whole width.
func (b *Builder) adjustWidths(layouts []cellLayout) {
	printable := PrintableWidth(b.s)
	if len(layouts) == 1 {
		layouts[0].width = printable
		return
	}
	var fixed, resizable float64
	for _, l := range layouts {
		if l.fixed {
			fixed += l.width
		} else {
			resizable += l.width
		}
	}
	remaining := printable - fixed
	if math.Abs(resizable) < widthEpsilon || math.Abs(resizable-remaining) < widthEpsilon {
		return
	}
	factor := remaining / resizable
	for i := range layouts {
		if !layouts[i].fixed {
			layouts[i].width *= factor
		}
	}
}

func (b *Builder) lineHeightFor(style *Style) float64 {
	if style.Font.IsDefaultSize() {
		return b.lineHeight
	}
	return b.s.PointToUnitConvert(style.Font.Size) + 2*b.s.GetCellMargin()
}

func (b *Builder) cellHeight(l *cellLayout) float64 {
	if l.cell.IsImage() {
		return PixelsToUnits(b.s, float64(l.cell.Image.Height())) + 2*b.s.GetCellMargin()
	}
	l.style.Apply(b.s)
	return float64(b.linesCount(l.text, l.width-float64(l.style.Indent()))) * l.lineHeight
}

func (b *Builder) linesCount(text string, width float64) int {
	if text == "" {
		return 1
	}
	return max(1, len(b.s.SplitText(text, width)))
}

// CheckNewPage starts a new page when height does not fit in the remaining
// space of the current page, then repeats the headers if enabled. It
// reports whether a page was added.
//
// A height that would not fit on a new page either, below the repeated
// headers, does not start a page while no body row is on the current one,
// so that no page is left with the headers alone. The row is drawn where it
// is and its text flows over the page break.
func (b *Builder) CheckNewPage(height float64) bool {
	if IsPrintable(b.s, height) || b.exceedsPage(height) {
		return false
	}
	b.s.AddPage()
	if b.inHeader {
		return true
	}

	// keep a row in progress aside while the headers are output
	cells, style, started := b.cells, b.rowStyle, b.rowStarted
	b.cells, b.rowStyle, b.rowStarted = nil, nil, false
	if b.repeatHeader && len(b.columns) > 0 {
		b.OutputHeaders()
	}
	if b.afterHeaders != nil && b.err == nil {
		if err := b.afterHeaders(); err != nil {
			b.fail("CheckNewPage", err)
		}
	}
	b.cells, b.rowStyle, b.rowStarted = cells, style, started
	return true
}

// exceedsPage reports whether height is taller than the body space of a new
// page while the current page holds no body row.
func (b *Builder) exceedsPage(height float64) bool {
	if b.inHeader || b.rowPage == b.s.PageNo() {
		return false
	}
	_, h := b.s.GetPageSize()
	_, top, _, _ := b.s.GetMargins()
	_, bottom := b.s.GetAutoPageBreak()
	space := h - top - bottom
	if b.repeatHeader && len(b.columns) > 0 {
		space -= b.headerHeight
	}
	return height > space
}

// OutputHeaders outputs a row with the text of each column.
func (b *Builder) OutputHeaders() error {
	if b.err != nil {
		return b.err
	}
	if len(b.columns) == 0 {
		return b.fail("OutputHeaders", ErrNoColumns)
	}
	style := b.headerStyle
	if style == nil {
		style = HeaderStyle()
	}
	b.inHeader = true
	defer func() { b.inHeader = false }()
	b.StartRow(style)
	for _, col := range b.columns {
		b.Add(col.Text, WithAlign(col.Align))
	}
	return b.EndRow()
}

// Row outputs a complete row of cells.
func (b *Builder) Row(style *Style, cells ...*Cell) error {
	return b.StartRow(style).AddCells(cells...).EndRow()
}

// AddRow outputs a complete row of text cells, one per column.
func (b *Builder) AddRow(style *Style, texts ...string) error {
	b.StartRow(style)
	for _, text := range texts {
		b.Add(text)
	}
	return b.EndRow()
}

// SingleLine outputs a row with one cell spanning all the columns.
func (b *Builder) SingleLine(text string, style *Style, align Alignment) error {
	if b.err != nil {
		return b.err
	}
	if len(b.columns) == 0 {
		return b.fail("SingleLine", ErrNoColumns)
	}
	return b.StartRow(style).Add(text, Span(len(b.columns)), WithAlign(align)).EndRow()
}

func (b *Builder) rowStartX(layouts []cellLayout) float64 {
	left, _, _, _ := b.s.GetMargins()
	if b.fullWidth {
		return left
	}
	width := 0.0
	for _, l := range layouts {
		width += l.width
	}
	diff := PrintableWidth(b.s) - width
	if diff <= 0 {
		return left
	}
	switch b.alignment {
	case AlignCenter:
		return left + diff/2
	case AlignRight:
		return left + diff
	}
	return left
}

func (b *Builder) drawRow(layouts []cellLayout, height float64) {
	x := b.rowStartX(layouts)
	y := b.s.GetY()
	for i := range layouts {
		l := &layouts[i]
		b.s.SetXY(x, y)
		b.drawCell(i, l, Rect{X: x, Y: y, W: l.width, H: height})
		x += l.width
		b.s.SetXY(x, y)
	}
	left, _, _, _ := b.s.GetMargins()
	b.s.SetXY(left, y+height)
}

func (b *Builder) drawCell(index int, l *cellLayout, bounds Rect) {
	style := l.style
	style.Apply(b.s)
	e := DrawEvent{
		Builder:    b,
		Index:      index,
		Cell:       l.cell,
		Style:      style,
		Bounds:     bounds,
		Align:      l.align,
		LineHeight: l.lineHeight,
		Header:     b.inHeader,
	}

	if style.IsFillColor() && !b.listenBackground(e) {
		b.s.Rect(bounds.X, bounds.Y, bounds.W, bounds.H, "F")
	}

	border := l.cell.resolveBorder(style, b.border)
	if !border.IsNone() && !b.listenBorder(e, border) {
		b.drawBorder(bounds, border)
	}

	if b.listener != nil {
		style.Apply(b.s)
	}
	if l.cell.IsImage() {
		if err := l.cell.Image.Draw(b.s, bounds, l.align); err != nil {
			b.fail("EndRow", err)
		}
		return
	}
	if !b.listenText(e, l.text) {
		b.drawText(l, bounds)
	}
	if l.cell.Link != "" && l.text != "" {
		b.drawLink(l, bounds)
	}
}

func (b *Builder) listenBackground(e DrawEvent) bool {
	return b.listener != nil && b.listener.DrawCellBackground(e)
}

func (b *Builder) listenBorder(e DrawEvent, border Border) bool {
	return b.listener != nil && b.listener.DrawCellBorder(e, border)
}

func (b *Builder) listenText(e DrawEvent, text string) bool {
	return b.listener != nil && b.listener.DrawCellText(e, text)
}

func (b *Builder) drawBorder(r Rect, border Border) {
	if border.IsRectangleStyle() {
		b.s.Rect(r.X, r.Y, r.W, r.H, "D")
		return
	}
	if border.IsLeft() {
		b.s.Line(r.X, r.Y, r.X, r.Bottom())
	}
	if border.IsTop() {
		b.s.Line(r.X, r.Y, r.Right(), r.Y)
	}
	if border.IsRight() {
		b.s.Line(r.Right(), r.Y, r.Right(), r.Bottom())
	}
	if border.IsBottom() {
		b.s.Line(r.X, r.Bottom(), r.Right(), r.Bottom())
	}
}

func (b *Builder) drawText(l *cellLayout, r Rect) {
	indent := float64(l.style.Indent())
	b.s.SetXY(r.X+indent, r.Y)
	b.s.MultiCell(r.W-indent, l.lineHeight, l.text, BorderNoneString, string(l.align), false)
}

// drawLink adds a link area over the text actually drawn.
func (b *Builder) drawLink(l *cellLayout, r Rect) {
	indent := float64(l.style.Indent())
	margin := b.s.GetCellMargin()
	available := r.W - indent - 2*margin
	lines := b.linesCount(l.text, r.W-indent)
	width := available
	if lines == 1 {
		width = min(b.s.GetStringWidth(l.text), available)
	}
	height := min(float64(lines)*l.lineHeight, r.H)
	x := r.X + indent + margin
	switch l.align {
	case AlignRight:
		x = r.Right() - margin - width
	case AlignCenter:
		x = r.X + indent + (r.W-indent-width)/2
	}
	b.s.LinkString(x, r.Y, width, height, l.cell.Link)
}

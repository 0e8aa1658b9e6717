package table

// DrawEvent describes the cell being drawn.
type DrawEvent struct {
	Builder *Builder
	// Index is the position of the cell in its row.
	Index  int
	Cell   *Cell
	Style  *Style
	Bounds Rect
	Align  Alignment
	// LineHeight is the height of one text line.
	LineHeight float64
	// Header is true for the cells of the header row.
	Header bool
}

// DrawListener can take over the drawing of a cell's background, border or
// text. Each method returns true when it handled the drawing, in which case
// the Builder skips its own.
type DrawListener interface {
	DrawCellBackground(e DrawEvent) bool
	DrawCellBorder(e DrawEvent, border Border) bool
	DrawCellText(e DrawEvent, text string) bool
}

// ListenerFuncs adapts functions to DrawListener. Nil functions do not
// handle anything.
type ListenerFuncs struct {
	Background func(e DrawEvent) bool
	Border     func(e DrawEvent, border Border) bool
	Text       func(e DrawEvent, text string) bool
}

func (l ListenerFuncs) DrawCellBackground(e DrawEvent) bool {
	return l.Background != nil && l.Background(e)
}

func (l ListenerFuncs) DrawCellBorder(e DrawEvent, border Border) bool {
	return l.Border != nil && l.Border(e, border)
}

func (l ListenerFuncs) DrawCellText(e DrawEvent, text string) bool {
	return l.Text != nil && l.Text(e, text)
}

package table

// Cell is a unit of table content: a text or an image spanning one or more
// columns. Unset fields are resolved by the Builder when the row ends.
type Cell struct {
	Text  string
	Image *Image
	// Cols is the number of spanned columns, at least 1.
	Cols  int
	Style *Style
	Align Alignment
	Link  string
	// Border replaces the style border when set.
	Border *Border

	sides    Side
	sidesSet Side
}

// CellOption configures a cell.
type CellOption func(*Cell)

// Span sets the number of spanned columns. Values below 1 are set to 1.
func Span(cols int) CellOption {
	return func(c *Cell) { c.Cols = max(1, cols) }
}

// WithStyle sets the cell style. The style is copied.
func WithStyle(s *Style) CellOption {
	return func(c *Cell) {
		if s != nil {
			c.Style = s.Clone()
		}
	}
}

// WithAlign sets the cell alignment.
func WithAlign(a Alignment) CellOption {
	return func(c *Cell) { c.Align = a }
}

// WithLink makes the cell text a hyperlink.
func WithLink(url string) CellOption {
	return func(c *Cell) { c.Link = url }
}

// WithBorder replaces the border of the cell style.
func WithBorder(b Border) CellOption {
	return func(c *Cell) { c.Border = &b }
}

// WithSide forces one side of the border on or off, whatever the resolved
// border is.
func WithSide(side Side, on bool) CellOption {
	return func(c *Cell) { c.SetSide(side, on) }
}

// NewCell returns a text cell.
func NewCell(text string, opts ...CellOption) *Cell {
	c := &Cell{Text: text, Cols: 1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewImageCell returns a cell drawing the image at path. It fails
// immediately when the file does not exist.
func NewImageCell(path string, opts ...CellOption) (*Cell, error) {
	img, err := NewImage(path)
	if err != nil {
		return nil, err
	}
	c := NewCell("", opts...)
	c.Image = img
	return c, nil
}

// IsImage reports whether the cell draws an image.
func (c *Cell) IsImage() bool {
	return c.Image != nil
}

// SetSide forces one side of the border on or off.
func (c *Cell) SetSide(side Side, on bool) *Cell {
	c.sidesSet |= side
	if on {
		c.sides |= side
	} else {
		c.sides &^= side
	}
	return c
}

// ClearSides removes all the per-side overrides.
func (c *Cell) ClearSides() *Cell {
	c.sides, c.sidesSet = 0, 0
	return c
}

func (c *Cell) span() int {
	return max(1, c.Cols)
}

// resolveBorder returns the border to draw: the cell border, else the style
// border; inherited borders use the table default. Per-side overrides are
// applied last.
func (c *Cell) resolveBorder(style *Style, tableDefault Border) Border {
	b := style.Border
	if c.Border != nil {
		b = *c.Border
	}
	if b.IsInherited() {
		b = tableDefault
	}
	if b.IsInherited() {
		b = BorderAll()
	}
	for _, sl := range sideLetters {
		if c.sidesSet&sl.side != 0 {
			b = b.With(sl.side, c.sides&sl.side != 0)
		}
	}
	return b
}
